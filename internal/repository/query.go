package repository

import (
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// ── 搜索 ──

// SplitSearchTerms 按空白与逗号拆分搜索词
func SplitSearchTerms(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike 转义 LIKE 通配符
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// applySearch 每个搜索词需至少命中一个字段（不区分大小写的子串匹配），所有搜索词需同时满足
func applySearch(db *gorm.DB, raw string, columns []string) *gorm.DB {
	if len(columns) == 0 {
		return db
	}
	terms := SplitSearchTerms(raw)
	if len(terms) == 0 {
		return db
	}

	conds := make([]string, len(columns))
	for i, col := range columns {
		conds[i] = col + " ILIKE ?"
	}
	clause := "(" + strings.Join(conds, " OR ") + ")"

	for _, term := range terms {
		pattern := "%" + EscapeLike(term) + "%"
		args := make([]interface{}, len(columns))
		for i := range args {
			args[i] = pattern
		}
		db = db.Where(clause, args...)
	}
	return db
}

// ── 排序 ──

// OrderField 单个排序字段
type OrderField struct {
	Column string
	Desc   bool
}

// ParseOrdering 解析 "-salary,first_name" 形式的排序参数
// allowed 为 参数字段名 → 列名 的白名单，白名单外的字段直接忽略
func ParseOrdering(raw string, allowed map[string]string) []OrderField {
	if raw == "" || len(allowed) == 0 {
		return nil
	}

	var fields []OrderField
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		name := strings.TrimPrefix(part, "-")

		col, ok := allowed[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		fields = append(fields, OrderField{Column: col, Desc: desc})
	}
	return fields
}

// applyOrdering 无有效排序字段时使用默认排序
func applyOrdering(db *gorm.DB, raw string, allowed map[string]string, defaultOrder string) *gorm.DB {
	fields := ParseOrdering(raw, allowed)
	if len(fields) == 0 {
		return db.Order(defaultOrder)
	}
	for _, f := range fields {
		if f.Desc {
			db = db.Order(f.Column + " DESC")
		} else {
			db = db.Order(f.Column + " ASC")
		}
	}
	return db
}
