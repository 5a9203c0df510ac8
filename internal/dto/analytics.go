package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// ── 统计汇总 DTO ──

// AnalyticsSummary 全量统计汇总
type AnalyticsSummary struct {
	TotalEmployees          int64              `json:"total_employees"`
	AvgSalary               float64            `json:"avg_salary"`
	EmployeesByDepartment   []DepartmentCount  `json:"employees_by_department"`
	PerformanceDistribution RatingDistribution `json:"performance_distribution"`
}

// DepartmentCount 部门人数
type DepartmentCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// RatingCount 单个评分的出现次数
type RatingCount struct {
	Rating int
	Count  int64
}

// RatingDistribution 评分分布，序列化为按评分升序的 JSON 对象 {"3":1,"5":2}
type RatingDistribution []RatingCount

// MarshalJSON 按评分升序输出键，不依赖 map 遍历顺序
func (d RatingDistribution) MarshalJSON() ([]byte, error) {
	sorted := make(RatingDistribution, len(d))
	copy(sorted, d)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Rating < sorted[j].Rating })

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, rc := range sorted {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(rc.Rating)))
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatInt(rc.Count, 10))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON 供缓存回读使用
func (d *RatingDistribution) UnmarshalJSON(data []byte) error {
	var raw map[string]int64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(RatingDistribution, 0, len(raw))
	for k, v := range raw {
		rating, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("非法评分键 %q: %w", k, err)
		}
		out = append(out, RatingCount{Rating: rating, Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rating < out[j].Rating })
	*d = out
	return nil
}
