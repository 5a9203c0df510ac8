package dto

import (
	"bytes"
	"encoding/json"
)

// ── 通用查询参数 ──

// QueryParams 列表接口共用的搜索与排序参数
type QueryParams struct {
	Search   string `form:"search"   binding:"omitempty,max=200"`
	Ordering string `form:"ordering" binding:"omitempty,max=200"`
}

// ── 可空字段 ──

// Optional 区分 JSON 中"未提供"与"显式 null"的字段
//
//	未出现    → Set=false
//	null      → Set=true, Value=nil
//	具体值    → Set=true, Value=&v
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some 构造已赋值的 Optional
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null 构造显式置空的 Optional
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON 仅在字段出现时被调用
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON 未赋值与 null 都输出 null
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
