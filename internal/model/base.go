package model

import "time"

// DateLayout 日期字段统一格式
const DateLayout = "2006-01-02"

// MaxNumeric52 NUMERIC(5,2) 列可存储的最大绝对值（work_hours、score）
const MaxNumeric52 = 999.99

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
