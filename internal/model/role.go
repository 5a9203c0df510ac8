package model

import "fmt"

// Role 职位表 — 对应 roles
type Role struct {
	RoleID           string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"role_id"`
	Title            string  `gorm:"type:varchar(100);not null"                     json:"title"`
	Level            string  `gorm:"type:varchar(50);not null;default:''"           json:"level"`
	SalaryGrade      string  `gorm:"type:varchar(20);not null;default:''"           json:"salary_grade"`
	Responsibilities string  `gorm:"type:text;not null;default:''"                  json:"responsibilities"`
	IsManagement     bool    `gorm:"not null;default:false"                         json:"is_management"`
	MinSalary        float64 `gorm:"type:numeric(10,2);not null;default:0"          json:"min_salary"`
	MaxSalary        float64 `gorm:"type:numeric(10,2);not null;default:0"          json:"max_salary"`
	BaseModel
}

// TableName 指定表名
func (Role) TableName() string { return "roles" }

// Label 列表视图中的展示文本
func (r *Role) Label() string {
	return fmt.Sprintf("%s (%s)", r.Title, r.Level)
}
