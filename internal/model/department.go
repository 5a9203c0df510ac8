package model

import "fmt"

// Department 部门表 — 对应 departments
type Department struct {
	DepartmentID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"department_id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Code         string  `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	Location     string  `gorm:"type:varchar(100);not null;default:''"          json:"location"`
	Description  string  `gorm:"type:text;not null;default:''"                  json:"description"`
	ContactEmail string  `gorm:"type:varchar(254);not null;default:''"          json:"contact_email"`
	Phone        string  `gorm:"type:varchar(20);not null;default:''"           json:"phone"`
	HeadID       *string `gorm:"type:uuid"                                      json:"head_id"` // 删除负责人时置空
	BaseModel
}

// TableName 指定表名
func (Department) TableName() string { return "departments" }

// Label 列表视图中的展示文本
func (d *Department) Label() string {
	return fmt.Sprintf("%s (%s)", d.Name, d.Code)
}
