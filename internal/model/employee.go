package model

import (
	"fmt"
	"time"
)

// 员工状态
const (
	EmployeeStatusActive     = "active"
	EmployeeStatusOnLeave    = "on_leave"
	EmployeeStatusTerminated = "terminated"
)

// ValidEmployeeStatus 判断员工状态是否合法
func ValidEmployeeStatus(s string) bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusOnLeave, EmployeeStatusTerminated:
		return true
	}
	return false
}

// Employee 员工表 — 对应 employees
type Employee struct {
	EmployeeID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"employee_id"`
	EmpID        string     `gorm:"type:varchar(20);not null;uniqueIndex"          json:"emp_id"`
	FirstName    string     `gorm:"type:varchar(60);not null"                      json:"first_name"`
	LastName     string     `gorm:"type:varchar(60);not null"                      json:"last_name"`
	Email        string     `gorm:"type:varchar(254);not null;uniqueIndex"         json:"email"`
	Phone        string     `gorm:"type:varchar(30);not null;default:''"           json:"phone"`
	DOB          *time.Time `gorm:"column:dob;type:date"                           json:"dob"`
	HireDate     time.Time  `gorm:"type:date;not null"                             json:"hire_date"`
	DepartmentID *string    `gorm:"type:uuid"                                      json:"department_id"`
	RoleID       *string    `gorm:"type:uuid"                                      json:"role_id"`
	ManagerID    *string    `gorm:"type:uuid"                                      json:"manager_id"`
	Status       string     `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	Salary       float64    `gorm:"type:numeric(12,2);not null;default:0"          json:"salary"`
	Address      string     `gorm:"type:varchar(255);not null;default:''"          json:"address"`
	Notes        string     `gorm:"type:text;not null;default:''"                  json:"notes"`
	BaseModel

	// 关联
	Department   *Department   `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
	Role         *Role         `gorm:"foreignKey:RoleID;references:RoleID"             json:"role,omitempty"`
	Manager      *Employee     `gorm:"foreignKey:ManagerID;references:EmployeeID"      json:"manager,omitempty"`
	Attendances  []Attendance  `gorm:"foreignKey:EmployeeID;references:EmployeeID"     json:"attendances,omitempty"`
	Performances []Performance `gorm:"foreignKey:EmployeeID;references:EmployeeID"     json:"performances,omitempty"`
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// Label 列表视图中的展示文本
func (e *Employee) Label() string {
	return fmt.Sprintf("%s - %s %s", e.EmpID, e.FirstName, e.LastName)
}
