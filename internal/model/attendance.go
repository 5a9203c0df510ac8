package model

import (
	"fmt"
	"time"
)

// 考勤状态
const (
	AttendanceStatusPresent = "present"
	AttendanceStatusAbsent  = "absent"
	AttendanceStatusRemote  = "remote"
	AttendanceStatusHoliday = "holiday"
)

// ValidAttendanceStatus 判断考勤状态是否合法
func ValidAttendanceStatus(s string) bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusRemote, AttendanceStatusHoliday:
		return true
	}
	return false
}

// Attendance 考勤表 — 对应 attendances，(employee_id, date) 唯一
type Attendance struct {
	AttendanceID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_id"`
	EmployeeID   string    `gorm:"type:uuid;not null"                             json:"employee_id"`
	Date         time.Time `gorm:"type:date;not null"                             json:"date"`
	CheckIn      *string   `gorm:"type:time"                                      json:"check_in"`
	CheckOut     *string   `gorm:"type:time"                                      json:"check_out"`
	WorkHours    float64   `gorm:"type:numeric(5,2);not null;default:0"           json:"work_hours"`
	Status       string    `gorm:"type:varchar(20);not null;default:'present'"    json:"status"`
	Notes        string    `gorm:"type:varchar(255);not null;default:''"          json:"notes"`
	BaseModel

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendances" }

// Label 展示文本，需要预加载 Employee
func (a *Attendance) Label() string {
	empID := ""
	if a.Employee != nil {
		empID = a.Employee.EmpID
	}
	return fmt.Sprintf("%s - %s (%s)", empID, a.Date.Format(DateLayout), a.Status)
}
