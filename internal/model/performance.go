package model

import (
	"fmt"
	"time"
)

// 评分范围
const (
	MinRating = 1
	MaxRating = 5
)

// Performance 绩效考核表 — 对应 performances
type Performance struct {
	PerformanceID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"performance_id"`
	EmployeeID    string    `gorm:"type:uuid;not null"                             json:"employee_id"`
	ReviewDate    time.Time `gorm:"type:date;not null"                             json:"review_date"`
	Reviewer      string    `gorm:"type:varchar(120);not null"                     json:"reviewer"`
	Rating        int       `gorm:"not null"                                       json:"rating"` // 1-5
	GoalsSet      string    `gorm:"type:text;not null;default:''"                  json:"goals_set"`
	GoalsMet      bool      `gorm:"not null;default:false"                         json:"goals_met"`
	Score         float64   `gorm:"type:numeric(5,2);not null;default:0"           json:"score"`
	Comments      string    `gorm:"type:text;not null;default:''"                  json:"comments"`
	BaseModel

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName 指定表名
func (Performance) TableName() string { return "performances" }

// Label 展示文本，需要预加载 Employee
func (p *Performance) Label() string {
	empID := ""
	if p.Employee != nil {
		empID = p.Employee.EmpID
	}
	return fmt.Sprintf("%s - %s (%d)", empID, p.ReviewDate.Format(DateLayout), p.Rating)
}
