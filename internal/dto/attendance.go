package dto

// ── 考勤模块 DTO ──

// AttendanceRequest 创建 / 全量更新考勤请求
type AttendanceRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	Date       string  `json:"date"        binding:"required,datetime=2006-01-02"`
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
	WorkHours  float64 `json:"work_hours"  binding:"gte=0,lte=999.99"`
	Status     string  `json:"status"      binding:"omitempty,oneof=present absent remote holiday"`
	Notes      string  `json:"notes"       binding:"omitempty,max=255"`
}

// PatchAttendanceRequest 部分更新考勤请求
type PatchAttendanceRequest struct {
	EmployeeID *string          `json:"employee_id" binding:"omitempty,uuid"`
	Date       *string          `json:"date"        binding:"omitempty,datetime=2006-01-02"`
	CheckIn    Optional[string] `json:"check_in"`
	CheckOut   Optional[string] `json:"check_out"`
	WorkHours  *float64         `json:"work_hours"  binding:"omitempty,gte=0,lte=999.99"`
	Status     *string          `json:"status"      binding:"omitempty,oneof=present absent remote holiday"`
	Notes      *string          `json:"notes"       binding:"omitempty,max=255"`
}

// AttendanceListRequest 考勤列表查询参数
type AttendanceListRequest struct {
	QueryParams
	EmployeeEmpID string `form:"employee__emp_id" binding:"omitempty,max=20"`
	Date          string `form:"date"             binding:"omitempty,datetime=2006-01-02"`
	Status        string `form:"status"           binding:"omitempty,oneof=present absent remote holiday"`
}

// AttendanceResponse 考勤完整信息
type AttendanceResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
	WorkHours  float64 `json:"work_hours"`
	Status     string  `json:"status"`
	Notes      string  `json:"notes"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}
