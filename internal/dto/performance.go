package dto

// ── 绩效模块 DTO ──

// PerformanceRequest 创建 / 全量更新绩效请求
type PerformanceRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	ReviewDate string  `json:"review_date" binding:"required,datetime=2006-01-02"`
	Reviewer   string  `json:"reviewer"    binding:"required,max=120"`
	Rating     int     `json:"rating"      binding:"required,min=1,max=5"`
	GoalsSet   string  `json:"goals_set"`
	GoalsMet   bool    `json:"goals_met"`
	Score      float64 `json:"score"       binding:"gte=-999.99,lte=999.99"`
	Comments   string  `json:"comments"`
}

// PatchPerformanceRequest 部分更新绩效请求
type PatchPerformanceRequest struct {
	EmployeeID *string  `json:"employee_id" binding:"omitempty,uuid"`
	ReviewDate *string  `json:"review_date" binding:"omitempty,datetime=2006-01-02"`
	Reviewer   *string  `json:"reviewer"    binding:"omitempty,min=1,max=120"`
	Rating     *int     `json:"rating"      binding:"omitempty,min=1,max=5"`
	GoalsSet   *string  `json:"goals_set"`
	GoalsMet   *bool    `json:"goals_met"`
	Score      *float64 `json:"score"       binding:"omitempty,gte=-999.99,lte=999.99"`
	Comments   *string  `json:"comments"`
}

// PerformanceListRequest 绩效列表查询参数
type PerformanceListRequest struct {
	QueryParams
	EmployeeEmpID string `form:"employee__emp_id" binding:"omitempty,max=20"`
	Rating        string `form:"rating"           binding:"omitempty,number"`
	ReviewDate    string `form:"review_date"      binding:"omitempty,datetime=2006-01-02"`
}

// PerformanceResponse 绩效完整信息
type PerformanceResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	ReviewDate string  `json:"review_date"`
	Reviewer   string  `json:"reviewer"`
	Rating     int     `json:"rating"`
	GoalsSet   string  `json:"goals_set"`
	GoalsMet   bool    `json:"goals_met"`
	Score      float64 `json:"score"`
	Comments   string  `json:"comments"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}
