package dto

// ── 职位模块 DTO ──

// RoleRequest 创建 / 全量更新职位请求
type RoleRequest struct {
	Title            string  `json:"title"            binding:"required,max=100"`
	Level            string  `json:"level"            binding:"omitempty,max=50"`
	SalaryGrade      string  `json:"salary_grade"     binding:"omitempty,max=20"`
	Responsibilities string  `json:"responsibilities"`
	IsManagement     bool    `json:"is_management"`
	MinSalary        float64 `json:"min_salary"       binding:"gte=0,lt=100000000"`
	MaxSalary        float64 `json:"max_salary"       binding:"gte=0,lt=100000000"`
}

// PatchRoleRequest 部分更新职位请求
type PatchRoleRequest struct {
	Title            *string  `json:"title"            binding:"omitempty,min=1,max=100"`
	Level            *string  `json:"level"            binding:"omitempty,max=50"`
	SalaryGrade      *string  `json:"salary_grade"     binding:"omitempty,max=20"`
	Responsibilities *string  `json:"responsibilities"`
	IsManagement     *bool    `json:"is_management"`
	MinSalary        *float64 `json:"min_salary"       binding:"omitempty,gte=0,lt=100000000"`
	MaxSalary        *float64 `json:"max_salary"       binding:"omitempty,gte=0,lt=100000000"`
}

// RoleListRequest 职位列表查询参数
type RoleListRequest struct {
	QueryParams
	IsManagement string `form:"is_management" binding:"omitempty,oneof=true false True False 1 0"`
}

// ManagementFlag 解析 is_management 过滤值，未提供时返回 nil
func (r *RoleListRequest) ManagementFlag() *bool {
	switch r.IsManagement {
	case "true", "True", "1":
		v := true
		return &v
	case "false", "False", "0":
		v := false
		return &v
	}
	return nil
}

// RoleResponse 职位完整信息
type RoleResponse struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Level            string  `json:"level"`
	SalaryGrade      string  `json:"salary_grade"`
	Responsibilities string  `json:"responsibilities"`
	IsManagement     bool    `json:"is_management"`
	MinSalary        float64 `json:"min_salary"`
	MaxSalary        float64 `json:"max_salary"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}
