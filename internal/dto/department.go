package dto

// ── 部门模块 DTO ──

// DepartmentRequest 创建 / 全量更新部门请求
type DepartmentRequest struct {
	Name         string  `json:"name"          binding:"required,max=100"`
	Code         string  `json:"code"          binding:"required,max=20"`
	Location     string  `json:"location"      binding:"omitempty,max=100"`
	Description  string  `json:"description"`
	ContactEmail string  `json:"contact_email" binding:"omitempty,email,max=254"`
	Phone        string  `json:"phone"         binding:"omitempty,max=20"`
	HeadID       *string `json:"head_id"       binding:"omitempty,uuid"`
}

// PatchDepartmentRequest 部分更新部门请求
type PatchDepartmentRequest struct {
	Name         *string          `json:"name"          binding:"omitempty,min=1,max=100"`
	Code         *string          `json:"code"          binding:"omitempty,min=1,max=20"`
	Location     *string          `json:"location"      binding:"omitempty,max=100"`
	Description  *string          `json:"description"`
	ContactEmail *string          `json:"contact_email" binding:"omitempty,email,max=254"`
	Phone        *string          `json:"phone"         binding:"omitempty,max=20"`
	HeadID       Optional[string] `json:"head_id"`
}

// DepartmentListRequest 部门列表查询参数
type DepartmentListRequest struct {
	QueryParams
	Code string `form:"code" binding:"omitempty,max=20"`
}

// DepartmentResponse 部门完整信息
type DepartmentResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	Location     string  `json:"location"`
	Description  string  `json:"description"`
	ContactEmail string  `json:"contact_email"`
	Phone        string  `json:"phone"`
	HeadID       *string `json:"head_id"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}
