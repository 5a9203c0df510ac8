package dto

// ── 员工模块 DTO ──
// 员工有三种投影：列表（关联显示为标签）、详情（关联完整展开）、写入（关联以可读键引用）

// EmployeeRequest 创建 / 全量更新员工请求
// department 按名称、role 按职位名称、manager 按工号引用，null 或缺省表示不设置
type EmployeeRequest struct {
	EmpID      string  `json:"emp_id"     binding:"required,max=20"`
	FirstName  string  `json:"first_name" binding:"required,max=60"`
	LastName   string  `json:"last_name"  binding:"required,max=60"`
	Email      string  `json:"email"      binding:"required,email,max=254"`
	Phone      string  `json:"phone"      binding:"omitempty,max=30"`
	DOB        *string `json:"dob"        binding:"omitempty,datetime=2006-01-02"`
	HireDate   string  `json:"hire_date"  binding:"required,datetime=2006-01-02"`
	Department *string `json:"department"`
	Role       *string `json:"role"`
	Manager    *string `json:"manager"`
	Status     string  `json:"status"     binding:"omitempty,oneof=active on_leave terminated"`
	Salary     float64 `json:"salary"     binding:"gte=0,lt=10000000000"`
	Address    string  `json:"address"    binding:"omitempty,max=255"`
	Notes      string  `json:"notes"`
}

// PatchEmployeeRequest 部分更新员工请求，关联字段显式 null 表示清空
type PatchEmployeeRequest struct {
	EmpID      *string          `json:"emp_id"     binding:"omitempty,min=1,max=20"`
	FirstName  *string          `json:"first_name" binding:"omitempty,min=1,max=60"`
	LastName   *string          `json:"last_name"  binding:"omitempty,min=1,max=60"`
	Email      *string          `json:"email"      binding:"omitempty,email,max=254"`
	Phone      *string          `json:"phone"      binding:"omitempty,max=30"`
	DOB        Optional[string] `json:"dob"`
	HireDate   *string          `json:"hire_date"  binding:"omitempty,datetime=2006-01-02"`
	Department Optional[string] `json:"department"`
	Role       Optional[string] `json:"role"`
	Manager    Optional[string] `json:"manager"`
	Status     *string          `json:"status"     binding:"omitempty,oneof=active on_leave terminated"`
	Salary     *float64         `json:"salary"     binding:"omitempty,gte=0,lt=10000000000"`
	Address    *string          `json:"address"    binding:"omitempty,max=255"`
	Notes      *string          `json:"notes"`
}

// EmployeeListRequest 员工列表 / 导出查询参数
type EmployeeListRequest struct {
	QueryParams
	DepartmentCode string `form:"department__code" binding:"omitempty,max=20"`
	RoleTitle      string `form:"role__title"      binding:"omitempty,max=100"`
	Status         string `form:"status"           binding:"omitempty,oneof=active on_leave terminated"`
}

// ExportRequest 导出参数
type ExportRequest struct {
	EmployeeListRequest
	Format string `form:"format" binding:"omitempty,oneof=csv xlsx"`
}

// EmployeeListItem 列表投影
type EmployeeListItem struct {
	ID         string  `json:"id"`
	EmpID      string  `json:"emp_id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Department *string `json:"department"`
	Role       *string `json:"role"`
	Manager    *string `json:"manager"`
	Status     string  `json:"status"`
	Salary     float64 `json:"salary"`
	HireDate   string  `json:"hire_date"`
}

// EmployeeDetail 详情投影
type EmployeeDetail struct {
	ID           string                `json:"id"`
	EmpID        string                `json:"emp_id"`
	FirstName    string                `json:"first_name"`
	LastName     string                `json:"last_name"`
	Email        string                `json:"email"`
	Phone        string                `json:"phone"`
	DOB          *string               `json:"dob"`
	HireDate     string                `json:"hire_date"`
	Department   *DepartmentResponse   `json:"department"`
	Role         *RoleResponse         `json:"role"`
	Manager      *EmployeeListItem     `json:"manager"`
	Status       string                `json:"status"`
	Salary       float64               `json:"salary"`
	Address      string                `json:"address"`
	Notes        string                `json:"notes"`
	Attendances  []AttendanceResponse  `json:"attendances"`
	Performances []PerformanceResponse `json:"performances"`
	CreatedAt    string                `json:"created_at"`
	UpdatedAt    string                `json:"updated_at"`
}

// ManagementChainResponse 汇报链：从直属上级开始逐级向上
type ManagementChainResponse struct {
	Employee  EmployeeListItem   `json:"employee"`
	Chain     []EmployeeListItem `json:"chain"`
	Cycle     bool               `json:"cycle"`     // 遇到已访问的员工而停止
	Truncated bool               `json:"truncated"` // 达到最大深度而停止
}
