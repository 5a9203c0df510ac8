package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	pkgerrors "hrms/pkg/errors"
)

// PostgreSQL 错误码
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
	pgNumericOutOfRange   = "22003"
)

// constraintFields 约束名 → 请求字段名
var constraintFields = map[string]string{
	"uq_departments_code":           "code",
	"fk_departments_head":           "head_id",
	"uq_employees_emp_id":           "emp_id",
	"uq_employees_email":            "email",
	"ck_employees_status":           "status",
	"ck_employees_salary":           "salary",
	"employees_department_id_fkey":  "department",
	"employees_role_id_fkey":        "role",
	"employees_manager_id_fkey":     "manager",
	"uq_attendances_employee_date":  "date",
	"ck_attendances_status":         "status",
	"attendances_employee_id_fkey":  "employee_id",
	"ck_performances_rating":        "rating",
	"performances_employee_id_fkey": "employee_id",
}

// translateError 将数据库约束冲突转换为字段级校验错误，其它错误原样返回
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	field := constraintFields[pgErr.ConstraintName]
	switch pgErr.Code {
	case pgUniqueViolation:
		return pkgerrors.NewFieldError(field, "该值已存在")
	case pgForeignKeyViolation:
		return pkgerrors.NewFieldError(field, "引用的记录不存在")
	case pgCheckViolation:
		return pkgerrors.NewFieldError(field, "取值不合法")
	case pgNotNullViolation:
		return pkgerrors.NewFieldError(pgErr.ColumnName, "该字段不能为空")
	case pgNumericOutOfRange:
		return pkgerrors.NewFieldError(pgErr.ColumnName, "数值超出范围")
	}
	return err
}
