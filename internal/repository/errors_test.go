package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	pkgerrors "hrms/pkg/errors"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantField string
	}{
		{"工号重复", &pgconn.PgError{Code: "23505", ConstraintName: "uq_employees_emp_id"}, "emp_id"},
		{"邮箱重复", &pgconn.PgError{Code: "23505", ConstraintName: "uq_employees_email"}, "email"},
		{"考勤重复", &pgconn.PgError{Code: "23505", ConstraintName: "uq_attendances_employee_date"}, "date"},
		{"评分越界", &pgconn.PgError{Code: "23514", ConstraintName: "ck_performances_rating"}, "rating"},
		{"薪资为负", &pgconn.PgError{Code: "23514", ConstraintName: "ck_employees_salary"}, "salary"},
		{"数值越界", &pgconn.PgError{Code: "22003", ColumnName: "score"}, "score"},
		{"上级不存在", fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23503", ConstraintName: "employees_manager_id_fkey"}), "manager"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translateError(tt.err)
			if !errors.Is(err, pkgerrors.ErrValidation) {
				t.Fatalf("期望校验错误，got %v", err)
			}
			fe, _ := pkgerrors.AsFieldError(err)
			if fe.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", fe.Field, tt.wantField)
			}
		})
	}
}

func TestTranslateError_PassThrough(t *testing.T) {
	if translateError(nil) != nil {
		t.Error("nil 应原样返回")
	}
	plain := errors.New("connection refused")
	if got := translateError(plain); got != plain {
		t.Errorf("非数据库约束错误应原样返回，got %v", got)
	}
	deadlock := &pgconn.PgError{Code: "40P01"}
	if got := translateError(deadlock); errors.Is(got, pkgerrors.ErrValidation) {
		t.Error("死锁不应被识别为校验错误")
	}
}
