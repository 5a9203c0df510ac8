package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"hrms/internal/dto"
	"hrms/internal/model"
	"hrms/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportUnsupportedFormat = errors.New("不支持的导出格式")
	ErrExportGenerateFail      = errors.New("生成导出文件失败")
)

// 导出格式
const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
)

// ExportHeader 导出表头，列顺序固定
var ExportHeader = []string{
	"emp_id", "first_name", "last_name", "email",
	"department", "role", "manager", "status", "salary", "hire_date",
}

const exportSheet = "employees"

// ExportService 导出业务接口
//
// 设计说明：
//   - 数据通过数据库游标逐行读取并立即写出，不在内存中保留完整结果集
//   - 过滤、搜索、排序参数与员工列表一致
//   - 未设置的部门 / 职位 / 上级输出为空字符串
type ExportService interface {
	// ExportEmployees 按 format 将员工写入 w，返回写出的行数（不含表头）
	ExportEmployees(ctx context.Context, req *dto.EmployeeListRequest, format string, w io.Writer) (int, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportEmployees(ctx context.Context, req *dto.EmployeeListRequest, format string, w io.Writer) (int, error) {
	filter := employeeFilter(req)
	switch format {
	case "", ExportFormatCSV:
		return s.writeCSV(ctx, filter, w)
	case ExportFormatXLSX:
		return s.writeXLSX(ctx, filter, w)
	default:
		return 0, ErrExportUnsupportedFormat
	}
}

// ═══════════════════════════════════════════════════════════
// CSV
// ═══════════════════════════════════════════════════════════

// csvFlushEvery 每写出多少行刷新一次缓冲
const csvFlushEvery = 100

func (s *exportService) writeCSV(ctx context.Context, filter repository.EmployeeFilter, w io.Writer) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return 0, err
	}

	n := 0
	err := s.repo.Employee.Iterate(ctx, filter, func(row *repository.EmployeeExportRow) error {
		if err := cw.Write(exportRecord(row)); err != nil {
			return err
		}
		n++
		if n%csvFlushEvery == 0 {
			cw.Flush()
			return cw.Error()
		}
		return nil
	})
	if err != nil {
		s.logger.Error("导出 CSV 失败", zap.Int("rows", n), zap.Error(err))
		return n, err
	}

	cw.Flush()
	return n, cw.Error()
}

// ═══════════════════════════════════════════════════════════
// XLSX
// ═══════════════════════════════════════════════════════════

func (s *exportService) writeXLSX(ctx context.Context, filter repository.EmployeeFilter, w io.Writer) (int, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return 0, err
	}
	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		s.logger.Error("创建 Excel 流写入器失败", zap.Error(err))
		return 0, ErrExportGenerateFail
	}

	header := make([]interface{}, len(ExportHeader))
	for i, h := range ExportHeader {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return 0, err
	}

	n := 0
	err = s.repo.Employee.Iterate(ctx, filter, func(row *repository.EmployeeExportRow) error {
		n++
		cell, err := excelize.CoordinatesToCellName(1, n+1)
		if err != nil {
			return err
		}
		return sw.SetRow(cell, []interface{}{
			row.EmpID, row.FirstName, row.LastName, row.Email,
			row.DepartmentName, row.RoleTitle, row.ManagerEmpID,
			row.Status, row.Salary, row.HireDate.Format(model.DateLayout),
		})
	})
	if err != nil {
		s.logger.Error("导出 Excel 失败", zap.Int("rows", n), zap.Error(err))
		return n, err
	}

	if err := sw.Flush(); err != nil {
		s.logger.Error("刷新 Excel 流失败", zap.Error(err))
		return n, ErrExportGenerateFail
	}
	if _, err := f.WriteTo(w); err != nil {
		return n, fmt.Errorf("写出 Excel 失败: %w", err)
	}
	return n, nil
}

// exportRecord 薪资保留两位小数，入职日期为 YYYY-MM-DD
func exportRecord(row *repository.EmployeeExportRow) []string {
	return []string{
		row.EmpID,
		row.FirstName,
		row.LastName,
		row.Email,
		row.DepartmentName,
		row.RoleTitle,
		row.ManagerEmpID,
		row.Status,
		strconv.FormatFloat(row.Salary, 'f', 2, 64),
		row.HireDate.Format(model.DateLayout),
	}
}
