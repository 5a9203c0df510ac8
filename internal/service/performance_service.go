package service

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"hrms/internal/dto"
	"hrms/internal/model"
	"hrms/internal/repository"
	pkgerrors "hrms/pkg/errors"
)

// ── 绩效模块业务错误 ──

var ErrPerformanceNotFound = errors.New("绩效记录不存在")

// PerformanceService 绩效业务接口
type PerformanceService interface {
	List(ctx context.Context, req *dto.PerformanceListRequest) ([]dto.PerformanceResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PerformanceResponse, error)
	Create(ctx context.Context, req *dto.PerformanceRequest) (*dto.PerformanceResponse, error)
	Replace(ctx context.Context, id string, req *dto.PerformanceRequest) (*dto.PerformanceResponse, error)
	Patch(ctx context.Context, id string, req *dto.PatchPerformanceRequest) (*dto.PerformanceResponse, error)
	Delete(ctx context.Context, id string) error
}

type performanceService struct {
	repo   *repository.Repository
	inv    *summaryInvalidator
	logger *zap.Logger
}

// NewPerformanceService 创建 PerformanceService 实例
func NewPerformanceService(repo *repository.Repository, inv *summaryInvalidator, logger *zap.Logger) PerformanceService {
	return &performanceService{repo: repo, inv: inv, logger: logger}
}

func (s *performanceService) List(ctx context.Context, req *dto.PerformanceListRequest) ([]dto.PerformanceResponse, error) {
	filter := repository.PerformanceFilter{
		EmployeeEmpID: req.EmployeeEmpID,
		Search:        req.Search,
		Ordering:      req.Ordering,
	}
	if req.Rating != "" {
		rating, err := strconv.Atoi(req.Rating)
		if err != nil {
			return nil, pkgerrors.Fieldf("rating", "评分必须为整数: %q", req.Rating)
		}
		if rating < model.MinRating || rating > model.MaxRating {
			return nil, pkgerrors.Fieldf("rating", "评分必须在 %d-%d 之间", model.MinRating, model.MaxRating)
		}
		filter.Rating = &rating
	}
	if req.ReviewDate != "" {
		d, err := parseDate("review_date", req.ReviewDate)
		if err != nil {
			return nil, err
		}
		filter.ReviewDate = &d
	}

	perfs, err := s.repo.Performance.List(ctx, filter)
	if err != nil {
		s.logger.Error("列出绩效失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PerformanceResponse, 0, len(perfs))
	for i := range perfs {
		result = append(result, toPerformanceResponse(&perfs[i]))
	}
	return result, nil
}

func (s *performanceService) GetByID(ctx context.Context, id string) (*dto.PerformanceResponse, error) {
	perf, err := s.get(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	resp := toPerformanceResponse(perf)
	return &resp, nil
}

func (s *performanceService) get(ctx context.Context, repo *repository.Repository, id string) (*model.Performance, error) {
	perf, err := repo.Performance.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPerformanceNotFound
		}
		s.logger.Error("查询绩效失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return perf, nil
}

func (s *performanceService) Create(ctx context.Context, req *dto.PerformanceRequest) (*dto.PerformanceResponse, error) {
	perf := &model.Performance{}
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := applyPerformanceRequest(perf, req); err != nil {
			return err
		}
		if err := validatePerformance(ctx, tx, perf); err != nil {
			return err
		}
		return tx.Performance.Create(ctx, perf)
	})
	if err != nil {
		return nil, s.wrapWriteError("创建绩效失败", err)
	}

	s.inv.invalidate(ctx)
	resp := toPerformanceResponse(perf)
	return &resp, nil
}

func (s *performanceService) Replace(ctx context.Context, id string, req *dto.PerformanceRequest) (*dto.PerformanceResponse, error) {
	return s.update(ctx, id, func(perf *model.Performance) error {
		return applyPerformanceRequest(perf, req)
	})
}

func (s *performanceService) Patch(ctx context.Context, id string, req *dto.PatchPerformanceRequest) (*dto.PerformanceResponse, error) {
	return s.update(ctx, id, func(perf *model.Performance) error {
		if req.EmployeeID != nil {
			perf.EmployeeID = *req.EmployeeID
		}
		if req.ReviewDate != nil {
			d, err := parseDate("review_date", *req.ReviewDate)
			if err != nil {
				return err
			}
			perf.ReviewDate = d
		}
		if req.Reviewer != nil {
			perf.Reviewer = *req.Reviewer
		}
		if req.Rating != nil {
			perf.Rating = *req.Rating
		}
		if req.GoalsSet != nil {
			perf.GoalsSet = *req.GoalsSet
		}
		if req.GoalsMet != nil {
			perf.GoalsMet = *req.GoalsMet
		}
		if req.Score != nil {
			perf.Score = *req.Score
		}
		if req.Comments != nil {
			perf.Comments = *req.Comments
		}
		return nil
	})
}

func (s *performanceService) update(ctx context.Context, id string, mutate func(perf *model.Performance) error) (*dto.PerformanceResponse, error) {
	var perf *model.Performance
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		if perf, err = s.get(ctx, tx, id); err != nil {
			return err
		}
		if err := mutate(perf); err != nil {
			return err
		}
		perf.Employee = nil
		if err := validatePerformance(ctx, tx, perf); err != nil {
			return err
		}
		return tx.Performance.Update(ctx, perf)
	})
	if err != nil {
		return nil, s.wrapWriteError("更新绩效失败", err)
	}

	s.inv.invalidate(ctx)
	resp := toPerformanceResponse(perf)
	return &resp, nil
}

func (s *performanceService) Delete(ctx context.Context, id string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := s.get(ctx, tx, id); err != nil {
			return err
		}
		return tx.Performance.Delete(ctx, id)
	})
	if err != nil {
		return s.wrapWriteError("删除绩效失败", err)
	}

	s.inv.invalidate(ctx)
	return nil
}

// ── 内部方法 ──

func applyPerformanceRequest(perf *model.Performance, req *dto.PerformanceRequest) error {
	reviewDate, err := parseDate("review_date", req.ReviewDate)
	if err != nil {
		return err
	}
	perf.EmployeeID = req.EmployeeID
	perf.ReviewDate = reviewDate
	perf.Reviewer = req.Reviewer
	perf.Rating = req.Rating
	perf.GoalsSet = req.GoalsSet
	perf.GoalsMet = req.GoalsMet
	perf.Score = req.Score
	perf.Comments = req.Comments
	return nil
}

func validatePerformance(ctx context.Context, repo *repository.Repository, perf *model.Performance) error {
	if perf.Rating < model.MinRating || perf.Rating > model.MaxRating {
		return pkgerrors.Fieldf("rating", "评分必须在 %d-%d 之间", model.MinRating, model.MaxRating)
	}
	if perf.Score < -model.MaxNumeric52 || perf.Score > model.MaxNumeric52 {
		return pkgerrors.Fieldf("score", "得分必须在 ±%.2f 之间", model.MaxNumeric52)
	}
	return requireEmployee(ctx, repo, perf.EmployeeID)
}

func (s *performanceService) wrapWriteError(msg string, err error) error {
	if errors.Is(err, pkgerrors.ErrValidation) || errors.Is(err, ErrPerformanceNotFound) {
		return err
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}
