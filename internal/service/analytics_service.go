package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"hrms/internal/dto"
	"hrms/internal/repository"
	"hrms/pkg/redis"
)

const analyticsCacheKey = "analytics:summary"

// SummaryCache 统计汇总缓存，由 pkg/redis.Client 实现
type SummaryCache interface {
	GetJSON(ctx context.Context, key string, dst any) error
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// summaryInvalidator 写操作成功后清除统计缓存
type summaryInvalidator struct {
	cache  SummaryCache
	logger *zap.Logger
}

func newSummaryInvalidator(cache SummaryCache, logger *zap.Logger) *summaryInvalidator {
	return &summaryInvalidator{cache: cache, logger: logger}
}

func (i *summaryInvalidator) invalidate(ctx context.Context) {
	if i == nil || i.cache == nil {
		return
	}
	// 清除失败只记录日志，缓存会在 TTL 后自然过期
	if err := i.cache.Delete(ctx, analyticsCacheKey); err != nil {
		i.logger.Warn("清除统计缓存失败", zap.Error(err))
	}
}

// AnalyticsService 统计汇总业务接口
type AnalyticsService interface {
	Summary(ctx context.Context) (*dto.AnalyticsSummary, error)
}

type analyticsService struct {
	repo   *repository.Repository
	cache  SummaryCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewAnalyticsService 创建 AnalyticsService 实例，cache 为 nil 或 ttl 为 0 时不缓存
func NewAnalyticsService(repo *repository.Repository, cache SummaryCache, ttl time.Duration, logger *zap.Logger) AnalyticsService {
	return &analyticsService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

func (s *analyticsService) cacheEnabled() bool {
	return s.cache != nil && s.ttl > 0
}

func (s *analyticsService) Summary(ctx context.Context) (*dto.AnalyticsSummary, error) {
	if s.cacheEnabled() {
		var cached dto.AnalyticsSummary
		err := s.cache.GetJSON(ctx, analyticsCacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.logger.Warn("读取统计缓存失败，直接查询数据库", zap.Error(err))
		}
	}

	summary, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled() {
		if err := s.cache.SetJSON(ctx, analyticsCacheKey, summary, s.ttl); err != nil {
			s.logger.Warn("写入统计缓存失败", zap.Error(err))
		}
	}
	return summary, nil
}

func (s *analyticsService) compute(ctx context.Context) (*dto.AnalyticsSummary, error) {
	stats, err := s.repo.Analytics.EmployeeStats(ctx)
	if err != nil {
		s.logger.Error("统计员工数据失败", zap.Error(err))
		return nil, err
	}

	byDept, err := s.repo.Analytics.CountByDepartment(ctx)
	if err != nil {
		s.logger.Error("统计部门人数失败", zap.Error(err))
		return nil, err
	}

	ratings, err := s.repo.Analytics.RatingDistribution(ctx)
	if err != nil {
		s.logger.Error("统计评分分布失败", zap.Error(err))
		return nil, err
	}

	summary := &dto.AnalyticsSummary{
		TotalEmployees:          stats.Total,
		AvgSalary:               stats.AvgSalary,
		EmployeesByDepartment:   make([]dto.DepartmentCount, 0, len(byDept)),
		PerformanceDistribution: make(dto.RatingDistribution, 0, len(ratings)),
	}
	for _, c := range byDept {
		summary.EmployeesByDepartment = append(summary.EmployeesByDepartment, dto.DepartmentCount{Name: c.Name, Count: c.Count})
	}
	for _, r := range ratings {
		summary.PerformanceDistribution = append(summary.PerformanceDistribution, dto.RatingCount{Rating: r.Rating, Count: r.Count})
	}
	return summary, nil
}
