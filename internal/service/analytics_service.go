package service

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"time"

	"omr_backend/internal/model"
	"omr_backend/internal/repository"
	"omr_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const dashboardCacheKey = "omr:analytics:dashboard"

type AnalyticsService struct {
	AttemptRepo *repository.AttemptRepository
	ChapterRepo *repository.ChapterRepository
	Redis       *redis.Client
	CacheTTL    time.Duration
}

func NewAnalyticsService(
	attemptRepo *repository.AttemptRepository,
	chapterRepo *repository.ChapterRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
) *AnalyticsService {
	return &AnalyticsService{
		AttemptRepo: attemptRepo,
		ChapterRepo: chapterRepo,
		Redis:       rdb,
		CacheTTL:    cacheTTL,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// OverallStatistics 全局统计。AvgPercentage 是各次作答百分比的算术平均，
// 不是 sum(score)/sum(total)，题量不同的章节混在一起时两者会分叉。
func (s *AnalyticsService) OverallStatistics(filter repository.AttemptFilter) (*model.OverallStatistics, error) {
	totalChapters, err := s.ChapterRepo.Count(filter.SubjectID)
	if err != nil {
		return nil, err
	}

	attempts, err := s.AttemptRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}

	stats := &model.OverallStatistics{TotalChapters: totalChapters}
	if len(attempts) == 0 {
		return stats, nil
	}

	students := make(map[string]struct{})
	var pctSum, bestPct, bestScore float64
	for _, a := range attempts {
		students[a.StudentName] = struct{}{}
		pct := a.Percentage()
		pctSum += pct
		if pct > bestPct {
			bestPct = pct
		}
		if a.Score > bestScore {
			bestScore = a.Score
		}
	}

	stats.TotalAttempts = int64(len(attempts))
	stats.UniqueStudents = int64(len(students))
	stats.AvgPercentage = pctSum / float64(len(attempts))
	stats.BestPercentage = bestPct
	stats.BestScore = bestScore
	return stats, nil
}

// ChapterStatistics 按章节汇总。零作答的章节也占一行，指标全零。
func (s *AnalyticsService) ChapterStatistics(filter repository.AttemptFilter) ([]model.ChapterStatistics, error) {
	chapters, err := s.ChapterRepo.List(filter.SubjectID)
	if err != nil {
		return nil, err
	}
	attempts, err := s.AttemptRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}

	type agg struct {
		attempts int64
		scoreSum float64
		students map[string]struct{}
	}
	byChapter := make(map[string]*agg)
	for _, a := range attempts {
		entry, ok := byChapter[a.ChapterName]
		if !ok {
			entry = &agg{students: make(map[string]struct{})}
			byChapter[a.ChapterName] = entry
		}
		entry.attempts++
		entry.scoreSum += a.Score
		entry.students[a.StudentName] = struct{}{}
	}

	var result []model.ChapterStatistics
	for _, c := range chapters {
		if filter.ChapterID > 0 && c.ID != filter.ChapterID {
			continue
		}
		row := model.ChapterStatistics{
			ChapterName:    c.ChapterName,
			TotalQuestions: c.NumQuestions,
		}
		if entry, ok := byChapter[c.ChapterName]; ok {
			row.TotalAttempts = entry.attempts
			row.AvgScore = entry.scoreSum / float64(entry.attempts)
			row.UniqueStudents = int64(len(entry.students))
			if c.NumQuestions > 0 {
				row.AvgPercentage = round2(row.AvgScore / float64(c.NumQuestions) * 100)
			}
		}
		result = append(result, row)
	}

	// 作答多的章节排前面，同数保持章节列表原序
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalAttempts > result[j].TotalAttempts
	})
	return result, nil
}

// TopPerformers 学生排行榜，覆盖每个学生的全部作答。
// Percentage = sum(score)/sum(total)*100，总分比值口径，与 OverallStatistics
// 的平均百分比刻意不同。排序：百分比降序，相同时按学生名升序。
func (s *AnalyticsService) TopPerformers(limit int) ([]model.TopPerformer, error) {
	if limit <= 0 {
		limit = 10
	}

	attempts, err := s.AttemptRepo.FindAll(repository.AttemptFilter{})
	if err != nil {
		return nil, err
	}

	byStudent := make(map[string]*model.TopPerformer)
	for _, a := range attempts {
		entry, ok := byStudent[a.StudentName]
		if !ok {
			entry = &model.TopPerformer{StudentName: a.StudentName}
			byStudent[a.StudentName] = entry
		}
		entry.TotalAttempts++
		entry.TotalScore += a.Score
		entry.TotalQuestions += int64(a.TotalQuestions)
	}

	performers := make([]model.TopPerformer, 0, len(byStudent))
	for _, entry := range byStudent {
		if entry.TotalQuestions > 0 {
			entry.Percentage = round2(entry.TotalScore / float64(entry.TotalQuestions) * 100)
		}
		performers = append(performers, *entry)
	}

	sort.Slice(performers, func(i, j int) bool {
		if performers[i].Percentage != performers[j].Percentage {
			return performers[i].Percentage > performers[j].Percentage
		}
		return performers[i].StudentName < performers[j].StudentName
	})

	if len(performers) > limit {
		performers = performers[:limit]
	}
	return performers, nil
}

// GetDashboard 聚合分析响应。无过滤条件时走 redis 缓存，写操作会使其失效。
func (s *AnalyticsService) GetDashboard(filter repository.AttemptFilter) (*model.AnalyticsDashboard, error) {
	cacheable := s.Redis != nil && filter == (repository.AttemptFilter{})

	if cacheable {
		cached, err := s.Redis.Get(context.Background(), dashboardCacheKey).Bytes()
		if err == nil {
			var dashboard model.AnalyticsDashboard
			if json.Unmarshal(cached, &dashboard) == nil {
				return &dashboard, nil
			}
		}
	}

	overall, err := s.OverallStatistics(filter)
	if err != nil {
		return nil, err
	}
	chapterStats, err := s.ChapterStatistics(filter)
	if err != nil {
		return nil, err
	}
	topPerformers, err := s.TopPerformers(10)
	if err != nil {
		return nil, err
	}
	attempts, err := s.AttemptRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}

	dashboard := &model.AnalyticsDashboard{
		Overall:       *overall,
		ChapterStats:  chapterStats,
		TopPerformers: topPerformers,
		AllAttempts:   attempts,
	}

	if cacheable {
		if data, err := json.Marshal(dashboard); err == nil {
			if err := s.Redis.Set(context.Background(), dashboardCacheKey, data, s.CacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache analytics dashboard", zap.Error(err))
			}
		}
	}
	return dashboard, nil
}

func (s *AnalyticsService) InvalidateCache() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), dashboardCacheKey).Err(); err != nil {
		logger.Log.Warn("failed to invalidate analytics cache", zap.Error(err))
	}
}
