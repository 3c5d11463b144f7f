package service

import (
	"errors"
	"time"

	"omr_backend/internal/model"
	"omr_backend/internal/repository"
	"omr_backend/internal/util"

	"gorm.io/gorm"
)

type AttemptService struct {
	AttemptRepo *repository.AttemptRepository
	ChapterRepo *repository.ChapterRepository
	Analytics   *AnalyticsService
	DB          *gorm.DB
}

func NewAttemptService(
	attemptRepo *repository.AttemptRepository,
	chapterRepo *repository.ChapterRepository,
	analytics *AnalyticsService,
	db *gorm.DB,
) *AttemptService {
	return &AttemptService{
		AttemptRepo: attemptRepo,
		ChapterRepo: chapterRepo,
		Analytics:   analytics,
		DB:          db,
	}
}

// CalculateScore 逐题比对，大小写敏感的精确相等才计分。
// 两个序列长度不一致时只比到较短的一方；空串视为未作答，永不计分。
func CalculateScore(correctAnswers, submittedAnswers []string) int {
	n := len(correctAnswers)
	if len(submittedAnswers) < n {
		n = len(submittedAnswers)
	}
	score := 0
	for i := 0; i < n; i++ {
		if submittedAnswers[i] != "" && submittedAnswers[i] == correctAnswers[i] {
			score++
		}
	}
	return score
}

// GradeFor 百分比成绩对应的等级
func GradeFor(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	case percentage >= 50:
		return "E"
	default:
		return "F"
	}
}

type SubmitAttemptRequest struct {
	ChapterID        uint       `json:"chapterId" binding:"required"`
	StudentName      string     `json:"studentName"`
	SubmittedAnswers []string   `json:"submittedAnswers"`
	TimeTaken        int        `json:"timeTaken"`
	StartTime        *time.Time `json:"startTime,omitempty"`
	EndTime          *time.Time `json:"endTime,omitempty"`
}

type SubmitAttemptResult struct {
	Attempt        *model.Attempt `json:"attempt"`
	Score          int            `json:"score"`
	Total          int            `json:"total"`
	Percentage     float64        `json:"percentage"`
	Grade          string         `json:"grade"`
	Passed         bool           `json:"passed"`
	CorrectAnswers []string       `json:"correctAnswers"`
}

// SubmitAttempt 给一次提交判分并落库。
// attempt_number 的取号和插入放在同一事务里并对既有记录加锁；
// (chapter_id, student_name, attempt_number) 上另有唯一索引兜底，
// 撞号时在新事务里重新取号重试，保证不依赖数据库隔离级别。
func (s *AttemptService) SubmitAttempt(req SubmitAttemptRequest) (*SubmitAttemptResult, error) {
	if req.StudentName == "" {
		return nil, util.ErrStudentNameRequired
	}
	for _, ans := range req.SubmittedAnswers {
		if ans == "" {
			return nil, util.ErrIncompleteSubmission
		}
	}

	chapter, err := s.ChapterRepo.FindByID(req.ChapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChapterNotFound
		}
		return nil, err
	}

	if len(req.SubmittedAnswers) != chapter.NumQuestions {
		return nil, util.ErrAnswerCountMismatch
	}

	score := CalculateScore(chapter.CorrectAnswers, req.SubmittedAnswers)

	attempt := &model.Attempt{
		ChapterID:        chapter.ID,
		StudentName:      req.StudentName,
		SubmittedAnswers: model.StringList(req.SubmittedAnswers),
		Score:            float64(score),
		TotalQuestions:   chapter.NumQuestions,
		TimeTaken:        req.TimeTaken,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
	}

	for retries := 0; ; retries++ {
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			count, err := s.AttemptRepo.CountByChapterAndStudent(tx, chapter.ID, req.StudentName)
			if err != nil {
				return err
			}
			attempt.AttemptNumber = int(count) + 1
			return s.AttemptRepo.Create(tx, attempt)
		})
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) || retries >= 2 {
			return nil, err
		}
		attempt.ID = 0
	}

	if s.Analytics != nil {
		s.Analytics.InvalidateCache()
	}

	percentage := attempt.Percentage()
	return &SubmitAttemptResult{
		Attempt:        attempt,
		Score:          score,
		Total:          chapter.NumQuestions,
		Percentage:     percentage,
		Grade:          GradeFor(percentage),
		Passed:         percentage >= 50,
		CorrectAnswers: chapter.CorrectAnswers,
	}, nil
}

// GetAttemptCount 用于作答前展示“这将是第 N 次作答”
func (s *AttemptService) GetAttemptCount(chapterID uint, studentName string) (int64, error) {
	return s.AttemptRepo.CountByChapterAndStudent(nil, chapterID, studentName)
}

func (s *AttemptService) GetStudentAttempts(chapterName, studentName string) ([]model.AttemptWithChapter, error) {
	return s.AttemptRepo.FindByChapterName(chapterName, studentName)
}

func (s *AttemptService) GetAllAttempts(filter repository.AttemptFilter) ([]model.AttemptWithChapter, error) {
	return s.AttemptRepo.FindAll(filter)
}

func (s *AttemptService) GetAttempt(id uint) (*model.Attempt, error) {
	attempt, err := s.AttemptRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	return attempt, nil
}
