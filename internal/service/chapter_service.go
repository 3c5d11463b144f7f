package service

import (
	"errors"

	"omr_backend/internal/model"
	"omr_backend/internal/repository"
	"omr_backend/internal/util"

	"gorm.io/gorm"
)

type ChapterService struct {
	ChapterRepo *repository.ChapterRepository
	SubjectRepo *repository.SubjectRepository
	Analytics   *AnalyticsService
}

func NewChapterService(
	chapterRepo *repository.ChapterRepository,
	subjectRepo *repository.SubjectRepository,
	analytics *AnalyticsService,
) *ChapterService {
	return &ChapterService{
		ChapterRepo: chapterRepo,
		SubjectRepo: subjectRepo,
		Analytics:   analytics,
	}
}

type CreateChapterRequest struct {
	ChapterName    string   `json:"chapterName" binding:"required"`
	SubjectID      *uint    `json:"subjectId"`
	NumQuestions   int      `json:"numQuestions" binding:"required"`
	NumOptions     int      `json:"numOptions" binding:"required"`
	CorrectAnswers []string `json:"correctAnswers" binding:"required"`
}

type UpdateChapterRequest struct {
	ChapterName    string   `json:"chapterName"`
	CorrectAnswers []string `json:"correctAnswers"`
}

func validateAnswers(answers []string, numQuestions, numOptions int) error {
	if len(answers) != numQuestions {
		return util.ErrAnswerCountMismatch
	}
	for _, ans := range answers {
		if !util.ValidateAnswer(ans, numOptions) {
			return util.ErrInvalidOptionCount
		}
	}
	return nil
}

func (s *ChapterService) CreateChapter(req CreateChapterRequest) (*model.Chapter, error) {
	if req.ChapterName == "" {
		return nil, errors.New("chapter name is required")
	}
	if req.NumQuestions <= 0 {
		return nil, errors.New("number of questions must be positive")
	}
	if _, err := util.OptionLetters(req.NumOptions); err != nil {
		return nil, err
	}
	if err := validateAnswers(req.CorrectAnswers, req.NumQuestions, req.NumOptions); err != nil {
		return nil, err
	}
	if req.SubjectID != nil {
		if _, err := s.SubjectRepo.FindByID(*req.SubjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrSubjectNotFound
			}
			return nil, err
		}
	}

	_, err := s.ChapterRepo.FindByName(req.ChapterName)
	if err == nil {
		return nil, util.ErrChapterExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	chapter := &model.Chapter{
		SubjectID:      req.SubjectID,
		ChapterName:    req.ChapterName,
		NumQuestions:   req.NumQuestions,
		NumOptions:     req.NumOptions,
		CorrectAnswers: model.StringList(req.CorrectAnswers),
	}
	if err := s.ChapterRepo.Create(chapter); err != nil {
		// 并发创建同名章节时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrChapterExists
		}
		return nil, err
	}

	if s.Analytics != nil {
		s.Analytics.InvalidateCache()
	}
	return chapter, nil
}

func (s *ChapterService) GetChapter(id uint) (*model.Chapter, error) {
	chapter, err := s.ChapterRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChapterNotFound
		}
		return nil, err
	}
	return chapter, nil
}

func (s *ChapterService) GetChapterByName(name string) (*model.Chapter, error) {
	chapter, err := s.ChapterRepo.FindByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChapterNotFound
		}
		return nil, err
	}
	return chapter, nil
}

func (s *ChapterService) ListChapters(subjectID uint) ([]model.Chapter, error) {
	return s.ChapterRepo.List(subjectID)
}

// UpdateChapter 替换章节名和/或标准答案，其余字段不可变
func (s *ChapterService) UpdateChapter(id uint, req UpdateChapterRequest) (*model.Chapter, error) {
	chapter, err := s.GetChapter(id)
	if err != nil {
		return nil, err
	}

	if req.ChapterName != "" && req.ChapterName != chapter.ChapterName {
		existing, err := s.ChapterRepo.FindByName(req.ChapterName)
		if err == nil && existing.ID != chapter.ID {
			return nil, util.ErrChapterExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		chapter.ChapterName = req.ChapterName
	}

	if req.CorrectAnswers != nil {
		if err := validateAnswers(req.CorrectAnswers, chapter.NumQuestions, chapter.NumOptions); err != nil {
			return nil, err
		}
		chapter.CorrectAnswers = model.StringList(req.CorrectAnswers)
	}

	if err := s.ChapterRepo.Update(chapter); err != nil {
		return nil, err
	}

	if s.Analytics != nil {
		s.Analytics.InvalidateCache()
	}
	return chapter, nil
}

func (s *ChapterService) DeleteChapter(id uint) error {
	if _, err := s.GetChapter(id); err != nil {
		return err
	}
	if err := s.ChapterRepo.Delete(id); err != nil {
		return err
	}
	if s.Analytics != nil {
		s.Analytics.InvalidateCache()
	}
	return nil
}
