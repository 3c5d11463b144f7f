package service

import (
	"errors"

	"omr_backend/internal/model"
	"omr_backend/internal/repository"
	"omr_backend/internal/util"

	"gorm.io/gorm"
)

type SubjectService struct {
	SubjectRepo *repository.SubjectRepository
	Analytics   *AnalyticsService
}

func NewSubjectService(subjectRepo *repository.SubjectRepository, analytics *AnalyticsService) *SubjectService {
	return &SubjectService{SubjectRepo: subjectRepo, Analytics: analytics}
}

type CreateSubjectRequest struct {
	SubjectName string `json:"subjectName" binding:"required"`
	Description string `json:"description"`
}

func (s *SubjectService) CreateSubject(req CreateSubjectRequest) (*model.Subject, error) {
	_, err := s.SubjectRepo.FindByName(req.SubjectName)
	if err == nil {
		return nil, util.ErrSubjectExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	subject := &model.Subject{
		SubjectName: req.SubjectName,
		Description: req.Description,
	}
	if err := s.SubjectRepo.Create(subject); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrSubjectExists
		}
		return nil, err
	}
	return subject, nil
}

func (s *SubjectService) ListSubjects() ([]model.Subject, error) {
	return s.SubjectRepo.List()
}

func (s *SubjectService) DeleteSubject(id uint) error {
	if _, err := s.SubjectRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSubjectNotFound
		}
		return err
	}
	if err := s.SubjectRepo.Delete(id); err != nil {
		return err
	}
	if s.Analytics != nil {
		s.Analytics.InvalidateCache()
	}
	return nil
}
