package repository

import (
	"omr_backend/internal/model"

	"gorm.io/gorm"
)

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

func (r *SubjectRepository) Create(subject *model.Subject) error {
	return r.DB.Create(subject).Error
}

func (r *SubjectRepository) FindByID(id uint) (*model.Subject, error) {
	var s model.Subject
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubjectRepository) FindByName(name string) (*model.Subject, error) {
	var s model.Subject
	if err := r.DB.Where("subject_name = ?", name).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubjectRepository) List() ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Order("subject_name asc").Find(&subjects).Error
	return subjects, err
}

// Delete 删除科目并把其下章节摘出来（科目只是弱分组，不级联章节）
func (r *SubjectRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Chapter{}).
			Where("subject_id = ?", id).
			Update("subject_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Subject{}, id).Error
	})
}
