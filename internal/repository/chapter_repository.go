package repository

import (
	"omr_backend/internal/model"

	"gorm.io/gorm"
)

type ChapterRepository struct {
	DB *gorm.DB
}

func NewChapterRepository(db *gorm.DB) *ChapterRepository {
	return &ChapterRepository{DB: db}
}

func (r *ChapterRepository) Create(chapter *model.Chapter) error {
	return r.DB.Create(chapter).Error
}

func (r *ChapterRepository) Update(chapter *model.Chapter) error {
	return r.DB.Save(chapter).Error
}

func (r *ChapterRepository) FindByID(id uint) (*model.Chapter, error) {
	var c model.Chapter
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ChapterRepository) FindByName(name string) (*model.Chapter, error) {
	var c model.Chapter
	if err := r.DB.Where("chapter_name = ?", name).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ChapterRepository) List(subjectID uint) ([]model.Chapter, error) {
	var chapters []model.Chapter
	query := r.DB.Model(&model.Chapter{})
	if subjectID > 0 {
		query = query.Where("subject_id = ?", subjectID)
	}
	err := query.Order("created_at desc").Find(&chapters).Error
	return chapters, err
}

func (r *ChapterRepository) Count(subjectID uint) (int64, error) {
	var count int64
	query := r.DB.Model(&model.Chapter{})
	if subjectID > 0 {
		query = query.Where("subject_id = ?", subjectID)
	}
	err := query.Count(&count).Error
	return count, err
}

// Delete 删除章节并级联删除其全部作答记录，不可恢复
func (r *ChapterRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("chapter_id = ?", id).Delete(&model.Attempt{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.Chapter{}, id).Error
	})
}
