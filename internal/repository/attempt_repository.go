package repository

import (
	"time"

	"omr_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// AttemptFilter 组合查询条件，全部以 AND 连接，值一律走绑定参数
type AttemptFilter struct {
	Student   string
	SubjectID uint
	ChapterID uint
	Days      int
}

func (r *AttemptRepository) Create(tx *gorm.DB, attempt *model.Attempt) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var a model.Attempt
	if err := r.DB.Preload("Chapter").First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// CountByChapterAndStudent 统计某学生在某章节的既有作答次数。
// 传入事务句柄时加行锁，保证 attempt_number 在并发提交下仍然连续。
func (r *AttemptRepository) CountByChapterAndStudent(tx *gorm.DB, chapterID uint, studentName string) (int64, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var count int64
	query := db.Model(&model.Attempt{}).
		Where("chapter_id = ? AND student_name = ?", chapterID, studentName)
	// sqlite 不支持 SELECT ... FOR UPDATE，只在 mysql 上加行锁
	if tx != nil && db.Dialector.Name() == "mysql" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.Count(&count).Error
	return count, err
}

// FindByChapterName 返回某章节的作答记录，可按学生过滤，按提交时间倒序
func (r *AttemptRepository) FindByChapterName(chapterName, studentName string) ([]model.AttemptWithChapter, error) {
	var attempts []model.AttemptWithChapter
	query := r.joinedQuery().Where("chapters.chapter_name = ?", chapterName)
	if studentName != "" {
		query = query.Where("attempts.student_name = ?", studentName)
	}
	err := query.Order("attempts.submitted_at desc").Scan(&attempts).Error
	return attempts, err
}

// FindAll 按过滤条件返回作答记录，附带章节名
func (r *AttemptRepository) FindAll(filter AttemptFilter) ([]model.AttemptWithChapter, error) {
	var attempts []model.AttemptWithChapter
	err := r.applyFilter(r.joinedQuery(), filter).
		Order("attempts.submitted_at desc").
		Scan(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) joinedQuery() *gorm.DB {
	// Table() 绕过了软删除作用域，这里手动排除
	return r.DB.Table("attempts").
		Select("attempts.*, chapters.chapter_name").
		Joins("JOIN chapters ON chapters.id = attempts.chapter_id").
		Where("attempts.deleted_at IS NULL").
		Where("chapters.deleted_at IS NULL")
}

func (r *AttemptRepository) applyFilter(query *gorm.DB, filter AttemptFilter) *gorm.DB {
	if filter.Student != "" {
		query = query.Where("attempts.student_name = ?", filter.Student)
	}
	if filter.SubjectID > 0 {
		query = query.Where("chapters.subject_id = ?", filter.SubjectID)
	}
	if filter.ChapterID > 0 {
		query = query.Where("attempts.chapter_id = ?", filter.ChapterID)
	}
	if filter.Days > 0 {
		// 窗口按自然日计，N 天前那一天从零点起整天都算在内
		cutoff := time.Now().AddDate(0, 0, -filter.Days)
		y, m, d := cutoff.Date()
		cutoff = time.Date(y, m, d, 0, 0, 0, 0, cutoff.Location())
		query = query.Where("attempts.submitted_at >= ?", cutoff)
	}
	return query
}
