package database

import (
	"fmt"
	"log"

	"omr_backend/internal/config"
	"omr_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// 唯一索引冲突需要翻译成 gorm.ErrDuplicatedKey 才能映射为 409
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate 建表并补种默认科目，测试环境也走同一套迁移
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Subject{},
		&model.Chapter{},
		&model.Attempt{},
	)
	if err != nil {
		return err
	}

	// 旧库没有科目表，历史章节统一挂到默认科目下
	var count int64
	db.Model(&model.Subject{}).Count(&count)
	if count == 0 {
		defaultSubject := &model.Subject{
			SubjectName: "Default Subject",
			Description: "Default subject for existing chapters",
		}
		if err := db.Create(defaultSubject).Error; err != nil {
			return err
		}
		db.Model(&model.Chapter{}).
			Where("subject_id IS NULL").
			Update("subject_id", defaultSubject.ID)
	}

	return nil
}
