package service

import (
	"fmt"
	"math"
	"sync/atomic"
	"testing"

	"omr_backend/internal/model"
	"omr_backend/internal/repository"
	"omr_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB 给每个测试开一个独立的内存库，走与生产相同的迁移
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

type testEnv struct {
	DB        *gorm.DB
	Subjects  *SubjectService
	Chapters  *ChapterService
	Attempts  *AttemptService
	Analytics *AnalyticsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	attemptRepo := repository.NewAttemptRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	analytics := NewAnalyticsService(attemptRepo, chapterRepo, nil, 0)
	return &testEnv{
		DB:        db,
		Subjects:  NewSubjectService(subjectRepo, analytics),
		Chapters:  NewChapterService(chapterRepo, subjectRepo, analytics),
		Attempts:  NewAttemptService(attemptRepo, chapterRepo, analytics, db),
		Analytics: analytics,
	}
}

func (env *testEnv) mustCreateChapter(t *testing.T, name string, numOptions int, answers []string) *model.Chapter {
	t.Helper()
	chapter, err := env.Chapters.CreateChapter(CreateChapterRequest{
		ChapterName:    name,
		NumQuestions:   len(answers),
		NumOptions:     numOptions,
		CorrectAnswers: answers,
	})
	if err != nil {
		t.Fatalf("create chapter %q: %v", name, err)
	}
	return chapter
}

func (env *testEnv) mustSubmit(t *testing.T, chapterID uint, student string, answers []string) *SubmitAttemptResult {
	t.Helper()
	result, err := env.Attempts.SubmitAttempt(SubmitAttemptRequest{
		ChapterID:        chapterID,
		StudentName:      student,
		SubmittedAnswers: answers,
	})
	if err != nil {
		t.Fatalf("submit attempt for %q on chapter %d: %v", student, chapterID, err)
	}
	return result
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
