package service

import (
	"errors"
	"testing"

	"omr_backend/internal/model"
	"omr_backend/internal/repository"
	"omr_backend/internal/util"

	"gorm.io/gorm"
)

func TestCreateChapterValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		req     CreateChapterRequest
		wantErr error
	}{
		{
			name: "option count too low",
			req: CreateChapterRequest{
				ChapterName: "Bad Options", NumQuestions: 2, NumOptions: 0,
				CorrectAnswers: []string{"A", "A"},
			},
			wantErr: util.ErrInvalidOptionCount,
		},
		{
			name: "option count too high",
			req: CreateChapterRequest{
				ChapterName: "Bad Options", NumQuestions: 2, NumOptions: 9,
				CorrectAnswers: []string{"A", "A"},
			},
			wantErr: util.ErrInvalidOptionCount,
		},
		{
			name: "answer count mismatch",
			req: CreateChapterRequest{
				ChapterName: "Short Key", NumQuestions: 3, NumOptions: 4,
				CorrectAnswers: []string{"A", "B"},
			},
			wantErr: util.ErrAnswerCountMismatch,
		},
		{
			name: "answer outside option range",
			req: CreateChapterRequest{
				ChapterName: "Out Of Range", NumQuestions: 2, NumOptions: 4,
				CorrectAnswers: []string{"A", "E"},
			},
			wantErr: util.ErrInvalidOptionCount,
		},
		{
			name: "unknown subject",
			req: CreateChapterRequest{
				ChapterName: "Orphan", SubjectID: uintPtr(9999),
				NumQuestions: 2, NumOptions: 4,
				CorrectAnswers: []string{"A", "B"},
			},
			wantErr: util.ErrSubjectNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.Chapters.CreateChapter(tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("CreateChapter error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func uintPtr(v uint) *uint { return &v }

func TestCreateChapterDuplicateNameKeepsOriginal(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateChapter(t, "Algebra", 4, []string{"A", "B", "C"})

	_, err := env.Chapters.CreateChapter(CreateChapterRequest{
		ChapterName: "Algebra", NumQuestions: 2, NumOptions: 4,
		CorrectAnswers: []string{"D", "D"},
	})
	if !errors.Is(err, util.ErrChapterExists) {
		t.Fatalf("duplicate create error = %v, want ErrChapterExists", err)
	}

	existing, err := env.Chapters.GetChapterByName("Algebra")
	if err != nil {
		t.Fatalf("GetChapterByName: %v", err)
	}
	if existing.NumQuestions != 3 {
		t.Fatalf("original chapter was replaced, num_questions = %d", existing.NumQuestions)
	}
}

// 并发创建同名章节会绕过服务层的预检，唯一索引必须把冲突
// 翻译成 gorm.ErrDuplicatedKey 才能走到 409 分支
func TestDuplicateChapterNameCaughtByIndex(t *testing.T) {
	env := newTestEnv(t)
	repo := repository.NewChapterRepository(env.DB)

	first := &model.Chapter{
		ChapterName: "Indexed", NumQuestions: 2, NumOptions: 4,
		CorrectAnswers: model.StringList{"A", "B"},
	}
	if err := repo.Create(first); err != nil {
		t.Fatalf("first create: %v", err)
	}

	dup := &model.Chapter{
		ChapterName: "Indexed", NumQuestions: 3, NumOptions: 4,
		CorrectAnswers: model.StringList{"C", "C", "C"},
	}
	err := repo.Create(dup)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate insert error = %v, want gorm.ErrDuplicatedKey", err)
	}
}

func TestChapterAnswersRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	answers := []string{"C", "A", "D", "B", "C"}
	created := env.mustCreateChapter(t, "Trigonometry", 4, answers)

	got, err := env.Chapters.GetChapter(created.ID)
	if err != nil {
		t.Fatalf("GetChapter: %v", err)
	}
	if len(got.CorrectAnswers) != len(answers) {
		t.Fatalf("stored answers = %v, want %v", got.CorrectAnswers, answers)
	}
	for i := range answers {
		if got.CorrectAnswers[i] != answers[i] {
			t.Errorf("answer[%d] = %q, want %q", i, got.CorrectAnswers[i], answers[i])
		}
	}
}

func TestGetChapterNotFound(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.Chapters.GetChapter(4242); !errors.Is(err, util.ErrChapterNotFound) {
		t.Fatalf("GetChapter error = %v, want ErrChapterNotFound", err)
	}
	if _, err := env.Chapters.GetChapterByName("no such"); !errors.Is(err, util.ErrChapterNotFound) {
		t.Fatalf("GetChapterByName error = %v, want ErrChapterNotFound", err)
	}
}

func TestUpdateChapter(t *testing.T) {
	env := newTestEnv(t)
	chapter := env.mustCreateChapter(t, "Old Name", 4, []string{"A", "B"})
	env.mustCreateChapter(t, "Taken Name", 4, []string{"A", "A"})

	// 改名撞上既有章节
	_, err := env.Chapters.UpdateChapter(chapter.ID, UpdateChapterRequest{ChapterName: "Taken Name"})
	if !errors.Is(err, util.ErrChapterExists) {
		t.Fatalf("rename collision error = %v, want ErrChapterExists", err)
	}

	// 新答案必须仍然满足该章节的题量与选项数
	_, err = env.Chapters.UpdateChapter(chapter.ID, UpdateChapterRequest{CorrectAnswers: []string{"A"}})
	if !errors.Is(err, util.ErrAnswerCountMismatch) {
		t.Fatalf("short key error = %v, want ErrAnswerCountMismatch", err)
	}
	_, err = env.Chapters.UpdateChapter(chapter.ID, UpdateChapterRequest{CorrectAnswers: []string{"E", "E"}})
	if !errors.Is(err, util.ErrInvalidOptionCount) {
		t.Fatalf("out-of-range key error = %v, want ErrInvalidOptionCount", err)
	}

	updated, err := env.Chapters.UpdateChapter(chapter.ID, UpdateChapterRequest{
		ChapterName:    "New Name",
		CorrectAnswers: []string{"D", "C"},
	})
	if err != nil {
		t.Fatalf("valid update: %v", err)
	}
	if updated.ChapterName != "New Name" {
		t.Errorf("name = %q, want New Name", updated.ChapterName)
	}

	stored, err := env.Chapters.GetChapterByName("New Name")
	if err != nil {
		t.Fatalf("reload updated chapter: %v", err)
	}
	if stored.CorrectAnswers[0] != "D" || stored.CorrectAnswers[1] != "C" {
		t.Errorf("persisted answers = %v, want [D C]", stored.CorrectAnswers)
	}
}

func TestDeleteChapterCascadesAttempts(t *testing.T) {
	env := newTestEnv(t)
	chapter := env.mustCreateChapter(t, "Doomed", 4, []string{"A", "B"})
	env.mustSubmit(t, chapter.ID, "alice", []string{"A", "B"})
	env.mustSubmit(t, chapter.ID, "bob", []string{"B", "A"})

	if err := env.Chapters.DeleteChapter(chapter.ID); err != nil {
		t.Fatalf("DeleteChapter: %v", err)
	}

	if _, err := env.Chapters.GetChapter(chapter.ID); !errors.Is(err, util.ErrChapterNotFound) {
		t.Fatalf("deleted chapter still readable, err = %v", err)
	}

	var orphaned int64
	if err := env.DB.Unscoped().Model(&model.Attempt{}).
		Where("chapter_id = ?", chapter.ID).
		Count(&orphaned).Error; err != nil {
		t.Fatalf("count orphaned attempts: %v", err)
	}
	if orphaned != 0 {
		t.Fatalf("%d attempts survived chapter deletion", orphaned)
	}
}

func TestDeleteChapterNotFound(t *testing.T) {
	env := newTestEnv(t)
	if err := env.Chapters.DeleteChapter(4242); !errors.Is(err, util.ErrChapterNotFound) {
		t.Fatalf("DeleteChapter error = %v, want ErrChapterNotFound", err)
	}
}

func TestListChaptersBySubject(t *testing.T) {
	env := newTestEnv(t)
	subject, err := env.Subjects.CreateSubject(CreateSubjectRequest{SubjectName: "Mathematics"})
	if err != nil {
		t.Fatalf("CreateSubject: %v", err)
	}

	if _, err := env.Chapters.CreateChapter(CreateChapterRequest{
		ChapterName: "Linear Equations", SubjectID: &subject.ID,
		NumQuestions: 2, NumOptions: 4, CorrectAnswers: []string{"A", "B"},
	}); err != nil {
		t.Fatalf("create attached chapter: %v", err)
	}
	env.mustCreateChapter(t, "Unattached", 4, []string{"A", "A"})

	scoped, err := env.Chapters.ListChapters(subject.ID)
	if err != nil {
		t.Fatalf("ListChapters scoped: %v", err)
	}
	if len(scoped) != 1 || scoped[0].ChapterName != "Linear Equations" {
		t.Fatalf("scoped list = %v", scoped)
	}

	all, err := env.Chapters.ListChapters(0)
	if err != nil {
		t.Fatalf("ListChapters all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("unscoped list count = %d, want 2", len(all))
	}
}
