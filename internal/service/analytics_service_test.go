package service

import (
	"testing"
	"time"

	"omr_backend/internal/model"
	"omr_backend/internal/repository"
)

func TestOverallStatisticsEmpty(t *testing.T) {
	env := newTestEnv(t)

	stats, err := env.Analytics.OverallStatistics(repository.AttemptFilter{})
	if err != nil {
		t.Fatalf("OverallStatistics: %v", err)
	}
	if stats.TotalChapters != 0 || stats.TotalAttempts != 0 || stats.UniqueStudents != 0 {
		t.Errorf("counts not zero on empty data: %+v", stats)
	}
	if stats.AvgPercentage != 0 || stats.BestPercentage != 0 || stats.BestScore != 0 {
		t.Errorf("metrics not zero on empty data: %+v", stats)
	}
}

func TestOverallStatistics(t *testing.T) {
	env := newTestEnv(t)
	algebra := env.mustCreateChapter(t, "Algebra", 4, []string{"A", "B", "C", "D"})
	geometry := env.mustCreateChapter(t, "Geometry", 4, []string{"A", "A", "A", "A"})

	env.mustSubmit(t, algebra.ID, "alice", []string{"A", "B", "C", "D"}) // 100%
	env.mustSubmit(t, geometry.ID, "alice", []string{"A", "A", "B", "B"}) // 50%
	env.mustSubmit(t, algebra.ID, "bob", []string{"B", "C", "D", "A"})   // 0%
	env.mustSubmit(t, geometry.ID, "bob", []string{"A", "B", "A", "B"})  // 50%

	stats, err := env.Analytics.OverallStatistics(repository.AttemptFilter{})
	if err != nil {
		t.Fatalf("OverallStatistics: %v", err)
	}
	if stats.TotalChapters != 2 {
		t.Errorf("total_chapters = %d, want 2", stats.TotalChapters)
	}
	if stats.TotalAttempts != 4 {
		t.Errorf("total_attempts = %d, want 4", stats.TotalAttempts)
	}
	if stats.UniqueStudents != 2 {
		t.Errorf("unique_students = %d, want 2", stats.UniqueStudents)
	}
	if !almostEqual(stats.AvgPercentage, 50) {
		t.Errorf("avg_percentage = %v, want 50", stats.AvgPercentage)
	}
	if !almostEqual(stats.BestPercentage, 100) {
		t.Errorf("best_percentage = %v, want 100", stats.BestPercentage)
	}
	if !almostEqual(stats.BestScore, 4) {
		t.Errorf("best_score = %v, want 4", stats.BestScore)
	}
}

func TestOverallStatisticsStudentFilter(t *testing.T) {
	env := newTestEnv(t)
	algebra := env.mustCreateChapter(t, "Algebra", 4, []string{"A", "B", "C", "D"})
	env.mustSubmit(t, algebra.ID, "alice", []string{"A", "B", "C", "D"})
	env.mustSubmit(t, algebra.ID, "bob", []string{"B", "C", "D", "A"})

	stats, err := env.Analytics.OverallStatistics(repository.AttemptFilter{Student: "alice"})
	if err != nil {
		t.Fatalf("OverallStatistics: %v", err)
	}
	if stats.TotalAttempts != 1 || stats.UniqueStudents != 1 {
		t.Errorf("filtered counts wrong: %+v", stats)
	}
	if !almostEqual(stats.AvgPercentage, 100) {
		t.Errorf("avg_percentage = %v, want 100", stats.AvgPercentage)
	}
}

// 总平均是单次百分比的平均，排行榜是总分比值。章节题量不同时两者必然分叉，
// 这两个口径都各自固定，不能互相替代。
func TestAveragePercentageDivergesFromRatioOfSums(t *testing.T) {
	env := newTestEnv(t)
	quick := env.mustCreateChapter(t, "Quick Quiz", 2, []string{"A", "B"})
	long := env.mustCreateChapter(t, "Long Exam", 2, []string{"A", "A", "A", "A", "A", "A", "A", "A"})

	env.mustSubmit(t, quick.ID, "dana", []string{"A", "B"}) // 2/2 = 100%
	env.mustSubmit(t, long.ID, "dana", []string{"A", "A", "B", "B", "B", "B", "B", "B"}) // 2/8 = 25%

	stats, err := env.Analytics.OverallStatistics(repository.AttemptFilter{Student: "dana"})
	if err != nil {
		t.Fatalf("OverallStatistics: %v", err)
	}
	if !almostEqual(stats.AvgPercentage, 62.5) {
		t.Errorf("mean of per-attempt percentages = %v, want 62.5", stats.AvgPercentage)
	}

	performers, err := env.Analytics.TopPerformers(10)
	if err != nil {
		t.Fatalf("TopPerformers: %v", err)
	}
	if len(performers) != 1 {
		t.Fatalf("performer count = %d, want 1", len(performers))
	}
	if !almostEqual(performers[0].Percentage, 40) {
		t.Errorf("ratio of sums = %v, want 40 (4/10)", performers[0].Percentage)
	}
}

func TestChapterStatistics(t *testing.T) {
	env := newTestEnv(t)
	algebra := env.mustCreateChapter(t, "Algebra", 4, []string{"A", "B", "C", "D"})
	geometry := env.mustCreateChapter(t, "Geometry", 4, []string{"A", "A", "A", "A"})
	env.mustCreateChapter(t, "Untouched", 4, []string{"A", "B"})

	env.mustSubmit(t, algebra.ID, "alice", []string{"A", "B", "C", "D"}) // 4
	env.mustSubmit(t, algebra.ID, "alice", []string{"A", "B", "C", "A"}) // 3
	env.mustSubmit(t, algebra.ID, "bob", []string{"B", "C", "D", "A"})   // 0
	env.mustSubmit(t, geometry.ID, "bob", []string{"A", "A", "B", "B"})  // 2

	rows, err := env.Analytics.ChapterStatistics(repository.AttemptFilter{})
	if err != nil {
		t.Fatalf("ChapterStatistics: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("row count = %d, want 3 (zero-attempt chapters included)", len(rows))
	}

	// 作答多的排前面
	if rows[0].ChapterName != "Algebra" {
		t.Fatalf("rows[0] = %q, want Algebra", rows[0].ChapterName)
	}
	if rows[0].TotalAttempts != 3 || rows[0].UniqueStudents != 2 {
		t.Errorf("Algebra counts wrong: %+v", rows[0])
	}
	if !almostEqual(rows[0].AvgScore, 7.0/3.0) {
		t.Errorf("Algebra avg_score = %v, want %v", rows[0].AvgScore, 7.0/3.0)
	}
	// 7/3/4*100 = 58.333... 保留两位
	if !almostEqual(rows[0].AvgPercentage, 58.33) {
		t.Errorf("Algebra avg_percentage = %v, want 58.33", rows[0].AvgPercentage)
	}

	if rows[1].ChapterName != "Geometry" || rows[1].TotalAttempts != 1 {
		t.Errorf("rows[1] = %+v, want Geometry with 1 attempt", rows[1])
	}

	last := rows[2]
	if last.ChapterName != "Untouched" {
		t.Fatalf("rows[2] = %q, want Untouched", last.ChapterName)
	}
	if last.TotalAttempts != 0 || last.AvgScore != 0 || last.AvgPercentage != 0 || last.UniqueStudents != 0 {
		t.Errorf("zero-attempt chapter has non-zero metrics: %+v", last)
	}
	if last.TotalQuestions != 2 {
		t.Errorf("zero-attempt chapter total_questions = %d, want 2", last.TotalQuestions)
	}
}

func TestChapterStatisticsChapterFilter(t *testing.T) {
	env := newTestEnv(t)
	algebra := env.mustCreateChapter(t, "Algebra", 4, []string{"A", "B"})
	env.mustCreateChapter(t, "Geometry", 4, []string{"A", "A"})
	env.mustSubmit(t, algebra.ID, "alice", []string{"A", "B"})

	rows, err := env.Analytics.ChapterStatistics(repository.AttemptFilter{ChapterID: algebra.ID})
	if err != nil {
		t.Fatalf("ChapterStatistics: %v", err)
	}
	if len(rows) != 1 || rows[0].ChapterName != "Algebra" {
		t.Fatalf("filtered rows = %v, want only Algebra", rows)
	}
}

func TestTopPerformersOrderingAndLimit(t *testing.T) {
	env := newTestEnv(t)
	chapter := env.mustCreateChapter(t, "Ranking", 4, []string{"A", "B", "C", "D"})

	env.mustSubmit(t, chapter.ID, "carol", []string{"A", "B", "C", "D"}) // 100%
	env.mustSubmit(t, chapter.ID, "zoe", []string{"A", "B", "D", "C"})   // 50%
	env.mustSubmit(t, chapter.ID, "amy", []string{"A", "C", "B", "D"})   // 50%

	performers, err := env.Analytics.TopPerformers(10)
	if err != nil {
		t.Fatalf("TopPerformers: %v", err)
	}
	if len(performers) != 3 {
		t.Fatalf("performer count = %d, want 3", len(performers))
	}
	// 百分比降序，打平按学生名升序
	wantOrder := []string{"carol", "amy", "zoe"}
	for i, want := range wantOrder {
		if performers[i].StudentName != want {
			t.Fatalf("performers[%d] = %q, want %q (full order %v)", i, performers[i].StudentName, want, performers)
		}
	}

	top1, err := env.Analytics.TopPerformers(1)
	if err != nil {
		t.Fatalf("TopPerformers(1): %v", err)
	}
	if len(top1) != 1 || top1[0].StudentName != "carol" {
		t.Fatalf("limit=1 returned %v, want just carol", top1)
	}

	// limit<=0 回落到默认 10
	fallback, err := env.Analytics.TopPerformers(0)
	if err != nil {
		t.Fatalf("TopPerformers(0): %v", err)
	}
	if len(fallback) != 3 {
		t.Fatalf("default limit returned %d performers, want 3", len(fallback))
	}
}

func TestTopPerformersAggregateAcrossChapters(t *testing.T) {
	env := newTestEnv(t)
	first := env.mustCreateChapter(t, "Part One", 2, []string{"A", "B"})
	second := env.mustCreateChapter(t, "Part Two", 2, []string{"B", "A"})

	env.mustSubmit(t, first.ID, "alice", []string{"A", "B"})  // 2/2
	env.mustSubmit(t, second.ID, "alice", []string{"B", "B"}) // 1/2

	performers, err := env.Analytics.TopPerformers(10)
	if err != nil {
		t.Fatalf("TopPerformers: %v", err)
	}
	if len(performers) != 1 {
		t.Fatalf("performer count = %d, want 1", len(performers))
	}
	p := performers[0]
	if p.TotalAttempts != 2 || p.TotalScore != 3 || p.TotalQuestions != 4 {
		t.Errorf("aggregates wrong: %+v", p)
	}
	if !almostEqual(p.Percentage, 75) {
		t.Errorf("percentage = %v, want 75", p.Percentage)
	}
}

func TestDaysFilterExcludesOldAttempts(t *testing.T) {
	env := newTestEnv(t)
	chapter := env.mustCreateChapter(t, "Recency", 2, []string{"A", "B"})

	old := env.mustSubmit(t, chapter.ID, "alice", []string{"A", "B"})
	env.mustSubmit(t, chapter.ID, "alice", []string{"A", "A"})

	// 把第一条记录回拨到 60 天前
	if err := env.DB.Model(&model.Attempt{}).
		Where("id = ?", old.Attempt.ID).
		Update("submitted_at", time.Now().AddDate(0, 0, -60)).Error; err != nil {
		t.Fatalf("backdate attempt: %v", err)
	}

	recent, err := env.Attempts.GetAllAttempts(repository.AttemptFilter{Days: 30})
	if err != nil {
		t.Fatalf("filtered query: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("30-day window returned %d attempts, want 1", len(recent))
	}
	if recent[0].ID == old.Attempt.ID {
		t.Fatal("60-day-old attempt leaked into the 30-day window")
	}

	wide, err := env.Attempts.GetAllAttempts(repository.AttemptFilter{Days: 90})
	if err != nil {
		t.Fatalf("wide window query: %v", err)
	}
	if len(wide) != 2 {
		t.Fatalf("90-day window returned %d attempts, want 2", len(wide))
	}
}

// 时间窗按自然日取整：第 N 天当天零点起的记录都在窗口内，
// 再早一秒就算第 N+1 天
func TestDaysFilterIncludesWholeBoundaryDay(t *testing.T) {
	env := newTestEnv(t)
	chapter := env.mustCreateChapter(t, "Boundary", 2, []string{"A", "B"})

	onBoundary := env.mustSubmit(t, chapter.ID, "alice", []string{"A", "B"})
	beforeBoundary := env.mustSubmit(t, chapter.ID, "alice", []string{"A", "A"})

	y, m, d := time.Now().AddDate(0, 0, -30).Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, time.Local)

	backdate := func(id uint, ts time.Time) {
		if err := env.DB.Model(&model.Attempt{}).
			Where("id = ?", id).
			Update("submitted_at", ts).Error; err != nil {
			t.Fatalf("backdate attempt %d: %v", id, err)
		}
	}
	backdate(onBoundary.Attempt.ID, dayStart)
	backdate(beforeBoundary.Attempt.ID, dayStart.Add(-time.Second))

	recent, err := env.Attempts.GetAllAttempts(repository.AttemptFilter{Days: 30})
	if err != nil {
		t.Fatalf("filtered query: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("30-day window returned %d attempts, want 1", len(recent))
	}
	if recent[0].ID != onBoundary.Attempt.ID {
		t.Fatal("start-of-day submission on the boundary day was excluded")
	}
}

func TestGetDashboardWithoutCache(t *testing.T) {
	env := newTestEnv(t)
	chapter := env.mustCreateChapter(t, "Dashboard", 2, []string{"A", "B"})
	env.mustSubmit(t, chapter.ID, "alice", []string{"A", "B"})
	env.mustSubmit(t, chapter.ID, "bob", []string{"B", "A"})

	dashboard, err := env.Analytics.GetDashboard(repository.AttemptFilter{})
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if dashboard.Overall.TotalAttempts != 2 {
		t.Errorf("overall total_attempts = %d, want 2", dashboard.Overall.TotalAttempts)
	}
	if len(dashboard.ChapterStats) != 1 {
		t.Errorf("chapter_stats rows = %d, want 1", len(dashboard.ChapterStats))
	}
	if len(dashboard.TopPerformers) != 2 {
		t.Errorf("top_performers rows = %d, want 2", len(dashboard.TopPerformers))
	}
	if len(dashboard.AllAttempts) != 2 {
		t.Errorf("all_attempts rows = %d, want 2", len(dashboard.AllAttempts))
	}
}

func TestSubjectFilterScopesAnalytics(t *testing.T) {
	env := newTestEnv(t)
	subject, err := env.Subjects.CreateSubject(CreateSubjectRequest{SubjectName: "Science"})
	if err != nil {
		t.Fatalf("CreateSubject: %v", err)
	}
	scoped, err := env.Chapters.CreateChapter(CreateChapterRequest{
		ChapterName: "Optics", SubjectID: &subject.ID,
		NumQuestions: 2, NumOptions: 4, CorrectAnswers: []string{"A", "B"},
	})
	if err != nil {
		t.Fatalf("create scoped chapter: %v", err)
	}
	other := env.mustCreateChapter(t, "Unscoped", 4, []string{"A", "A"})

	env.mustSubmit(t, scoped.ID, "alice", []string{"A", "B"})
	env.mustSubmit(t, other.ID, "bob", []string{"A", "A"})

	stats, err := env.Analytics.OverallStatistics(repository.AttemptFilter{SubjectID: subject.ID})
	if err != nil {
		t.Fatalf("OverallStatistics: %v", err)
	}
	if stats.TotalChapters != 1 || stats.TotalAttempts != 1 || stats.UniqueStudents != 1 {
		t.Errorf("subject-scoped stats wrong: %+v", stats)
	}

	rows, err := env.Analytics.ChapterStatistics(repository.AttemptFilter{SubjectID: subject.ID})
	if err != nil {
		t.Fatalf("ChapterStatistics: %v", err)
	}
	if len(rows) != 1 || rows[0].ChapterName != "Optics" {
		t.Fatalf("subject-scoped rows = %v, want only Optics", rows)
	}
}
