package model

// OverallStatistics 全局统计。AvgPercentage 是每次作答百分比的平均值，
// 与排行榜的总分比值口径不同，两者刻意保持独立。
type OverallStatistics struct {
	TotalChapters  int64   `json:"total_chapters"`
	TotalAttempts  int64   `json:"total_attempts"`
	UniqueStudents int64   `json:"unique_students"`
	AvgPercentage  float64 `json:"avg_percentage"`
	BestPercentage float64 `json:"best_percentage"`
	BestScore      float64 `json:"best_score"`
}

// ChapterStatistics 按章节汇总，零作答章节也会出现
type ChapterStatistics struct {
	ChapterName    string  `json:"chapter_name"`
	TotalAttempts  int64   `json:"total_attempts"`
	AvgScore       float64 `json:"avg_score"`
	TotalQuestions int     `json:"total_questions"`
	UniqueStudents int64   `json:"unique_students"`
	AvgPercentage  float64 `json:"avg_percentage"`
}

// TopPerformer 排行榜行。Percentage = sum(score)/sum(total)*100（总分比值）
type TopPerformer struct {
	StudentName    string  `json:"student_name"`
	TotalAttempts  int64   `json:"total_attempts"`
	TotalScore     float64 `json:"total_score"`
	TotalQuestions int64   `json:"total_questions"`
	Percentage     float64 `json:"percentage"`
}

// AnalyticsDashboard /api/analytics 的聚合响应
type AnalyticsDashboard struct {
	Overall       OverallStatistics    `json:"overall"`
	ChapterStats  []ChapterStatistics  `json:"chapter_stats"`
	TopPerformers []TopPerformer       `json:"top_performers"`
	AllAttempts   []AttemptWithChapter `json:"all_attempts"`
}
