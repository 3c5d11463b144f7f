package model

import "time"

// Attempt 一次学生提交：对某章节的作答及得分，只增不改
// swagger:model Attempt
type Attempt struct {
	BaseModel
	ChapterID        uint       `gorm:"index;not null;type:bigint unsigned;uniqueIndex:idx_attempt_serial" json:"chapterId"`
	Chapter          *Chapter   `gorm:"foreignKey:ChapterID" json:"chapter,omitempty"`
	StudentName      string     `gorm:"size:255;index;not null;uniqueIndex:idx_attempt_serial" json:"studentName"`
	SubmittedAnswers StringList `gorm:"type:json;not null" json:"submittedAnswers"`
	Score            float64    `gorm:"not null" json:"score"`
	TotalQuestions   int        `gorm:"not null" json:"totalQuestions"`
	AttemptNumber    int        `gorm:"not null;uniqueIndex:idx_attempt_serial" json:"attemptNumber"`
	TimeTaken        int        `gorm:"default:0" json:"timeTaken"` // 秒
	StartTime        *time.Time `json:"startTime,omitempty"`
	EndTime          *time.Time `json:"endTime,omitempty"`
	SubmittedAt      time.Time  `gorm:"index;autoCreateTime" json:"submittedAt"`
}

func (Attempt) TableName() string {
	return "attempts"
}

// Percentage 单次作答的百分比成绩
func (a *Attempt) Percentage() float64 {
	if a.TotalQuestions == 0 {
		return 0
	}
	return a.Score / float64(a.TotalQuestions) * 100
}

// AttemptWithChapter 查询层返回的作答记录，附带章节名
type AttemptWithChapter struct {
	Attempt
	ChapterName string `gorm:"column:chapter_name" json:"chapterName"`
}
