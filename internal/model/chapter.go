package model

// Chapter 章节即一份固定答案卷：题目数量、选项数量和标准答案
// swagger:model Chapter
type Chapter struct {
	BaseModel
	SubjectID      *uint      `gorm:"index;type:bigint unsigned" json:"subjectId,omitempty"`
	Subject        *Subject   `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	ChapterName    string     `gorm:"size:255;uniqueIndex;not null" json:"chapterName"`
	NumQuestions   int        `gorm:"not null" json:"numQuestions"`
	NumOptions     int        `gorm:"not null" json:"numOptions"`
	CorrectAnswers StringList `gorm:"type:json;not null" json:"correctAnswers"`
}

func (Chapter) TableName() string {
	return "chapters"
}
