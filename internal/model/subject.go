package model

// Subject 科目，章节的可选分组
// swagger:model Subject
type Subject struct {
	BaseModel
	SubjectName string `gorm:"size:255;uniqueIndex;not null" json:"subjectName"`
	Description string `gorm:"type:text" json:"description"`
}

func (Subject) TableName() string {
	return "subjects"
}
