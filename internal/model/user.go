package model

type UserRole string

const (
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// User 教务账号，用于管理章节与科目；学生作答无需账号
// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:255;not null" json:"name"`
	Email    string   `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string   `gorm:"size:255;not null" json:"-"`
	Role     UserRole `gorm:"size:20;default:'teacher'" json:"role"`
}

func (User) TableName() string {
	return "users"
}
