package model

import "time"

// UserResponse 用户对单个题目的作答。UserAnswer 为 A/B/C/D 或 1-10 的评分。
// swagger:model UserResponse
type UserResponse struct {
	BaseModel
	QuizResultID     uint      `gorm:"index;not null" json:"quizResultId"`
	UserID           uint      `gorm:"index;not null" json:"userId"`
	QuestionID       uint      `gorm:"index;not null" json:"questionId"`
	UserAnswer       string    `gorm:"size:2" json:"userAnswer"`
	ResponseDateTime time.Time `gorm:"autoCreateTime" json:"responseDateTime"`
}

func (UserResponse) TableName() string {
	return "user_responses"
}
