package model

import "time"

type AttemptStatus int

const (
	AttemptDone       AttemptStatus = 1
	AttemptInProgress AttemptStatus = 2
)

// TrainingAttempt 记录一次用户完整参加课程的过程。
// swagger:model TrainingAttempt
type TrainingAttempt struct {
	BaseModel
	UserID           uint          `gorm:"index;not null" json:"userId"`
	TrainingCourseID uint          `gorm:"index;not null" json:"trainingCourseId"`
	AttemptDateTime  time.Time     `gorm:"autoCreateTime" json:"attemptDateTime"`
	Status           AttemptStatus `gorm:"default:2" json:"status"` // 1-完成 2-进行中
	QuizResults      []QuizResult  `gorm:"foreignKey:AttemptID" json:"quizResults,omitempty"`
}

func (TrainingAttempt) TableName() string {
	return "training_attempts"
}
