package model

// swagger:model QuizResult
type QuizResult struct {
	BaseModel
	AttemptID uint           `gorm:"index;not null" json:"attemptId"`
	QuizID    uint           `gorm:"index;not null" json:"quizId"`
	Score     int            `json:"score"` // 百分制
	Passed    bool           `json:"passed"`
	Responses []UserResponse `gorm:"foreignKey:QuizResultID" json:"responses,omitempty"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
