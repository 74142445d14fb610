package model

// Quiz 附着在 Quiz 类型页面上，一页至多一个。
// swagger:model Quiz
type Quiz struct {
	BaseModel
	ContentPageID uint       `gorm:"index;not null" json:"contentPageId"`
	PercentToPass int        `gorm:"default:60" json:"percentToPass"` // 1-100
	Questions     []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
