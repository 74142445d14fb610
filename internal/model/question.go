package model

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionTrueFalse      QuestionType = "true-false"
	QuestionRating         QuestionType = "rating"
)

func ValidQuestionType(t QuestionType) bool {
	return t == QuestionMultipleChoice || t == QuestionTrueFalse || t == QuestionRating
}

// Question 测验题目。Number 在所属测验内从 1 开始连续编号，删除后重新收紧。
// swagger:model Question
type Question struct {
	BaseModel
	QuizID        uint         `gorm:"index;not null" json:"quizId"`
	Number        int          `gorm:"not null" json:"number"`
	Points        int          `gorm:"default:1" json:"points"`
	QuestionType  QuestionType `gorm:"size:20" json:"questionType"`
	QuestionText  string       `gorm:"size:500;not null" json:"questionText"`
	ChoiceA       string       `gorm:"size:255" json:"choiceA"`
	ChoiceB       string       `gorm:"size:255" json:"choiceB"`
	ChoiceC       string       `gorm:"size:255" json:"choiceC"`
	ChoiceD       string       `gorm:"size:255" json:"choiceD"`
	CorrectChoice string       `gorm:"size:1" json:"correctChoice"` // A/B/C/D
}

func (Question) TableName() string {
	return "questions"
}
