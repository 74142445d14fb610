package model

import "encoding/json"

type PageType string

const (
	PageTypeQuiz     PageType = "Quiz"
	PageTypeTimeline PageType = "Timeline"
	PageTypeLesson   PageType = "Lesson"
)

func ValidPageType(t PageType) bool {
	return t == PageTypeQuiz || t == PageTypeTimeline || t == PageTypeLesson
}

// ContentPage 课程内容页。PageNumber 在课程内从 1 开始连续编号，无空洞。
// swagger:model ContentPage
type ContentPage struct {
	BaseModel
	TrainingID uint            `gorm:"index;not null" json:"trainingId"`
	PageType   PageType        `gorm:"size:20;not null" json:"pageType"`
	PageDesc   string          `gorm:"size:255" json:"pageDesc"`
	PageNumber int             `gorm:"not null" json:"pageNumber"`
	Content    json.RawMessage `gorm:"type:json" json:"content"` // 按 PageType 校验的结构化内容
}

func (ContentPage) TableName() string {
	return "content_pages"
}
