package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// 页面内容按 PageType 分三种结构，存储为 JSON 列。
// Quiz 页的内容格式沿用前端约定：questionPool + questionsToAsk + percentToPass。

type QuizPoolResponse struct {
	ResponseText string `json:"responseText"`
	IsCorrect    bool   `json:"isCorrect,omitempty"`
}

type QuizPoolQuestion struct {
	QuestionText  string             `json:"questionText"`
	Type          string             `json:"type"` // multiple | short | rating
	Responses     []QuizPoolResponse `json:"responses,omitempty"`
	CorrectAnswer string             `json:"correctAnswer,omitempty"`
	LowBound      int                `json:"lowBound,omitempty"`
	HighBound     int                `json:"highBound,omitempty"`
}

type QuizContent struct {
	QuestionPool   []QuizPoolQuestion `json:"questionPool"`
	QuestionsToAsk int                `json:"questionsToAsk"`
	PercentToPass  int                `json:"percentToPass"`
}

type TimelineEvent struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
}

type TimelineContent struct {
	Title  string          `json:"title,omitempty"`
	Events []TimelineEvent `json:"events"`
}

type LessonContent struct {
	Title    string `json:"title,omitempty"`
	Body     string `json:"body,omitempty"`
	MediaURL string `json:"mediaUrl,omitempty"`
}

// ValidatePageContent 按页面类型校验内容结构。空内容允许（页面可以先建后填）。
func ValidatePageContent(pageType PageType, raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}

	switch pageType {
	case PageTypeQuiz:
		var c QuizContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return fmt.Errorf("invalid quiz content: %w", err)
		}
		if c.PercentToPass < 0 || c.PercentToPass > 100 {
			return errors.New("percentToPass must be between 0 and 100")
		}
		if c.QuestionsToAsk < 0 || c.QuestionsToAsk > len(c.QuestionPool) {
			return errors.New("questionsToAsk exceeds question pool size")
		}
	case PageTypeTimeline:
		var c TimelineContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return fmt.Errorf("invalid timeline content: %w", err)
		}
		for i, ev := range c.Events {
			if ev.Title == "" {
				return fmt.Errorf("timeline event %d missing title", i+1)
			}
		}
	case PageTypeLesson:
		var c LessonContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return fmt.Errorf("invalid lesson content: %w", err)
		}
	default:
		return fmt.Errorf("unknown page type: %s", pageType)
	}

	return nil
}
