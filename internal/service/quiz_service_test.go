package service

import (
	"errors"
	"testing"

	"county_training_backend/internal/model"
	"county_training_backend/internal/repository"
	"county_training_backend/internal/util"

	"gorm.io/gorm"
)

func newQuizService(t *testing.T) (*QuizService, *CourseService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	pageRepo := repository.NewPageRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	quizSvc := NewQuizService(quizRepo, pageRepo, db)
	courseSvc := NewCourseService(repository.NewCourseRepository(db), pageRepo, quizRepo, nil, db)
	return quizSvc, courseSvc, db
}

func mustCreateQuizPage(t *testing.T, courseSvc *CourseService) *model.ContentPage {
	t.Helper()
	course := mustCreateCourse(t, courseSvc, "Ladder Safety")
	return mustAddPage(t, courseSvc, course.ID, model.PageTypeQuiz, "quiz page")
}

func sampleQuestion(text string) QuestionRequest {
	return QuestionRequest{
		QuestionType:  model.QuestionMultipleChoice,
		QuestionText:  text,
		ChoiceA:       "a",
		ChoiceB:       "b",
		ChoiceC:       "c",
		ChoiceD:       "d",
		CorrectChoice: "A",
	}
}

func TestCreateQuizDefaultsPercent(t *testing.T) {
	quizSvc, courseSvc, _ := newQuizService(t)
	page := mustCreateQuizPage(t, courseSvc)

	quiz, err := quizSvc.CreateQuiz(QuizRequest{ContentPageID: page.ID})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if quiz.PercentToPass != 60 {
		t.Fatalf("expected default pass percent 60, got %d", quiz.PercentToPass)
	}
}

func TestCreateQuizRejectsNonQuizPage(t *testing.T) {
	quizSvc, courseSvc, _ := newQuizService(t)
	course := mustCreateCourse(t, courseSvc, "Ladder Safety")
	page := mustAddPage(t, courseSvc, course.ID, model.PageTypeLesson, "lesson")

	_, err := quizSvc.CreateQuiz(QuizRequest{ContentPageID: page.ID})
	if !errors.Is(err, util.ErrInvalidPageType) {
		t.Fatalf("expected ErrInvalidPageType, got %v", err)
	}
}

func TestCreateQuizDuplicate(t *testing.T) {
	quizSvc, courseSvc, _ := newQuizService(t)
	page := mustCreateQuizPage(t, courseSvc)

	if _, err := quizSvc.CreateQuiz(QuizRequest{ContentPageID: page.ID, PercentToPass: 70}); err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	_, err := quizSvc.CreateQuiz(QuizRequest{ContentPageID: page.ID})
	if !errors.Is(err, util.ErrQuizExists) {
		t.Fatalf("expected ErrQuizExists, got %v", err)
	}
}

func TestAddQuestionNumbering(t *testing.T) {
	quizSvc, courseSvc, _ := newQuizService(t)
	page := mustCreateQuizPage(t, courseSvc)
	quiz, err := quizSvc.CreateQuiz(QuizRequest{ContentPageID: page.ID})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	for i := 1; i <= 3; i++ {
		q, err := quizSvc.AddQuestionToQuiz(quiz.ID, sampleQuestion("q"))
		if err != nil {
			t.Fatalf("add question: %v", err)
		}
		if q.Number != i {
			t.Fatalf("question %d assigned number %d", i, q.Number)
		}
	}
}

func TestAddQuestionToMissingQuiz(t *testing.T) {
	quizSvc, _, _ := newQuizService(t)

	_, err := quizSvc.AddQuestionToQuiz(99, sampleQuestion("q"))
	if !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestAddQuestionInvalidType(t *testing.T) {
	quizSvc, courseSvc, _ := newQuizService(t)
	page := mustCreateQuizPage(t, courseSvc)
	quiz, _ := quizSvc.CreateQuiz(QuizRequest{ContentPageID: page.ID})

	req := sampleQuestion("q")
	req.QuestionType = "essay"
	_, err := quizSvc.AddQuestionToQuiz(quiz.ID, req)
	if !errors.Is(err, util.ErrInvalidQuestionType) {
		t.Fatalf("expected ErrInvalidQuestionType, got %v", err)
	}
}

func TestDeleteQuestionRenumbers(t *testing.T) {
	quizSvc, courseSvc, _ := newQuizService(t)
	page := mustCreateQuizPage(t, courseSvc)
	quiz, _ := quizSvc.CreateQuiz(QuizRequest{ContentPageID: page.ID})

	var ids []uint
	for i := 0; i < 4; i++ {
		q, err := quizSvc.AddQuestionToQuiz(quiz.ID, sampleQuestion("q"))
		if err != nil {
			t.Fatalf("add question: %v", err)
		}
		ids = append(ids, q.ID)
	}

	if err := quizSvc.DeleteQuestion(ids[1]); err != nil {
		t.Fatalf("delete question: %v", err)
	}

	questions, err := quizSvc.GetAllQuestions(quiz.ID)
	if err != nil {
		t.Fatalf("get questions: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}
	wantIDs := []uint{ids[0], ids[2], ids[3]}
	for i, q := range questions {
		if q.ID != wantIDs[i] {
			t.Fatalf("position %d: got question %d, want %d", i+1, q.ID, wantIDs[i])
		}
		if q.Number != i+1 {
			t.Fatalf("numbering not dense after delete: question %d has number %d", q.ID, q.Number)
		}
	}
}

func TestDeleteQuizRemovesQuestions(t *testing.T) {
	quizSvc, courseSvc, db := newQuizService(t)
	page := mustCreateQuizPage(t, courseSvc)
	quiz, _ := quizSvc.CreateQuiz(QuizRequest{ContentPageID: page.ID})
	for i := 0; i < 2; i++ {
		if _, err := quizSvc.AddQuestionToQuiz(quiz.ID, sampleQuestion("q")); err != nil {
			t.Fatalf("add question: %v", err)
		}
	}

	if err := quizSvc.DeleteQuiz(quiz.ID); err != nil {
		t.Fatalf("delete quiz: %v", err)
	}

	var count int64
	db.Model(&model.Question{}).Where("quiz_id = ?", quiz.ID).Count(&count)
	if count != 0 {
		t.Fatalf("%d questions survived quiz deletion", count)
	}

	_, err := quizSvc.GetQuizByID(quiz.ID)
	if !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestGetQuizInfo(t *testing.T) {
	quizSvc, courseSvc, _ := newQuizService(t)
	course := mustCreateCourse(t, courseSvc, "Ladder Safety")
	mustAddPage(t, courseSvc, course.ID, model.PageTypeLesson, "lesson")
	page := mustAddPage(t, courseSvc, course.ID, model.PageTypeQuiz, "quiz page")

	quiz, err := quizSvc.CreateQuiz(QuizRequest{ContentPageID: page.ID})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	q, err := quizSvc.AddQuestionToQuiz(quiz.ID, sampleQuestion("q"))
	if err != nil {
		t.Fatalf("add question: %v", err)
	}

	info, err := quizSvc.GetQuizInfo(q.ID)
	if err != nil {
		t.Fatalf("get quiz info: %v", err)
	}
	if info.QuizID != quiz.ID || info.CourseID != course.ID || info.PageNumber != 2 {
		t.Fatalf("wrong quiz info: %+v", info)
	}
}

func TestUpdateQuestion(t *testing.T) {
	quizSvc, courseSvc, _ := newQuizService(t)
	page := mustCreateQuizPage(t, courseSvc)
	quiz, _ := quizSvc.CreateQuiz(QuizRequest{ContentPageID: page.ID})
	q, err := quizSvc.AddQuestionToQuiz(quiz.ID, sampleQuestion("original"))
	if err != nil {
		t.Fatalf("add question: %v", err)
	}

	req := sampleQuestion("updated")
	req.CorrectChoice = "B"
	updated, err := quizSvc.UpdateQuestion(q.ID, req)
	if err != nil {
		t.Fatalf("update question: %v", err)
	}
	if updated.QuestionText != "updated" || updated.CorrectChoice != "B" {
		t.Fatalf("question not updated: %+v", updated)
	}
	if updated.Number != q.Number {
		t.Fatalf("update must not change number: got %d want %d", updated.Number, q.Number)
	}
}
