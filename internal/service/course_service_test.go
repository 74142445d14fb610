package service

import (
	"encoding/json"
	"errors"
	"testing"

	"county_training_backend/internal/model"
	"county_training_backend/internal/repository"
	"county_training_backend/internal/util"

	"gorm.io/gorm"
)

func newCourseService(t *testing.T) (*CourseService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewPageRepository(db),
		repository.NewQuizRepository(db),
		nil,
		db,
	)
	return svc, db
}

func mustCreateCourse(t *testing.T, svc *CourseService, name string) *model.TrainingCourse {
	t.Helper()
	course, err := svc.CreateCourse(CourseRequest{CourseName: name, EstMinutes: 30})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	return course
}

func mustAddPage(t *testing.T, svc *CourseService, courseID uint, pageType model.PageType, desc string) *model.ContentPage {
	t.Helper()
	page, err := svc.AddPage(courseID, PageRequest{PageType: pageType, PageDesc: desc})
	if err != nil {
		t.Fatalf("add page %q: %v", desc, err)
	}
	return page
}

func pageNumbers(t *testing.T, svc *CourseService, courseID uint) []int {
	t.Helper()
	pages, err := svc.GetPagesInOrder(courseID)
	if err != nil {
		t.Fatalf("get pages: %v", err)
	}
	nums := make([]int, len(pages))
	for i, p := range pages {
		nums[i] = p.PageNumber
	}
	return nums
}

func TestCreateCourseRequiresName(t *testing.T) {
	svc, _ := newCourseService(t)

	_, err := svc.CreateCourse(CourseRequest{CourseName: "   "})
	if !errors.Is(err, util.ErrCourseNameRequired) {
		t.Fatalf("expected ErrCourseNameRequired, got %v", err)
	}
}

func TestGetCourseByIDNotFound(t *testing.T) {
	svc, _ := newCourseService(t)

	_, err := svc.GetCourseByID(999)
	if !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestGetPagesInOrderUnknownCourse(t *testing.T) {
	svc, _ := newCourseService(t)

	_, err := svc.GetPagesInOrder(42)
	if !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestAddPageAssignsSequentialNumbers(t *testing.T) {
	svc, _ := newCourseService(t)
	course := mustCreateCourse(t, svc, "Fire Safety")

	for i := 0; i < 4; i++ {
		mustAddPage(t, svc, course.ID, model.PageTypeLesson, "lesson")
	}

	nums := pageNumbers(t, svc, course.ID)
	want := []int{1, 2, 3, 4}
	if len(nums) != len(want) {
		t.Fatalf("expected %d pages, got %d", len(want), len(nums))
	}
	for i := range want {
		if nums[i] != want[i] {
			t.Fatalf("page %d has number %d, want %d", i, nums[i], want[i])
		}
	}
}

func TestAddPageRejectsInvalidType(t *testing.T) {
	svc, _ := newCourseService(t)
	course := mustCreateCourse(t, svc, "Fire Safety")

	_, err := svc.AddPage(course.ID, PageRequest{PageType: "Video"})
	if !errors.Is(err, util.ErrInvalidPageType) {
		t.Fatalf("expected ErrInvalidPageType, got %v", err)
	}
}

func TestAddPageValidatesQuizContent(t *testing.T) {
	svc, _ := newCourseService(t)
	course := mustCreateCourse(t, svc, "Fire Safety")

	bad := json.RawMessage(`{"questionPool":[],"questionsToAsk":3,"percentToPass":60}`)
	if _, err := svc.AddPage(course.ID, PageRequest{PageType: model.PageTypeQuiz, Content: bad}); err == nil {
		t.Fatal("expected error for questionsToAsk exceeding pool size")
	}

	good := json.RawMessage(`{"questionPool":[{"questionText":"q1","type":"multiple"}],"questionsToAsk":1,"percentToPass":60}`)
	if _, err := svc.AddPage(course.ID, PageRequest{PageType: model.PageTypeQuiz, Content: good}); err != nil {
		t.Fatalf("valid quiz content rejected: %v", err)
	}
}

func TestSwapPages(t *testing.T) {
	svc, _ := newCourseService(t)
	course := mustCreateCourse(t, svc, "Fire Safety")

	first := mustAddPage(t, svc, course.ID, model.PageTypeLesson, "intro")
	mustAddPage(t, svc, course.ID, model.PageTypeTimeline, "history")
	third := mustAddPage(t, svc, course.ID, model.PageTypeQuiz, "final quiz")

	if err := svc.SwapPages(course.ID, 1, 3); err != nil {
		t.Fatalf("swap: %v", err)
	}

	pages, err := svc.GetPagesInOrder(course.ID)
	if err != nil {
		t.Fatalf("get pages: %v", err)
	}
	if pages[0].ID != third.ID || pages[2].ID != first.ID {
		t.Fatalf("swap did not exchange pages: got %d,%d want %d,%d",
			pages[0].ID, pages[2].ID, third.ID, first.ID)
	}

	nums := pageNumbers(t, svc, course.ID)
	for i, n := range nums {
		if n != i+1 {
			t.Fatalf("numbering not dense after swap: %v", nums)
		}
	}
}

func TestSwapPagesOutOfRange(t *testing.T) {
	svc, _ := newCourseService(t)
	course := mustCreateCourse(t, svc, "Fire Safety")
	mustAddPage(t, svc, course.ID, model.PageTypeLesson, "only page")

	for _, pair := range [][2]int{{0, 1}, {1, 2}, {-1, 1}} {
		err := svc.SwapPages(course.ID, pair[0], pair[1])
		if !errors.Is(err, util.ErrPageNumOutOfRange) {
			t.Fatalf("swap(%d,%d): expected ErrPageNumOutOfRange, got %v", pair[0], pair[1], err)
		}
	}
}

func TestDeletePageRenumbers(t *testing.T) {
	svc, _ := newCourseService(t)
	course := mustCreateCourse(t, svc, "Fire Safety")

	mustAddPage(t, svc, course.ID, model.PageTypeLesson, "one")
	second := mustAddPage(t, svc, course.ID, model.PageTypeLesson, "two")
	third := mustAddPage(t, svc, course.ID, model.PageTypeLesson, "three")
	fourth := mustAddPage(t, svc, course.ID, model.PageTypeLesson, "four")

	if err := svc.DeletePage(course.ID, 2); err != nil {
		t.Fatalf("delete page: %v", err)
	}

	pages, err := svc.GetPagesInOrder(course.ID)
	if err != nil {
		t.Fatalf("get pages: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	for _, p := range pages {
		if p.ID == second.ID {
			t.Fatal("deleted page still present")
		}
	}
	if pages[1].ID != third.ID || pages[1].PageNumber != 2 {
		t.Fatalf("page %d should move to number 2, got page %d number %d",
			third.ID, pages[1].ID, pages[1].PageNumber)
	}
	if pages[2].ID != fourth.ID || pages[2].PageNumber != 3 {
		t.Fatalf("page %d should move to number 3, got page %d number %d",
			fourth.ID, pages[2].ID, pages[2].PageNumber)
	}
}

func TestDeletePageNotFound(t *testing.T) {
	svc, _ := newCourseService(t)
	course := mustCreateCourse(t, svc, "Fire Safety")

	err := svc.DeletePage(course.ID, 1)
	if !errors.Is(err, util.ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestDeleteQuizPageCascades(t *testing.T) {
	svc, db := newCourseService(t)
	course := mustCreateCourse(t, svc, "Fire Safety")
	page := mustAddPage(t, svc, course.ID, model.PageTypeQuiz, "quiz")

	quiz := &model.Quiz{ContentPageID: page.ID, PercentToPass: 60}
	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	for i := 1; i <= 3; i++ {
		q := &model.Question{QuizID: quiz.ID, Number: i, Points: 1, QuestionType: model.QuestionTrueFalse, QuestionText: "q", CorrectChoice: "A"}
		if err := db.Create(q).Error; err != nil {
			t.Fatalf("create question: %v", err)
		}
	}

	if err := svc.DeletePage(course.ID, 1); err != nil {
		t.Fatalf("delete page: %v", err)
	}

	var quizCount, questionCount int64
	db.Model(&model.Quiz{}).Where("content_page_id = ?", page.ID).Count(&quizCount)
	db.Model(&model.Question{}).Where("quiz_id = ?", quiz.ID).Count(&questionCount)
	if quizCount != 0 || questionCount != 0 {
		t.Fatalf("cascade incomplete: %d quizzes, %d questions remain", quizCount, questionCount)
	}
}

func TestDeleteCourseCascades(t *testing.T) {
	svc, db := newCourseService(t)
	course := mustCreateCourse(t, svc, "Fire Safety")

	mustAddPage(t, svc, course.ID, model.PageTypeLesson, "lesson")
	quizPage := mustAddPage(t, svc, course.ID, model.PageTypeQuiz, "quiz")

	quiz := &model.Quiz{ContentPageID: quizPage.ID, PercentToPass: 60}
	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	q := &model.Question{QuizID: quiz.ID, Number: 1, Points: 1, QuestionType: model.QuestionTrueFalse, QuestionText: "q", CorrectChoice: "A"}
	if err := db.Create(q).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}

	if err := svc.DeleteCourse(course.ID); err != nil {
		t.Fatalf("delete course: %v", err)
	}

	var pages, quizzes, questions int64
	db.Model(&model.ContentPage{}).Where("training_id = ?", course.ID).Count(&pages)
	db.Model(&model.Quiz{}).Where("content_page_id = ?", quizPage.ID).Count(&quizzes)
	db.Model(&model.Question{}).Where("quiz_id = ?", quiz.ID).Count(&questions)
	if pages != 0 || quizzes != 0 || questions != 0 {
		t.Fatalf("cascade incomplete: %d pages, %d quizzes, %d questions remain", pages, quizzes, questions)
	}

	_, err := svc.GetCourseByID(course.ID)
	if !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("course should be gone, got %v", err)
	}
}

func TestUpdatePageValidatesContent(t *testing.T) {
	svc, _ := newCourseService(t)
	course := mustCreateCourse(t, svc, "Fire Safety")
	page := mustAddPage(t, svc, course.ID, model.PageTypeLesson, "lesson")

	bad := json.RawMessage(`{"events":[{"date":"1950"}]}`)
	if _, err := svc.UpdatePage(page.ID, PageRequest{PageType: model.PageTypeTimeline, Content: bad}); err == nil {
		t.Fatal("expected error for timeline event without title")
	}

	good := json.RawMessage(`{"events":[{"date":"1950","title":"Founding"}]}`)
	updated, err := svc.UpdatePage(page.ID, PageRequest{PageType: model.PageTypeTimeline, PageDesc: "timeline", Content: good})
	if err != nil {
		t.Fatalf("update page: %v", err)
	}
	if updated.PageType != model.PageTypeTimeline {
		t.Fatalf("page type not updated: %s", updated.PageType)
	}
}

// 完整演练一遍课程编辑流程：建课、加页、交换、删除，最后页码仍然连续。
func TestEarthHistoryCourseLifecycle(t *testing.T) {
	svc, _ := newCourseService(t)
	course := mustCreateCourse(t, svc, "Earth History")

	intro := mustAddPage(t, svc, course.ID, model.PageTypeLesson, "Introduction")
	timeline := mustAddPage(t, svc, course.ID, model.PageTypeTimeline, "Geologic eras")
	quiz := mustAddPage(t, svc, course.ID, model.PageTypeQuiz, "Era quiz")
	closing := mustAddPage(t, svc, course.ID, model.PageTypeLesson, "Closing notes")

	// 把时间线挪到测验后面
	if err := svc.SwapPages(course.ID, 2, 3); err != nil {
		t.Fatalf("swap: %v", err)
	}

	// 删掉结尾页
	if err := svc.DeletePage(course.ID, 4); err != nil {
		t.Fatalf("delete: %v", err)
	}

	pages, err := svc.GetPagesInOrder(course.ID)
	if err != nil {
		t.Fatalf("get pages: %v", err)
	}
	wantOrder := []uint{intro.ID, quiz.ID, timeline.ID}
	if len(pages) != len(wantOrder) {
		t.Fatalf("expected %d pages, got %d", len(wantOrder), len(pages))
	}
	for i, p := range pages {
		if p.ID != wantOrder[i] {
			t.Fatalf("position %d: got page %d, want %d", i+1, p.ID, wantOrder[i])
		}
		if p.PageNumber != i+1 {
			t.Fatalf("position %d: number %d not dense", i+1, p.PageNumber)
		}
		if p.ID == closing.ID {
			t.Fatal("deleted page still present")
		}
	}
}
