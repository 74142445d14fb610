package service

import (
	"fmt"

	"county_training_backend/internal/model"
	"county_training_backend/internal/repository"
	"county_training_backend/internal/util"

	"gorm.io/gorm"
)

// QuizService 管理测验与题目。题号与页码遵守同一条纪律：
// 测验内 1..N 连续，由服务在事务内分配和收紧。
type QuizService struct {
	QuizRepo *repository.QuizRepository
	PageRepo *repository.PageRepository
	DB       *gorm.DB
}

func NewQuizService(quizRepo *repository.QuizRepository, pageRepo *repository.PageRepository, db *gorm.DB) *QuizService {
	return &QuizService{QuizRepo: quizRepo, PageRepo: pageRepo, DB: db}
}

type QuizRequest struct {
	ContentPageID uint `json:"contentPageId"`
	PercentToPass int  `json:"percentToPass"`
}

type QuestionRequest struct {
	QuestionType  model.QuestionType `json:"questionType"`
	QuestionText  string             `json:"questionText"`
	Points        int                `json:"points"`
	ChoiceA       string             `json:"choiceA"`
	ChoiceB       string             `json:"choiceB"`
	ChoiceC       string             `json:"choiceC"`
	ChoiceD       string             `json:"choiceD"`
	CorrectChoice string             `json:"correctChoice"`
}

// CreateQuiz 在 Quiz 类型页面上创建测验。一个页面至多一个测验，
// 重复创建报 ErrQuizExists。及格线缺省 60。
func (s *QuizService) CreateQuiz(req QuizRequest) (*model.Quiz, error) {
	page, err := s.PageRepo.FindByID(req.ContentPageID)
	if err != nil {
		return nil, fmt.Errorf("find page: %w", err)
	}
	if page == nil {
		return nil, util.ErrPageNotFound
	}
	if page.PageType != model.PageTypeQuiz {
		return nil, util.ErrInvalidPageType
	}

	existing, err := s.QuizRepo.FindByPageID(page.ID)
	if err != nil {
		return nil, fmt.Errorf("find quiz: %w", err)
	}
	if existing != nil {
		return nil, util.ErrQuizExists
	}

	percent := req.PercentToPass
	if percent <= 0 {
		percent = 60
	}
	if percent > 100 {
		percent = 100
	}

	quiz := &model.Quiz{
		ContentPageID: page.ID,
		PercentToPass: percent,
	}
	if err := s.DB.Create(quiz).Error; err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	return quiz, nil
}

// AddQuestionToQuiz 在测验末尾追加题目，题号在插入事务内按当前题数 +1 分配
func (s *QuizService) AddQuestionToQuiz(quizID uint, req QuestionRequest) (*model.Question, error) {
	if !model.ValidQuestionType(req.QuestionType) {
		return nil, util.ErrInvalidQuestionType
	}

	points := req.Points
	if points <= 0 {
		points = 1
	}

	question := &model.Question{
		QuizID:        quizID,
		QuestionType:  req.QuestionType,
		QuestionText:  req.QuestionText,
		Points:        points,
		ChoiceA:       req.ChoiceA,
		ChoiceB:       req.ChoiceB,
		ChoiceC:       req.ChoiceC,
		ChoiceD:       req.ChoiceD,
		CorrectChoice: req.CorrectChoice,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var quiz model.Quiz
		if err := tx.First(&quiz, quizID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return util.ErrQuizNotFound
			}
			return fmt.Errorf("find quiz: %w", err)
		}

		var count int64
		if err := tx.Model(&model.Question{}).Where("quiz_id = ?", quizID).Count(&count).Error; err != nil {
			return fmt.Errorf("count questions: %w", err)
		}

		question.Number = int(count) + 1
		if err := tx.Create(question).Error; err != nil {
			return fmt.Errorf("create question: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

// DeleteQuestion 删除题目并把其后题号减一，单事务内完成
func (s *QuizService) DeleteQuestion(questionID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var question model.Question
		err := tx.First(&question, questionID).Error
		if err == gorm.ErrRecordNotFound {
			return util.ErrQuestionNotFound
		}
		if err != nil {
			return fmt.Errorf("find question: %w", err)
		}

		if err := tx.Delete(&question).Error; err != nil {
			return fmt.Errorf("delete question: %w", err)
		}

		err = tx.Model(&model.Question{}).
			Where("quiz_id = ? AND number > ?", question.QuizID, question.Number).
			UpdateColumn("number", gorm.Expr("number - 1")).Error
		if err != nil {
			return fmt.Errorf("renumber questions: %w", err)
		}
		return nil
	})
}

// DeleteQuiz 删除测验及其全部题目，单事务
func (s *QuizService) DeleteQuiz(quizID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var quiz model.Quiz
		err := tx.First(&quiz, quizID).Error
		if err == gorm.ErrRecordNotFound {
			return util.ErrQuizNotFound
		}
		if err != nil {
			return fmt.Errorf("find quiz: %w", err)
		}

		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&model.Question{}).Error; err != nil {
			return fmt.Errorf("delete questions: %w", err)
		}
		if err := tx.Delete(&quiz).Error; err != nil {
			return fmt.Errorf("delete quiz: %w", err)
		}
		return nil
	})
}

// GetQuiz 按所属页面查测验
func (s *QuizService) GetQuiz(pageID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByPageID(pageID)
	if err != nil {
		return nil, fmt.Errorf("find quiz: %w", err)
	}
	if quiz == nil {
		return nil, util.ErrQuizNotFound
	}
	return quiz, nil
}

func (s *QuizService) GetQuizByID(id uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("find quiz: %w", err)
	}
	if quiz == nil {
		return nil, util.ErrQuizNotFound
	}
	return quiz, nil
}

// GetAllQuestions 返回测验全部题目，按题号升序
func (s *QuizService) GetAllQuestions(quizID uint) ([]model.Question, error) {
	if _, err := s.GetQuizByID(quizID); err != nil {
		return nil, err
	}
	return s.QuizRepo.FindQuestionsByQuiz(quizID)
}

// QuizInfo 把题目定位回它在课程中的位置，编辑界面跳转用
type QuizInfo struct {
	QuizID     uint `json:"quizId"`
	CourseID   uint `json:"courseId"`
	PageNumber int  `json:"pageNumber"`
}

// GetQuizInfo 沿 题目→测验→页面 链路解析课程与页码
func (s *QuizService) GetQuizInfo(questionID uint) (*QuizInfo, error) {
	question, err := s.QuizRepo.FindQuestionByID(questionID)
	if err != nil {
		return nil, fmt.Errorf("find question: %w", err)
	}
	if question == nil {
		return nil, util.ErrQuestionNotFound
	}

	quiz, err := s.QuizRepo.FindByID(question.QuizID)
	if err != nil {
		return nil, fmt.Errorf("find quiz: %w", err)
	}
	if quiz == nil {
		return nil, util.ErrQuizNotFound
	}

	page, err := s.PageRepo.FindByID(quiz.ContentPageID)
	if err != nil {
		return nil, fmt.Errorf("find page: %w", err)
	}
	if page == nil {
		return nil, util.ErrPageNotFound
	}

	return &QuizInfo{
		QuizID:     quiz.ID,
		CourseID:   page.TrainingID,
		PageNumber: page.PageNumber,
	}, nil
}

// UpdateQuestion 更新题面与选项，题号不变
func (s *QuizService) UpdateQuestion(questionID uint, req QuestionRequest) (*model.Question, error) {
	if !model.ValidQuestionType(req.QuestionType) {
		return nil, util.ErrInvalidQuestionType
	}

	question, err := s.QuizRepo.FindQuestionByID(questionID)
	if err != nil {
		return nil, fmt.Errorf("find question: %w", err)
	}
	if question == nil {
		return nil, util.ErrQuestionNotFound
	}

	question.QuestionType = req.QuestionType
	question.QuestionText = req.QuestionText
	if req.Points > 0 {
		question.Points = req.Points
	}
	question.ChoiceA = req.ChoiceA
	question.ChoiceB = req.ChoiceB
	question.ChoiceC = req.ChoiceC
	question.ChoiceD = req.ChoiceD
	question.CorrectChoice = req.CorrectChoice

	if err := s.QuizRepo.UpdateQuestion(question); err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}
	return question, nil
}
