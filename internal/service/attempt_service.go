package service

import (
	"fmt"
	"strings"

	"county_training_backend/internal/model"
	"county_training_backend/internal/repository"
	"county_training_backend/internal/util"

	"gorm.io/gorm"
)

// AttemptService 跟踪用户学习进度。一次尝试覆盖课程的全部测验：
// 提交课程第一个测验时开启尝试，提交最后一个测验时标记完成。
type AttemptService struct {
	AttemptRepo *repository.AttemptRepository
	QuizRepo    *repository.QuizRepository
	PageRepo    *repository.PageRepository
	DB          *gorm.DB
}

func NewAttemptService(attemptRepo *repository.AttemptRepository, quizRepo *repository.QuizRepository,
	pageRepo *repository.PageRepository, db *gorm.DB) *AttemptService {
	return &AttemptService{
		AttemptRepo: attemptRepo,
		QuizRepo:    quizRepo,
		PageRepo:    pageRepo,
		DB:          db,
	}
}

type QuizSubmission struct {
	QuizID    uint                `json:"quizId" binding:"required"`
	CourseID  uint                `json:"courseId" binding:"required"`
	Responses []ResponseSubmitted `json:"responses" binding:"required"`
}

type ResponseSubmitted struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer"`
}

// quizPosition 测验所在页面在课程测验页序列中的位置
type quizPosition struct {
	first bool
	last  bool
}

// locateQuiz 在事务内确定测验是否为课程的第一个/最后一个测验页
func (s *AttemptService) locateQuiz(tx *gorm.DB, courseID, quizID uint) (quizPosition, error) {
	var quiz model.Quiz
	if err := tx.First(&quiz, quizID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return quizPosition{}, util.ErrQuizNotFound
		}
		return quizPosition{}, fmt.Errorf("find quiz: %w", err)
	}

	var quizPages []model.ContentPage
	err := tx.Where("training_id = ? AND page_type = ?", courseID, model.PageTypeQuiz).
		Order("page_number asc").Find(&quizPages).Error
	if err != nil {
		return quizPosition{}, fmt.Errorf("find quiz pages: %w", err)
	}
	if len(quizPages) == 0 {
		return quizPosition{}, util.ErrQuizNotFound
	}

	return quizPosition{
		first: quizPages[0].ID == quiz.ContentPageID,
		last:  quizPages[len(quizPages)-1].ID == quiz.ContentPageID,
	}, nil
}

// SubmitQuiz 给测验评分并入库。首个测验自动开启尝试，末个测验关闭尝试；
// 评分、作答明细、尝试状态变更全部在一个事务内。
func (s *AttemptService) SubmitQuiz(userID uint, sub QuizSubmission) (*model.QuizResult, error) {
	var result *model.QuizResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		pos, err := s.locateQuiz(tx, sub.CourseID, sub.QuizID)
		if err != nil {
			return err
		}

		attempt, err := s.resolveAttempt(tx, userID, sub.CourseID, pos)
		if err != nil {
			return err
		}

		var quiz model.Quiz
		if err := tx.First(&quiz, sub.QuizID).Error; err != nil {
			return fmt.Errorf("find quiz: %w", err)
		}

		var questions []model.Question
		if err := tx.Where("quiz_id = ?", quiz.ID).Find(&questions).Error; err != nil {
			return fmt.Errorf("find questions: %w", err)
		}

		score := scoreSubmission(questions, sub.Responses)
		result = &model.QuizResult{
			AttemptID: attempt.ID,
			QuizID:    quiz.ID,
			Score:     score,
			Passed:    score >= quiz.PercentToPass,
		}
		if err := tx.Create(result).Error; err != nil {
			return fmt.Errorf("create result: %w", err)
		}

		for _, resp := range sub.Responses {
			response := model.UserResponse{
				QuizResultID: result.ID,
				UserID:       userID,
				QuestionID:   resp.QuestionID,
				UserAnswer:   resp.Answer,
			}
			if err := tx.Create(&response).Error; err != nil {
				return fmt.Errorf("create response: %w", err)
			}
		}

		if pos.last {
			err := tx.Model(&model.TrainingAttempt{}).
				Where("id = ?", attempt.ID).
				Update("status", model.AttemptDone).Error
			if err != nil {
				return fmt.Errorf("close attempt: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// resolveAttempt 找到本次提交归属的尝试。首个测验新建一条（单测验课程直接
// 建成完成态由调用方收尾），其余测验必须已有进行中的尝试。
func (s *AttemptService) resolveAttempt(tx *gorm.DB, userID, courseID uint, pos quizPosition) (*model.TrainingAttempt, error) {
	if pos.first {
		attempt := &model.TrainingAttempt{
			UserID:           userID,
			TrainingCourseID: courseID,
			Status:           model.AttemptInProgress,
		}
		if err := tx.Create(attempt).Error; err != nil {
			return nil, fmt.Errorf("create attempt: %w", err)
		}
		return attempt, nil
	}

	var attempt model.TrainingAttempt
	err := tx.Where("user_id = ? AND training_course_id = ? AND status = ?",
		userID, courseID, model.AttemptInProgress).
		Order("attempt_date_time desc").
		First(&attempt).Error
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrAttemptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find attempt: %w", err)
	}
	return &attempt, nil
}

// scoreSubmission 按得分点计分：答对累加题目分值，总分为全部题目分值之和，
// 结果换算为 0-100 的整数百分比。评分题（rating）不设对错，记满分。
func scoreSubmission(questions []model.Question, responses []ResponseSubmitted) int {
	answers := make(map[uint]string, len(responses))
	for _, resp := range responses {
		answers[resp.QuestionID] = resp.Answer
	}

	total := 0
	earned := 0
	for _, q := range questions {
		total += q.Points
		answer, ok := answers[q.ID]
		if !ok {
			continue
		}
		if q.QuestionType == model.QuestionRating {
			earned += q.Points
			continue
		}
		if strings.EqualFold(strings.TrimSpace(answer), q.CorrectChoice) {
			earned += q.Points
		}
	}

	if total == 0 {
		return 100
	}
	return earned * 100 / total
}

// GetAttempt 按 ID 取尝试，带测验结果
func (s *AttemptService) GetAttempt(id uint) (*model.TrainingAttempt, error) {
	attempt, err := s.AttemptRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("find attempt: %w", err)
	}
	if attempt == nil {
		return nil, util.ErrAttemptNotFound
	}
	return attempt, nil
}

// GetAttemptsForUser 用户的全部尝试，最近的在前
func (s *AttemptService) GetAttemptsForUser(userID uint) ([]model.TrainingAttempt, error) {
	return s.AttemptRepo.FindByUser(userID)
}

// GetOpenAttempt 用户在某课程上进行中的尝试，前端续学时用
func (s *AttemptService) GetOpenAttempt(userID, courseID uint) (*model.TrainingAttempt, error) {
	attempt, err := s.AttemptRepo.FindOpenAttempt(userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("find open attempt: %w", err)
	}
	if attempt == nil {
		return nil, util.ErrAttemptNotFound
	}
	return attempt, nil
}

// CloseAttempt 手动关闭一次进行中的尝试。只允许本人（或管理员）操作。
func (s *AttemptService) CloseAttempt(attemptID, userID uint, isAdmin bool) error {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		return fmt.Errorf("find attempt: %w", err)
	}
	if attempt == nil {
		return util.ErrAttemptNotFound
	}
	if !isAdmin && attempt.UserID != userID {
		return util.ErrAttemptNotFound
	}
	return s.AttemptRepo.UpdateStatus(attempt.ID, model.AttemptDone)
}
