package repository

import (
	"county_training_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// FindOpenAttempt 查找用户在课程上进行中的尝试，不存在时返回 (nil, nil)
func (r *AttemptRepository) FindOpenAttempt(userID, courseID uint) (*model.TrainingAttempt, error) {
	var attempt model.TrainingAttempt
	err := r.DB.Where("user_id = ? AND training_course_id = ? AND status = ?",
		userID, courseID, model.AttemptInProgress).
		Order("attempt_date_time desc").
		First(&attempt).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) FindByID(id uint) (*model.TrainingAttempt, error) {
	var attempt model.TrainingAttempt
	err := r.DB.Preload("QuizResults").First(&attempt, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// FindByUser 用户的全部尝试，最近的在前，带测验结果
func (r *AttemptRepository) FindByUser(userID uint) ([]model.TrainingAttempt, error) {
	var attempts []model.TrainingAttempt
	err := r.DB.Where("user_id = ?", userID).
		Preload("QuizResults").
		Order("attempt_date_time desc").
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) UpdateStatus(attemptID uint, status model.AttemptStatus) error {
	return r.DB.Model(&model.TrainingAttempt{}).
		Where("id = ?", attemptID).
		Update("status", status).Error
}
