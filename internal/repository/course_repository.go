package repository

import (
	"county_training_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.TrainingCourse) error {
	return r.DB.Create(course).Error
}

// FindByID 不存在时返回 (nil, nil)，由服务层决定如何上报
func (r *CourseRepository) FindByID(id uint) (*model.TrainingCourse, error) {
	var course model.TrainingCourse
	err := r.DB.First(&course, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindAll() ([]model.TrainingCourse, error) {
	var courses []model.TrainingCourse
	err := r.DB.Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Update(course *model.TrainingCourse) error {
	return r.DB.Save(course).Error
}
