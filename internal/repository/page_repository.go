package repository

import (
	"county_training_backend/internal/model"

	"gorm.io/gorm"
)

type PageRepository struct {
	DB *gorm.DB
}

func NewPageRepository(db *gorm.DB) *PageRepository {
	return &PageRepository{DB: db}
}

func (r *PageRepository) FindByID(id uint) (*model.ContentPage, error) {
	var page model.ContentPage
	err := r.DB.First(&page, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// FindByCourseAndNumber 按 (课程, 页码) 定位页面，不存在时返回 (nil, nil)
func (r *PageRepository) FindByCourseAndNumber(courseID uint, pageNumber int) (*model.ContentPage, error) {
	var page model.ContentPage
	err := r.DB.Where("training_id = ? AND page_number = ?", courseID, pageNumber).First(&page).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// FindByCourseOrdered 返回课程全部页面，按页码升序
func (r *PageRepository) FindByCourseOrdered(courseID uint) ([]model.ContentPage, error) {
	var pages []model.ContentPage
	err := r.DB.Where("training_id = ?", courseID).Order("page_number asc").Find(&pages).Error
	return pages, err
}

func (r *PageRepository) Update(page *model.ContentPage) error {
	return r.DB.Save(page).Error
}
