package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"county_training_backend/internal/model"
	"county_training_backend/internal/repository"
	"county_training_backend/internal/util"
	"county_training_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const pageCacheKeyPrefix = "training:pages:"
const pageCacheTTL = 10 * time.Minute

// CourseService 管理课程及其有序页面列表。
// 页码在课程内必须保持 1..N 连续无空洞；所有多行变更都在单个事务内完成。
type CourseService struct {
	CourseRepo *repository.CourseRepository
	PageRepo   *repository.PageRepository
	QuizRepo   *repository.QuizRepository
	Redis      *redis.Client
	DB         *gorm.DB
}

func NewCourseService(courseRepo *repository.CourseRepository, pageRepo *repository.PageRepository,
	quizRepo *repository.QuizRepository, rdb *redis.Client, db *gorm.DB) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		PageRepo:   pageRepo,
		QuizRepo:   quizRepo,
		Redis:      rdb,
		DB:         db,
	}
}

type CourseRequest struct {
	CourseName string `json:"courseName"`
	CourseDesc string `json:"courseDesc"`
	EstMinutes int    `json:"estMinutes"`
}

type PageRequest struct {
	PageType model.PageType  `json:"pageType"`
	PageDesc string          `json:"pageDesc"`
	Content  json.RawMessage `json:"content"`
}

// ValidateCourseRequest 表单式校验：名称非空，预计分钟数必须是数字。
func (s *CourseService) ValidateCourseRequest(courseName, estMinutes string) []string {
	errs := []string{}
	if strings.TrimSpace(courseName) == "" {
		errs = append(errs, "Please enter a name for the course")
	}
	if _, err := strconv.Atoi(strings.TrimSpace(estMinutes)); err != nil {
		errs = append(errs, "Please enter estimated minutes for the course")
	}
	return errs
}

func (s *CourseService) CreateCourse(req CourseRequest) (*model.TrainingCourse, error) {
	if strings.TrimSpace(req.CourseName) == "" {
		return nil, util.ErrCourseNameRequired
	}

	course := &model.TrainingCourse{
		CourseName: req.CourseName,
		CourseDesc: req.CourseDesc,
		EstMinutes: req.EstMinutes,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return course, nil
}

func (s *CourseService) GetCourseByID(id uint) (*model.TrainingCourse, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("find course: %w", err)
	}
	if course == nil {
		return nil, util.ErrCourseNotFound
	}
	return course, nil
}

func (s *CourseService) GetAllCourses() ([]model.TrainingCourse, error) {
	return s.CourseRepo.FindAll()
}

// GetPagesInOrder 返回课程全部页面，按页码升序。课程不存在时报 ErrCourseNotFound，
// 与底层存储错误区分。结果带 Redis 缓存，任何页面变更都会使缓存失效。
func (s *CourseService) GetPagesInOrder(courseID uint) ([]model.ContentPage, error) {
	if _, err := s.GetCourseByID(courseID); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		cached, err := s.Redis.Get(context.Background(), pageCacheKey(courseID)).Result()
		if err == nil {
			var pages []model.ContentPage
			if json.Unmarshal([]byte(cached), &pages) == nil {
				return pages, nil
			}
		}
	}

	pages, err := s.PageRepo.FindByCourseOrdered(courseID)
	if err != nil {
		return nil, fmt.Errorf("find pages: %w", err)
	}

	if s.Redis != nil {
		if data, err := json.Marshal(pages); err == nil {
			s.Redis.Set(context.Background(), pageCacheKey(courseID), data, pageCacheTTL)
		}
	}

	return pages, nil
}

// AddPage 在课程末尾追加页面。页码由服务在插入事务内按当前页数 +1 分配，
// 调用方无法制造空洞或重号。
func (s *CourseService) AddPage(courseID uint, req PageRequest) (*model.ContentPage, error) {
	if !model.ValidPageType(req.PageType) {
		return nil, util.ErrInvalidPageType
	}
	if err := model.ValidatePageContent(req.PageType, req.Content); err != nil {
		return nil, err
	}

	page := &model.ContentPage{
		TrainingID: courseID,
		PageType:   req.PageType,
		PageDesc:   req.PageDesc,
		Content:    req.Content,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var course model.TrainingCourse
		if err := tx.First(&course, courseID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return util.ErrCourseNotFound
			}
			return fmt.Errorf("find course: %w", err)
		}

		var count int64
		if err := tx.Model(&model.ContentPage{}).Where("training_id = ?", courseID).Count(&count).Error; err != nil {
			return fmt.Errorf("count pages: %w", err)
		}

		page.PageNumber = int(count) + 1
		if err := tx.Create(page).Error; err != nil {
			return fmt.Errorf("create page: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidatePageCache(courseID)
	return page, nil
}

// SwapPages 交换两个页码对应页面的位置。页码越界报 ErrPageNumOutOfRange，
// 两次更新在同一事务内，要么都生效要么都回滚。
func (s *CourseService) SwapPages(courseID uint, pageNum1, pageNum2 int) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var course model.TrainingCourse
		if err := tx.First(&course, courseID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return util.ErrCourseNotFound
			}
			return fmt.Errorf("find course: %w", err)
		}

		var count int64
		if err := tx.Model(&model.ContentPage{}).Where("training_id = ?", courseID).Count(&count).Error; err != nil {
			return fmt.Errorf("count pages: %w", err)
		}
		n := int(count)
		if pageNum1 < 1 || pageNum1 > n || pageNum2 < 1 || pageNum2 > n {
			return util.ErrPageNumOutOfRange
		}
		if pageNum1 == pageNum2 {
			return nil
		}

		var page1, page2 model.ContentPage
		if err := tx.Where("training_id = ? AND page_number = ?", courseID, pageNum1).First(&page1).Error; err != nil {
			return fmt.Errorf("find page %d: %w", pageNum1, err)
		}
		if err := tx.Where("training_id = ? AND page_number = ?", courseID, pageNum2).First(&page2).Error; err != nil {
			return fmt.Errorf("find page %d: %w", pageNum2, err)
		}

		if err := tx.Model(&page1).Update("page_number", pageNum2).Error; err != nil {
			return fmt.Errorf("update page %d: %w", pageNum1, err)
		}
		if err := tx.Model(&page2).Update("page_number", pageNum1).Error; err != nil {
			return fmt.Errorf("update page %d: %w", pageNum2, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidatePageCache(courseID)
	return nil
}

// DeletePage 删除课程内指定页码的页面。Quiz 页先级联删除测验与题目；
// 随后被删页之后的所有页码减一，恢复 1..N 连续。整个过程单事务。
func (s *CourseService) DeletePage(courseID uint, pageNum int) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var page model.ContentPage
		err := tx.Where("training_id = ? AND page_number = ?", courseID, pageNum).First(&page).Error
		if err == gorm.ErrRecordNotFound {
			return util.ErrPageNotFound
		}
		if err != nil {
			return fmt.Errorf("find page: %w", err)
		}

		if page.PageType == model.PageTypeQuiz {
			if err := deleteQuizForPage(tx, page.ID); err != nil {
				return err
			}
		}

		return deleteContentPage(tx, courseID, &page)
	})
	if err != nil {
		monitoring.CascadeDeleteCounter.WithLabelValues("page", "error").Inc()
		return err
	}

	monitoring.CascadeDeleteCounter.WithLabelValues("page", "ok").Inc()
	s.invalidatePageCache(courseID)
	return nil
}

// deleteContentPage 删除页面行并收紧后续页码。必须在调用方事务内执行。
func deleteContentPage(tx *gorm.DB, courseID uint, page *model.ContentPage) error {
	if err := tx.Delete(page).Error; err != nil {
		return fmt.Errorf("delete page: %w", err)
	}

	err := tx.Model(&model.ContentPage{}).
		Where("training_id = ? AND page_number > ?", courseID, page.PageNumber).
		UpdateColumn("page_number", gorm.Expr("page_number - 1")).Error
	if err != nil {
		return fmt.Errorf("renumber pages: %w", err)
	}
	return nil
}

// deleteQuizForPage 级联删除页面附带的测验及其全部题目。
// 测验不存在视为无事可做（页面可能还没配置测验）。
func deleteQuizForPage(tx *gorm.DB, pageID uint) error {
	var quiz model.Quiz
	err := tx.Where("content_page_id = ?", pageID).First(&quiz).Error
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("find quiz for page: %w", err)
	}

	if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&model.Question{}).Error; err != nil {
		return fmt.Errorf("delete questions: %w", err)
	}
	if err := tx.Delete(&quiz).Error; err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	return nil
}

// DeleteCourse 删除课程及其全部页面（Quiz 页连同测验和题目）。
// 子级全部删完才删课程行，任何一步失败整体回滚。
func (s *CourseService) DeleteCourse(courseID uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var course model.TrainingCourse
		err := tx.First(&course, courseID).Error
		if err == gorm.ErrRecordNotFound {
			return util.ErrCourseNotFound
		}
		if err != nil {
			return fmt.Errorf("find course: %w", err)
		}

		var pages []model.ContentPage
		if err := tx.Where("training_id = ?", courseID).Find(&pages).Error; err != nil {
			return fmt.Errorf("find pages: %w", err)
		}

		for _, page := range pages {
			if page.PageType == model.PageTypeQuiz {
				if err := deleteQuizForPage(tx, page.ID); err != nil {
					return err
				}
			}
		}

		if err := tx.Where("training_id = ?", courseID).Delete(&model.ContentPage{}).Error; err != nil {
			return fmt.Errorf("delete pages: %w", err)
		}

		if err := tx.Delete(&course).Error; err != nil {
			return fmt.Errorf("delete course: %w", err)
		}
		return nil
	})
	if err != nil {
		monitoring.CascadeDeleteCounter.WithLabelValues("course", "error").Inc()
		return err
	}

	monitoring.CascadeDeleteCounter.WithLabelValues("course", "ok").Inc()
	s.invalidatePageCache(courseID)
	return nil
}

// GetPage 按 (课程, 页码) 取单个页面
func (s *CourseService) GetPage(courseID uint, pageNum int) (*model.ContentPage, error) {
	page, err := s.PageRepo.FindByCourseAndNumber(courseID, pageNum)
	if err != nil {
		return nil, fmt.Errorf("find page: %w", err)
	}
	if page == nil {
		return nil, util.ErrPageNotFound
	}
	return page, nil
}

// UpdateCourse 更新名称/描述/预计时长
func (s *CourseService) UpdateCourse(id uint, req CourseRequest) (*model.TrainingCourse, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("find course: %w", err)
	}
	if course == nil {
		return nil, util.ErrCourseNotFound
	}

	course.CourseName = req.CourseName
	course.CourseDesc = req.CourseDesc
	course.EstMinutes = req.EstMinutes

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	return course, nil
}

// UpdatePage 更新页面类型/描述/内容，内容按新类型重新校验
func (s *CourseService) UpdatePage(pageID uint, req PageRequest) (*model.ContentPage, error) {
	if !model.ValidPageType(req.PageType) {
		return nil, util.ErrInvalidPageType
	}
	if err := model.ValidatePageContent(req.PageType, req.Content); err != nil {
		return nil, err
	}

	page, err := s.PageRepo.FindByID(pageID)
	if err != nil {
		return nil, fmt.Errorf("find page: %w", err)
	}
	if page == nil {
		return nil, util.ErrPageNotFound
	}

	page.PageType = req.PageType
	page.PageDesc = req.PageDesc
	page.Content = req.Content

	if err := s.PageRepo.Update(page); err != nil {
		return nil, fmt.Errorf("update page: %w", err)
	}

	s.invalidatePageCache(page.TrainingID)
	return page, nil
}

func pageCacheKey(courseID uint) string {
	return pageCacheKeyPrefix + strconv.FormatUint(uint64(courseID), 10)
}

func (s *CourseService) invalidatePageCache(courseID uint) {
	if s.Redis != nil {
		s.Redis.Del(context.Background(), pageCacheKey(courseID))
	}
}
