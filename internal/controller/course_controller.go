package controller

import (
	"errors"
	"strconv"

	"county_training_backend/internal/service"
	"county_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

func parseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// CreateCourse godoc
// @Summary 创建课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Param   body body service.CourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.TrainingCourse}
// @Failure 400 {object} util.Response "课程名缺失"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(req)
	if err != nil {
		if errors.Is(err, util.ErrCourseNameRequired) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, course)
}

// ListCourses godoc
// @Summary 全部课程列表
// @Tags 课程
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.TrainingCourse}
// @Failure 500 {object} util.Response
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.CourseService.GetAllCourses()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary 课程详情
// @Tags 课程
// @Produce  json
// @Param   id path int true "课程 ID"
// @Success 200 {object} util.Response{data=model.TrainingCourse}
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 500 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	course, err := c.CourseService.GetCourseByID(id)
	if err != nil {
		if util.IsNotFound(err) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// GetCoursePages godoc
// @Summary 课程全部页面，按页码升序
// @Tags 课程
// @Produce  json
// @Param   id path int true "课程 ID"
// @Success 200 {object} util.Response{data=[]model.ContentPage}
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 500 {object} util.Response
// @Router /api/courses/{id}/pages [get]
func (c *CourseController) GetCoursePages(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	pages, err := c.CourseService.GetPagesInOrder(id)
	if err != nil {
		if util.IsNotFound(err) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, pages)
}

// GetPage godoc
// @Summary 按页码取课程单页
// @Tags 课程
// @Produce  json
// @Param   id path int true "课程 ID"
// @Param   pageNum path int true "页码"
// @Success 200 {object} util.Response{data=model.ContentPage}
// @Failure 404 {object} util.Response "页面不存在"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/courses/{id}/pages/{pageNum} [get]
func (c *CourseController) GetPage(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	pageNum, err := strconv.Atoi(ctx.Param("pageNum"))
	if err != nil {
		util.BadRequest(ctx, "invalid pageNum")
		return
	}

	page, err := c.CourseService.GetPage(id, pageNum)
	if err != nil {
		if util.IsNotFound(err) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, page)
}

// UpdateCourse godoc
// @Summary 更新课程信息
// @Tags 课程
// @Accept  json
// @Produce  json
// @Param   id path int true "课程 ID"
// @Param   body body service.CourseRequest true "课程信息"
// @Success 200 {object} util.Response{data=model.TrainingCourse}
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(id, req)
	if err != nil {
		if util.IsNotFound(err) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary 删除课程及其全部页面、测验与题目
// @Tags 课程
// @Produce  json
// @Param   id path int true "课程 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.CourseService.DeleteCourse(id); err != nil {
		if util.IsNotFound(err) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// AddPage godoc
// @Summary 在课程末尾追加页面
// @Description 页码由服务端分配，始终追加到末尾
// @Tags 课程
// @Accept  json
// @Produce  json
// @Param   id path int true "课程 ID"
// @Param   body body service.PageRequest true "页面信息"
// @Success 201 {object} util.Response{data=model.ContentPage}
// @Failure 400 {object} util.Response "页面类型或内容非法"
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/courses/{id}/pages [post]
func (c *CourseController) AddPage(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req service.PageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	page, err := c.CourseService.AddPage(id, req)
	if err != nil {
		switch {
		case util.IsNotFound(err):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrInvalidPageType):
			util.BadRequest(ctx, err.Error())
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Created(ctx, page)
}

// SwapPagesRequest 页面交换请求，两个页码都必须在 1..N 内
type SwapPagesRequest struct {
	PageNum1 int `json:"pageNum1" binding:"required"`
	PageNum2 int `json:"pageNum2" binding:"required"`
}

// SwapPages godoc
// @Summary 交换两个页面的位置
// @Tags 课程
// @Accept  json
// @Produce  json
// @Param   id path int true "课程 ID"
// @Param   body body SwapPagesRequest true "要交换的两个页码"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "页码越界"
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/courses/{id}/pages/swap [post]
func (c *CourseController) SwapPages(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req SwapPagesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CourseService.SwapPages(id, req.PageNum1, req.PageNum2); err != nil {
		switch {
		case util.IsNotFound(err):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPageNumOutOfRange):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// UpdatePage godoc
// @Summary 更新页面内容
// @Tags 课程
// @Accept  json
// @Produce  json
// @Param   pageId path int true "页面 ID"
// @Param   body body service.PageRequest true "页面信息"
// @Success 200 {object} util.Response{data=model.ContentPage}
// @Failure 400 {object} util.Response "页面类型或内容非法"
// @Failure 404 {object} util.Response "页面不存在"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/pages/{pageId} [put]
func (c *CourseController) UpdatePage(ctx *gin.Context) {
	pageID, ok := parseID(ctx, "pageId")
	if !ok {
		return
	}

	var req service.PageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	page, err := c.CourseService.UpdatePage(pageID, req)
	if err != nil {
		switch {
		case util.IsNotFound(err):
			util.NotFound(ctx, err.Error())
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, page)
}

// DeletePage godoc
// @Summary 删除课程内指定页码的页面
// @Description Quiz 页会连带删除测验与题目，其后页面页码前移
// @Tags 课程
// @Produce  json
// @Param   id path int true "课程 ID"
// @Param   pageNum path int true "页码"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "页面不存在"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/courses/{id}/pages/{pageNum} [delete]
func (c *CourseController) DeletePage(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	pageNum, err := strconv.Atoi(ctx.Param("pageNum"))
	if err != nil {
		util.BadRequest(ctx, "invalid pageNum")
		return
	}

	if err := c.CourseService.DeletePage(id, pageNum); err != nil {
		if util.IsNotFound(err) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
