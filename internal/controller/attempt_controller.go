package controller

import (
	"strconv"

	"county_training_backend/internal/model"
	"county_training_backend/internal/service"
	"county_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// SubmitQuiz godoc
// @Summary 提交测验作答
// @Description 提交课程首个测验时自动开启学习尝试，提交末个测验时标记完成
// @Tags 学习记录
// @Accept  json
// @Produce  json
// @Param   body body service.QuizSubmission true "作答内容"
// @Success 201 {object} util.Response{data=model.QuizResult}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "测验或进行中的尝试不存在"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/attempts/submit [post]
func (c *AttemptController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var sub service.QuizSubmission
	if err := ctx.ShouldBindJSON(&sub); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AttemptService.SubmitQuiz(claims.UserID, sub)
	if err != nil {
		if util.IsNotFound(err) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, result)
}

// MyAttempts godoc
// @Summary 当前用户的学习记录
// @Tags 学习记录
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.TrainingAttempt}
// @Failure 401 {object} util.Response "未登录"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/attempts [get]
func (c *AttemptController) MyAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attempts, err := c.AttemptService.GetAttemptsForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// OpenAttempt godoc
// @Summary 当前用户在某课程上进行中的尝试
// @Tags 学习记录
// @Produce  json
// @Param   courseId query int true "课程 ID"
// @Success 200 {object} util.Response{data=model.TrainingAttempt}
// @Failure 404 {object} util.Response "没有进行中的尝试"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/attempts/open [get]
func (c *AttemptController) OpenAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := strconv.ParseUint(ctx.Query("courseId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid courseId")
		return
	}

	attempt, err := c.AttemptService.GetOpenAttempt(claims.UserID, uint(courseID))
	if err != nil {
		if util.IsNotFound(err) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, attempt)
}

// CloseAttempt godoc
// @Summary 手动关闭进行中的尝试
// @Tags 学习记录
// @Produce  json
// @Param   id path int true "尝试 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "尝试不存在"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/attempts/{id}/close [post]
func (c *AttemptController) CloseAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	err := c.AttemptService.CloseAttempt(id, claims.UserID, claims.UserLevel == model.LevelAdmin)
	if err != nil {
		if util.IsNotFound(err) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// UserAttempts godoc
// @Summary 指定用户的学习记录
// @Tags 学习记录
// @Produce  json
// @Param   userId path int true "用户 ID"
// @Success 200 {object} util.Response{data=[]model.TrainingAttempt}
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/user-attempts/{userId} [get]
func (c *AttemptController) UserAttempts(ctx *gin.Context) {
	userID, ok := parseID(ctx, "userId")
	if !ok {
		return
	}

	attempts, err := c.AttemptService.GetAttemptsForUser(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// GetAttempt godoc
// @Summary 尝试详情，含各测验成绩
// @Tags 学习记录
// @Produce  json
// @Param   id path int true "尝试 ID"
// @Success 200 {object} util.Response{data=model.TrainingAttempt}
// @Failure 404 {object} util.Response "尝试不存在"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/attempts/{id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	attempt, err := c.AttemptService.GetAttempt(id)
	if err != nil {
		if util.IsNotFound(err) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	// 普通用户只能看自己的记录
	if claims.UserLevel != model.LevelAdmin && attempt.UserID != claims.UserID {
		util.Forbidden(ctx)
		return
	}

	util.Success(ctx, attempt)
}
