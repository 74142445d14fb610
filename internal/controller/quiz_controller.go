package controller

import (
	"errors"

	"county_training_backend/internal/service"
	"county_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// CreateQuiz godoc
// @Summary 在 Quiz 页面上创建测验
// @Tags 测验
// @Accept  json
// @Produce  json
// @Param   body body service.QuizRequest true "测验信息"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response "页面类型不是 Quiz"
// @Failure 404 {object} util.Response "页面不存在"
// @Failure 409 {object} util.Response "页面已有测验"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.CreateQuiz(req)
	if err != nil {
		switch {
		case util.IsNotFound(err):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrQuizExists):
			util.Error(ctx, 409, err.Error())
		case errors.Is(err, util.ErrInvalidPageType):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, quiz)
}

// GetQuizByPage godoc
// @Summary 按页面查测验
// @Tags 测验
// @Produce  json
// @Param   pageId path int true "页面 ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response "测验不存在"
// @Failure 500 {object} util.Response
// @Router /api/pages/{pageId}/quiz [get]
func (c *QuizController) GetQuizByPage(ctx *gin.Context) {
	pageID, ok := parseID(ctx, "pageId")
	if !ok {
		return
	}

	quiz, err := c.QuizService.GetQuiz(pageID)
	if err != nil {
		if util.IsNotFound(err) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// GetQuestions godoc
// @Summary 测验全部题目，按题号升序
// @Tags 测验
// @Produce  json
// @Param   id path int true "测验 ID"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Failure 404 {object} util.Response "测验不存在"
// @Failure 500 {object} util.Response
// @Router /api/quizzes/{id}/questions [get]
func (c *QuizController) GetQuestions(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	questions, err := c.QuizService.GetAllQuestions(id)
	if err != nil {
		if util.IsNotFound(err) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, questions)
}

// AddQuestion godoc
// @Summary 在测验末尾追加题目
// @Tags 测验
// @Accept  json
// @Produce  json
// @Param   id path int true "测验 ID"
// @Param   body body service.QuestionRequest true "题目信息"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response "题目类型非法"
// @Failure 404 {object} util.Response "测验不存在"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/quizzes/{id}/questions [post]
func (c *QuizController) AddQuestion(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizService.AddQuestionToQuiz(id, req)
	if err != nil {
		switch {
		case util.IsNotFound(err):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrInvalidQuestionType):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, question)
}

// UpdateQuestion godoc
// @Summary 更新题目
// @Tags 测验
// @Accept  json
// @Produce  json
// @Param   questionId path int true "题目 ID"
// @Param   body body service.QuestionRequest true "题目信息"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response "题目类型非法"
// @Failure 404 {object} util.Response "题目不存在"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/questions/{questionId} [put]
func (c *QuizController) UpdateQuestion(ctx *gin.Context) {
	questionID, ok := parseID(ctx, "questionId")
	if !ok {
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizService.UpdateQuestion(questionID, req)
	if err != nil {
		switch {
		case util.IsNotFound(err):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrInvalidQuestionType):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary 删除题目并收紧其后题号
// @Tags 测验
// @Produce  json
// @Param   questionId path int true "题目 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "题目不存在"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/questions/{questionId} [delete]
func (c *QuizController) DeleteQuestion(ctx *gin.Context) {
	questionID, ok := parseID(ctx, "questionId")
	if !ok {
		return
	}

	if err := c.QuizService.DeleteQuestion(questionID); err != nil {
		if util.IsNotFound(err) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// DeleteQuiz godoc
// @Summary 删除测验及其全部题目
// @Tags 测验
// @Produce  json
// @Param   id path int true "测验 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "测验不存在"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.QuizService.DeleteQuiz(id); err != nil {
		if util.IsNotFound(err) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// GetQuizInfo godoc
// @Summary 题目定位信息
// @Description 返回题目所属测验、课程与页码，编辑界面跳转用
// @Tags 测验
// @Produce  json
// @Param   questionId path int true "题目 ID"
// @Success 200 {object} util.Response{data=service.QuizInfo}
// @Failure 404 {object} util.Response "题目不存在"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/questions/{questionId}/info [get]
func (c *QuizController) GetQuizInfo(ctx *gin.Context) {
	questionID, ok := parseID(ctx, "questionId")
	if !ok {
		return
	}

	info, err := c.QuizService.GetQuizInfo(questionID)
	if err != nil {
		if util.IsNotFound(err) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, info)
}
