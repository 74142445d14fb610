package controller

import (
	"errors"

	"county_training_backend/internal/model"
	"county_training_backend/internal/service"
	"county_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// ListUsers godoc
// @Summary 按类型筛选用户
// @Description type 取 FamilyUser/OtherUser/Employee/Employer/Admin/All；county 非空时改按县筛选
// @Tags 用户
// @Produce  json
// @Param   type query string false "用户类型" default(All)
// @Param   county query string false "县名"
// @Success 200 {object} util.Response{data=[]model.User}
// @Failure 400 {object} util.Response "未知用户类型"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	if county, exists := ctx.GetQuery("county"); exists {
		users, err := c.UserService.GetUsersByCounty(county)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, users)
		return
	}

	userType := ctx.DefaultQuery("type", "All")
	users, err := c.UserService.GetUsers(userType)
	if err != nil {
		if errors.Is(err, util.ErrInvalidUserType) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, users)
}

// GetUser godoc
// @Summary 按用户名查用户
// @Tags 用户
// @Produce  json
// @Param   username path string true "用户名"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "用户不存在"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/users/{username} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.UserService.GetUserByUsername(ctx.Param("username"))
	if err != nil {
		if util.IsNotFound(err) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}

// UpdateUser godoc
// @Summary 更新用户资料
// @Description 路径里的用户名决定更新目标；password 非空时重置密码
// @Tags 用户
// @Accept  json
// @Produce  json
// @Param   username path string true "用户名"
// @Param   body body RegisterRequest true "用户资料"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "表单校验失败"
// @Failure 404 {object} util.Response "用户不存在"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/users/{username} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	req.UserName = ctx.Param("username")

	errs := []string{}
	level, errs := c.UserService.GetUserLevel(req.UserType, req.Supervisor, req.Company, errs)
	util.ValidatePhone(req.Phone, &errs)
	util.ValidateZipCode(req.Zipcode, &errs)
	util.ValidateEmail(req.Email, &errs)
	if req.Password != "" {
		util.ValidatePassword2(req.Password, req.Password2, &errs)
	}
	if len(errs) > 0 {
		util.ValidationFailed(ctx, errs)
		return
	}

	user := &model.User{
		UserName:   req.UserName,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		StreetAddr: req.StreetAddr,
		City:       req.City,
		County:     req.County,
		State:      req.State,
		Zipcode:    req.Zipcode,
		Company:    req.Company,
		Supervisor: req.Supervisor,
		UserLevel:  level,
	}

	if err := c.UserService.UpdateUser(user, req.Password); err != nil {
		switch {
		case util.IsNotFound(err):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrInvalidUserLevel):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// DeleteUser godoc
// @Summary 删除单个用户
// @Description 幂等操作，用户不存在时同样返回成功
// @Tags 用户
// @Produce  json
// @Param   username path string true "用户名"
// @Success 200 {object} util.Response
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/users/{username} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	if err := c.UserService.RemoveUser(ctx.Param("username")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DeleteUsersRequest 批量删除请求
type DeleteUsersRequest struct {
	UserNames []string `json:"userNames" binding:"required"`
}

// DeleteUsers godoc
// @Summary 批量删除用户
// @Tags 用户
// @Accept  json
// @Produce  json
// @Param   body body DeleteUsersRequest true "用户名列表"
// @Success 200 {object} util.Response
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/users/batch-delete [post]
func (c *UserController) DeleteUsers(ctx *gin.Context) {
	var req DeleteUsersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.RemoveUsers(req.UserNames); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
