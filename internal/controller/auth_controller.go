package controller

import (
	"errors"

	"county_training_backend/internal/model"
	"county_training_backend/internal/service"
	"county_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	UserService *service.UserService
}

func NewAuthController(authService *service.AuthService, userService *service.UserService) *AuthController {
	return &AuthController{
		AuthService: authService,
		UserService: userService,
	}
}

// RegisterRequest 注册表单
// swagger:model RegisterRequest
type RegisterRequest struct {
	util.UserFieldsRequest
	StreetAddr string `json:"streetAddr"`
	City       string `json:"city"`
	State      string `json:"state"`
	Company    string `json:"company"`
	Supervisor string `json:"supervisor"`
}

// Register godoc
// @Summary 注册新用户
// @Description 校验表单字段并按 userType 分配账号等级
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "用户注册信息"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "表单校验失败"
// @Failure 409 {object} util.Response "用户名已被占用"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	errs := util.ValidateBasicFields(&req.UserFieldsRequest)
	level, errs := c.UserService.GetUserLevel(req.UserType, req.Supervisor, req.Company, errs)
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

	if err := c.UserService.CreateUser(user, req.Password); err != nil {
		if errors.Is(err, util.ErrUsernameTaken) {
			util.Error(ctx, 409, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": user.ID, "userName": user.UserName})
}

// RegisterAdmin godoc
// @Summary 注册管理员账号
// @Description 仅管理员可调用，跳过 userType/county 校验
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "管理员注册信息"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "表单校验失败"
// @Failure 409 {object} util.Response "用户名已被占用"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Security BearerAuth
// @Router /api/admin/register [post]
func (c *AuthController) RegisterAdmin(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	errs := util.ValidateAdminBasicFields(&req.UserFieldsRequest)
	if len(errs) > 0 {
		util.ValidationFailed(ctx, errs)
		return
	}

	user := &model.User{
		UserName:  req.UserName,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Zipcode:   req.Zipcode,
		UserLevel: model.LevelAdmin,
	}

	if err := c.UserService.CreateUser(user, req.Password); err != nil {
		if errors.Is(err, util.ErrUsernameTaken) {
			util.Error(ctx, 409, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": user.ID, "userName": user.UserName})
}

// Login godoc
// @Summary 用户登录
// @Description 用户名密码登录，签发 JWT
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.LoginRequest true "登录信息"
// @Success 200 {object} util.Response{data=service.LoginResult} "登录成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "用户名或密码错误"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.Login(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			util.Error(ctx, 401, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// GetProfile godoc
// @Summary 当前登录用户资料
// @Tags 认证
// @Produce  json
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response "未登录"
// @Security BearerAuth
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.GetUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}
