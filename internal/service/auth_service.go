package service

import (
	"errors"
	"fmt"

	"county_training_backend/internal/config"
	"county_training_backend/internal/model"
	"county_training_backend/internal/util"
)

var ErrInvalidCredentials = errors.New("username or password is incorrect")

// AuthService 登录签发 JWT。认证失败统一报 ErrInvalidCredentials，
// 不区分用户不存在和密码错误。
type AuthService struct {
	UserService *UserService
	Config      *config.Config
}

func NewAuthService(userService *UserService, cfg *config.Config) *AuthService {
	return &AuthService{UserService: userService, Config: cfg}
}

type LoginRequest struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) Login(req LoginRequest) (*LoginResult, error) {
	user, err := s.UserService.UserRepo.FindByUsername(req.UserName)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !s.UserService.ComparePassword(req.Password, user.PwHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &LoginResult{Token: token, User: user}, nil
}
