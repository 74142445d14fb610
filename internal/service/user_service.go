package service

import (
	"fmt"
	"strings"

	"county_training_backend/internal/model"
	"county_training_backend/internal/repository"
	"county_training_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// UserService 负责账号的增删改查与密码处理。
// 密码只以 bcrypt 哈希落库，任何路径都不保存明文。
type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

// CreateUser 创建用户。level 必须是四个已定义等级之一，
// 用户名占用与密码哈希失败都在落库前拦截。
func (s *UserService) CreateUser(user *model.User, password string) error {
	if !model.ValidLevel(user.UserLevel) {
		return util.ErrInvalidUserLevel
	}

	existing, err := s.UserRepo.FindByUsername(user.UserName)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return util.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PwHash = string(hash)

	if err := s.UserRepo.Create(user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UpdateUser 按用户名整体更新资料。password 非空时重新哈希，
// 为空则保留原哈希。目标用户不存在报 ErrUserNotFound。
func (s *UserService) UpdateUser(user *model.User, password string) error {
	if !model.ValidLevel(user.UserLevel) {
		return util.ErrInvalidUserLevel
	}

	existing, err := s.UserRepo.FindByUsername(user.UserName)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if existing == nil {
		return util.ErrUserNotFound
	}

	if strings.TrimSpace(password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.PwHash = string(hash)
	} else {
		user.PwHash = existing.PwHash
	}

	rows, err := s.UserRepo.UpdateByUsername(user)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if rows == 0 {
		return util.ErrUserNotFound
	}
	return nil
}

// RemoveUser 删除单个用户。幂等：用户不存在也视为成功。
func (s *UserService) RemoveUser(username string) error {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil
	}
	if err := s.UserRepo.Delete(user); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// RemoveUsers 批量删除，同样幂等
func (s *UserService) RemoveUsers(usernames []string) error {
	for _, username := range usernames {
		if err := s.RemoveUser(username); err != nil {
			return err
		}
	}
	return nil
}

func (s *UserService) GetUserByUsername(username string) (*model.User, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}

// GetUsers 按用户类型字符串筛选。"All" 返回全部并按等级排序，
// 未知类型报 ErrInvalidUserType。
func (s *UserService) GetUsers(userType string) ([]model.User, error) {
	level, ok := model.ParseUserType(userType)
	if !ok {
		return nil, util.ErrInvalidUserType
	}
	if level == model.LevelAll {
		return s.UserRepo.FindAllOrderByLevel()
	}
	return s.UserRepo.FindByLevel(level)
}

// GetUsersByCounty 返回指定县的用户；"All" 或留空时返回所有填写了县的用户
func (s *UserService) GetUsersByCounty(county string) ([]model.User, error) {
	county = strings.TrimSpace(county)
	if county == "" || county == "All" {
		return s.UserRepo.FindWithCounty()
	}
	return s.UserRepo.FindByCounty(county)
}

// GetUserLevel 把表单的 userType 映射为账号等级。雇员/雇主类型要求
// 填写公司（雇员还要求主管），缺失的要求追加到 errs 返回。
func (s *UserService) GetUserLevel(userType, supervisor, company string, errs []string) (model.UserLevel, []string) {
	switch userType {
	case "FamilyUser", "OtherUser":
		return model.LevelOther, errs
	case "Employee":
		if strings.TrimSpace(supervisor) == "" {
			errs = append(errs, "Please enter your supervisor")
		}
		if strings.TrimSpace(company) == "" {
			errs = append(errs, "Please enter your company")
		}
		return model.LevelEmployee, errs
	case "Employer":
		if strings.TrimSpace(company) == "" {
			errs = append(errs, "Please enter your company")
		}
		return model.LevelEmployer, errs
	case "Admin":
		return model.LevelAdmin, errs
	default:
		errs = append(errs, "Invalid user type provided")
		return 0, errs
	}
}

// ComparePassword 校验明文密码与哈希是否匹配
func (s *UserService) ComparePassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
