package repository

import (
	"county_training_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

// FindByID 按 ID 查询，不存在时返回 (nil, nil)
func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername 按用户名查询，不存在时返回 (nil, nil)
func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("user_name = ?", username).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateByUsername 按用户名更新全部可变字段，返回受影响行数（0 或 1）
func (r *UserRepository) UpdateByUsername(user *model.User) (int64, error) {
	result := r.DB.Model(&model.User{}).
		Where("user_name = ?", user.UserName).
		Updates(map[string]interface{}{
			"email":       user.Email,
			"first_name":  user.FirstName,
			"last_name":   user.LastName,
			"pw_hash":     user.PwHash,
			"phone":       user.Phone,
			"street_addr": user.StreetAddr,
			"city":        user.City,
			"county":      user.County,
			"state":       user.State,
			"zipcode":     user.Zipcode,
			"company":     user.Company,
			"supervisor":  user.Supervisor,
			"user_level":  user.UserLevel,
		})
	return result.RowsAffected, result.Error
}

// Delete 硬删除用户行。软删除会让唯一索引继续占着用户名，
// 注销后同名重新注册会撞 unique 约束。
func (r *UserRepository) Delete(user *model.User) error {
	return r.DB.Unscoped().Delete(user).Error
}

func (r *UserRepository) FindByLevel(level model.UserLevel) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("user_level = ?", level).Find(&users).Error
	return users, err
}

func (r *UserRepository) FindAllOrderByLevel() ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("user_level").Find(&users).Error
	return users, err
}

func (r *UserRepository) FindByCounty(county string) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("county = ?", county).Find(&users).Error
	return users, err
}

// FindWithCounty 返回所有填写了 county 的用户，按 county 排序
func (r *UserRepository) FindWithCounty() ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("county IS NOT NULL AND county <> ''").Order("county").Find(&users).Error
	return users, err
}
