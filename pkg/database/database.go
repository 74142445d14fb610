package database

import (
	"county_training_backend/internal/config"
	"county_training_backend/internal/model"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 建立 MySQL 连接并迁移表结构。连接句柄由调用方显式传递给各仓储，
// 不做包级单例。
func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedAdmin(db)

	return db, nil
}

// Migrate 迁移全部模型，测试里也用它初始化内存库。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.TrainingCourse{},
		&model.ContentPage{},
		&model.Quiz{},
		&model.Question{},
		&model.TrainingAttempt{},
		&model.QuizResult{},
		&model.UserResponse{},
	)
}

// 首次启动时保证存在一个管理员账号
func seedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&model.User{}).Where("user_level = ?", model.LevelAdmin).Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("ChangeMe!Admin1"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seed admin: %v", err)
		return
	}

	admin := &model.User{
		UserName:  "admin",
		FirstName: "Default",
		LastName:  "Admin",
		Email:     "admin@example.com",
		PwHash:    string(hash),
		UserLevel: model.LevelAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Printf("seed admin: %v", err)
	}
}
