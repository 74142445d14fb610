package app

import (
	"county_training_backend/docs"
	"county_training_backend/internal/config"
	"county_training_backend/internal/middleware"

	"county_training_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 课程目录对游客开放
		public.GET("/courses", c.course.ListCourses)
		public.GET("/courses/:id", c.course.GetCourse)
	}

	// 登录用户路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.GET("/courses/:id/pages", c.course.GetCoursePages)
		authGroup.GET("/pages/:pageId/quiz", c.quiz.GetQuizByPage)
		authGroup.GET("/quizzes/:id/questions", c.quiz.GetQuestions)

		authGroup.GET("/courses/:id/pages/:pageNum", c.course.GetPage)

		authGroup.POST("/attempts/submit", c.attempt.SubmitQuiz)
		authGroup.GET("/attempts", c.attempt.MyAttempts)
		authGroup.GET("/attempts/open", c.attempt.OpenAttempt)
		authGroup.GET("/attempts/:id", c.attempt.GetAttempt)
		authGroup.POST("/attempts/:id/close", c.attempt.CloseAttempt)
	}

	// 管理员路由
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.LevelMiddleware())
	{
		admin.POST("/register", c.auth.RegisterAdmin)

		admin.POST("/courses", c.course.CreateCourse)
		admin.PUT("/courses/:id", c.course.UpdateCourse)
		admin.DELETE("/courses/:id", c.course.DeleteCourse)
		admin.POST("/courses/:id/pages", c.course.AddPage)
		admin.POST("/courses/:id/pages/swap", c.course.SwapPages)
		admin.DELETE("/courses/:id/pages/:pageNum", c.course.DeletePage)
		admin.PUT("/pages/:pageId", c.course.UpdatePage)

		admin.POST("/quizzes", c.quiz.CreateQuiz)
		admin.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
		admin.POST("/quizzes/:id/questions", c.quiz.AddQuestion)
		admin.PUT("/questions/:questionId", c.quiz.UpdateQuestion)
		admin.DELETE("/questions/:questionId", c.quiz.DeleteQuestion)
		admin.GET("/questions/:questionId/info", c.quiz.GetQuizInfo)

		admin.GET("/users", c.user.ListUsers)
		admin.GET("/users/:username", c.user.GetUser)
		admin.PUT("/users/:username", c.user.UpdateUser)
		admin.DELETE("/users/:username", c.user.DeleteUser)
		admin.POST("/users/batch-delete", c.user.DeleteUsers)
		admin.GET("/user-attempts/:userId", c.attempt.UserAttempts)

		admin.POST("/media", c.media.UploadMedia)
	}
}
