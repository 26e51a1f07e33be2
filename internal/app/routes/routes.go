package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/selimc/akademi/internal/app/controllers"
	"github.com/selimc/akademi/internal/app/models"
	"github.com/selimc/akademi/internal/app/models/dto"
	"github.com/selimc/akademi/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	moduleController *controllers.ModuleController,
	videoController *controllers.VideoController,
	studentController *controllers.StudentController,
	enrollmentController *controllers.EnrollmentController,
	dashboardController *controllers.DashboardController,
	pagesController *controllers.PagesController,
	authMiddleware *middleware.AuthMiddleware,
	roleGate *middleware.RoleGate,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		// Student-facing read side
		dashboard := authenticated.Group("/dashboard")
		{
			dashboard.GET("/courses", dashboardController.MyCourses)
			dashboard.GET("/courses/:id", dashboardController.CourseDetail)
		}

		// Everything below is admin-only
		admin := authenticated.Group("")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			courses := admin.Group("/courses")
			{
				courses.GET("", courseController.ListCourses)
				courses.POST("", courseController.CreateCourse)
				courses.GET("/:id", courseController.GetCourseByID)
				courses.PUT("/:id", courseController.UpdateCourse)
				courses.DELETE("/:id", courseController.DeleteCourse)
				courses.GET("/:id/modules", courseController.ListCourseModules)
				courses.POST("/:id/modules", courseController.CreateCourseModule)
				courses.GET("/:id/students", enrollmentController.ListCourseStudents)
			}

			modules := admin.Group("/modules")
			{
				modules.GET("/:id", moduleController.GetModuleByID)
				modules.PUT("/:id", moduleController.UpdateModule)
				modules.DELETE("/:id", moduleController.DeleteModule)
				modules.GET("/:id/videos", moduleController.ListModuleVideos)
				modules.POST("/:id/videos", moduleController.CreateModuleVideo)
			}

			videos := admin.Group("/videos")
			{
				videos.GET("/:id", videoController.GetVideoByID)
				videos.PUT("/:id", videoController.UpdateVideo)
				videos.DELETE("/:id", videoController.DeleteVideo)
			}

			students := admin.Group("/students")
			{
				students.GET("", studentController.ListStudents)
				students.POST("", studentController.CreateStudent)
				students.GET("/:id", studentController.GetStudentByID)
				students.PUT("/:id", studentController.UpdateStudent)
				students.DELETE("/:id", studentController.DeleteStudent)
				students.POST("/import/preview", studentController.PreviewImport)
				students.POST("/import", studentController.RunImport)
			}

			enrollments := admin.Group("/enrollments")
			{
				enrollments.POST("", enrollmentController.Enroll)
				enrollments.DELETE("", enrollmentController.Unenroll)
			}
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})

	// --- Page routes, guarded by the role gate ---
	pages := router.Group("", roleGate.Handler())
	{
		pages.GET("/", pagesController.Index)
		pages.GET("/auth", pagesController.Index)
		pages.GET("/admin", pagesController.Index)
		pages.GET("/admin/*page", pagesController.Index)
		pages.GET("/dashboard", pagesController.Index)
		pages.GET("/dashboard/*page", pagesController.Index)
	}
	router.NoRoute(roleGate.Handler(), pagesController.NotFound)
}
