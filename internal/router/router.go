package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stemsi/orgportal-backend/internal/config"
	"github.com/stemsi/orgportal-backend/internal/handler"
	"github.com/stemsi/orgportal-backend/internal/middleware"
	"github.com/stemsi/orgportal-backend/internal/model"
	"github.com/stemsi/orgportal-backend/internal/response"
	"github.com/stemsi/orgportal-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	View         *handler.ViewHandler
	Bootstrap    *handler.BootstrapHandler
	Department   *handler.DepartmentHandler
	Student      *handler.StudentHandler
	Coordinator  *handler.CoordinatorHandler
	Program      *handler.ProgramHandler
	Report       *handler.ReportHandler
	Media        *handler.MediaHandler
	AttendanceWS *handler.AttendanceWSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve uploaded media files statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Session touch runs on every authenticated route so each request
	// rearms the idle deadline to the full window.
	requireSession := []gin.HandlerFunc{
		middleware.RequireAuth(authService),
		middleware.TouchSession(authService),
	}

	api := router.Group("/api/v1")

	// ─── 1. Public Group (No Auth) ─────────────────────────────────────
	{
		api.GET("/bootstrap", handlers.Bootstrap.Bootstrap)
		api.GET("/view/:tag", middleware.OptionalAuth(authService), handlers.View.ResolveView)
		api.GET("/programs", handlers.Program.ListPrograms)
		api.GET("/programs/:id", handlers.Program.GetProgram)
		api.GET("/departments", handlers.Department.ListDepartments)
		api.GET("/departments/:id", handlers.Department.GetDepartment)
	}

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 2. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := api.Group("/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)

		// Logout skips the session touch: ending an already expired or
		// replaced session must still succeed.
		auth.POST("/logout", middleware.RequireAuth(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(authService), middleware.TouchSession(authService), handlers.Auth.Me)
	}

	// ─── 3. Reports (Any Authenticated Role Reads, Staff Writes) ───────
	reports := api.Group("/reports")
	reports.Use(requireSession...)
	{
		reports.GET("", handlers.Report.ListReports)
		reports.GET("/:id", handlers.Report.GetReport)

		staffOnly := middleware.RequireRole(model.RoleCoordinator, model.RoleOfficer)
		reports.POST("", staffOnly, handlers.Report.CreateReport)
		reports.PUT("/:id", staffOnly, handlers.Report.UpdateReport)
		reports.DELETE("/:id", staffOnly, handlers.Report.DeleteReport)
	}

	// ─── 4. Program Management (Coordinator + Officer) ─────────────────
	programs := api.Group("/programs")
	programs.Use(requireSession...)
	programs.Use(middleware.RequireRole(model.RoleCoordinator, model.RoleOfficer))
	{
		programs.POST("", handlers.Program.CreateProgram)
		programs.PUT("/:id", handlers.Program.UpdateProgram)
		programs.DELETE("/:id", handlers.Program.DeleteProgram)
		programs.POST("/:id/gallery", handlers.Program.UploadGallery)

		programs.GET("/:id/participants", handlers.Program.ListParticipants)
		programs.POST("/:id/participants", handlers.Program.AddParticipant)
		programs.DELETE("/:id/participants/:studentId", handlers.Program.RemoveParticipant)
		programs.POST("/:id/participants/:studentId/check-in", handlers.Program.CheckIn)

		programs.GET("/:id/attendance-sheet", handlers.Program.DownloadAttendanceSheet)
		programs.POST("/:id/certificates", handlers.Program.QueueCertificates)
		programs.GET("/:id/certificates", handlers.Program.ListCertificates)
	}

	// ─── 5. Media Upload (Coordinator + Officer) ───────────────────────
	media := api.Group("/media")
	media.Use(requireSession...)
	media.Use(middleware.RequireRole(model.RoleCoordinator, model.RoleOfficer))
	{
		media.POST("", handlers.Media.Upload)
		media.POST("/batch", handlers.Media.UploadMany)
	}

	// ─── 6. Account Management (Officer Only) ──────────────────────────
	officerAPI := api.Group("")
	officerAPI.Use(requireSession...)
	officerAPI.Use(middleware.RequireRole(model.RoleOfficer))
	{
		officerAPI.POST("/departments", handlers.Department.CreateDepartment)
		officerAPI.PUT("/departments/:id", handlers.Department.UpdateDepartment)
		officerAPI.DELETE("/departments/:id", handlers.Department.DeleteDepartment)

		officerAPI.GET("/students", handlers.Student.ListStudents)
		officerAPI.GET("/students/:id", handlers.Student.GetStudent)
		officerAPI.POST("/students", handlers.Student.CreateStudent)
		officerAPI.PUT("/students/:id", handlers.Student.UpdateStudent)
		officerAPI.POST("/students/:id/photo", handlers.Student.UploadStudentPhoto)
		officerAPI.DELETE("/students/:id", handlers.Student.DeleteStudent)

		officerAPI.GET("/coordinators", handlers.Coordinator.ListCoordinators)
		officerAPI.GET("/coordinators/:id", handlers.Coordinator.GetCoordinator)
		officerAPI.POST("/coordinators", handlers.Coordinator.CreateCoordinator)
		officerAPI.PUT("/coordinators/:id", handlers.Coordinator.UpdateCoordinator)
		officerAPI.DELETE("/coordinators/:id", handlers.Coordinator.DeleteCoordinator)
	}

	// ─── 7. WebSocket Group (Query Token Auth) ─────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/programs/:id/attendance", handlers.AttendanceWS.AttendanceStream)
	}

	return router
}
