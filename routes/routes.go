package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/pallavigowda6789-tech/attendance-system/config"
	"github.com/pallavigowda6789-tech/attendance-system/database"
	"github.com/pallavigowda6789-tech/attendance-system/handlers"
	"github.com/pallavigowda6789-tech/attendance-system/middlewares"
	"github.com/pallavigowda6789-tech/attendance-system/models"
	"github.com/pallavigowda6789-tech/attendance-system/services"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	// ===== Services (shared singletons) =====
	userSvc := services.NewUserService(database.DB)
	attSvc := services.NewAttendanceService(database.DB)
	leaveSvc := services.NewLeaveService(database.DB)

	// ===== Handlers =====
	auth := handlers.NewAuthHandler(cfg, userSvc)
	usr := handlers.NewUserHandler(userSvc)
	att := handlers.NewAttendanceHandler(attSvc)
	lv := handlers.NewLeaveHandler(leaveSvc)
	adm := handlers.NewAdminHandler(userSvc, attSvc, leaveSvc)

	e.GET("/health", handlers.Health)

	// ===== Public Auth =====
	authGroup := e.Group("/api/auth")
	authGroup.POST("/register", auth.Register)
	authGroup.POST("/login", auth.Login)
	authGroup.POST("/google", auth.GoogleLogin)
	authGroup.POST("/github", auth.GitHubLogin)
	authGroup.GET("/check-username", auth.CheckUsername)
	authGroup.GET("/check-email", auth.CheckEmail)

	authMW := middlewares.RequireAuth(cfg.JWTSecret)
	staffMW := middlewares.RequireRole(models.RoleAdmin, models.RoleManager)

	// ===== Users =====
	users := e.Group("/api/users", authMW)
	users.GET("/profile", usr.Profile)
	users.PUT("/profile", usr.UpdateProfile)
	users.PUT("/change-password", usr.ChangePassword)
	users.POST("/link-account", usr.LinkAccount)
	users.GET("/:id", usr.GetByID, staffMW)

	// ===== Attendance =====
	attendance := e.Group("/api/attendance", authMW)
	attendance.POST("/mark", att.Mark)
	attendance.PUT("/checkout", att.CheckOut)
	attendance.GET("/my-records", att.MyRecords)
	attendance.GET("/my-stats", att.MyStats)
	attendance.GET("/range", att.Range)
	attendance.GET("/today", att.Today)
	attendance.GET("/check-today", att.CheckToday)
	attendance.GET("/user/:id", att.ByUser, staffMW)

	// ===== Leaves =====
	leaves := e.Group("/api/leaves", authMW)
	leaves.GET("/types", lv.Types)
	leaves.POST("/request", lv.Request)
	leaves.GET("/my-leaves", lv.MyLeaves)
	leaves.GET("/my-stats", lv.MyStats)
	leaves.GET("/:id", lv.GetByID)
	leaves.PUT("/:id/cancel", lv.Cancel)

	// อนุมัติ/ปฏิเสธ ต้องเป็น ADMIN หรือ MANAGER
	leaves.GET("/all", lv.All, staffMW)
	leaves.GET("/pending", lv.Pending, staffMW)
	leaves.GET("/pending-count", lv.PendingCount, staffMW)
	leaves.PUT("/:id/approve", lv.Approve, staffMW)
	leaves.PUT("/:id/reject", lv.Reject, staffMW)

	// ===== Admin =====
	admin := e.Group("/api/admin", authMW, middlewares.RequireRole(models.RoleAdmin))
	admin.GET("/users", adm.ListUsers)
	admin.POST("/users", adm.CreateUser)
	admin.GET("/users/:id", usr.GetByID)
	admin.PUT("/users/:id/role", adm.UpdateRole)
	admin.PUT("/users/:id/toggle-status", adm.ToggleUserStatus)
	admin.POST("/users/:id/reset-password", adm.ResetPassword)
	admin.DELETE("/users/:id", adm.DeleteUser)

	admin.GET("/attendance", adm.AllAttendance)
	admin.GET("/attendance/summary", adm.AttendanceSummary)
	admin.GET("/attendance/user/:id", adm.UserAttendance)
	admin.GET("/attendance/user/:id/stats", adm.UserAttendanceStats)
	admin.POST("/attendance/mark", adm.MarkAttendance)
	admin.DELETE("/attendance/:id", adm.DeleteAttendance)

	admin.GET("/stats", adm.SystemStats)
}
