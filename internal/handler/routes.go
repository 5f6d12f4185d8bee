package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vidyalink/console-api/internal/middleware"
	"github.com/vidyalink/console-api/internal/models"
	"github.com/vidyalink/console-api/internal/service"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	Schools    *SchoolHandler
	Teachers   *TeacherHandler
	Students   *StudentHandler
	Fees       *FeeHandler
	Attendance *AttendanceHandler
	Payments   *PaymentHandler
	Metrics    *MetricsHandler
}

// Register mounts all console routes under the configured prefix. Guest
// routes sit behind the GuestGuard, everything else behind the AuthGuard
// with per-group RBAC mirroring what each role's menu exposes.
func Register(r *gin.Engine, prefix string, auth *service.AuthService, h Handlers) {
	api := r.Group(prefix)

	guest := api.Group("", middleware.GuestGuard())
	guest.POST("/auth/login", h.Auth.Login)

	guarded := api.Group("", middleware.AuthGuard(auth))
	guarded.POST("/auth/logout", h.Auth.Logout)
	guarded.GET("/auth/session", h.Auth.Session)
	guarded.GET("/auth/profile", h.Auth.Profile)
	guarded.GET("/menu", h.Auth.Menu)

	schools := guarded.Group("/schools")
	schools.GET("", middleware.RBAC(models.RoleAdmin, models.RoleSchool), h.Schools.List)
	schools.GET("/export", middleware.RBAC(models.RoleAdmin), h.Schools.Export)
	schools.GET("/:id", middleware.RBAC(models.RoleAdmin, models.RoleSchool), h.Schools.Get)
	schools.POST("", middleware.RBAC(models.RoleAdmin), h.Schools.Create)
	schools.PUT("/:id/save", middleware.RBAC(models.RoleAdmin, models.RoleSchool), h.Schools.Save)
	schools.GET("/:id/save", middleware.RBAC(models.RoleAdmin, models.RoleSchool), h.Schools.SaveStatus)
	schools.DELETE("/:id", middleware.RBAC(models.RoleAdmin), h.Schools.Delete)

	teachers := guarded.Group("/teachers", middleware.RBAC(models.RoleAdmin, models.RoleSchool))
	teachers.GET("", h.Teachers.List)
	teachers.GET("/export", h.Teachers.Export)
	teachers.GET("/new", h.Teachers.NewForm)
	teachers.GET("/:id", h.Teachers.Detail)
	teachers.POST("", h.Teachers.Create)
	teachers.PUT("/:id/save", h.Teachers.Save)
	teachers.GET("/:id/save", h.Teachers.SaveStatus)
	teachers.DELETE("/:id", h.Teachers.Delete)

	students := guarded.Group("/students", middleware.RBAC(models.RoleAdmin, models.RoleSchool, models.RoleTeacher))
	students.GET("", h.Students.List)
	students.GET("/export", h.Students.Export)
	students.GET("/new", h.Students.NewForm)
	students.GET("/:id", h.Students.Detail)
	students.POST("", middleware.RBAC(models.RoleAdmin, models.RoleSchool), h.Students.Create)
	students.PUT("/:id/save", middleware.RBAC(models.RoleAdmin, models.RoleSchool), h.Students.Save)
	students.GET("/:id/save", h.Students.SaveStatus)
	students.DELETE("/:id", middleware.RBAC(models.RoleAdmin, models.RoleSchool), h.Students.Delete)

	fees := guarded.Group("/fees", middleware.RBAC(models.RoleAdmin, models.RoleSchool))
	fees.GET("", h.Fees.List)
	fees.GET("/new", h.Fees.NewForm)
	fees.GET("/:id", h.Fees.Detail)
	fees.POST("", h.Fees.Create)
	fees.PUT("/:id/save", h.Fees.Save)
	fees.GET("/:id/save", h.Fees.SaveStatus)
	fees.DELETE("/:id", h.Fees.Delete)

	attendance := guarded.Group("/attendance")
	attendance.GET("/calendar", h.Attendance.Calendar)
	attendance.GET("/roster", middleware.RBAC(models.RoleAdmin, models.RoleSchool, models.RoleTeacher), h.Attendance.Roster)
	attendance.POST("/mark", middleware.RBAC(models.RoleAdmin, models.RoleSchool, models.RoleTeacher), h.Attendance.Mark)

	payments := guarded.Group("/payments")
	payments.GET("/:studentId", h.Payments.History)
	payments.GET("/:studentId/invoice/:paymentId", h.Payments.Invoice)
	payments.POST("", middleware.RBAC(models.RoleAdmin, models.RoleSchool), h.Payments.Pay)

	options := guarded.Group("/options")
	options.GET("/schools", h.Schools.Options)
	options.GET("/classes", h.Schools.ClassOptions)
	options.GET("/students", h.Students.Options)
}
