package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/progress/api/handler"
)

type Handlers struct {
	Auth      *apiHandler.AuthHandler
	Profile   *apiHandler.ProfileHandler
	Task      *apiHandler.TaskHandler
	Log       *apiHandler.LogHandler
	Habit     *apiHandler.HabitHandler
	Dashboard *apiHandler.DashboardHandler
	Export    *apiHandler.ExportHandler
	Health    *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/signup", handlers.Auth.SignUp)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", authMiddleware(handlers.Auth.Refresh))
	r.POST("/api/v1/auth/logout", authMiddleware(handlers.Auth.Logout))

	// Protected routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))

	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.PATCH("/api/v1/tasks/{id}/status", authMiddleware(handlers.Task.UpdateStatus))

	r.GET("/api/v1/logs", authMiddleware(handlers.Log.GetLogs))
	r.POST("/api/v1/logs", authMiddleware(handlers.Log.CreateLog))

	r.GET("/api/v1/habits", authMiddleware(handlers.Habit.GetHabits))
	r.POST("/api/v1/habits", authMiddleware(handlers.Habit.CreateHabit))
	r.PUT("/api/v1/habits/{id}/done", authMiddleware(handlers.Habit.MarkDone))

	r.GET("/api/v1/dashboard", authMiddleware(handlers.Dashboard.Get))

	r.GET("/api/v1/export/tasks.csv", authMiddleware(handlers.Export.Tasks))
	r.GET("/api/v1/export/logs.csv", authMiddleware(handlers.Export.Logs))

	return r
}
