package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler the API serves.
type Handlers struct {
	Auth    *AuthHandler
	Project *ProjectHandler
	Member  *MemberHandler
	Task    *TaskHandler
	User    *UserHandler
}

// RegisterRoutes mounts the API on r. requireAuth guards every route
// except registration, login, refresh, logout and the health check.
func RegisterRoutes(r *gin.Engine, h Handlers, requireAuth gin.HandlerFunc) {
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Project Management API is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", h.Auth.Register)
			authRoutes.POST("/login", h.Auth.Login)
			authRoutes.GET("/refresh", h.Auth.Refresh)
			authRoutes.POST("/logout", h.Auth.Logout)
		}

		projects := api.Group("/projects")
		projects.Use(requireAuth)
		{
			projects.GET("", h.Project.ListProjects)
			projects.POST("/create", h.Project.CreateProject)
			projects.GET("/recent", h.Project.GetRecentProject)
			projects.GET("/:projectname", h.Project.GetProject)
			projects.GET("/detailed/:projectname", h.Project.GetProjectDetailed)
			projects.PUT("/update/:projectname", h.Project.UpdateProject)
			projects.GET("/search/:search/:onlyName", h.Project.SearchProjects)
			projects.GET("/owner/:projectname", h.Project.GetProjectOwner)
			projects.GET("/isowner/:projectid", h.Project.IsProjectOwner)
			projects.PUT("/update/owner/:projectname", h.Project.TransferOwnership)
			projects.GET("/isActive/:projectname", h.Project.GetActiveStatus)
			projects.PUT("/update/isActive/:projectname", h.Project.SetActiveStatus)
		}

		members := api.Group("/members")
		members.Use(requireAuth)
		{
			members.GET("/:projectname", h.Member.ListMembers)
			members.POST("/add/:projectname", h.Member.AddMember)
			members.DELETE("/remove/:projectname/:memberid", h.Member.RemoveMember)
		}

		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("/:projectname", h.Task.ListTasks)
			tasks.POST("/create/:projectname", h.Task.CreateTask)
			tasks.PUT("/update/:projectname/:taskid", h.Task.UpdateTask)
			tasks.PATCH("/update/status/:projectname/:taskid", h.Task.UpdateTaskStatus)
			tasks.POST("/generate/:projectname", h.Task.GenerateTasks)
		}

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", h.User.ListUsers)
			users.GET("/search/:search/:onlyUsername", h.User.SearchUsers)
			users.PUT("/:id/flags", h.User.UpdateUserFlags)
		}

		admin := api.Group("/admin")
		admin.Use(requireAuth)
		{
			admin.GET("/check", h.User.CheckAdmin)
		}
	}
}
