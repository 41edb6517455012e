package routes

import (
	"github.com/gin-gonic/gin"

	"aprovafacil/internal/handlers"
	"aprovafacil/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	cronSecret string,
	publicHandler *handlers.PublicHandler,
	linkHandler *handlers.LinkHandler,
	boardHandler *handlers.BoardHandler,
	workspaceHandler *handlers.WorkspaceHandler,
	notificationHandler *handlers.NotificationHandler,
	cronHandler *handlers.CronHandler,
) *gin.Engine {

	// ---- public: só o token do link protege
	public := r.Group("/public")
	{
		public.GET("/approval/:token", publicHandler.PendingTasks)
		public.POST("/approval/action", publicHandler.Action)
		public.GET("/dashboard/:token", publicHandler.Dashboard)
	}

	// ---- cron (agendador externo)
	cron := r.Group("/cron", middleware.CronGuard(cronSecret))
	{
		cron.POST("/check-deadlines", cronHandler.CheckDeadlines)
	}

	// ---- staff (JWT emitido pelo serviço de auth)
	staff := r.Group("/", middleware.AuthMiddleware(jwtSecret))

	workspaces := staff.Group("/workspaces")
	{
		workspaces.POST("/", workspaceHandler.Create)
		workspaces.GET("/", workspaceHandler.List)
		workspaces.GET("/:id", workspaceHandler.GetByID)
		workspaces.PUT("/:id", workspaceHandler.Update)
		workspaces.PUT("/:id/insights", workspaceHandler.UpsertInsight)
		workspaces.GET("/:id/insights", workspaceHandler.Insights)
		workspaces.GET("/:id/report", workspaceHandler.Report)
		workspaces.GET("/:id/links", linkHandler.ListByWorkspace)
	}

	groups := staff.Group("/groups")
	{
		groups.POST("/", boardHandler.CreateGroup)
		groups.GET("/:id/board", boardHandler.Board)
	}

	columns := staff.Group("/columns")
	{
		columns.POST("/", boardHandler.CreateColumn)
		columns.PATCH("/:id/position", boardHandler.MoveColumn)
	}

	tasks := staff.Group("/tasks")
	{
		tasks.POST("/", boardHandler.CreateTask)
		tasks.PUT("/:id", boardHandler.UpdateTask)
		tasks.DELETE("/:id", boardHandler.DeleteTask)
		tasks.POST("/:id/move", boardHandler.MoveTask)
	}

	links := staff.Group("/links")
	{
		links.POST("/", linkHandler.Create)
		links.POST("/email", linkHandler.SendByEmail)
		links.DELETE("/:token", linkHandler.Deactivate)
	}

	notifications := staff.Group("/notifications")
	{
		notifications.POST("/whatsapp", notificationHandler.SendWhatsApp)
		notifications.POST("/telegram", notificationHandler.SendTelegram)
	}

	return r
}
