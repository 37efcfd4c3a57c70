package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/guilhermetechmakers/autopilot-studio/internal/handlers"
	"github.com/guilhermetechmakers/autopilot-studio/internal/middleware"
	"github.com/guilhermetechmakers/autopilot-studio/internal/monitoring"
	"github.com/guilhermetechmakers/autopilot-studio/internal/scheduler"
	"github.com/guilhermetechmakers/autopilot-studio/internal/services"
	"github.com/guilhermetechmakers/autopilot-studio/internal/types"
	"github.com/guilhermetechmakers/autopilot-studio/internal/ws"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps carries everything the route handlers need.
type Deps struct {
	DB        *gorm.DB
	Store     *monitoring.Store
	Hub       *ws.Hub
	Scheduler *scheduler.Scheduler
	Notifier  *services.Notifier
	Logger    *zap.Logger
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := handlers.NewAuthHandler(deps.DB, deps.Logger)
	projectsHandler := handlers.NewProjectsHandler(deps.DB)
	workspaceHandler := handlers.NewWorkspaceHandler(deps.DB)
	proposalsHandler := handlers.NewProposalsHandler(deps.DB)
	invoicesHandler := handlers.NewInvoicesHandler(deps.DB)
	probesHandler := handlers.NewProbesHandler(deps.DB, deps.Scheduler)
	metricsHandler := handlers.NewMetricsHandler(deps.Store)
	logsHandler := handlers.NewLogsHandler(deps.Store)
	alertsHandler := handlers.NewAlertsHandler(deps.Store, deps.Notifier, deps.Hub)
	healthChecksHandler := handlers.NewHealthChecksHandler(deps.Store)
	dashboardHandler := handlers.NewDashboardHandler(deps.Store)
	wsHandler := handlers.NewWebSocketHandler(deps.Hub)

	authRequired := middleware.AuthMiddleware(deps.DB)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws", authRequired, wsHandler.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.CreateUser)
			auth.POST("/login", authHandler.LoginUser)
			auth.POST("/logout", authHandler.LogoutUser)
			auth.GET("/me", authRequired, authHandler.Me)
			auth.PATCH("/me", authRequired, authHandler.UpdateUser)
			auth.DELETE("/me", authRequired, authHandler.DeleteUser)
		}

		projects := api.Group("/projects", authRequired)
		{
			projects.POST("", projectsHandler.CreateProject)
			projects.GET("", projectsHandler.ListProjects)
			projects.GET("/:project_id", projectsHandler.GetProject)
			projects.PATCH("/:project_id", projectsHandler.UpdateProject)
			projects.DELETE("/:project_id", projectsHandler.DeleteProject)

			projects.POST("/:project_id/milestones", workspaceHandler.CreateMilestone)
			projects.GET("/:project_id/milestones", workspaceHandler.ListMilestones)
			projects.PATCH("/:project_id/milestones/:milestone_id", workspaceHandler.UpdateMilestone)
			projects.DELETE("/:project_id/milestones/:milestone_id", workspaceHandler.DeleteMilestone)

			projects.POST("/:project_id/tasks", workspaceHandler.CreateTask)
			projects.GET("/:project_id/tasks", workspaceHandler.ListTasks)
			projects.PATCH("/:project_id/tasks/:task_id", workspaceHandler.UpdateTask)
			projects.DELETE("/:project_id/tasks/:task_id", workspaceHandler.DeleteTask)

			projects.POST("/:project_id/proposals", proposalsHandler.CreateProposal)
			projects.GET("/:project_id/proposals", proposalsHandler.ListProposals)
			projects.PATCH("/:project_id/proposals/:proposal_id", proposalsHandler.UpdateProposal)
			projects.DELETE("/:project_id/proposals/:proposal_id", proposalsHandler.DeleteProposal)

			projects.POST("/:project_id/invoices", invoicesHandler.CreateInvoice)
			projects.GET("/:project_id/invoices", invoicesHandler.ListInvoices)
			projects.PATCH("/:project_id/invoices/:invoice_id", invoicesHandler.UpdateInvoice)
			projects.POST("/:project_id/invoices/:invoice_id/pay", invoicesHandler.MarkInvoicePaid)
			projects.DELETE("/:project_id/invoices/:invoice_id", invoicesHandler.DeleteInvoice)
		}

		monitoringGroup := api.Group("/monitoring", authRequired)
		{
			monitoringGroup.GET("/dashboard", dashboardHandler.GetDashboard)

			monitoringGroup.GET("/metrics", metricsHandler.ListMetrics)
			monitoringGroup.GET("/metrics/timeseries", metricsHandler.GetMetricTimeSeries)
			monitoringGroup.POST("/metrics", metricsHandler.CreateMetric)
			monitoringGroup.PATCH("/metrics/:id", metricsHandler.UpdateMetric)
			monitoringGroup.DELETE("/metrics/:id", metricsHandler.DeleteMetric)

			monitoringGroup.GET("/logs", logsHandler.ListLogs)
			monitoringGroup.GET("/logs/stats", logsHandler.GetLogStats)
			monitoringGroup.POST("/logs", logsHandler.CreateLog)

			monitoringGroup.GET("/alerts", alertsHandler.ListAlerts)
			monitoringGroup.POST("/alerts", alertsHandler.CreateAlert)
			monitoringGroup.PATCH("/alerts/:id", alertsHandler.UpdateAlert)
			monitoringGroup.POST("/alerts/:id/resolve", alertsHandler.ResolveAlert)
			monitoringGroup.POST("/alerts/:id/suppress", alertsHandler.SuppressAlert)
			monitoringGroup.DELETE("/alerts/:id", alertsHandler.DeleteAlert)

			monitoringGroup.GET("/health-checks", healthChecksHandler.ListHealthChecks)
			monitoringGroup.POST("/health-checks", healthChecksHandler.UpsertHealthCheck)
			monitoringGroup.PATCH("/health-checks/:id", healthChecksHandler.UpdateHealthCheck)
			monitoringGroup.DELETE("/health-checks/:id", healthChecksHandler.DeleteHealthCheck)

			monitoringGroup.POST("/probes", probesHandler.CreateProbe)
			monitoringGroup.GET("/probes", probesHandler.ListProbes)
			monitoringGroup.PATCH("/probes/:probe_id", probesHandler.UpdateProbe)
			monitoringGroup.DELETE("/probes/:probe_id", probesHandler.DeleteProbe)
		}
	}

	return r
}
