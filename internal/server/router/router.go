package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted by New.
type Handlers struct {
	Animals      *handlers.AnimalHandler
	Breeding     *handlers.BreedingHandler
	Vaccinations *handlers.VaccinationHandler
	Finance      *handlers.FinanceHandler
	Health       *handlers.HealthHandler
	Accounts     *handlers.AccountHandler
	Reporting    *handlers.ReportingHandler
	Functions    *handlers.FunctionsHandler
	Webhook      *handlers.WebhookHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/webhook", h.Webhook.Verify)
	r.POST("/webhook", h.Webhook.Receive)

	fn := r.Group("/functions")
	fn.POST("/send-email-notification", h.Functions.SendEmail)
	fn.POST("/send-whatsapp-notification", h.Functions.SendWhatsApp)
	r.POST(DailyNotificationsPath, h.Functions.DailyNotifications)

	api := r.Group("/api", handlers.RequireAccount())

	api.POST("/animals", h.Animals.Create)
	api.GET("/animals", h.Animals.List)
	api.GET("/animals/:id", h.Animals.Get)
	api.PATCH("/animals/:id", h.Animals.Update)
	api.POST("/animals/:id/sell", h.Animals.Sell)
	api.POST("/animals/:id/death", h.Animals.Death)

	api.POST("/vaccinations", h.Vaccinations.Create)
	api.GET("/vaccinations", h.Vaccinations.List)
	api.POST("/vaccinations/:id/complete", h.Vaccinations.Complete)

	api.POST("/inseminations", h.Breeding.Create)
	api.GET("/inseminations", h.Breeding.List)
	api.POST("/inseminations/:id/birth", h.Breeding.CompleteBirth)
	api.GET("/pregnancy/warnings", h.Breeding.Warnings)
	api.GET("/pregnancy/reminders", h.Breeding.Reminders)
	api.POST("/pregnancy/reminders/:id/sent", h.Breeding.MarkReminderSent)

	api.POST("/transactions", h.Finance.CreateTransaction)
	api.GET("/transactions", h.Finance.ListTransactions)
	api.GET("/finance/summary", h.Finance.Summary)
	api.POST("/milk", h.Finance.CreateMilk)
	api.GET("/milk", h.Finance.ListMilk)
	api.GET("/milk/summary", h.Finance.MilkSummary)

	api.POST("/health-records", h.Health.Create)
	api.GET("/health-records", h.Health.List)

	api.GET("/profile", h.Accounts.GetProfile)
	api.PUT("/profile", h.Accounts.UpdateProfile)
	api.GET("/settings", h.Accounts.GetSettings)
	api.PUT("/settings", h.Accounts.UpdateSettings)

	api.GET("/dashboard", h.Reporting.Dashboard)
	api.POST("/reports/finance/export", h.Reporting.ExportFinance)
	api.GET("/notifications", h.Reporting.Notifications)

	if logger != nil {
		logger.Info("router initialized", zap.Int("routes", len(r.Routes())))
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
