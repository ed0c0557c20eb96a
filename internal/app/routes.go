package app

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes configures all HTTP routes.
func (a *Application) registerRoutes(router *gin.Engine) {
	router.GET("/", a.rootInfo)
	router.GET("/healthz", a.livenessCheck)
	router.HEAD("/healthz", a.livenessCheck)
	router.GET("/readyz", a.readinessCheck)
	router.HEAD("/readyz", a.readinessCheck)

	router.GET("/metrics",
		metricsAuthMiddleware(a.cfg.MetricsUsername, a.cfg.MetricsPassword),
		gin.WrapH(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))

	api := router.Group("/api/v1")

	api.GET("/calendar/:year/:month/weeks", a.listWeeks)

	throttle := rateLimitMiddleware(a.limiter, a.metrics)

	week := api.Group("/agenda/:month/weeks/:week")
	week.GET("", a.weekView)
	week.POST("/generate", throttle, a.generateWeek)
	week.POST("/import", throttle, a.importWeek)
	week.DELETE("", a.clearWeek)
	week.PUT("/days/:day/theme", a.setDayTheme)

	api.GET("/programs", a.listPrograms)
	api.POST("/programs", a.createProgram)
	api.PUT("/programs/:id", a.updateProgram)
	api.DELETE("/programs/:id", a.deleteProgram)
	api.PUT("/programs/:id/content/:key", a.updateContent)

	api.GET("/events/:month", a.getEvents)
	api.PUT("/events/:month", a.putEvents)

	api.POST("/ideas", throttle, a.generateIdeas)
}
