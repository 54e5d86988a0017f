package handlers

import (
	"net/http"

	"countdown_timers/internal/logger"
	"countdown_timers/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const statusOK = "ok"

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services    *service.Service
	log         *logger.Logger
	authEnabled bool
}

// NewHandler constructs a new HTTP handler. With authEnabled the /api/v1
// group requires a bearer token.
func NewHandler(services *service.Service, log *logger.Logger, authEnabled bool) *Handler {
	return &Handler{services: services, log: log, authEnabled: authEnabled}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	if h.authEnabled {
		api.Use(h.userIdMiddleware)
	}
	{
		h.registerTimerRoutes(api)
		h.registerCategoryRoutes(api)
		h.registerHistoryRoutes(api)
	}
}

func (h *Handler) registerTimerRoutes(api *gin.RouterGroup) {
	timers := api.Group("/timers")
	{
		timers.GET("", h.listTimers)
		// Body example: {"name":"Workout","duration":"300","category":"Fitness","halfwayAlert":true}
		timers.POST("", h.createTimer)
		timers.GET("/:id", h.getTimer)
		timers.DELETE("/:id", h.deleteTimer)
		timers.POST("/:id/:action", h.timerAction)
	}
}

func (h *Handler) registerCategoryRoutes(api *gin.RouterGroup) {
	categories := api.Group("/categories")
	{
		categories.GET("", h.listCategories)
		// :action is toggle or start|pause|reset applied to every member.
		categories.POST("/:name/:action", h.categoryAction)
	}
}

func (h *Handler) registerHistoryRoutes(api *gin.RouterGroup) {
	history := api.Group("/history")
	{
		history.GET("", h.listHistory)
		history.DELETE("", h.clearHistory)
		history.DELETE("/:index", h.deleteHistoryEntry)
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
