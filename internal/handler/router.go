package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"parkbroker/internal/handler/api"
	"parkbroker/internal/handler/middleware"
	"parkbroker/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, spotHandler *api.SpotHandler, bookingHandler *api.BookingHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, spotHandler, bookingHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, spotHandler *api.SpotHandler, bookingHandler *api.BookingHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		spots := apiGroup.Group("/spots")
		{
			// Discovery endpoints are public; everything mutating or
			// owner-scoped requires a token.
			addRoutes(spots, []route{
				{Method: http.MethodGet, Path: "", Handler: spotHandler.Search},
				{Method: http.MethodGet, Path: "/nearby", Handler: spotHandler.Nearby},
			})

			authed := spots.Group("")
			authed.Use(authMiddleware.RequireAuth())
			addRoutes(authed, []route{
				{Method: http.MethodPost, Path: "", Handler: spotHandler.Create},
				{Method: http.MethodGet, Path: "/my-spots", Handler: spotHandler.MySpots},
				{Method: http.MethodPut, Path: "/:id", Handler: spotHandler.Update},
				{Method: http.MethodPut, Path: "/:id/availability", Handler: spotHandler.SetAvailability},
				{Method: http.MethodDelete, Path: "/:id", Handler: spotHandler.Delete},
			})

			// Public read sits after /nearby and /my-spots so the static
			// segments keep priority over the id parameter.
			addRoutes(spots, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: spotHandler.Get},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.Request},
				{Method: http.MethodGet, Path: "/my-bookings", Handler: bookingHandler.MyBookings},
				{Method: http.MethodGet, Path: "/pending-requests", Handler: bookingHandler.PendingRequests},
				{Method: http.MethodGet, Path: "/owner-bookings", Handler: bookingHandler.OwnerBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
				{Method: http.MethodPut, Path: "/:id/approve", Handler: bookingHandler.Approve},
				{Method: http.MethodPut, Path: "/:id/reject", Handler: bookingHandler.Reject},
				{Method: http.MethodPut, Path: "/:id/cancel", Handler: bookingHandler.Cancel},
				{Method: http.MethodDelete, Path: "/:id", Handler: bookingHandler.Delete},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
