package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"localscout-booking/internal/domain/user"
	"localscout-booking/internal/handler/api"
	"localscout-booking/internal/handler/middleware"
	"localscout-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Booking      *api.BookingHandler
	Payment      *api.PaymentHandler
	Notification *api.NotificationHandler
}

func NewHandlers(b *api.BookingHandler, p *api.PaymentHandler, n *api.NotificationHandler) Handlers {
	return Handlers{Booking: b, Payment: p, Notification: n}
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	customerOnly := authMiddleware.RequireRole(user.RoleCustomer)
	providerOnly := authMiddleware.RequireRole(user.RoleProvider)

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		bookings := apiGroup.Group("/bookings")
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Booking.Create, Mw: []gin.HandlerFunc{customerOnly}},
			{Method: http.MethodGet, Path: "", Handler: h.Booking.List},
			{Method: http.MethodGet, Path: "/stats", Handler: h.Booking.Stats},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
			{Method: http.MethodPost, Path: "/:id/approve", Handler: h.Booking.Approve, Mw: []gin.HandlerFunc{providerOnly}},
			{Method: http.MethodPost, Path: "/:id/reject", Handler: h.Booking.Reject, Mw: []gin.HandlerFunc{providerOnly}},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Booking.Cancel, Mw: []gin.HandlerFunc{customerOnly}},
			{Method: http.MethodPost, Path: "/:id/checkout", Handler: h.Booking.Checkout, Mw: []gin.HandlerFunc{customerOnly}},
		})

		notifications := apiGroup.Group("/notifications")
		addRoutes(notifications, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Notification.ListUnread},
			{Method: http.MethodPost, Path: "/:id/read", Handler: h.Notification.MarkRead},
		})
	}

	// Gateway callbacks carry no user token.
	payment := engine.Group("/payment")
	addRoutes(payment, []route{
		{Method: http.MethodPost, Path: "/webhook", Handler: h.Payment.Webhook},
		{Method: http.MethodGet, Path: "/success", Handler: h.Payment.Success},
		{Method: http.MethodPost, Path: "/success", Handler: h.Payment.Success},
		{Method: http.MethodGet, Path: "/fail", Handler: h.Payment.Fail},
		{Method: http.MethodPost, Path: "/fail", Handler: h.Payment.Fail},
		{Method: http.MethodGet, Path: "/cancel", Handler: h.Payment.Cancel},
		{Method: http.MethodPost, Path: "/cancel", Handler: h.Payment.Cancel},
	})
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
