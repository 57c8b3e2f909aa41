package router

import (
	"net/http"
	"time"

	"brewline/internal/auth"
	"brewline/internal/menu"
	"brewline/internal/metrics"
	"brewline/internal/middleware"
	"brewline/internal/order"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Deps struct {
	Log         logrus.FieldLogger
	CORSOrigins []string

	Tokens  middleware.TokenVerifier
	Users   middleware.UserLookup
	Limiter *middleware.RateLimiter // nil disables login throttling

	Auth   *auth.Handler
	Menu   *menu.Handler
	Orders *order.Handler
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Log), metrics.Middleware())

	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// ───────────────────────── HEALTH / METRICS ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	authn := middleware.AuthMiddleware(d.Tokens, d.Users)
	master := middleware.RequireMaster()

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	if d.Limiter != nil {
		authGroup.POST("/register", d.Limiter.Middleware(), d.Auth.Register)
		authGroup.POST("/login", d.Limiter.Middleware(), d.Auth.Login)
	} else {
		authGroup.POST("/register", d.Auth.Register)
		authGroup.POST("/login", d.Auth.Login)
	}
	authGroup.POST("/become-master", authn, d.Auth.BecomeMaster)

	r.GET("/me", authn, d.Auth.Me)

	// ───────────────────────── MENU ─────────────────────────
	r.GET("/menu", d.Menu.List)

	menuAdmin := r.Group("/menu", authn, master)
	{
		menuAdmin.POST("", d.Menu.Create)
		menuAdmin.PUT("/:id", d.Menu.Update)
		menuAdmin.DELETE("/:id", d.Menu.Delete)
		menuAdmin.DELETE("", d.Menu.Clear)
		menuAdmin.POST("/:id/image", d.Menu.UploadImage)
	}

	// ───────────────────────── ORDERS ─────────────────────────
	orders := r.Group("/orders", authn)
	{
		orders.POST("", d.Orders.Create)
		orders.GET("", d.Orders.List)
		orders.POST("/:id/served", master, d.Orders.MarkServed)
		orders.DELETE("", master, d.Orders.Clear)
	}

	// ───────────────────────── ADMIN ─────────────────────────
	admin := r.Group("/admin", authn, master)
	{
		admin.GET("/users", d.Auth.ListUsers)
		admin.DELETE("/users/:id", d.Auth.DeleteUser)
	}

	return r
}
