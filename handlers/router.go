// router.go - Builds the Gin engine and wires every route

package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"go-dms-backend/auth"
	"go-dms-backend/config"
	"go-dms-backend/database"
	"go-dms-backend/middleware"
	"go-dms-backend/services"
)

// Handler holds the services the HTTP endpoints delegate to.
type Handler struct {
	users *services.UserService
	docs  *services.DocumentService
	roles *services.RoleService
	db    *gorm.DB
}

// Deps is everything NewRouter needs. Registry and Logger are optional.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Gate     *auth.Gate
	Logger   logrus.FieldLogger
	Registry *prometheus.Registry
}

// NewRouter builds the services and returns the configured engine.
func NewRouter(d Deps) *gin.Engine {
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}
	if d.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		d.Logger = l
	}
	h := &Handler{
		users: services.NewUserService(d.DB, d.Config, d.Gate, d.Logger),
		docs:  services.NewDocumentService(d.DB, d.Config, d.Logger),
		roles: services.NewRoleService(d.DB, d.Config, d.Logger),
		db:    d.DB,
	}
	metrics := middleware.NewMetrics(d.Registry)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(d.Logger), metrics.Middleware())
	r.Use(cors.New(corsConfig(d.Config.CORSOrigins)))

	// Public routes
	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	r.POST("/users", h.Register)
	r.POST("/users/login", h.Login)

	// Authenticated routes
	api := r.Group("")
	api.Use(middleware.AuthMiddleware(d.Gate))
	{
		if d.Gate.CanRevoke() {
			api.POST("/users/logout", h.Logout)
		}
		api.GET("/users/:id", h.GetUser)
		api.PUT("/users/:id", h.UpdateUser)
		api.GET("/users/:id/documents", h.UserDocuments)

		api.POST("/documents", h.CreateDocument)
		api.GET("/documents", h.ListDocuments)
		api.GET("/documents/:id", h.GetDocument)
		api.PUT("/documents/:id", h.UpdateDocument)
		api.DELETE("/documents/:id", h.DeleteDocument)
		api.GET("/search/documents", h.SearchDocuments)

		api.GET("/roles", h.ListRoles)
	}

	// Admin-only routes
	admin := api.Group("")
	admin.Use(middleware.AdminMiddleware(d.Gate))
	{
		admin.GET("/users", h.ListUsers)
		admin.DELETE("/users/:id", h.DeleteUser)
		admin.GET("/search/users", h.SearchUsers)
		admin.POST("/roles", h.CreateRole)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// Health reports whether the database answers.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := database.Ping(ctx, h.db); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
