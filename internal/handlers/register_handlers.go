package handlers

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/bookkeeping_app/cmd/docs"
	portssvc "github.com/ledgerline/bookkeeping_app/internal/core/ports/services"
	"github.com/ledgerline/bookkeeping_app/internal/platform/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)

	// Static frontend with SPA fallback, when a build directory is configured
	setupStaticRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	// Delegate route registration to specific handlers, passing required services
	registerTransactionRoutes(v1, services.Transaction)
	registerViewRoutes(v1, services.Transaction)
	registerReportingRoutes(v1, services.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// setupStaticRoutes serves the built frontend and falls back to index.html
// for client-routed paths. Paths that look like files (they carry an
// extension) 404 instead of falling back, so a missing asset never comes
// back as HTML.
func setupStaticRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.StaticDir == "" {
		return
	}

	r.Static("/assets", filepath.Join(cfg.StaticDir, "assets"))
	r.StaticFile("/favicon.ico", filepath.Join(cfg.StaticDir, "favicon.ico"))

	r.NoRoute(func(c *gin.Context) {
		p := c.Request.URL.Path
		if strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/swagger/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		if path.Ext(p) != "" {
			c.Status(http.StatusNotFound)
			return
		}
		c.File(filepath.Join(cfg.StaticDir, "index.html"))
	})
}
