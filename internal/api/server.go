package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Jake2PointZero/HomesteadingwithTiffany/internal/metrics"
	"github.com/Jake2PointZero/HomesteadingwithTiffany/internal/store"
)

// ServiceName labels logs and metrics emitted by this service.
const ServiceName = "shop-service"

// Server holds the repositories the handlers work against. The HTTP
// layer never touches a concrete backend.
type Server struct {
	catalog store.Catalog
	orders  store.Orders
}

// NewServer builds a server over the given repositories.
func NewServer(catalog store.Catalog, orders store.Orders) *Server {
	return &Server{catalog: catalog, orders: orders}
}

// Routes assembles the gin engine: CORS and metrics middleware, the
// storefront API, health and metrics endpoints, and, when staticDir is
// set, static assets with an SPA index fallback.
func (s *Server) Routes(staticDir string) *gin.Engine {
	router := gin.Default()
	router.Use(CORSMiddleware())
	router.Use(metrics.PrometheusMiddleware(ServiceName))

	router.GET("/health", s.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/products", s.listProducts)
		apiGroup.POST("/products", s.createProduct)
		apiGroup.PUT("/products/:id", s.updateProduct)
		apiGroup.DELETE("/products/:id", s.deleteProduct)

		apiGroup.GET("/orders", s.listOrders)
		apiGroup.POST("/orders", s.createOrder)
	}

	if staticDir != "" {
		router.NoRoute(spaFallback(staticDir))
	} else {
		router.GET("/", func(c *gin.Context) {
			c.String(http.StatusOK, "Backend is running")
		})
	}

	return router
}

func (s *Server) health(c *gin.Context) {
	body := gin.H{"status": "healthy"}
	if reporter, ok := s.orders.(interface{ StoreState() string }); ok {
		body["store_circuit"] = reporter.StoreState()
	}
	c.JSON(http.StatusOK, body)
}

// spaFallback serves files out of staticDir for GET requests and falls
// back to index.html for any path that matches no file, so client-side
// routes survive a page reload.
func spaFallback(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		path := filepath.Join(staticDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	}
}
