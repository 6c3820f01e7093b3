package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/anish9011/plant/internal/http/handlers"
	httpMW "github.com/anish9011/plant/internal/http/middleware"
	"github.com/anish9011/plant/internal/observability"
	"github.com/anish9011/plant/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	// MaxMultipartMemory bounds in-memory form parsing; larger parts spill to disk.
	MaxMultipartMemory int64
	Metrics            *observability.Metrics

	AdminGuard *httpMW.AdminGuard

	HealthHandler   *httpH.HealthHandler
	AuthHandler     *httpH.AuthHandler
	CatalogHandler  *httpH.CatalogHandler
	CartHandler     *httpH.CartHandler
	CheckoutHandler *httpH.CheckoutHandler
	OrderHandler    *httpH.OrderHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.MaxMultipartMemory > 0 {
		r.MaxMultipartMemory = cfg.MaxMultipartMemory
	}
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "plant"
	}
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Auth
	if cfg.AuthHandler != nil {
		r.POST("/signup", cfg.AuthHandler.Signup)
		r.POST("/signin", cfg.AuthHandler.Signin)
	}

	// Catalog (public reads)
	if cfg.CatalogHandler != nil {
		r.GET("/getproduct", cfg.CatalogHandler.ListProducts)
		r.GET("/getproductdetail/:id", cfg.CatalogHandler.GetProduct)
	}

	// Cart
	if cfg.CartHandler != nil {
		r.POST("/cart", cfg.CartHandler.Add)
		r.GET("/cart", cfg.CartHandler.List)
		r.PUT("/cart/:id", cfg.CartHandler.Update)
		r.DELETE("/cart/:id", cfg.CartHandler.Remove)
		r.DELETE("/cart", cfg.CartHandler.Clear)
	}

	// Checkout
	if cfg.CheckoutHandler != nil {
		r.POST("/checkout", cfg.CheckoutHandler.Submit)
		r.GET("/checkout/delivery-date", cfg.CheckoutHandler.DeliveryDate)
	}

	// Orders
	if cfg.OrderHandler != nil {
		r.GET("/myorders", cfg.OrderHandler.MyOrders)
	}

	admin := r.Group("/admin")
	{
		if cfg.AdminGuard != nil {
			admin.Use(cfg.AdminGuard.RequireAdmin())
		}
		if cfg.OrderHandler != nil {
			admin.GET("", cfg.OrderHandler.AllOrders)
		}
		if cfg.CatalogHandler != nil {
			admin.POST("/addproduct", cfg.CatalogHandler.AddProduct)
			admin.GET("/getproduct", cfg.CatalogHandler.ListProducts)
		}
		// The bag routes are the storefront's multipart view of the cart.
		if cfg.CartHandler != nil {
			admin.POST("/addtobag", cfg.CartHandler.AddToBag)
			admin.GET("/addtobag", cfg.CartHandler.List)
			admin.PUT("/updatequantity/:id", cfg.CartHandler.Update)
			admin.DELETE("/deletecartitem/:id", cfg.CartHandler.Remove)
		}
	}

	return r
}
