package router

import (
	"github.com/gin-gonic/gin"
	"github.com/stockdash/backend/internal/interfaces/http/handler"
)

// Handlers are the endpoint handlers mounted by RegisterDashboard
type Handlers struct {
	Auth      *handler.AuthHandler
	Inventory *handler.InventoryHandler
	System    *handler.SystemHandler
	Pages     *handler.PageHandler
}

// DashboardOptions carries the route-level settings of the dashboard
type DashboardOptions struct {
	// HomePath is where "/" sends visitors
	HomePath string
	// LoginMiddleware runs before the login handler (rate limiting)
	LoginMiddleware []gin.HandlerFunc
	// APIMiddleware runs before every /api route
	APIMiddleware []gin.HandlerFunc
}

type page struct {
	path  string
	name  string
	title string
}

var uiPages = []page{
	{"/login", "login", "Sign in"},
	{"/register", "register", "Create account"},
	{"/forgot-password", "forgot-password", "Reset password"},
	{"/dashboard", "dashboard", "Dashboard"},
	{"/inventory", "inventory", "Inventory"},
	{"/users", "users", "Users"},
	{"/settings", "settings", "Settings"},
}

// RegisterDashboard mounts every dashboard route on the engine. The engine's
// middleware chain, including the gateway, must already be installed.
// It returns the mounted API routes.
func RegisterDashboard(engine *gin.Engine, h Handlers, opts DashboardOptions) []RouteInfo {
	engine.SetHTMLTemplate(handler.PageTemplate())

	engine.GET("/health", h.System.Health)

	r := NewRouter(engine, WithMiddleware(opts.APIMiddleware...))

	authRoutes := NewDomainGroup("auth", "/auth")
	loginChain := append(append([]gin.HandlerFunc{}, opts.LoginMiddleware...), h.Auth.Login)
	authRoutes.POST("/login", loginChain...)
	authRoutes.POST("/register", h.Auth.Register)
	authRoutes.POST("/logout", h.Auth.Logout)
	authRoutes.GET("/me", h.Auth.Me)

	inventoryRoutes := NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.GET("", h.Inventory.List)
	inventoryRoutes.POST("", h.Inventory.Create)
	inventoryRoutes.GET("/summary", h.Inventory.Summary)
	inventoryRoutes.GET("/categories", h.Inventory.Categories)
	inventoryRoutes.GET("/:id", h.Inventory.Get)
	inventoryRoutes.PUT("/:id", h.Inventory.Update)

	systemRoutes := NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", h.System.Info)

	r.Register(authRoutes).Register(inventoryRoutes).Register(systemRoutes)
	r.Setup()

	engine.GET("/", h.Pages.Root(opts.HomePath))
	for _, p := range uiPages {
		engine.GET(p.path, h.Pages.Render(p.name, p.title))
	}
	return r.Routes()
}
