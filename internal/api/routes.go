package api

import (
	"embed"
	"html/template"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

const sessionName = "session"

type RouterOptions struct {
	SessionSecret  string
	AllowedOrigins []string
}

// NewRouter builds the gin engine with every route of the web frontend.
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(handler.logger, handler.metrics))

	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 86400 * 7, HttpOnly: true})
	router.Use(sessions.Sessions(sessionName, store))

	SetupRoutes(router, handler, opts.AllowedOrigins)
	return router
}

func SetupRoutes(router *gin.Engine, handler *Handler, allowedOrigins []string) {
	router.GET("/", handler.Home)
	router.GET("/login", handler.LoginForm)
	router.POST("/login", handler.Login)
	router.GET("/register", handler.RegisterForm)
	router.POST("/register", handler.Register)
	router.POST("/logout", handler.Logout)
	router.GET("/healthz", handler.Health)
	router.GET("/metrics", gin.WrapH(handler.metrics.Handler()))

	authed := router.Group("/", RequireUser(handler.users, handler.logger))
	{
		authed.GET("/dashboard", handler.Dashboard)
		authed.POST("/delete_user", handler.DeleteUser)
		authed.GET("/map", handler.ShowMap)
		authed.POST("/calculate", handler.Calculate)
		authed.POST("/credit", handler.EvaluateCredit)
	}

	api := router.Group("/api", cors.New(corsConfig(allowedOrigins)), RequireUser(handler.users, handler.logger))
	{
		api.POST("/calculate", handler.CalculateJSON)
		api.POST("/credit", handler.EvaluateCreditJSON)
	}

	// Preflight requests are answered by the cors middleware before auth runs.
	preflight := router.Group("/api", cors.New(corsConfig(allowedOrigins)))
	{
		preflight.OPTIONS("/calculate", func(c *gin.Context) {})
		preflight.OPTIONS("/credit", func(c *gin.Context) {})
	}
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		// same-origin only
		cfg.AllowOriginFunc = func(string) bool { return false }
	}
	return cfg
}
