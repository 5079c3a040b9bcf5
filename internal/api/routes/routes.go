package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/okvist/crewdesk/internal/api/handlers"
	"github.com/okvist/crewdesk/internal/api/middleware"
)

type Deps struct {
	Storage   *handlers.StorageHandler
	Estimates *handlers.EstimatesHandler

	AllowedOrigins []string
	Logger         *logrus.Logger
	StaticDir      string
}

// New builds the engine: CORS and request logging on every route, 405
// for unsupported methods, and the API surface itself.
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if d.Logger != nil {
		r.Use(middleware.RequestLogger(d.Logger))
	}
	r.Use(middleware.CORS(d.AllowedOrigins))

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, handlers.APIError{Success: false, Error: "Method not allowed"})
	})

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.GET("/api/storage/getSignedUrl", d.Storage.GetSignedURL)
	r.GET("/api/data/estimates", d.Estimates.List)

	// Loading screen shown while the frontend boots.
	if d.StaticDir != "" {
		r.StaticFile("/", d.StaticDir+"/loading.html")
		r.Static("/static", d.StaticDir)
	}

	return r
}
