package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, environment string, allowedOrigins []string) *gin.Engine {
	if environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = allowedOrigins
	}
	router.Use(cors.New(corsCfg))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/install", handler.installApp)
	router.POST("/auth/session", handler.createSession)

	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/hauls", handler.listHauls)
	protected.GET("/hauls/my", handler.listMyHauls)
	protected.POST("/hauls", handler.createHaul)
	protected.GET("/hauls/:id", handler.getHaul)
	protected.PUT("/hauls/:id", handler.updateHaul)
	protected.DELETE("/hauls/:id", handler.deleteHaul)
	protected.PUT("/hauls/:id/status", handler.changeHaulStatus)
	protected.GET("/hauls/:id/history", handler.haulHistory)
	protected.GET("/hauls/:id/waybill", handler.haulWaybill)
	protected.GET("/deals/:dealId/hauls/export", handler.exportDealRegister)

	protected.GET("/trucks", handler.listTrucks)
	protected.POST("/trucks", handler.createTruck)
	protected.PUT("/trucks/:id", handler.updateTruck)
	protected.DELETE("/trucks/:id", handler.deleteTruck)

	protected.GET("/materials", handler.listMaterials)
	protected.POST("/materials", handler.createMaterial)
	protected.PUT("/materials/:id", handler.updateMaterial)
	protected.DELETE("/materials/:id", handler.deleteMaterial)

	return router
}
