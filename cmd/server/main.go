package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"netops-portal/internal/config"
	"netops-portal/internal/database"
	"netops-portal/internal/handlers"
	"netops-portal/internal/history"
	"netops-portal/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logging.Setup(cfg.LogLevel, cfg.LogDir); err != nil {
		logrus.Fatalf("Failed to configure logging: %v", err)
	}
	history.SetSystemActor(cfg.SystemActorID)

	database.Connect(cfg)
	handlers.Init(cfg)

	router := gin.Default()
	registerRoutes(router)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	logrus.Infof("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

func registerRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		wntds := v1.Group("/wntds")
		{
			wntds.POST("", handlers.CreateWNTD)
			wntds.GET("", handlers.ListWNTDs)
			wntds.GET("/:id", handlers.GetWNTD)
			wntds.PUT("/:id", handlers.UpdateWNTD)
			wntds.DELETE("/:id", handlers.DeleteWNTD)
			wntds.GET("/:id/history", handlers.ListWNTDHistory)
		}

		implementations := v1.Group("/implementations")
		{
			implementations.POST("", handlers.CreateImplementation)
			implementations.GET("", handlers.ListImplementations)
			implementations.GET("/:id", handlers.GetImplementation)
			implementations.PUT("/:id", handlers.UpdateImplementation)
			implementations.DELETE("/:id", handlers.DeleteImplementation)
			implementations.GET("/:id/history", handlers.ListImplementationHistory)
		}

		ranParams := v1.Group("/ran-parameters")
		{
			ranParams.POST("", handlers.CreateRANParameter)
			ranParams.GET("", handlers.ListRANParameters)
			ranParams.GET("/:id", handlers.GetRANParameter)
			ranParams.DELETE("/:id", handlers.DeleteRANParameter)
			ranParams.GET("/:id/history", handlers.ListRANParameterHistory)
		}

		structParams := v1.Group("/ran-struct-parameters")
		{
			structParams.POST("", handlers.CreateRANStructParameter)
			structParams.GET("", handlers.ListRANStructParameters)
		}

		imports := v1.Group("/imports")
		{
			imports.POST("/wntds", handlers.ImportWNTDs)
			imports.POST("/implementations", handlers.ImportImplementations)
			imports.POST("/ran-parameters", handlers.ImportRANParameters)
			imports.POST("/ran-struct-parameters", handlers.ImportRANStructParameters)
		}

		exports := v1.Group("/exports")
		{
			exports.GET("/wntds", handlers.ExportWNTDs)
			exports.GET("/implementations", handlers.ExportImplementations)
			exports.GET("/ran-parameters", handlers.ExportRANParameters)
			exports.GET("/ran-struct-parameters", handlers.ExportRANStructParameters)
		}
	}
}
