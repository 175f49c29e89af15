package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/rs/cors"

	"github.com/leetaniau/foodmap/backend/shared/go-utils"

	"github.com/leetaniau/foodmap/backend/services/resource-service/internal/app"
	"github.com/leetaniau/foodmap/backend/services/resource-service/internal/config"
)

func main() {
	utils.InitLogger(config.AppName)

	// 1) Config
	cfg := config.LoadConfig()
	defer cfg.Close()

	// 2) Core application (store, integrations, services)
	application, err := app.NewApp(context.Background(), cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize resource-service:", err)
	}
	defer application.Close()

	// 3) Router
	router := application.NewRouter()

	// 4) CORS
	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Platform", "X-Device-ID"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on :%s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, c.Handler(router)); err != nil {
		utils.Logger.Fatal("Server error:", err)
	}
}
