package main

import (
	"fmt"
	"os"

	"github.com/Web-A1/hauls-service/internal/auth"
	"github.com/Web-A1/hauls-service/internal/config"
	"github.com/Web-A1/hauls-service/internal/db"
	"github.com/Web-A1/hauls-service/internal/excel"
	httphandler "github.com/Web-A1/hauls-service/internal/http"
	"github.com/Web-A1/hauls-service/internal/http/middleware"
	"github.com/Web-A1/hauls-service/internal/logger"
	"github.com/Web-A1/hauls-service/internal/pdf"
	"github.com/Web-A1/hauls-service/internal/repository"
	"github.com/Web-A1/hauls-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	haulRepo := repository.NewHaulRepository(database)
	truckRepo := repository.NewTruckRepository(database)
	materialRepo := repository.NewMaterialRepository(database)
	portalRepo := repository.NewPortalRepository(database)

	waybillGenerator, err := pdf.NewGenerator(cfg.Export.PDFFontPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}
	excelGenerator := excel.NewGenerator()

	tokenIssuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.SessionTTL)
	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	haulService := service.NewHaulService(haulRepo)
	catalogService := service.NewCatalogService(truckRepo, materialRepo)
	installService := service.NewInstallService(portalRepo, tokenIssuer)
	exportService := service.NewExportService(haulRepo, truckRepo, materialRepo, excelGenerator, waybillGenerator)

	handler := httphandler.NewHandler(haulService, catalogService, installService, exportService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.HTTP.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting hauls service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
