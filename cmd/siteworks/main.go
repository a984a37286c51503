package main

import (
	"fmt"
	"os"

	"github.com/nurpe/siteworks/internal/auth"
	"github.com/nurpe/siteworks/internal/config"
	"github.com/nurpe/siteworks/internal/db"
	"github.com/nurpe/siteworks/internal/excel"
	httphandler "github.com/nurpe/siteworks/internal/http"
	"github.com/nurpe/siteworks/internal/http/middleware"
	"github.com/nurpe/siteworks/internal/logger"
	"github.com/nurpe/siteworks/internal/pdf"
	"github.com/nurpe/siteworks/internal/repository"
	"github.com/nurpe/siteworks/internal/service"
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

	docRepo := repository.NewDocumentRepository(database)
	refRepo := repository.NewReferenceRepository(database)
	registerRepo := repository.NewRegisterRepository(database)

	pdfGenerator, err := pdf.NewGenerator()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}
	excelGenerator := excel.NewGenerator()

	documentService := service.NewDocumentService(docRepo, refRepo, log)
	postingService := service.NewPostingService(database, docRepo, registerRepo, log)
	registerService := service.NewRegisterService(registerRepo, docRepo, refRepo, excelGenerator, pdfGenerator, cfg)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(documentService, postingService, registerService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting siteworks service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
