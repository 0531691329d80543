package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"scadaval/adapters/excel"
	"scadaval/app"
	"scadaval/internal"
	"scadaval/internal/api"
	"scadaval/internal/config"
	"scadaval/internal/deviation"
	"scadaval/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, _ := internal.ParseLogLevel(appConfig.Logging.Level)
	logger := internal.NewLogger(level)
	internal.DefaultLogger = logger

	engine := deviation.NewEngine(deviation.Options{
		Workers:   appConfig.Engine.Workers,
		ChunkSize: appConfig.Engine.ChunkSize,
	}, logger)
	service := app.NewComparisonService(engine, logger)

	webApp, err := ui.NewApp(ui.Config{
		MaxUploadBytes: appConfig.Upload.MaxBytes(),
		DatasetTTL:     appConfig.Upload.DatasetTTL,
		Sheet:          appConfig.Data.Sheet,
	}, service, logger)
	if err != nil {
		log.Fatalf("Failed to create UI app: %v", err)
	}

	gin.SetMode(appConfig.Server.GinMode)
	webApp.Mount("/api", api.NewRouter(service, api.Config{
		MaxUploadBytes: appConfig.Upload.MaxBytes(),
		Sheet:          appConfig.Data.Sheet,
	}, logger))

	// Configure data source
	if appConfig.Data.ExcelFile != "" {
		excelConfig := excel.DefaultExcelConfig()
		excelConfig.FilePath = appConfig.Data.ExcelFile
		excelConfig.Sheet = appConfig.Data.Sheet

		data, err := excel.NewDataReaderFromConfig(excelConfig).WithLogger(logger).ReadData()
		if err != nil {
			log.Fatalf("Failed to load %s: %v", excelConfig.FilePath, err)
		}
		id := webApp.Datasets().Put(data)
		logger.Info("Preloaded %s at /datasets/%s", data.Source(), id)
	}

	server := &http.Server{
		Addr:    ":" + appConfig.Server.Port,
		Handler: webApp.Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Starting SCADA validation server on port %s", appConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
