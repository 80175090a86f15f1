package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/sprasadik2010/vantage-system-sub000/internal/batch"
	batchStore "github.com/sprasadik2010/vantage-system-sub000/internal/batch/store"
	"github.com/sprasadik2010/vantage-system-sub000/internal/commission"
	commissionStore "github.com/sprasadik2010/vantage-system-sub000/internal/commission/store"
	"github.com/sprasadik2010/vantage-system-sub000/internal/config"
	"github.com/sprasadik2010/vantage-system-sub000/internal/database"
	vantageHttp "github.com/sprasadik2010/vantage-system-sub000/internal/http"
	batchHandler "github.com/sprasadik2010/vantage-system-sub000/internal/http/batchapi"
	distributionHandler "github.com/sprasadik2010/vantage-system-sub000/internal/http/distribution"
	lookupHandler "github.com/sprasadik2010/vantage-system-sub000/internal/http/lookup"
	"github.com/sprasadik2010/vantage-system-sub000/internal/importer"
	"github.com/sprasadik2010/vantage-system-sub000/internal/referral"
	referralStore "github.com/sprasadik2010/vantage-system-sub000/internal/referral/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		graph             = referralStore.New(db)
		referralService   = referral.NewService(graph)
		commissionService = commission.NewService(graph, commissionStore.New(db))
		batchService      = batch.NewService(batchStore.New(db), commissionService, cfg.Batch.Workers)
		importService     = importer.NewService()
	)

	var (
		distributionH = distributionHandler.NewHandler(commissionService)
		batchH        = batchHandler.NewHandler(batchService, importService, cfg.Batch.MaxUploadBytes)
		lookupH       = lookupHandler.NewHandler(referralService)
	)

	router := vantageHttp.New(distributionH, batchH, lookupH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
