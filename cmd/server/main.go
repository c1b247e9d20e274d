package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Brownie44l1/bank-marketing-api/internal/config"
	"github.com/Brownie44l1/bank-marketing-api/internal/handlers"
	"github.com/Brownie44l1/bank-marketing-api/internal/middleware"
	"github.com/Brownie44l1/bank-marketing-api/internal/model"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (default config.toml when present)")
	host := flag.String("host", "", "listen host, overrides config")
	port := flag.Int("port", 0, "listen port, overrides config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("config load failed: ", err)
	}
	if err := cfg.Server.Override(*host, *port); err != nil {
		log.Fatal("invalid server flags: ", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	logger.Info(
		"loading artifacts",
		"model", cfg.Artifacts.ModelPath,
		"metadata", cfg.Artifacts.MetadataPath,
		"encoder", cfg.Artifacts.EncoderPath,
		"env", cfg.Env(),
	)

	artifacts, err := model.Load(cfg.Artifacts.Paths())
	if err != nil {
		logger.Error("failed to initialize model", "error", err)
		os.Exit(1)
	}
	defer artifacts.Close()

	logger.Info(
		"model loaded",
		"classes", artifacts.Encoder.Classes(),
		"features", len(artifacts.Classifier.Columns()),
		"output", artifacts.Classifier.Metadata.OutputKind,
	)

	handler := handlers.NewHandler(artifacts.Predictor, logger)
	srv := newHTTPServer(&cfg.Server, routes(handler, &cfg.CORS, logger), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("endpoints", "health", "GET /health", "predict", "POST /predict")
	if err := srv.Run(ctx); err != nil {
		logger.Error("server failed", "error", err)
		artifacts.Close()
		os.Exit(1)
	}
}

func routes(h *handlers.Handler, cors *middleware.CORSConfig, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("/predict", h.Predict)

	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logger(logger.With("system", "http")),
		middleware.CORS(cors),
	)
}
