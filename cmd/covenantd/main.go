// Command covenantd runs a single covenant node: it opens the World store
// and audit ledger, loads (or generates) its Sovereign key, and serves the
// protocol's read-mostly HTTP+WebSocket API until signaled to stop.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/covenant-finance/covenant/config"
	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/ledger"
	"github.com/covenant-finance/covenant/native/rpc"
	"github.com/covenant-finance/covenant/native/storage"
	"github.com/covenant-finance/covenant/observability/logging"
	telemetry "github.com/covenant-finance/covenant/observability/otel"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "covenant.toml", "path to node configuration")
	flag.Parse()

	env := strings.TrimSpace(os.Getenv("COVENANT_ENV"))
	slogger := logging.Setup("covenantd", env)
	logger := log.New(os.Stdout, "covenantd ", log.LstdFlags|log.Lmsgprefix)

	otlpEndpoint := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	insecure := true
	if value := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE")); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			insecure = parsed
		}
	}
	shutdownTelemetry, err := telemetry.Init(context.Background(), telemetry.Config{
		ServiceName: "covenantd",
		Environment: env,
		Endpoint:    otlpEndpoint,
		Insecure:    insecure,
		Headers:     telemetry.ParseHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS")),
		Metrics:     true,
		Traces:      true,
	})
	if err != nil {
		slogger.Error("failed to initialise telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if shutdownTelemetry != nil {
			_ = shutdownTelemetry(context.Background())
		}
	}()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if err := config.ValidateConfig(cfg.AsGlobal()); err != nil {
		logger.Fatalf("validate config: %v", err)
	}

	sovereignBytes, err := hex.DecodeString(cfg.SovereignKey)
	if err != nil {
		logger.Fatalf("decode sovereign key: %v", err)
	}
	sovereignKey, err := crypto.PrivateKeyFromBytes(sovereignBytes)
	if err != nil {
		logger.Fatalf("parse sovereign key: %v", err)
	}
	slogger.Info("sovereign key loaded", "address", sovereignKey.PubKey().Address().String())

	store, err := storage.Open(filepath.Join(cfg.DataDir, "state"))
	if err != nil {
		logger.Fatalf("open state store: %v", err)
	}
	defer store.Close()

	db, err := ledger.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("open ledger: %v", err)
	}
	ledgerLog := ledger.NewLog(db)

	quotaStore, err := rpc.NewQuotaStore(filepath.Join(cfg.DataDir, "quota"))
	if err != nil {
		logger.Fatalf("open quota store: %v", err)
	}
	defer quotaStore.Close()

	if _, err := store.LoadWorld(); err != nil {
		slogger.Warn("no persisted world found; a deployment must initialize one before the API is useful", "error", err)
	}

	_, handler := rpc.New(rpc.Config{
		Store:       store,
		LedgerLog:   ledgerLog,
		QuotaStore:  quotaStore,
		ExportDir:   cfg.ExportDir,
		JWTSecret:   cfg.JWTSecret,
		JWTIssuer:   "covenantd",
		ReadRateQPS: cfg.RateLimitRequestsPerSecond,
		ReadBurst:   cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              cfg.RPCAddress,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slogger.Info("rpc server listening", "addr", cfg.RPCAddress)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("serve: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slogger.Error("graceful shutdown failed", "error", err)
	}
}
