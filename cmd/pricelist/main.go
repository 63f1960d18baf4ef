package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/pricelist/internal/application"
	"github.com/JonMunkholm/pricelist/internal/config"
	"github.com/JonMunkholm/pricelist/internal/core"
	"github.com/JonMunkholm/pricelist/internal/logging"
	"github.com/JonMunkholm/pricelist/internal/report"
	"github.com/JonMunkholm/pricelist/internal/web"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service, err := core.NewService(cfg)
	if err != nil {
		slog.Error("failed to create service", "error", err)
		fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		return 1
	}

	// Nothing is shown until every price list has loaded
	products, err := service.LoadPrices(ctx, "")
	if err != nil {
		slog.Error("failed to load price lists", "dir", service.Dir(), "error", err)
		fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		return 1
	}

	var server *web.Server
	if cfg.HTTP.Enabled {
		server = web.NewServer(service, cfg.HTTP)
		go func() {
			if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("http view stopped", "error", err)
			}
		}()
	}

	session := application.NewSession(service, os.Stdin, os.Stdout, cfg.Session.ExitWord)
	if err := session.ShowProducts(products); err != nil {
		slog.Error("failed to print products", "error", err)
		return 1
	}

	code := 0
	if err := session.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Info("interrupted")
			code = 130
		} else {
			slog.Error("session failed", "error", err)
			code = 1
		}
	}

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
		cancel()
	}

	if code != 0 {
		return code
	}

	if err := export(context.Background(), cfg.Export, service.Products()); err != nil {
		slog.Error("export failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// export writes the whole catalog to every configured destination.
func export(ctx context.Context, cfg config.ExportConfig, products []core.Product) error {
	if err := report.WriteHTMLFile(ctx, cfg.HTMLPath, products); err != nil {
		return err
	}
	slog.Info("catalog exported", "path", cfg.HTMLPath, "products", len(products))

	if cfg.XLSXPath != "" {
		if err := report.WriteXLSXFile(cfg.XLSXPath, products); err != nil {
			return err
		}
		slog.Info("catalog exported", "path", cfg.XLSXPath, "products", len(products))
	}
	return nil
}
