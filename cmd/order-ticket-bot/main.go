// Package main boots the order-ticket Discord bot.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fairyhunter13/order-ticket-bot/internal/config"
	"github.com/fairyhunter13/order-ticket-bot/internal/discord"
	"github.com/fairyhunter13/order-ticket-bot/internal/httpapi"
	"github.com/fairyhunter13/order-ticket-bot/internal/obs"
	"github.com/fairyhunter13/order-ticket-bot/internal/store"
)

func main() {
	obs.InitLogger()
	cfg, err := config.Load()
	if err != nil {
		obs.Logger.Error("config_error", "error", err)
		os.Exit(1)
	}
	obs.Logger.Info("service_starting", "admin_role_configured", cfg.AdminRoleID != "", "durable_state", cfg.StateDir != "")

	var st store.ClaimStore
	if cfg.StateDir != "" {
		ps, err := store.NewPebble(cfg.StateDir)
		if err != nil {
			obs.Logger.Error("state_open_error", "dir", cfg.StateDir, "error", err)
			os.Exit(1)
		}
		st = ps
	} else {
		st = store.NewMemory()
	}

	metrics := obs.NewMetrics()

	bot, err := discord.New(cfg, st, metrics)
	if err != nil {
		obs.Logger.Error("bot_init_error", "error", err)
		os.Exit(1)
	}
	if err := bot.Open(); err != nil {
		obs.Logger.Error("gateway_open_error", "error", err)
		os.Exit(1)
	}

	app := httpapi.NewApp(metrics)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(app),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())

	ctxSrv, cancelSrv := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelSrv()
	if err := srv.Shutdown(ctxSrv); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}
	if err := bot.Close(); err != nil {
		obs.Logger.Error("gateway_close_error", "error", err)
	}
	if err := st.Close(); err != nil {
		obs.Logger.Error("state_close_error", "error", err)
	}
	obs.Logger.Info("service_stopped")
}
