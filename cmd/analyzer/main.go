package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/Spok95/smart-price/internal/app"
	"github.com/Spok95/smart-price/internal/config"
	httpx "github.com/Spok95/smart-price/internal/infra/http"
	"github.com/Spok95/smart-price/internal/infra/logger"
	"github.com/Spok95/smart-price/internal/infra/notify"
)

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := app.Run(ctx, cfg, log)
	if err != nil {
		log.Error("анализ не выполнен", "err", err)
		return
	}
	if res.DashboardPath == "" {
		// мягкая остановка: продаж не было
		return
	}

	if tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.AdminChatID, log); err != nil {
		log.Error("telegram недоступен", "err", err)
	} else if tg != nil {
		tg.SendReport(res.DashboardPath, "Умный прайс-лист")
		if res.TimeReportPath != "" {
			tg.SendReport(res.TimeReportPath, "Анализ временных границ тарифов")
		}
	}

	if !cfg.Serve.Enabled {
		return
	}

	// раздаём готовые отчёты до сигнала остановки
	srv := httpx.New(cfg.Serve.Addr, cfg.Outputs.Dir, cfg.Metrics.Enabled)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("отчёты доступны по HTTP", "addr", cfg.Serve.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
