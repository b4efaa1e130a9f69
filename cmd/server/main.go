package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"morning-macro/internal/bot"
	"morning-macro/internal/config"
	"morning-macro/internal/domain"
	"morning-macro/internal/handler"
	"morning-macro/internal/job"
	"morning-macro/internal/provider"
	"morning-macro/internal/service"
	"morning-macro/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
	tele "gopkg.in/telebot.v3"
)

var (
	loadEnvFunc         = godotenv.Load
	loadConfigFunc      = config.Load
	initTracerFunc      = tracing.InitTracer
	newFredProviderFunc = func(apiKey string, tracer trace.Tracer) service.ObservationProvider {
		return provider.NewFredProvider(apiKey, tracer)
	}
	newBotFunc      = bot.NewBot
	newNotifierFunc = func(b *tele.Bot, chatID string) (service.Notifier, error) {
		return bot.NewNotifier(b, chatID)
	}
	startTelegramBotFunc   = bot.StartTelegramBot
	newBriefingJobFunc     = job.NewBriefingJob
	startJobFunc           = func(j *job.BriefingJob, ctx context.Context) { go j.Start(ctx) }
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

func presence(v string) string {
	if v == "" {
		return "not set"
	}
	return "set"
}

func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	log.Printf("FRED_API_KEY: %s", presence(cfg.FredAPIKey))
	log.Printf("BOT_TOKEN: %s", presence(cfg.TelegramBotToken))
	log.Printf("CHAT_ID: %s", presence(cfg.ChatID))

	now := time.Now().In(domain.KST)
	weekday := "weekday"
	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		weekday = "weekend"
	}
	log.Printf("Current KST time: %s (%s)", now.Format("2006-01-02 15:04:05"), weekday)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// A missing or broken Telegram setup never stops the scheduler loop; the
	// cycles simply run without a delivery target until config is fixed.
	var tgBot *tele.Bot
	var notifier service.Notifier
	if cfg.TelegramBotToken != "" {
		tgBot, err = newBotFunc(cfg.TelegramBotToken)
		if err != nil {
			log.Printf("failed to create Telegram bot, running without delivery: %v", err)
			tgBot = nil
		}
	}
	if tgBot != nil && cfg.ChatID != "" {
		n, err := newNotifierFunc(tgBot, cfg.ChatID)
		if err != nil {
			log.Printf("notifier disabled: %v", err)
		} else {
			notifier = n
		}
	}

	fredProvider := newFredProviderFunc(cfg.FredAPIKey, tracer)
	briefingService := service.NewBriefingService(tracer, fredProvider, notifier)

	if tgBot != nil {
		startTelegramBotFunc(tgBot, briefingService)
	}

	// One-time startup notice and an immediate test briefing, bypassing the
	// clock gate, but only with a complete configuration.
	if cfg.HasSecrets() && notifier != nil {
		if err := briefingService.SendStartupNotice(ctx); err != nil {
			log.Printf("startup notice failed: %v", err)
		}
		if _, err := briefingService.RunBriefing(ctx); err != nil {
			log.Printf("initial briefing cycle error: %v", err)
		}
	} else {
		log.Println("Incomplete configuration: skipping startup notice and test briefing")
	}

	briefingJob := newBriefingJobFunc(tracer, briefingService, cfg.PollSecs, cfg.BriefingHour, cfg.BriefingMinute)
	startJobFunc(briefingJob, ctx)

	h := handler.New(tracer, briefingService)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("morning-macro"))
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
