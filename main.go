package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"

	"github.com/dskvich/assistant-chat/pkg/api"
	"github.com/dskvich/assistant-chat/pkg/api/handler"
	"github.com/dskvich/assistant-chat/pkg/logger"
	"github.com/dskvich/assistant-chat/pkg/openai"
	"github.com/dskvich/assistant-chat/pkg/repository"
	"github.com/dskvich/assistant-chat/pkg/services"
	"github.com/dskvich/assistant-chat/pkg/workers"
)

type Config struct {
	OpenAIToken   string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	HTTPAddr     string `env:"HTTP_ADDR" envDefault:":8080"`
	AppTitle     string `env:"APP_TITLE" envDefault:"ClaireGPT 2.0 📈"`
	AppCaption   string `env:"APP_CAPTION" envDefault:"For all your cover letter needs..."`
	SidebarTitle string `env:"APP_SIDEBAR_TITLE" envDefault:"Claire GPT 2.0"`
	SidebarText  string `env:"APP_SIDEBAR_TEXT" envDefault:"Generate Cover Letters"`

	AssistantListLimit int           `env:"ASSISTANT_LIST_LIMIT" envDefault:"20"`
	RunPollInterval    time.Duration `env:"RUN_POLL_INTERVAL" envDefault:"3s"`
	RunPollMaxInterval time.Duration `env:"RUN_POLL_MAX_INTERVAL" envDefault:"15s"`
	RunTimeout         time.Duration `env:"RUN_TIMEOUT" envDefault:"5m"`

	SessionTTL             time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"10m"`

	UploadMaxBytes int64  `env:"UPLOAD_MAX_BYTES" envDefault:"20971520"`
	TempDir        string `env:"TEMP_DIR"`

	LogLevel   slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogNoColor bool       `env:"LOG_NO_COLOR"`
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	cfg, err := parseConfig()
	if err != nil {
		return err
	}

	opts := logger.DefaultOptions.WithNoColor(cfg.LogNoColor)
	opts.Level = cfg.LogLevel
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, opts)))

	workerGroup := setupWorkers(cfg)

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return workerGroup.Start(ctx)
}

func parseConfig() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing env config: %w", err)
	}
	if cfg.RunPollMaxInterval < cfg.RunPollInterval {
		cfg.RunPollMaxInterval = cfg.RunPollInterval
	}
	return cfg, nil
}

func setupWorkers(cfg Config) workers.Group {
	sessionRepository := repository.NewSessionRepository(cfg.SessionTTL)

	clients := services.NewClientProvider(func(apiKey string) (services.AssistantAPI, error) {
		c, err := openai.NewClient(apiKey, cfg.OpenAIBaseURL, nil)
		if err != nil {
			return nil, err
		}
		return c, nil
	}, cfg.OpenAIToken)

	if !clients.KeyConfigured() {
		slog.Warn("OPENAI_API_KEY is not set, every browser session must provide a key")
	}

	eventHub := services.NewEventHub()
	renderService := services.NewRenderService(clients, cfg.TempDir)
	runService := services.NewRunService(clients, renderService, eventHub, services.RunConfig{
		PollInterval:    cfg.RunPollInterval,
		MaxPollInterval: cfg.RunPollMaxInterval,
		Timeout:         cfg.RunTimeout,
	})
	assistantService := services.NewAssistantService(clients, cfg.AssistantListLimit)
	uploadService := services.NewUploadService(clients, cfg.TempDir, cfg.UploadMaxBytes)

	page := handler.NewPage(handler.PageConfig{
		Title:        cfg.AppTitle,
		Caption:      cfg.AppCaption,
		SidebarTitle: cfg.SidebarTitle,
		SidebarText:  cfg.SidebarText,
	}, clients, services.AllowedExtensions())
	key := handler.NewKey(clients)
	assistants := handler.NewAssistants(assistantService)
	messages := handler.NewMessages(runService, renderService)
	files := handler.NewFiles(uploadService, cfg.UploadMaxBytes)
	events := handler.NewEvents(eventHub)

	router := api.NewRouter(sessionRepository, api.Handlers{
		Page:       page.Index,
		SetKey:     key.Set,
		KeyStatus:  key.Status,
		Assistants: assistants.List,
		Select:     assistants.Select,
		Submit:     messages.Submit,
		Messages:   messages.List,
		Cancel:     messages.Cancel,
		Upload:     files.Upload,
		Files:      files.List,
		Events:     events.Stream,
		Health:     handler.Health(sessionRepository),
	})

	return workers.Group{
		workers.NewHTTPServer(cfg.HTTPAddr, router),
		workers.NewSessionJanitor(sessionRepository, cfg.SessionCleanupInterval),
	}
}
