package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "smartq/docs"
	"smartq/internal/auth"
	"smartq/internal/config"
	"smartq/internal/handlers"
	"smartq/internal/notify"
	"smartq/internal/queue"
	"smartq/internal/seed"
	"smartq/internal/storage"
	"smartq/internal/tasks"
	"smartq/internal/waitlist"
	"smartq/internal/ws"
)

//go:generate swag init -g main.go -o docs

// @Title						Smart Q: онлайн-очереди бизнесов
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Ошибка конфигурации: ", err.Error())
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		backend  queue.Backend          = queue.NewMemoryBackend()
		users    storage.UserRepository = storage.NewMemoryUserRepository()
		revoked  storage.TokenRevoker   = storage.NewMemoryTokenRevoker()
		docs     storage.DocumentStore  = storage.NewMemoryDocumentStore()
		waitRepo waitlist.Repository    = waitlist.NewMemoryRepository()
	)

	if cfg.UseDatabase() {
		db, err := storage.ConnectDatabase(cfg)
		if err != nil {
			log.Fatal("Ошибка подключения к базе данных: ", err.Error())
		}
		backend = storage.NewQueueBackend(db)
		users = storage.NewGormUserRepository(db)
		waitRepo = storage.NewWaitlistRepository(db)
		logger.Info("Подключение к базе данных установлено")
	} else {
		logger.Warn("DB_HOST не задан, очереди и пользователи хранятся в памяти")
	}

	if cfg.UseRedis() {
		rdb, err := storage.InitRedis(cfg)
		if err != nil {
			log.Fatal("Ошибка подключения к Redis: ", err.Error())
		}
		revoked = storage.NewRedisTokenRevoker(rdb)
		docs = storage.NewRedisDocumentStore(rdb)
		logger.Info("Подключение к Redis установлено")
	}
	docs = storage.NewCachedDocumentStore(docs, cfg.Cache.Size, cfg.Cache.TTL)

	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	events := notify.NewMulti(logger, hub)
	if cfg.RabbitMQ.Enabled {
		publisher, err := notify.DialAMQP(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		if err != nil {
			log.Fatal("Ошибка подключения к RabbitMQ: ", err.Error())
		}
		defer publisher.Close()
		events.Add(publisher)
		logger.Info("События очередей публикуются в RabbitMQ", "queue", cfg.RabbitMQ.Queue)
	}

	store := queue.NewStore(
		queue.WithJitter(queue.NewJitterPolicy(cfg.Queue.JitterProbability, cfg.Queue.JitterSeed)),
		queue.WithDefaultServiceMinutes(cfg.Queue.DefaultServiceMinutes),
	)
	svc := queue.NewService(store, backend, events, queue.ServiceConfig{
		BackendTimeout: cfg.Queue.BackendTimeout,
		Logger:         logger,
	})

	// лист ожидания получает события очереди и бронирует освободившиеся места
	wl := waitlist.NewManager(waitRepo, svc, events, logger)
	events.Add(wl)

	if cfg.SeedFile != "" {
		if err := loadSeed(ctx, cfg.SeedFile, svc, docs); err != nil {
			log.Fatal("Ошибка загрузки начальных данных: ", err.Error())
		}
		logger.Info("Начальные данные загружены", "file", cfg.SeedFile, "queues", len(svc.Queues()))
	}

	planner := tasks.NewPlanner(svc, wl, cfg.Queue.HistoryRetention, logger)
	scheduler, err := tasks.InitScheduler(tasks.Config{
		TickSpec:         cfg.Queue.TickSpec,
		PruneSpec:        cfg.Queue.PruneSpec,
		ExpireSpec:       cfg.Waitlist.ExpireSpec,
		HistoryRetention: cfg.Queue.HistoryRetention,
	}, planner)
	if err != nil {
		log.Fatal("Ошибка запуска планировщика: ", err.Error())
	}
	defer scheduler.Stop()

	h := &handlers.Handler{
		Queues:      svc,
		Waitlist:    wl,
		Users:       users,
		Revoked:     revoked,
		Docs:        docs,
		Hub:         hub,
		Tokens:      auth.NewManager(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL),
		AdminEmails: cfg.Auth.AdminEmails,
		AdminToken:  cfg.Auth.AdminToken,
		Log:         logger,
	}
	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: handlers.NewRouter(h, cfg.HTTP.AllowOrigins),
	}

	go func() {
		<-ctx.Done()
		logger.Info("Остановка сервера")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Ошибка остановки сервера", "error", err)
		}
	}()

	logger.Info("Сервер запущен", "port", cfg.HTTP.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Ошибка запуска сервера...", err.Error())
	}
}

// loadSeed заполняет очереди и справочники из YAML-файла. Если очередь уже
// есть в бэкенде, берётся сохранённая версия.
func loadSeed(ctx context.Context, path string, svc *queue.Service, docs storage.DocumentStore) error {
	f, err := seed.Load(path)
	if err != nil {
		return err
	}
	if err := f.Apply(svc.Store()); err != nil {
		return err
	}
	for _, q := range f.Queues {
		if err := svc.Restore(ctx, q.ID); err != nil {
			return err
		}
	}
	return f.ApplyCatalog(ctx, docs)
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.App.LogLevel))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.IsLocal() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
