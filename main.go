package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"chatapi/internal/api"
	"chatapi/internal/config"
	"chatapi/internal/constants"
	"chatapi/internal/db"
	"chatapi/internal/handlers"
	"chatapi/internal/logging"
)

func main() {
	// --- Блок инициализации ---
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: не удалось загрузить файл .env. Переменные окружения должны быть установлены иным способом.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось загрузить конфигурацию: %v", err)
	}
	logging.Configure(cfg.LogLevel, cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(ctx, cfg)
	if err != nil {
		slog.Error("Критическая ошибка: не удалось инициализировать базу данных", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	chatHandler := handlers.NewChatHandler(handlers.HandlerDependencies{
		Config: cfg,
		Store:  store,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, chatHandler, store),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Запуск HTTP-сервера chat API", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Остановка HTTP-сервера...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("HTTP-сервер завершился с ошибкой", "error", err)
		store.Close()
		os.Exit(1)
	}
	slog.Info("Сервер остановлен.")
}

func newRouter(cfg *config.Config, chatHandler *handlers.ChatHandler, store *db.Store) http.Handler {
	r := chi.NewRouter()

	// ГЛОБАЛЬНЫЕ MIDDLEWARES ДОЛЖНЫ ИДТИ ПЕРЕД api.SetupRoutes
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(25 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{constants.CORS_ALLOW_ORIGIN},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{constants.HEADER_CONTENT_TYPE, constants.HEADER_USER_ID, constants.HEADER_AUTH_TOKEN},
		ExposedHeaders: []string{constants.HEADER_REQUEST_ID},
		MaxAge:         constants.CORS_MAX_AGE_SEC,
		// Preflight отдаёт сама функция, чтобы заголовки совпадали с её ответом.
		OptionsPassthrough: true,
	}))

	api.SetupRoutes(r, api.ApiDependencies{
		Config: cfg,
		Chat:   chatHandler,
		DB:     store,
	})
	return r
}
