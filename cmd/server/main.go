package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/seeforge-backend/internal/ai"
	"github.com/ignatzorin/seeforge-backend/internal/config"
	"github.com/ignatzorin/seeforge-backend/internal/db"
	"github.com/ignatzorin/seeforge-backend/internal/goroutine"
	httpHandlers "github.com/ignatzorin/seeforge-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/seeforge-backend/internal/http/router"
	"github.com/ignatzorin/seeforge-backend/internal/logger"
	"github.com/ignatzorin/seeforge-backend/internal/pricing"
	"github.com/ignatzorin/seeforge-backend/internal/repository"
	"github.com/ignatzorin/seeforge-backend/internal/service"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.Env == "development")

	table, err := pricing.LoadTable(cfg.PricingTablePath)
	if err != nil {
		logger.Log.WithError(err).Fatal("main: ошибка загрузки прайса")
	}
	engine := pricing.NewEngine(table)

	// Хранилище выбирается один раз: PostgreSQL, MongoDB или память.
	store := repository.Open(ctx, cfg)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Log.WithError(err).Warn("main: ошибка закрытия хранилища")
		}
	}()

	orders, redisPing, closeRedis := openPaymentOrders(ctx, cfg.RedisURL)
	defer closeRedis()

	// Сервисы.
	identity := service.NewIdentityResolver(cfg.AuthMode, cfg.JWTSecret, cfg.FallbackUserID)
	projectService := service.NewProjectService(store.Projects, engine)
	templateService := service.NewTemplateService(store.Templates)
	paymentService := service.NewPaymentService(orders, store.Projects)
	aiClient := ai.NewClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel, cfg.AIMaxRPS)
	if !aiClient.Configured() {
		logger.Log.Warn("main: AI_API_KEY не задан, генерация работает в мок режиме")
	}

	// HTTP хэндлеры.
	engineHTTP := httpRouter.SetupRouter(cfg, httpRouter.Handlers{
		Health:   httpHandlers.NewHealthHandler(store, redisPing),
		Projects: httpHandlers.NewProjectHandler(projectService),
		AI:       httpHandlers.NewAIHandler(aiClient),
		Template: httpHandlers.NewTemplateHandler(templateService),
		Pricing:  httpHandlers.NewPricingHandler(engine),
		Payments: httpHandlers.NewPaymentHandler(paymentService),
		Admin:    httpHandlers.NewAdminHandler(projectService),
	}, identity)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engineHTTP,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGo("shutdown", func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	})

	logger.Log.WithFields(logrus.Fields{
		"port":      cfg.HTTPPort,
		"storage":   store.Mode(),
		"auth_mode": identity.Mode(),
		"ai_model":  aiClient.Model(),
	}).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.WithError(err).Fatal("main: сервер завершился с ошибкой")
	}
}

// openPaymentOrders подключает Redis для заказов. Без REDIS_URL или при ошибке заказы хранятся в памяти.
func openPaymentOrders(ctx context.Context, url string) (repository.PaymentOrderRepository, httpHandlers.PingFunc, func()) {
	noop := func() {}
	if url == "" {
		return repository.NewMemoryPaymentOrderRepository(), nil, noop
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := db.NewRedis(connectCtx, url)
	if err != nil {
		logger.Log.WithError(err).Warn("main: Redis недоступен, заказы хранятся в памяти")
		return repository.NewMemoryPaymentOrderRepository(), nil, noop
	}

	ping := func(ctx context.Context) error { return client.Ping(ctx).Err() }
	return repository.NewRedisPaymentOrderRepository(client), ping, func() { safeClose(client) }
}

// safeClose закрывает клиент Redis.
func safeClose(client *redis.Client) {
	if err := client.Close(); err != nil {
		logger.Log.WithError(err).Warn("main: ошибка закрытия Redis")
	}
}
