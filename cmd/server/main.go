package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"

	"github.com/nautimar/nautica-shop/internal/app"
	"github.com/nautimar/nautica-shop/internal/app/handlers"
	"github.com/nautimar/nautica-shop/internal/auth/jwtmiddleware"
	"github.com/nautimar/nautica-shop/internal/config"
	"github.com/nautimar/nautica-shop/internal/lib/logger"
	"github.com/nautimar/nautica-shop/internal/lib/logger/handlers/urllog"
	"github.com/nautimar/nautica-shop/internal/payment/mercadopago"
	"github.com/nautimar/nautica-shop/internal/service"
	"github.com/nautimar/nautica-shop/internal/storage"
)

func main() {
	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	// загружаем объект приложения с конфигом и подключением к БД
	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.DB.Close()

	// клиент Mercado Pago; без токена сервер не стартует
	mpClient, err := mercadopago.NewClient(cfg.Payment.BaseURL, cfg.Payment.AccessToken, cfg.Payment.Timeout)
	if err != nil {
		log.Error("failed to initialize payment client", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize payment client"))
	}

	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(handlers.CORS)

	// слои по работе с БД по каждому направлению
	userRepo := storage.NewUserRepository(application.DB)
	productRepo := storage.NewProductRepository(application.DB)
	accessoryRepo := storage.NewAccessoryRepository(application.DB)
	orderRepo := storage.NewOrderRepository(application.DB)
	reservationRepo := storage.NewReservationRepository(application.DB)
	favoriteRepo := storage.NewFavoriteRepository(application.DB)

	authService := service.NewAuthService(application.Logger, userRepo, time.Duration(cfg.JWT.TokenTTL)*time.Minute)
	catalogService := service.NewCatalogService(application.Logger, productRepo, accessoryRepo)
	favoriteService := service.NewFavoriteService(application.Logger, favoriteRepo, productRepo)
	orderService := service.NewOrderService(application.Logger, orderRepo)
	adminService := service.NewAdminService(application.Logger, userRepo, productRepo, orderRepo)
	checkoutService := service.NewCheckoutService(
		application.Logger,
		application.DB,
		userRepo,
		productRepo,
		accessoryRepo,
		orderRepo,
		reservationRepo,
		mpClient,
		service.CheckoutURLs{
			Frontend:     cfg.Payment.FrontendURL,
			Notification: cfg.Payment.NotificationURL,
		},
	)
	webhookService := service.NewWebhookService(application.Logger, orderRepo, reservationRepo, mpClient)

	// публичные эндпоинты
	router.Post("/api/auth/register", handlers.RegisterHandler(application.Logger, authService))
	router.Post("/api/auth/login", handlers.LoginHandler(application.Logger, authService))
	router.Get("/api/products", handlers.ProductsHandler(application.Logger, catalogService))
	router.Get("/api/products/{id}", handlers.ProductHandler(application.Logger, catalogService))
	router.Get("/api/accessories", handlers.AccessoriesHandler(application.Logger, catalogService))
	// вебхук провайдера: без аутентификации, статус перечитывается server-to-server
	router.Post("/api/payments/webhook", handlers.WebhookHandler(application.Logger, webhookService))

	router.Group(func(r chi.Router) {
		jwtMW := jwtmiddleware.NewJWTMiddleware()
		r.Use(jwtMW)
		// оформление заказа
		r.Post("/api/checkout", handlers.CheckoutHandler(application.Logger, checkoutService))
		// заказы текущего пользователя
		r.Get("/api/orders", handlers.OrdersHandler(application.Logger, orderService))
		r.Get("/api/orders/{id}", handlers.OrderHandler(application.Logger, orderService))
		// избранное
		r.Get("/api/favorites", handlers.FavoritesHandler(application.Logger, favoriteService))
		r.Post("/api/favorites/{productID}", handlers.ToggleFavoriteHandler(application.Logger, favoriteService))
		// админка
		r.Post("/api/admin/products", handlers.AdminSaveProductHandler(application.Logger, adminService))
		r.Get("/api/admin/orders", handlers.AdminOrdersHandler(application.Logger, adminService))
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
