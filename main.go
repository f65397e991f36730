package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dinein/auth"
	"dinein/config"
	"dinein/controller"
	"dinein/database"
	"dinein/events"
	"dinein/logger"
	"dinein/payment"
	"dinein/route"
	"dinein/service"
	"dinein/storage"
	"dinein/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}

func run(cfg *config.Config, log *zap.SugaredLogger) error {
	db, err := database.Open(cfg.Database, cfg.Server.GinMode == gin.DebugMode)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}
	if err := database.SeedGateways(db); err != nil {
		return err
	}
	if created, err := database.SeedAdmin(db, cfg.Admin); err != nil {
		return err
	} else if created {
		log.Infow("admin account created", "email", cfg.Admin.Email)
	}
	log.Infow("database ready", "driver", cfg.Database.Driver)

	if err := os.MkdirAll(cfg.Upload.Dir, 0755); err != nil {
		return err
	}
	images := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.MaxSize)

	var gateway payment.Gateway
	if cfg.PayPal.Enabled() {
		pp, err := payment.NewPayPalGateway(payment.PayPalConfig{
			ClientID: cfg.PayPal.ClientID,
			Secret:   cfg.PayPal.Secret,
			Mode:     cfg.PayPal.Mode,
		})
		if err != nil {
			return err
		}
		gateway = pp
		log.Infow("paypal gateway configured", "mode", cfg.PayPal.Mode)
	} else {
		log.Warn("PAYPAL_CLIENT_ID not set, online payments disabled")
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		rmq, err := events.NewRabbitMQPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			return err
		}
		publisher = rmq
		log.Infow("publishing events", "exchange", cfg.RabbitMQ.Exchange)
	}
	defer publisher.Close()

	tokens := utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	reservations := service.NewReservationService(db, images, gateway, publisher, log, service.ReservationServiceConfig{
		PublicURL: cfg.Server.PublicURL,
		Currency:  cfg.PayPal.Currency,
	})
	payments := service.NewPaymentService(db, gateway, publisher, log)
	restaurants := service.NewRestaurantService(db, images, log)
	menu := service.NewMenuService(db, images, log)

	if cfg.Server.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(utils.Recovery(log), utils.RequestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	route.APIRoutes(router, route.Handlers{
		Auth:         auth.NewHandler(service.NewAuthService(db, tokens)),
		Restaurants:  controller.NewRestaurantController(restaurants, menu),
		Menu:         controller.NewMenuController(menu),
		Reservations: controller.NewReservationController(reservations),
		Payments:     controller.NewPaymentController(payments),
		Geography:    controller.NewGeographyController(service.NewGeographyService(db)),
		Health:       controller.Health(db),
	}, tokens)
	router.Static("/uploads", cfg.Upload.Dir)

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Infow("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
