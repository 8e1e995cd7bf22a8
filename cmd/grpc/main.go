package main

import (
	"context"
	"errors"
	"log"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	orderv1 "github.com/fekuna/omnipos-order-service/api/orderv1"
	"github.com/fekuna/omnipos-order-service/config"
	"github.com/fekuna/omnipos-order-service/internal/cart"
	"github.com/fekuna/omnipos-order-service/internal/catalog"
	"github.com/fekuna/omnipos-order-service/internal/feed"
	"github.com/fekuna/omnipos-order-service/internal/notify"
	"github.com/fekuna/omnipos-order-service/internal/order"
	"github.com/fekuna/omnipos-order-service/pkg/broker"
	"github.com/fekuna/omnipos-order-service/pkg/cache"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
	"github.com/fekuna/omnipos-order-service/pkg/middleware"
	"github.com/fekuna/omnipos-order-service/pkg/postgres"

	cartH "github.com/fekuna/omnipos-order-service/internal/cart/handler"
	cartRepoPkg "github.com/fekuna/omnipos-order-service/internal/cart/repository"
	cartUCPkg "github.com/fekuna/omnipos-order-service/internal/cart/usecase"

	menuH "github.com/fekuna/omnipos-order-service/internal/catalog/handler"
	menuRepoPkg "github.com/fekuna/omnipos-order-service/internal/catalog/repository"

	orderH "github.com/fekuna/omnipos-order-service/internal/order/handler"
	orderListenerPkg "github.com/fekuna/omnipos-order-service/internal/order/listener"
	orderNotifierPkg "github.com/fekuna/omnipos-order-service/internal/order/notifier"
	orderRepoPkg "github.com/fekuna/omnipos-order-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-order-service/internal/order/usecase"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Connect to Database
	var db *sqlx.DB
	if cfg.Postgres.Enabled {
		var err error
		db, err = postgres.NewPostgres(&postgres.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to database", zap.Error(err))
		}
		defer db.Close()
		appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))
	} else {
		appLogger.Warn("PostgreSQL disabled, orders are kept in memory only")
	}

	// 4. Initialize Redis
	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled {
		var err error
		redisClient, err = cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		appLogger.Warn("Redis disabled, carts are kept in process memory")
	}

	// 5. Load Menu
	menu, err := catalog.Load(ctx, menuSource(cfg, db, appLogger))
	if err != nil {
		appLogger.Fatal("Could not load menu", zap.Error(err))
	}
	appLogger.Info("Menu loaded", zap.String("source", cfg.Restaurant.MenuSource), zap.Int("products", len(menu.List())))

	// 6. Initialize Repositories
	// Interfaces stay nil when the backing store is disabled.
	var (
		orderRepo  order.Repository
		feedSource feed.Source
		cartRepo   cart.Repository = cartRepoPkg.NewMemoryRepository()
		locker     cartUCPkg.Locker
	)
	if db != nil {
		pgOrders := orderRepoPkg.NewPGRepository(db)
		orderRepo = pgOrders
		feedSource = pgOrders
	}
	if redisClient != nil {
		cartRepo = cartRepoPkg.NewRedisRepository(redisClient, time.Duration(cfg.Restaurant.CartTTL)*time.Second)
		locker = redisClient
	}

	orderFeed := feed.New(feedSource, appLogger)

	composer, err := notify.NewComposer(notify.Config{
		Restaurant: cfg.Restaurant.Name,
		Phone:      cfg.Restaurant.WhatsAppPhone,
		Locale:     cfg.Restaurant.Locale,
	})
	if err != nil {
		appLogger.Fatal("Could not load message templates", zap.Error(err))
	}

	// 7. Initialize Messaging
	var orderOpts []orderUCPkg.Option
	var changes <-chan string
	if redisClient != nil {
		notifier := orderNotifierPkg.NewRedisNotifier(redisClient, cfg.Restaurant.ChangesChannel, appLogger)
		orderOpts = append(orderOpts, orderUCPkg.WithNotifier(notifier))
		changes = notifier.Listen(ctx)
	}

	var ticketListener *orderListenerPkg.OrderListener
	if cfg.Kafka.Enabled {
		kafkaCfg := &broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		}
		kafkaProducer := broker.NewProducer(kafkaCfg)
		defer kafkaProducer.Close()
		orderOpts = append(orderOpts, orderUCPkg.WithEventPublisher(kafkaProducer))

		kafkaConsumer := broker.NewConsumer(kafkaCfg)
		defer kafkaConsumer.Close()
		ticketListener = orderListenerPkg.NewOrderListener(kafkaConsumer, composer, appLogger)
		appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	// 8. Initialize UseCases
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, orderFeed, cfg.Restaurant.Tables, appLogger, orderOpts...)
	cartUC := cartUCPkg.NewCartUseCase(cartRepo, menu, orderUC, composer, locker, appLogger)

	// 9. Initialize Handlers
	menuHandler := menuH.NewMenuHandler(menu, appLogger)
	cartHandler := cartH.NewCartHandler(cartUC, appLogger)
	orderHandler := orderH.NewOrderHandler(orderUC, orderFeed, cfg.Restaurant.Tables, appLogger)

	// 10. Start gRPC Server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	lis, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.ContextInterceptor(),
			middleware.LoggingInterceptor(appLogger),
		),
		grpc.StreamInterceptor(middleware.StreamContextInterceptor()),
	)

	// Register Services
	orderv1.RegisterMenuServiceServer(grpcServer, menuHandler)
	orderv1.RegisterCartServiceServer(grpcServer, cartHandler)
	orderv1.RegisterOrderServiceServer(grpcServer, orderHandler)

	// Register Reflection
	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", port))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		if err := orderFeed.Run(gctx, changes); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	if ticketListener != nil {
		g.Go(func() error {
			ticketListener.Start(gctx)
			return nil
		})
	}

	// Graceful Shutdown
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		select {
		case <-quit:
			appLogger.Info("Shutting down server...")
		case <-gctx.Done():
		}
		cancel()
		grpcServer.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil {
		appLogger.Fatal("Server exited with error", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}

// menuSource picks the menu backing store. A postgres menu needs the database.
func menuSource(cfg *config.Config, db *sqlx.DB, appLogger logger.ZapLogger) catalog.Repository {
	switch cfg.Restaurant.MenuSource {
	case config.MenuSourceFile:
		return menuRepoPkg.NewFileRepository(cfg.Restaurant.MenuFile)
	case config.MenuSourcePostgres:
		if db != nil {
			return menuRepoPkg.NewPGRepository(db)
		}
		appLogger.Warn("Postgres menu requested without a database, using embedded menu")
	}
	return menuRepoPkg.NewEmbeddedRepository()
}
