package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bloomshop-be/internal/api"
	"bloomshop-be/internal/cart"
	"bloomshop-be/internal/config"
	"bloomshop-be/internal/db"
	"bloomshop-be/internal/gallery"
	"bloomshop-be/internal/logger"
	"bloomshop-be/internal/message"
	"bloomshop-be/internal/order"
	"bloomshop-be/internal/product"
	"bloomshop-be/internal/settings"
	"bloomshop-be/internal/storage"
	"bloomshop-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Seams for testing.
var (
	initDBFunc      = db.InitDB
	startServerFunc = serveGracefully
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	blobs, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return err
	}

	router := newServer(cfg, database, rdb, blobs)

	logger.L().Info("server starting", zap.String("port", cfg.AppPort))
	return startServerFunc(":"+cfg.AppPort, router)
}

// newServer wires repositories, services and the HTTP layer.
func newServer(cfg *config.Config, database *sql.DB, rdb *redis.Client, blobs storage.Store) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, blobs)

	cartRepo := cart.NewRepository(rdb)
	cartSvc := cart.NewService(cartRepo, productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, productRepo, cartRepo, blobs)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	galleryRepo := gallery.NewRepository(database)
	gallerySvc := gallery.NewService(galleryRepo, blobs)

	settingsRepo := settings.NewRepository(database)
	settingsSvc := settings.NewService(settingsRepo, blobs)

	messageRepo := message.NewRepository(database)
	messageSvc := message.NewService(messageRepo)

	h := api.NewHandler(productSvc, cartSvc, orderSvc, userSvc, gallerySvc, settingsSvc, messageSvc, blobs.Dir())

	router := gin.New()
	h.SetupRoutes(router)
	return router
}

// serveGracefully runs the server and drains in-flight requests on
// SIGINT/SIGTERM before exiting.
func serveGracefully(addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.L().Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}
