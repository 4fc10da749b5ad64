package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"fulfillment-service/internal/config"
	controllers "fulfillment-service/internal/controllers/http"
	mmysql "fulfillment-service/internal/infra/mysql"
	"fulfillment-service/internal/infra/rabbitmq"
	"fulfillment-service/internal/infra/razorpay"
	mysqlrepo "fulfillment-service/internal/repository/mysql"
	"fulfillment-service/internal/services"
	"fulfillment-service/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.FromEnv()

	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1000)
	sqlDB.SetMaxIdleConns(200)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	orderRepo := mysqlrepo.NewOrderRepository(db)
	cartRepo := mysqlrepo.NewCartRepository(db)
	productRepo := mysqlrepo.NewProductRepository(db)
	vendorRepo := mysqlrepo.NewVendorRepository(db)
	riderRepo := mysqlrepo.NewRiderOrderRepository(db)
	subRepo := mysqlrepo.NewSubscriptionRepository(db)
	paymentRepo := mysqlrepo.NewPaymentRepository(db)

	publisher, err := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.Exchange)
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}

	gateway := razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, 5*time.Second)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		DB:           0,
		PoolSize:     200,
		MinIdleConns: 20,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	cartSvc := services.NewCartService(cartRepo, productRepo)
	cartSvc.SetRedisClient(redisClient)

	checkoutSvc := services.NewCheckoutService(orderRepo, cartRepo, productRepo, vendorRepo, publisher, cfg.VendorAcceptWindow)
	orderSvc := services.NewOrderService(orderRepo, vendorRepo, publisher)
	riderSvc := services.NewRiderService(riderRepo)
	paymentSvc := services.NewPaymentService(paymentRepo, gateway, publisher,
		cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayWebhookSecret)
	subSvc := services.NewSubscriptionService(subRepo, orderRepo, productRepo, publisher, cfg.VendorAcceptWindow)

	handler := controllers.NewHandler(cartSvc, checkoutSvc, orderSvc, riderSvc, paymentSvc, subSvc)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		log.Printf("Starting fulfillment service on port %s", cfg.Port)
		return srv.ListenAndServe()
	})
	g.Go(func() error {
		return workers.NewSLASweeper(orderRepo, cfg.SLASweepInterval).Run(ctx)
	})
	g.Go(func() error {
		return workers.NewVendorOfflineSweeper(vendorRepo, cfg.VendorSweepInterval, cfg.VendorOfflineTimeout).Run(ctx)
	})
	g.Go(func() error {
		return workers.NewSubscriptionWorker(subSvc).Run(ctx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
