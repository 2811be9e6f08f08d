package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"

	"github.com/Mohit8269/Action-House/base/ctx"
	"github.com/Mohit8269/Action-House/base/database/mongoclient"
	"github.com/Mohit8269/Action-House/base/database/redisclient"
	"github.com/Mohit8269/Action-House/base/log"
	"github.com/Mohit8269/Action-House/base/metrics"
	bValidator "github.com/Mohit8269/Action-House/base/validator"
	"github.com/Mohit8269/Action-House/domain/keys"
	mmiddleware "github.com/Mohit8269/Action-House/middleware"
	"github.com/Mohit8269/Action-House/service/cache"
	redisProvider "github.com/Mohit8269/Action-House/service/cache/provider/redis"
	"github.com/Mohit8269/Action-House/service/query"
	"github.com/Mohit8269/Action-House/service/redis"
	auction_delivery "github.com/Mohit8269/Action-House/stores/auction/delivery/http"
	auction_repository "github.com/Mohit8269/Action-House/stores/auction/repository"
	auction_usecase "github.com/Mohit8269/Action-House/stores/auction/usecase"
	escrow_repository "github.com/Mohit8269/Action-House/stores/escrow/repository"
	escrow_usecase "github.com/Mohit8269/Action-House/stores/escrow/usecase"
	hc_delivery "github.com/Mohit8269/Action-House/stores/healthcheck/delivery/http"
	hc_repo "github.com/Mohit8269/Action-House/stores/healthcheck/repository"
	hc_usecase "github.com/Mohit8269/Action-House/stores/healthcheck/usecase"
	statistic_delivery "github.com/Mohit8269/Action-House/stores/statistic/delivery/http"
	statistic_repository "github.com/Mohit8269/Action-House/stores/statistic/repository"
	statistic_usecase "github.com/Mohit8269/Action-House/stores/statistic/usecase"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path to config file")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient)

	// init redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), redisCachePool)

	listingCache := cache.New(cache.ServiceConfig{
		Ttl:   viper.GetDuration("cache.listingTtl"),
		Pfx:   keys.PfxEndingSoon,
		Cache: redisProvider.NewRedis(redisCache),
	})
	statisticCache := cache.New(cache.ServiceConfig{
		Ttl:   viper.GetDuration("cache.statisticTtl"),
		Pfx:   keys.PfxStatistics,
		Cache: redisProvider.NewRedis(redisCache),
	})

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	auctionRepo := auction_repository.NewAuctionRepo(q)
	creditRepo := auction_repository.NewCreditRepo(q)
	eventRepo := auction_repository.NewEventRepo(q)
	escrowRepo := escrow_repository.NewEscrowRepo(q)
	statisticRepo := statistic_repository.New(q)

	hc := hc_usecase.New(hcRepo)
	escrowUC := escrow_usecase.New(&escrow_usecase.EscrowUseCaseCfg{
		EscrowRepo: escrowRepo,
		Metrics:    metrics.New("escrow"),
	})
	auctionUC := auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
		AuctionRepo: auctionRepo,
		CreditRepo:  creditRepo,
		EventRepo:   eventRepo,
		EscrowUC:    escrowUC,
		Query:       q,
		Cache:       listingCache,
		Metrics:     metrics.New("auction"),
	})
	statisticUC := statistic_usecase.New(statisticRepo, escrowUC, statisticCache)

	hc_delivery.New(e, hc)
	auction_delivery.New(e, auctionUC)
	statistic_delivery.New(e, statisticUC)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
