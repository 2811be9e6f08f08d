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

	bCtx "github.com/Mohit8269/Action-House/base/ctx"
	"github.com/Mohit8269/Action-House/base/database/mongoclient"
	"github.com/Mohit8269/Action-House/base/log"
	"github.com/Mohit8269/Action-House/base/metrics"
	"github.com/Mohit8269/Action-House/domain"
	"github.com/Mohit8269/Action-House/domain/auction"
	"github.com/Mohit8269/Action-House/domain/keys"
	mmiddleware "github.com/Mohit8269/Action-House/middleware"
	"github.com/Mohit8269/Action-House/service/cache"
	"github.com/Mohit8269/Action-House/service/cache/provider/primitive"
	"github.com/Mohit8269/Action-House/service/query"
	auction_repository "github.com/Mohit8269/Action-House/stores/auction/repository"
	auction_usecase "github.com/Mohit8269/Action-House/stores/auction/usecase"
	escrow_repository "github.com/Mohit8269/Action-House/stores/escrow/repository"
	escrow_usecase "github.com/Mohit8269/Action-House/stores/escrow/usecase"
)

func init() {
	configFile := pflag.String("config", "infra/configs/settler/config.yaml", "path to config file")
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
	ctx, cancel := bCtx.WithCancel(bCtx.Background())

	// start server to pass cloud run health check
	startEchoServer()

	sweepInterval := viper.GetDuration("settler.sweepInterval")
	sweepBatch := int32(viper.GetInt("settler.sweepBatch"))
	settlerAccount := domain.Account(viper.GetString("settler.account"))

	ctx.WithFields(log.Fields{
		"sweepInterval": sweepInterval,
		"sweepBatch":    sweepBatch,
		"account":       settlerAccount,
	}).Info("config")

	ctx.Info("init mongo")
	q := initMongo()

	met := metrics.New("settler")

	auctionRepo := auction_repository.NewAuctionRepo(q)
	creditRepo := auction_repository.NewCreditRepo(q)
	eventRepo := auction_repository.NewEventRepo(q)
	escrowRepo := escrow_repository.NewEscrowRepo(q)

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
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   keys.PfxEndingSoon,
			Cache: primitive.NewPrimitive("settler", 8),
		}),
		Metrics: metrics.New("auction"),
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
FOR:
	for {
		select {
		case sig := <-quit:
			ctx.WithField("signal", sig).Info("received signal")
			break FOR
		case <-ticker.C:
			sweep(ctx, auctionUC, settlerAccount, sweepBatch, met)
		}
	}

	cancel()
}

// sweep settles every active auction whose deadline has passed. Settling
// under the per-auction lock is idempotent, so racing with a caller-driven
// end only yields an already-settled rejection.
func sweep(ctx bCtx.Ctx, auctionUC auction.UseCase, settler domain.Account, batch int32, met metrics.Service) {
	now := time.Now()
	expired, err := auctionUC.FindAll(ctx,
		auction.WithActive(true),
		auction.WithEndTimeLT(now),
		auction.WithSort("endTime"),
		auction.WithPagination(0, batch),
	)
	if err != nil {
		ctx.WithField("err", err).Error("failed to auctionUC.FindAll")
		return
	}

	for _, a := range expired {
		winner, amount, err := auctionUC.End(ctx, a.AuctionId, settler, now)
		if err == domain.ErrAlreadySettled || err == domain.ErrAuctionNotActive {
			continue
		} else if err != nil {
			ctx.WithFields(log.Fields{
				"err":       err,
				"auctionId": a.AuctionId,
			}).Error("failed to auctionUC.End")
			continue
		}
		ctx.WithFields(log.Fields{
			"auctionId": a.AuctionId,
			"winner":    winner,
			"amount":    amount,
		}).Info("settled expired auction")
		met.BumpSum("sweep.settled", 1)
	}
}

func startEchoServer() {
	context := bCtx.Background()

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())

	address := viper.GetString("server.address")
	context.WithField("address", address).Info("starting server")
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			context.Error("shutting down the server")
		}
	}()
}

func initMongo() query.Mongo {
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	return query.New(mongoClient)
}
