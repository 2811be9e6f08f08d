package usecase

import (
	"github.com/shopspring/decimal"

	bCtx "github.com/Mohit8269/Action-House/base/ctx"
	"github.com/Mohit8269/Action-House/base/log"
	"github.com/Mohit8269/Action-House/domain/escrow"
	"github.com/Mohit8269/Action-House/domain/keys"
	"github.com/Mohit8269/Action-House/domain/statistic"
	"github.com/Mohit8269/Action-House/service/cache"
)

const (
	averagePrecision = 2
)

type uc struct {
	statisticRepo statistic.Repo
	escrowUC      escrow.UseCase
	cache         cache.Service
}

func New(repo statistic.Repo, escrowUC escrow.UseCase, cache cache.Service) statistic.UseCase {
	return &uc{repo, escrowUC, cache}
}

func (u *uc) Summary(ctx bCtx.Ctx) (*statistic.Summary, error) {
	res := &statistic.Summary{}
	err := u.cache.GetByFunc(ctx, keys.PfxStatistics, res, func() (interface{}, error) {
		return u.summary(ctx)
	})
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("cache.GetByFunc failed")
		return nil, err
	}
	return res, nil
}

func (u *uc) summary(ctx bCtx.Ctx) (*statistic.Summary, error) {
	buckets, err := u.statisticRepo.AggregateByState(ctx)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("statisticRepo.AggregateByState failed")
		return nil, err
	}

	for i, b := range buckets {
		if b.Count == 0 {
			continue
		}
		avg := decimal.NewFromInt(int64(b.Volume)).
			Div(decimal.NewFromInt(b.Count)).
			Round(averagePrecision)
		buckets[i].AverageBid = avg.String()
	}

	total, err := u.escrowUC.TotalCustody(ctx)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("escrowUC.TotalCustody failed")
		return nil, err
	}

	return &statistic.Summary{
		Buckets:      buckets,
		TotalCustody: total,
	}, nil
}
