package usecase

import (
	"time"

	"github.com/Mohit8269/Action-House/base/ctx"
	"github.com/Mohit8269/Action-House/base/log"
	"github.com/Mohit8269/Action-House/base/metrics"
	"github.com/Mohit8269/Action-House/domain"
	"github.com/Mohit8269/Action-House/domain/escrow"
)

type EscrowUseCaseCfg struct {
	EscrowRepo escrow.Repo
	Metrics    metrics.Service
}

type impl struct {
	escrowRepo escrow.Repo
	met        metrics.Service
}

func New(cfg *EscrowUseCaseCfg) escrow.UseCase {
	return &impl{
		escrowRepo: cfg.EscrowRepo,
		met:        cfg.Metrics,
	}
}

func (im *impl) Deposit(ctx ctx.Ctx, auctionId domain.AuctionId, from domain.Account, amount domain.Amount, now time.Time) error {
	if amount <= 0 {
		return domain.ErrInvalidInput
	}

	entry := &escrow.Entry{
		AuctionId: auctionId,
		Type:      escrow.EntryTypeDeposit,
		Account:   from.ToLower(),
		Amount:    amount,
		Time:      now,
	}
	if err := im.escrowRepo.Credit(ctx, entry); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": auctionId,
			"from":      from,
			"amount":    amount,
		}).Error("failed to escrowRepo.Credit")
		return err
	}

	im.met.BumpSum("escrow.deposit", float64(amount))
	return nil
}

func (im *impl) Payout(ctx ctx.Ctx, auctionId domain.AuctionId, to domain.Account, amount domain.Amount, now time.Time) error {
	if amount <= 0 {
		return domain.ErrInvalidInput
	}

	entry := &escrow.Entry{
		AuctionId: auctionId,
		Type:      escrow.EntryTypePayout,
		Account:   to.ToLower(),
		Amount:    amount,
		Time:      now,
	}
	if err := im.escrowRepo.Debit(ctx, entry); err != nil {
		if err != domain.ErrInsufficientCustody {
			ctx.WithFields(log.Fields{
				"err":       err,
				"auctionId": auctionId,
				"to":        to,
				"amount":    amount,
			}).Error("failed to escrowRepo.Debit")
		}
		return err
	}

	im.met.BumpSum("escrow.payout", float64(amount))
	return nil
}

func (im *impl) TotalCustody(ctx ctx.Ctx) (domain.Amount, error) {
	total, err := im.escrowRepo.Total(ctx)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to escrowRepo.Total")
		return 0, err
	}
	return total, nil
}
