package usecase

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viney-shih/goroutines"

	bCtx "github.com/Mohit8269/Action-House/base/ctx"
	"github.com/Mohit8269/Action-House/base/lock"
	"github.com/Mohit8269/Action-House/base/log"
	"github.com/Mohit8269/Action-House/base/metrics"
	"github.com/Mohit8269/Action-House/base/ptr"
	"github.com/Mohit8269/Action-House/domain"
	"github.com/Mohit8269/Action-House/domain/auction"
	"github.com/Mohit8269/Action-House/domain/escrow"
	"github.com/Mohit8269/Action-House/domain/keys"
	"github.com/Mohit8269/Action-House/service/cache"
	"github.com/Mohit8269/Action-House/service/query"
)

const (
	batchFetchTimeout = 3 * time.Second
)

type AuctionUseCaseCfg struct {
	AuctionRepo auction.Repo
	CreditRepo  auction.CreditRepo
	EventRepo   auction.EventRepo
	EscrowUC    escrow.UseCase
	Query       query.Mongo
	Cache       cache.Service
	Metrics     metrics.Service
}

type impl struct {
	auctionRepo auction.Repo
	creditRepo  auction.CreditRepo
	eventRepo   auction.EventRepo
	escrowUC    escrow.UseCase
	q           query.Mongo
	cache       cache.Service
	met         metrics.Service

	// locks serializes mutations per auction id within this process;
	// mongo transactions guard cross-process races
	locks      *lock.KeyedMutex
	workerPool *goroutines.Pool
}

func New(cfg *AuctionUseCaseCfg) auction.UseCase {
	return &impl{
		auctionRepo: cfg.AuctionRepo,
		creditRepo:  cfg.CreditRepo,
		eventRepo:   cfg.EventRepo,
		escrowUC:    cfg.EscrowUC,
		q:           cfg.Query,
		cache:       cfg.Cache,
		met:         cfg.Metrics,

		locks:      lock.NewKeyedMutex(),
		workerPool: goroutines.NewPool(32, goroutines.WithTaskQueueLength(1024), goroutines.WithPreAllocWorkers(8)),
	}
}

func (im *impl) emitEvent(ctx bCtx.Ctx, event *auction.Event) error {
	eventId, err := uuid.NewRandom()
	if err != nil {
		ctx.WithField("err", err).Error("failed to uuid.NewRandom")
		return err
	}
	event.EventId = eventId.String()
	event.Account = event.Account.ToLower()
	event.To = event.To.ToLower()

	if err := im.eventRepo.Insert(ctx, event); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": event.AuctionId,
			"type":      event.Type,
		}).Error("failed to eventRepo.Insert")
		return err
	}
	return nil
}

func (im *impl) Create(ctx bCtx.Ctx, seller domain.Account, itemName, description string, startingPrice domain.Amount, now time.Time) (domain.AuctionId, error) {
	defer im.met.BumpTime("auction.create.time").End()

	if seller.IsEmpty() || len(strings.TrimSpace(itemName)) == 0 || startingPrice <= 0 {
		return 0, domain.ErrInvalidInput
	}

	// an aborted create burns its id; allocation is monotonic, not dense
	id, err := im.auctionRepo.NextId(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("failed to auctionRepo.NextId")
		return 0, err
	}

	err = im.q.RunWithTransaction(ctx, func(c bCtx.Ctx) error {
		a := &auction.Auction{
			AuctionId:     id,
			Seller:        seller.ToLower(),
			ItemName:      itemName,
			Description:   description,
			StartingPrice: startingPrice,
			CurrentBid:    0,
			CurrentBidder: "",
			CreatedAt:     now,
			EndTime:       now.Add(domain.AuctionDuration),
			Active:        true,
			Claimed:       false,
			Cancelled:     false,
		}
		if err := im.auctionRepo.Insert(c, a); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"auctionId": id,
			}).Error("failed to auctionRepo.Insert")
			return err
		}

		return im.emitEvent(c, &auction.Event{
			AuctionId: id,
			Type:      auction.EventTypeAuctionCreated,
			Account:   seller,
			Amount:    startingPrice,
			Time:      now,
		})
	})
	if err != nil {
		return 0, err
	}

	im.met.BumpSum("auction.created", 1)
	return id, nil
}

func (im *impl) PlaceBid(ctx bCtx.Ctx, id domain.AuctionId, bidder domain.Account, amount domain.Amount, now time.Time) error {
	defer im.met.BumpTime("auction.placeBid.time").End()

	if bidder.IsEmpty() || amount <= 0 {
		return domain.ErrInvalidInput
	}

	im.locks.Lock(id)
	defer im.locks.Unlock(id)

	return im.q.RunWithTransaction(ctx, func(c bCtx.Ctx) error {
		a, err := im.auctionRepo.FindOne(c, id)
		if err != nil {
			return err
		}

		if !a.Active {
			return domain.ErrAuctionNotActive
		}
		if !now.Before(a.EndTime) {
			return domain.ErrAuctionExpired
		}
		if bidder.Equals(a.Seller) {
			return domain.ErrSelfBid
		}
		if amount < a.MinAcceptableBid() {
			return domain.ErrBidTooLow
		}

		// the new bid enters custody before ledger state moves, so a
		// failed deposit aborts the whole transaction
		if err := im.escrowUC.Deposit(c, id, bidder, amount, now); err != nil {
			return err
		}

		// the displaced bid converts to a withdrawable credit instead of
		// leaving custody
		if a.HasBid() {
			creditId := auction.CreditId{AuctionId: id, Account: a.CurrentBidder}
			if err := im.creditRepo.Add(c, creditId, a.CurrentBid); err != nil {
				return err
			}
		}

		if err := im.auctionRepo.Update(c, id, auction.Patchable{
			CurrentBid:    &amount,
			CurrentBidder: bidder.ToLowerPtr(),
		}); err != nil {
			return err
		}

		if err := im.emitEvent(c, &auction.Event{
			AuctionId: id,
			Type:      auction.EventTypeBidPlaced,
			Account:   bidder,
			Amount:    amount,
			Time:      now,
		}); err != nil {
			return err
		}

		im.met.BumpSum("auction.bid", 1)
		return nil
	})
}

func (im *impl) End(ctx bCtx.Ctx, id domain.AuctionId, caller domain.Account, now time.Time) (domain.Account, domain.Amount, error) {
	defer im.met.BumpTime("auction.end.time").End()

	var winner domain.Account
	var amount domain.Amount

	im.locks.Lock(id)
	defer im.locks.Unlock(id)

	err := im.q.RunWithTransaction(ctx, func(c bCtx.Ctx) error {
		a, err := im.auctionRepo.FindOne(c, id)
		if err != nil {
			return err
		}

		if a.Claimed {
			return domain.ErrAlreadySettled
		}
		if !a.Active {
			return domain.ErrAuctionNotActive
		}
		// the seller may settle at any time; anyone else must wait for
		// the deadline
		if now.Before(a.EndTime) && !caller.Equals(a.Seller) {
			return domain.ErrTooEarly
		}

		if a.HasBid() {
			if err := im.escrowUC.Payout(c, id, a.Seller, a.CurrentBid, now); err != nil {
				return err
			}
		}

		if err := im.auctionRepo.Update(c, id, auction.Patchable{
			Active:  ptr.Bool(false),
			Claimed: ptr.Bool(true),
		}); err != nil {
			return err
		}

		if err := im.emitEvent(c, &auction.Event{
			AuctionId: id,
			Type:      auction.EventTypeAuctionEnded,
			Account:   a.CurrentBidder,
			To:        a.Seller,
			Amount:    a.CurrentBid,
			Time:      now,
		}); err != nil {
			return err
		}

		winner = a.CurrentBidder
		amount = a.CurrentBid
		return nil
	})
	if err != nil {
		return "", 0, err
	}

	im.met.BumpSum("auction.settled", 1)
	return winner, amount, nil
}

func (im *impl) Cancel(ctx bCtx.Ctx, id domain.AuctionId, caller domain.Account) error {
	defer im.met.BumpTime("auction.cancel.time").End()

	im.locks.Lock(id)
	defer im.locks.Unlock(id)

	return im.q.RunWithTransaction(ctx, func(c bCtx.Ctx) error {
		a, err := im.auctionRepo.FindOne(c, id)
		if err != nil {
			return err
		}

		if !caller.Equals(a.Seller) {
			return domain.ErrNotSeller
		}
		if a.Claimed {
			return domain.ErrAlreadySettled
		}
		if !a.Active {
			return domain.ErrAuctionNotActive
		}
		if a.HasBid() {
			return domain.ErrHasBids
		}

		if err := im.auctionRepo.Update(c, id, auction.Patchable{
			Active:    ptr.Bool(false),
			Cancelled: ptr.Bool(true),
		}); err != nil {
			return err
		}

		if err := im.emitEvent(c, &auction.Event{
			AuctionId: id,
			Type:      auction.EventTypeAuctionCancelled,
			Account:   caller,
			Time:      time.Now(),
		}); err != nil {
			return err
		}

		im.met.BumpSum("auction.cancelled", 1)
		return nil
	})
}

func (im *impl) Extend(ctx bCtx.Ctx, id domain.AuctionId, caller domain.Account, additional time.Duration, now time.Time) (time.Time, error) {
	defer im.met.BumpTime("auction.extend.time").End()

	if additional <= 0 || additional > domain.MaxExtension {
		return time.Time{}, domain.ErrInvalidDuration
	}

	var newEnd time.Time

	im.locks.Lock(id)
	defer im.locks.Unlock(id)

	err := im.q.RunWithTransaction(ctx, func(c bCtx.Ctx) error {
		a, err := im.auctionRepo.FindOne(c, id)
		if err != nil {
			return err
		}

		if !caller.Equals(a.Seller) {
			return domain.ErrNotSeller
		}
		if a.Claimed {
			return domain.ErrAlreadySettled
		}
		if !a.Active {
			return domain.ErrAuctionNotActive
		}
		if !now.Before(a.EndTime) {
			return domain.ErrAlreadyExpired
		}

		newEnd = a.EndTime.Add(additional)
		if err := im.auctionRepo.Update(c, id, auction.Patchable{
			EndTime: &newEnd,
		}); err != nil {
			return err
		}

		return im.emitEvent(c, &auction.Event{
			AuctionId: id,
			Type:      auction.EventTypeAuctionExtended,
			Account:   caller,
			Time:      now,
		})
	})
	if err != nil {
		return time.Time{}, err
	}

	return newEnd, nil
}

func (im *impl) WithdrawCredit(ctx bCtx.Ctx, id domain.AuctionId, claimant domain.Account) (domain.Amount, error) {
	defer im.met.BumpTime("auction.withdrawCredit.time").End()

	if claimant.IsEmpty() {
		return 0, domain.ErrInvalidInput
	}

	var amount domain.Amount

	im.locks.Lock(id)
	defer im.locks.Unlock(id)

	err := im.q.RunWithTransaction(ctx, func(c bCtx.Ctx) error {
		now := time.Now()

		creditId := auction.CreditId{AuctionId: id, Account: claimant.ToLower()}
		drained, err := im.creditRepo.Drain(c, creditId)
		if err != nil {
			return err
		}

		if err := im.escrowUC.Payout(c, id, claimant, drained, now); err != nil {
			return err
		}

		if err := im.emitEvent(c, &auction.Event{
			AuctionId: id,
			Type:      auction.EventTypeCreditWithdrawn,
			Account:   claimant,
			Amount:    drained,
			Time:      now,
		}); err != nil {
			return err
		}

		amount = drained
		return nil
	})
	if err != nil {
		return 0, err
	}

	im.met.BumpSum("auction.creditWithdrawn", 1)
	return amount, nil
}

func (im *impl) Get(ctx bCtx.Ctx, id domain.AuctionId) (*auction.Auction, error) {
	a, err := im.auctionRepo.FindOne(ctx, id)
	if err != nil {
		if err != domain.ErrNotFound {
			ctx.WithFields(log.Fields{
				"err":       err,
				"auctionId": id,
			}).Error("failed to auctionRepo.FindOne")
		}
		return nil, err
	}
	return a, nil
}

func (im *impl) GetBatch(ctx bCtx.Ctx, ids []domain.AuctionId) ([]*auction.Auction, error) {
	res := make([]*auction.Auction, len(ids))
	wg := sync.WaitGroup{}

	for i, id := range ids {
		i, id := i, id
		wg.Add(1)
		err := im.workerPool.ScheduleWithTimeout(batchFetchTimeout, func() {
			defer wg.Done()
			a, err := im.auctionRepo.FindOne(ctx, id)
			if err != nil {
				if err != domain.ErrNotFound {
					ctx.WithFields(log.Fields{
						"err":       err,
						"auctionId": id,
					}).Error("failed to auctionRepo.FindOne")
				}
				return
			}
			res[i] = a
		})
		if err != nil {
			wg.Done()
			ctx.WithFields(log.Fields{
				"err":       err,
				"auctionId": id,
			}).Error("failed to ScheduleWithTimeout")
		}
	}
	wg.Wait()

	// missing ids are dropped rather than failing the whole batch
	out := make([]*auction.Auction, 0, len(res))
	for _, a := range res {
		if a != nil {
			out = append(out, a)
		}
	}
	return out, nil
}

func (im *impl) FindAll(ctx bCtx.Ctx, opts ...auction.FindAllOptionsFunc) ([]*auction.Auction, error) {
	res, err := im.auctionRepo.FindAll(ctx, opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to auctionRepo.FindAll")
		return nil, err
	}
	return res, nil
}

func (im *impl) EndingSoon(ctx bCtx.Ctx, now time.Time, within time.Duration, limit int32) ([]*auction.Auction, error) {
	// bucket the cache key to the minute so concurrent readers share entries
	key := keys.RedisKey(keys.PfxEndingSoon, fmt.Sprint(now.Unix()/60), within.String(), fmt.Sprint(limit))

	res := &[]*auction.Auction{}
	err := im.cache.GetByFunc(ctx, key, res, func() (interface{}, error) {
		found, err := im.auctionRepo.FindAll(ctx,
			auction.WithActive(true),
			auction.WithEndTimeGT(now),
			auction.WithEndTimeLT(now.Add(within)),
			auction.WithSort("endTime"),
			auction.WithPagination(0, limit),
		)
		if err != nil {
			return nil, err
		}
		return &found, nil
	})
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Error("failed to cache.GetByFunc")
		return nil, err
	}

	return *res, nil
}

func (im *impl) SearchByName(ctx bCtx.Ctx, fragment string, limit int32) ([]*auction.Auction, error) {
	fragment = strings.TrimSpace(fragment)
	if len(fragment) == 0 {
		return nil, domain.ErrBadParamInput
	}

	key := keys.RedisKey(keys.PfxSearch, strings.ToLower(fragment), fmt.Sprint(limit))

	res := &[]*auction.Auction{}
	err := im.cache.GetByFunc(ctx, key, res, func() (interface{}, error) {
		found, err := im.auctionRepo.FindAll(ctx,
			auction.WithNameContains(fragment),
			auction.WithSort("-createdAt"),
			auction.WithPagination(0, limit),
		)
		if err != nil {
			return nil, err
		}
		return &found, nil
	})
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Error("failed to cache.GetByFunc")
		return nil, err
	}

	return *res, nil
}

func (im *impl) TopBids(ctx bCtx.Ctx, limit int32) ([]*auction.Auction, error) {
	res, err := im.auctionRepo.FindAll(ctx,
		auction.WithActive(true),
		auction.WithPriceGTE(1),
		auction.WithSort("-currentBid"),
		auction.WithPagination(0, limit),
	)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to auctionRepo.FindAll")
		return nil, err
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CurrentBid > res[j].CurrentBid
	})
	return res, nil
}

func (im *impl) GetCredit(ctx bCtx.Ctx, id domain.AuctionId, account domain.Account) (domain.Amount, error) {
	creditId := auction.CreditId{AuctionId: id, Account: account.ToLower()}
	credit, err := im.creditRepo.FindOne(ctx, creditId)
	if err == domain.ErrNotFound {
		// an account that was never outbid simply holds no credit
		return 0, nil
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": id,
			"account":   account,
		}).Error("failed to creditRepo.FindOne")
		return 0, err
	}
	return credit.Balance, nil
}

func (im *impl) GetEvents(ctx bCtx.Ctx, id domain.AuctionId) ([]auction.Event, error) {
	res, err := im.eventRepo.FindAll(ctx, auction.EventsWithAuctionId(id))
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": id,
		}).Error("failed to eventRepo.FindAll")
		return nil, err
	}
	return res, nil
}
