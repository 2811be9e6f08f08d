package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Mohit8269/Action-House/base/ctx"
	"github.com/Mohit8269/Action-House/base/metrics"
	"github.com/Mohit8269/Action-House/domain"
	"github.com/Mohit8269/Action-House/domain/auction"
	mAuction "github.com/Mohit8269/Action-House/domain/auction/mocks"
	mEscrow "github.com/Mohit8269/Action-House/domain/escrow/mocks"
	"github.com/Mohit8269/Action-House/service/cache"
	"github.com/Mohit8269/Action-House/service/cache/provider/primitive"
	mQuery "github.com/Mohit8269/Action-House/service/query/mocks"
)

type testSuite struct {
	suite.Suite

	ctx ctx.Ctx
	t0  time.Time

	auctionRepo *mAuction.Repo
	creditRepo  *mAuction.CreditRepo
	eventRepo   *mAuction.EventRepo
	escrowUC    *mEscrow.UseCase
	q           *mQuery.Mongo

	im auction.UseCase
}

func TestAuctionUseCase(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.t0 = time.Unix(1700000000, 0).UTC()

	s.auctionRepo = &mAuction.Repo{}
	s.creditRepo = &mAuction.CreditRepo{}
	s.eventRepo = &mAuction.EventRepo{}
	s.escrowUC = &mEscrow.UseCase{}
	s.q = &mQuery.Mongo{}

	// mutations run inside a transaction; tests run the callback directly
	s.q.On("RunWithTransaction", mock.Anything, mock.Anything).
		Return(func(c ctx.Ctx, run func(ctx.Ctx) error) error {
			return run(c)
		})

	s.eventRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	s.im = New(&AuctionUseCaseCfg{
		AuctionRepo: s.auctionRepo,
		CreditRepo:  s.creditRepo,
		EventRepo:   s.eventRepo,
		EscrowUC:    s.escrowUC,
		Query:       s.q,
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   30 * time.Second,
			Pfx:   "test",
			Cache: primitive.NewPrimitive("test", 1),
		}),
		Metrics: metrics.New("auction_test"),
	})
}

func (s *testSuite) openAuction(id domain.AuctionId, seller domain.Account, startingPrice domain.Amount) *auction.Auction {
	return &auction.Auction{
		AuctionId:     id,
		Seller:        seller,
		ItemName:      "ming vase",
		StartingPrice: startingPrice,
		CreatedAt:     s.t0,
		EndTime:       s.t0.Add(domain.AuctionDuration),
		Active:        true,
	}
}

func (s *testSuite) TestLifecycleWithCompetingBids() {
	req := s.Require()
	seller := domain.Account("seller")
	alice := domain.Account("alice")
	bob := domain.Account("bob")

	// create
	s.auctionRepo.On("NextId", mock.Anything).Return(domain.AuctionId(0), nil).Once()
	s.auctionRepo.On("Insert", mock.Anything, mock.MatchedBy(func(a *auction.Auction) bool {
		return a.AuctionId == 0 &&
			a.Active && !a.Claimed && !a.Cancelled &&
			a.EndTime.Equal(s.t0.Add(domain.AuctionDuration))
	})).Return(nil).Once()

	id, err := s.im.Create(s.ctx, seller, "ming vase", "dynasty era", 100, s.t0)
	req.NoError(err)
	req.Equal(domain.AuctionId(0), id)

	// alice opens the bidding at the starting price
	bid1 := domain.Amount(100)
	t1 := s.t0.Add(time.Hour)
	s.auctionRepo.On("FindOne", mock.Anything, id).Return(s.openAuction(id, seller, 100), nil).Once()
	s.escrowUC.On("Deposit", mock.Anything, id, alice, bid1, t1).Return(nil).Once()
	s.auctionRepo.On("Update", mock.Anything, id, auction.Patchable{
		CurrentBid:    &bid1,
		CurrentBidder: alice.ToLowerPtr(),
	}).Return(nil).Once()

	req.NoError(s.im.PlaceBid(s.ctx, id, alice, bid1, t1))

	// bob must clear the current bid plus the increment
	outbid := s.openAuction(id, seller, 100)
	outbid.CurrentBid = bid1
	outbid.CurrentBidder = alice
	t2 := s.t0.Add(2 * time.Hour)
	s.auctionRepo.On("FindOne", mock.Anything, id).Return(outbid, nil).Once()

	err = s.im.PlaceBid(s.ctx, id, bob, 105, t2)
	req.ErrorIs(err, domain.ErrBidTooLow)

	// bob clears it; alice's stake converts to credit
	bid2 := domain.Amount(110)
	outbid2 := s.openAuction(id, seller, 100)
	outbid2.CurrentBid = bid1
	outbid2.CurrentBidder = alice
	s.auctionRepo.On("FindOne", mock.Anything, id).Return(outbid2, nil).Once()
	s.escrowUC.On("Deposit", mock.Anything, id, bob, bid2, t2).Return(nil).Once()
	s.creditRepo.On("Add", mock.Anything, auction.CreditId{AuctionId: id, Account: alice}, bid1).Return(nil).Once()
	s.auctionRepo.On("Update", mock.Anything, id, auction.Patchable{
		CurrentBid:    &bid2,
		CurrentBidder: bob.ToLowerPtr(),
	}).Return(nil).Once()

	req.NoError(s.im.PlaceBid(s.ctx, id, bob, bid2, t2))

	// alice's displaced stake is visible as credit
	s.creditRepo.On("FindOne", mock.Anything, auction.CreditId{AuctionId: id, Account: alice}).
		Return(&auction.Credit{AuctionId: id, Account: alice, Balance: bid1}, nil).Once()

	credit, err := s.im.GetCredit(s.ctx, id, alice)
	req.NoError(err)
	req.Equal(bid1, credit)

	// a stranger cannot settle before the deadline
	led := s.openAuction(id, seller, 100)
	led.CurrentBid = bid2
	led.CurrentBidder = bob
	s.auctionRepo.On("FindOne", mock.Anything, id).Return(led, nil).Once()

	_, _, err = s.im.End(s.ctx, id, bob, s.t0.Add(time.Hour*3))
	req.ErrorIs(err, domain.ErrTooEarly)

	// past the deadline anyone settles; the high bid pays out to the seller
	tEnd := s.t0.Add(domain.AuctionDuration + time.Second)
	led2 := s.openAuction(id, seller, 100)
	led2.CurrentBid = bid2
	led2.CurrentBidder = bob
	s.auctionRepo.On("FindOne", mock.Anything, id).Return(led2, nil).Once()
	s.escrowUC.On("Payout", mock.Anything, id, seller, bid2, tEnd).Return(nil).Once()
	s.auctionRepo.On("Update", mock.Anything, id, mock.MatchedBy(func(p auction.Patchable) bool {
		return p.Active != nil && !*p.Active && p.Claimed != nil && *p.Claimed
	})).Return(nil).Once()

	winner, amount, err := s.im.End(s.ctx, id, bob, tEnd)
	req.NoError(err)
	req.Equal(bob, winner)
	req.Equal(bid2, amount)

	// settlement happens exactly once
	settled := s.openAuction(id, seller, 100)
	settled.CurrentBid = bid2
	settled.CurrentBidder = bob
	settled.Active = false
	settled.Claimed = true
	s.auctionRepo.On("FindOne", mock.Anything, id).Return(settled, nil).Once()

	_, _, err = s.im.End(s.ctx, id, seller, tEnd.Add(time.Second))
	req.ErrorIs(err, domain.ErrAlreadySettled)

	// alice withdraws her credit, once
	s.creditRepo.On("Drain", mock.Anything, auction.CreditId{AuctionId: id, Account: alice}).
		Return(bid1, nil).Once()
	s.escrowUC.On("Payout", mock.Anything, id, alice, bid1, mock.Anything).Return(nil).Once()

	drained, err := s.im.WithdrawCredit(s.ctx, id, alice)
	req.NoError(err)
	req.Equal(bid1, drained)

	s.creditRepo.On("Drain", mock.Anything, auction.CreditId{AuctionId: id, Account: alice}).
		Return(domain.Amount(0), domain.ErrNoCredit).Once()

	_, err = s.im.WithdrawCredit(s.ctx, id, alice)
	req.ErrorIs(err, domain.ErrNoCredit)

	s.auctionRepo.AssertExpectations(s.T())
	s.creditRepo.AssertExpectations(s.T())
	s.escrowUC.AssertExpectations(s.T())
}

func (s *testSuite) TestCreateValidation() {
	req := s.Require()

	_, err := s.im.Create(s.ctx, "", "vase", "", 100, s.t0)
	req.ErrorIs(err, domain.ErrInvalidInput)

	_, err = s.im.Create(s.ctx, "seller", "   ", "", 100, s.t0)
	req.ErrorIs(err, domain.ErrInvalidInput)

	_, err = s.im.Create(s.ctx, "seller", "vase", "", 0, s.t0)
	req.ErrorIs(err, domain.ErrInvalidInput)
}

func (s *testSuite) TestPlaceBidRejections() {
	req := s.Require()
	seller := domain.Account("seller")
	id := domain.AuctionId(7)

	// unknown auction
	s.auctionRepo.On("FindOne", mock.Anything, id).Return(nil, domain.ErrNotFound).Once()
	req.ErrorIs(s.im.PlaceBid(s.ctx, id, "alice", 100, s.t0), domain.ErrNotFound)

	// seller bidding on own listing
	s.auctionRepo.On("FindOne", mock.Anything, id).Return(s.openAuction(id, seller, 100), nil).Once()
	req.ErrorIs(s.im.PlaceBid(s.ctx, id, seller, 100, s.t0.Add(time.Hour)), domain.ErrSelfBid)

	// below starting price with no bids yet
	s.auctionRepo.On("FindOne", mock.Anything, id).Return(s.openAuction(id, seller, 100), nil).Once()
	req.ErrorIs(s.im.PlaceBid(s.ctx, id, "alice", 99, s.t0.Add(time.Hour)), domain.ErrBidTooLow)

	// past the deadline
	s.auctionRepo.On("FindOne", mock.Anything, id).Return(s.openAuction(id, seller, 100), nil).Once()
	err := s.im.PlaceBid(s.ctx, id, "alice", 100, s.t0.Add(domain.AuctionDuration))
	req.ErrorIs(err, domain.ErrAuctionExpired)

	// cancelled listing
	cancelled := s.openAuction(id, seller, 100)
	cancelled.Active = false
	cancelled.Cancelled = true
	s.auctionRepo.On("FindOne", mock.Anything, id).Return(cancelled, nil).Once()
	req.ErrorIs(s.im.PlaceBid(s.ctx, id, "alice", 100, s.t0.Add(time.Hour)), domain.ErrAuctionNotActive)

	// zero amount fails before any lookup
	req.ErrorIs(s.im.PlaceBid(s.ctx, id, "alice", 0, s.t0), domain.ErrInvalidInput)

	s.escrowUC.AssertNotCalled(s.T(), "Deposit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *testSuite) TestOpeningBidMustClearIncrement() {
	req := s.Require()
	seller := domain.Account("seller")
	id := domain.AuctionId(2)
	alice := domain.Account("alice")
	t1 := s.t0.Add(time.Hour)

	// on a listing priced below the increment, matching the starting
	// price is not enough: the opening bid counts from a zero current bid
	s.auctionRepo.On("FindOne", mock.Anything, id).Return(s.openAuction(id, seller, 5), nil).Once()
	req.ErrorIs(s.im.PlaceBid(s.ctx, id, alice, 5, t1), domain.ErrBidTooLow)

	s.auctionRepo.On("FindOne", mock.Anything, id).Return(s.openAuction(id, seller, 5), nil).Once()
	req.ErrorIs(s.im.PlaceBid(s.ctx, id, alice, 9, t1), domain.ErrBidTooLow)

	s.escrowUC.AssertNotCalled(s.T(), "Deposit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// the bare increment clears it
	bid := domain.MinBidIncrement
	s.auctionRepo.On("FindOne", mock.Anything, id).Return(s.openAuction(id, seller, 5), nil).Once()
	s.escrowUC.On("Deposit", mock.Anything, id, alice, bid, t1).Return(nil).Once()
	s.auctionRepo.On("Update", mock.Anything, id, auction.Patchable{
		CurrentBid:    &bid,
		CurrentBidder: alice.ToLowerPtr(),
	}).Return(nil).Once()

	req.NoError(s.im.PlaceBid(s.ctx, id, alice, bid, t1))

	s.auctionRepo.AssertExpectations(s.T())
	s.escrowUC.AssertExpectations(s.T())
}

func (s *testSuite) TestCreateEventFailureAbortsCreate() {
	req := s.Require()

	insertErr := errors.New("event insert failed")
	eventRepo := &mAuction.EventRepo{}
	eventRepo.On("Insert", mock.Anything, mock.Anything).Return(insertErr)

	im := New(&AuctionUseCaseCfg{
		AuctionRepo: s.auctionRepo,
		CreditRepo:  s.creditRepo,
		EventRepo:   eventRepo,
		EscrowUC:    s.escrowUC,
		Query:       s.q,
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   30 * time.Second,
			Pfx:   "test",
			Cache: primitive.NewPrimitive("test-create", 1),
		}),
		Metrics: metrics.New("auction_test"),
	})

	s.auctionRepo.On("NextId", mock.Anything).Return(domain.AuctionId(0), nil).Once()
	s.auctionRepo.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := im.Create(s.ctx, "seller", "ming vase", "", 100, s.t0)
	req.ErrorIs(err, insertErr)

	// the record write and the event share one transaction, so the event
	// failure aborts the insert with it
	s.q.AssertCalled(s.T(), "RunWithTransaction", mock.Anything, mock.Anything)
	s.auctionRepo.AssertExpectations(s.T())
}

func (s *testSuite) TestCustodyConservation() {
	req := s.Require()
	seller := domain.Account("seller")
	alice := domain.Account("alice")
	bob := domain.Account("bob")
	id := domain.AuctionId(0)

	// the mocks mirror the ledger so total custody can be checked against
	// the held bid plus outstanding credits after every operation
	var custody domain.Amount
	credits := map[auction.CreditId]domain.Amount{}

	s.escrowUC.On("Deposit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { custody += args.Get(3).(domain.Amount) }).
		Return(nil)
	s.escrowUC.On("Payout", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { custody -= args.Get(3).(domain.Amount) }).
		Return(nil)
	s.creditRepo.On("Add", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			credits[args.Get(1).(auction.CreditId)] += args.Get(2).(domain.Amount)
		}).
		Return(nil)
	s.creditRepo.On("Drain", mock.Anything, mock.Anything).
		Return(func(_ ctx.Ctx, creditId auction.CreditId) domain.Amount {
			drained := credits[creditId]
			credits[creditId] = 0
			return drained
		}, nil)
	s.auctionRepo.On("Update", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	ledger := s.openAuction(id, seller, 100)
	serve := func() {
		snapshot := *ledger
		s.auctionRepo.On("FindOne", mock.Anything, id).Return(&snapshot, nil).Once()
	}
	conserved := func() {
		want := domain.Amount(0)
		if ledger.Active {
			want += ledger.CurrentBid
		}
		for _, balance := range credits {
			want += balance
		}
		req.Equal(want, custody)
	}

	// create holds nothing in custody
	s.auctionRepo.On("NextId", mock.Anything).Return(id, nil).Once()
	s.auctionRepo.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()
	_, err := s.im.Create(s.ctx, seller, "ming vase", "", 100, s.t0)
	req.NoError(err)
	conserved()

	// opening bid enters custody
	serve()
	req.NoError(s.im.PlaceBid(s.ctx, id, alice, 100, s.t0.Add(time.Hour)))
	ledger.CurrentBid = 100
	ledger.CurrentBidder = alice
	conserved()

	// outbid moves the displaced stake to credit without leaving custody
	serve()
	req.NoError(s.im.PlaceBid(s.ctx, id, bob, 110, s.t0.Add(2*time.Hour)))
	ledger.CurrentBid = 110
	ledger.CurrentBidder = bob
	conserved()

	// settlement pays the held bid out to the seller
	serve()
	_, _, err = s.im.End(s.ctx, id, seller, s.t0.Add(domain.AuctionDuration))
	req.NoError(err)
	ledger.Active = false
	ledger.Claimed = true
	conserved()

	// the withdrawn credit leaves custody last
	drained, err := s.im.WithdrawCredit(s.ctx, id, alice)
	req.NoError(err)
	req.Equal(domain.Amount(100), drained)
	conserved()
	req.Equal(domain.Amount(0), custody)
}

func (s *testSuite) TestSellerMaySettleEarly() {
	req := s.Require()
	seller := domain.Account("seller")
	id := domain.AuctionId(3)

	a := s.openAuction(id, seller, 50)
	a.CurrentBid = 80
	a.CurrentBidder = "alice"
	s.auctionRepo.On("FindOne", mock.Anything, id).Return(a, nil).Once()
	s.escrowUC.On("Payout", mock.Anything, id, seller, domain.Amount(80), mock.Anything).Return(nil).Once()
	s.auctionRepo.On("Update", mock.Anything, id, mock.Anything).Return(nil).Once()

	winner, amount, err := s.im.End(s.ctx, id, seller, s.t0.Add(time.Hour))
	req.NoError(err)
	req.Equal(domain.Account("alice"), winner)
	req.Equal(domain.Amount(80), amount)
}

func (s *testSuite) TestEndWithoutBids() {
	req := s.Require()
	seller := domain.Account("seller")
	id := domain.AuctionId(4)

	s.auctionRepo.On("FindOne", mock.Anything, id).Return(s.openAuction(id, seller, 50), nil).Once()
	s.auctionRepo.On("Update", mock.Anything, id, mock.Anything).Return(nil).Once()

	winner, amount, err := s.im.End(s.ctx, id, seller, s.t0.Add(domain.AuctionDuration))
	req.NoError(err)
	req.True(winner.IsEmpty())
	req.Equal(domain.Amount(0), amount)

	// nothing was in custody, so nothing pays out
	s.escrowUC.AssertNotCalled(s.T(), "Payout", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *testSuite) TestCancel() {
	req := s.Require()
	seller := domain.Account("seller")
	id := domain.AuctionId(5)

	// only the seller may cancel
	s.auctionRepo.On("FindOne", mock.Anything, id).Return(s.openAuction(id, seller, 50), nil).Once()
	req.ErrorIs(s.im.Cancel(s.ctx, id, "mallory"), domain.ErrNotSeller)

	// not once a bid is in custody
	bid := s.openAuction(id, seller, 50)
	bid.CurrentBid = 60
	bid.CurrentBidder = "alice"
	s.auctionRepo.On("FindOne", mock.Anything, id).Return(bid, nil).Once()
	req.ErrorIs(s.im.Cancel(s.ctx, id, seller), domain.ErrHasBids)

	// clean cancel marks the terminal state
	s.auctionRepo.On("FindOne", mock.Anything, id).Return(s.openAuction(id, seller, 50), nil).Once()
	s.auctionRepo.On("Update", mock.Anything, id, mock.MatchedBy(func(p auction.Patchable) bool {
		return p.Active != nil && !*p.Active && p.Cancelled != nil && *p.Cancelled
	})).Return(nil).Once()
	req.NoError(s.im.Cancel(s.ctx, id, seller))

	// a cancelled listing cannot be cancelled again
	done := s.openAuction(id, seller, 50)
	done.Active = false
	done.Cancelled = true
	s.auctionRepo.On("FindOne", mock.Anything, id).Return(done, nil).Once()
	req.ErrorIs(s.im.Cancel(s.ctx, id, seller), domain.ErrAuctionNotActive)
}

func (s *testSuite) TestExtend() {
	req := s.Require()
	seller := domain.Account("seller")
	id := domain.AuctionId(6)

	// over the cap fails before any lookup
	_, err := s.im.Extend(s.ctx, id, seller, 8*24*time.Hour, s.t0)
	req.ErrorIs(err, domain.ErrInvalidDuration)

	_, err = s.im.Extend(s.ctx, id, seller, 0, s.t0)
	req.ErrorIs(err, domain.ErrInvalidDuration)

	// a day's extension moves the deadline by exactly a day
	a := s.openAuction(id, seller, 50)
	want := a.EndTime.Add(24 * time.Hour)
	s.auctionRepo.On("FindOne", mock.Anything, id).Return(a, nil).Once()
	s.auctionRepo.On("Update", mock.Anything, id, mock.MatchedBy(func(p auction.Patchable) bool {
		return p.EndTime != nil && p.EndTime.Equal(want)
	})).Return(nil).Once()

	newEnd, err := s.im.Extend(s.ctx, id, seller, 24*time.Hour, s.t0.Add(time.Hour))
	req.NoError(err)
	req.True(newEnd.Equal(want))

	// expired listings cannot be revived
	s.auctionRepo.On("FindOne", mock.Anything, id).Return(s.openAuction(id, seller, 50), nil).Once()
	_, err = s.im.Extend(s.ctx, id, seller, time.Hour, s.t0.Add(domain.AuctionDuration))
	req.ErrorIs(err, domain.ErrAlreadyExpired)

	// only the seller may extend
	s.auctionRepo.On("FindOne", mock.Anything, id).Return(s.openAuction(id, seller, 50), nil).Once()
	_, err = s.im.Extend(s.ctx, id, "mallory", time.Hour, s.t0.Add(time.Hour))
	req.ErrorIs(err, domain.ErrNotSeller)
}

func (s *testSuite) TestGetCreditMissingIsZero() {
	req := s.Require()

	s.creditRepo.On("FindOne", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound).Once()

	credit, err := s.im.GetCredit(s.ctx, 9, "nobody")
	req.NoError(err)
	req.Equal(domain.Amount(0), credit)
}

func (s *testSuite) TestDepositFailureAbortsBid() {
	req := s.Require()
	seller := domain.Account("seller")
	id := domain.AuctionId(8)

	s.auctionRepo.On("FindOne", mock.Anything, id).Return(s.openAuction(id, seller, 100), nil).Once()
	s.escrowUC.On("Deposit", mock.Anything, id, domain.Account("alice"), domain.Amount(100), mock.Anything).
		Return(domain.ErrInsufficientCustody).Once()

	err := s.im.PlaceBid(s.ctx, id, "alice", 100, s.t0.Add(time.Hour))
	req.ErrorIs(err, domain.ErrInsufficientCustody)

	// the ledger never moved
	s.auctionRepo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything, mock.Anything)
	s.creditRepo.AssertNotCalled(s.T(), "Add", mock.Anything, mock.Anything, mock.Anything)
}
