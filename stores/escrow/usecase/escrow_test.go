package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Mohit8269/Action-House/base/ctx"
	"github.com/Mohit8269/Action-House/base/metrics"
	"github.com/Mohit8269/Action-House/domain"
	"github.com/Mohit8269/Action-House/domain/escrow"
	mEscrow "github.com/Mohit8269/Action-House/domain/escrow/mocks"
)

type testSuite struct {
	suite.Suite

	ctx        ctx.Ctx
	escrowRepo *mEscrow.Repo
	im         escrow.UseCase
}

func TestEscrowUseCase(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.escrowRepo = &mEscrow.Repo{}
	s.im = New(&EscrowUseCaseCfg{
		EscrowRepo: s.escrowRepo,
		Metrics:    metrics.New("escrow_test"),
	})
}

func (s *testSuite) TestDepositJournalsAndAccumulates() {
	req := s.Require()
	now := time.Unix(1700000000, 0).UTC()

	s.escrowRepo.On("Credit", mock.Anything, &escrow.Entry{
		AuctionId: 1,
		Type:      escrow.EntryTypeDeposit,
		Account:   "alice",
		Amount:    100,
		Time:      now,
	}).Return(nil).Once()

	req.NoError(s.im.Deposit(s.ctx, 1, "Alice", 100, now))
	s.escrowRepo.AssertExpectations(s.T())
}

func (s *testSuite) TestDepositRejectsNonPositiveAmounts() {
	req := s.Require()

	req.ErrorIs(s.im.Deposit(s.ctx, 1, "alice", 0, time.Now()), domain.ErrInvalidInput)
	req.ErrorIs(s.im.Deposit(s.ctx, 1, "alice", -5, time.Now()), domain.ErrInvalidInput)
	s.escrowRepo.AssertNotCalled(s.T(), "Credit", mock.Anything, mock.Anything)
}

func (s *testSuite) TestPayoutDrawsDownCustody() {
	req := s.Require()
	now := time.Unix(1700000000, 0).UTC()

	s.escrowRepo.On("Debit", mock.Anything, &escrow.Entry{
		AuctionId: 1,
		Type:      escrow.EntryTypePayout,
		Account:   "seller",
		Amount:    100,
		Time:      now,
	}).Return(nil).Once()

	req.NoError(s.im.Payout(s.ctx, 1, "seller", 100, now))
	s.escrowRepo.AssertExpectations(s.T())
}

func (s *testSuite) TestPayoutCannotOverdraw() {
	req := s.Require()

	s.escrowRepo.On("Debit", mock.Anything, mock.Anything).
		Return(domain.ErrInsufficientCustody).Once()

	err := s.im.Payout(s.ctx, 1, "seller", 1000, time.Now())
	req.ErrorIs(err, domain.ErrInsufficientCustody)
}

func (s *testSuite) TestTotalCustody() {
	req := s.Require()

	s.escrowRepo.On("Total", mock.Anything).Return(domain.Amount(310), nil).Once()

	total, err := s.im.TotalCustody(s.ctx)
	req.NoError(err)
	req.Equal(domain.Amount(310), total)
}
