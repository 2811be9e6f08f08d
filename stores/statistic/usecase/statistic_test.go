package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Mohit8269/Action-House/base/ctx"
	"github.com/Mohit8269/Action-House/domain"
	mEscrow "github.com/Mohit8269/Action-House/domain/escrow/mocks"
	"github.com/Mohit8269/Action-House/domain/statistic"
	mStatistic "github.com/Mohit8269/Action-House/domain/statistic/mocks"
	"github.com/Mohit8269/Action-House/service/cache"
	"github.com/Mohit8269/Action-House/service/cache/provider/primitive"
)

type testSuite struct {
	suite.Suite

	ctx           ctx.Ctx
	statisticRepo *mStatistic.Repo
	escrowUC      *mEscrow.UseCase
	im            statistic.UseCase
}

func TestStatisticUseCase(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.statisticRepo = &mStatistic.Repo{}
	s.escrowUC = &mEscrow.UseCase{}
	s.im = New(s.statisticRepo, s.escrowUC, cache.New(cache.ServiceConfig{
		Ttl:   time.Second,
		Pfx:   "test",
		Cache: primitive.NewPrimitive("test", 1),
	}))
}

func (s *testSuite) TestSummary() {
	req := s.Require()

	s.statisticRepo.On("AggregateByState", mock.Anything).Return([]statistic.StateBucket{
		{State: statistic.StateOpen, Count: 3, Volume: 320},
		{State: statistic.StateSettled, Count: 2, Volume: 150},
		{State: statistic.StateCancelled, Count: 1, Volume: 0},
	}, nil).Once()
	s.escrowUC.On("TotalCustody", mock.Anything).Return(domain.Amount(420), nil).Once()

	got, err := s.im.Summary(s.ctx)
	req.NoError(err)
	req.Equal(domain.Amount(420), got.TotalCustody)
	req.Len(got.Buckets, 3)
	req.Equal("106.67", got.Buckets[0].AverageBid)
	req.Equal("75", got.Buckets[1].AverageBid)
	req.Equal("0", got.Buckets[2].AverageBid)
}

func (s *testSuite) TestSummaryIsCached() {
	req := s.Require()

	s.statisticRepo.On("AggregateByState", mock.Anything).Return([]statistic.StateBucket{
		{State: statistic.StateOpen, Count: 1, Volume: 100},
	}, nil).Once()
	s.escrowUC.On("TotalCustody", mock.Anything).Return(domain.Amount(100), nil).Once()

	_, err := s.im.Summary(s.ctx)
	req.NoError(err)

	// second read is served from cache; the mocks allow one call only
	got, err := s.im.Summary(s.ctx)
	req.NoError(err)
	req.Equal(domain.Amount(100), got.TotalCustody)

	s.statisticRepo.AssertExpectations(s.T())
	s.escrowUC.AssertExpectations(s.T())
}
