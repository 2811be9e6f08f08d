package auction

import (
	"time"

	"github.com/Mohit8269/Action-House/base/ctx"
	"github.com/Mohit8269/Action-House/domain"
)

// Auction is one listing cycle from creation to terminal settlement or
// cancellation. Records are append-only: terminal auctions stay in the
// table forever, keyed by AuctionId.
type Auction struct {
	AuctionId     domain.AuctionId `json:"auctionId" bson:"auctionId"`
	Seller        domain.Account   `json:"seller" bson:"seller"`
	ItemName      string           `json:"itemName" bson:"itemName"`
	Description   string           `json:"description" bson:"description"`
	StartingPrice domain.Amount    `json:"startingPrice" bson:"startingPrice"`
	CurrentBid    domain.Amount    `json:"currentBid" bson:"currentBid"`
	// CurrentBidder is empty until the first accepted bid
	CurrentBidder domain.Account `json:"currentBidder" bson:"currentBidder"`
	CreatedAt     time.Time      `json:"createdAt" bson:"createdAt"`
	EndTime       time.Time      `json:"endTime" bson:"endTime"`
	Active        bool           `json:"active" bson:"active"`
	// Claimed flips false to true exactly once, together with Active
	// flipping true to false
	Claimed bool `json:"claimed" bson:"claimed"`
	// Cancelled distinguishes the two terminal states for reporting
	Cancelled bool `json:"cancelled" bson:"cancelled"`
}

func (a *Auction) HasBid() bool {
	return !a.CurrentBidder.IsEmpty()
}

// MinAcceptableBid is the smallest amount the next bid may carry. The
// increment counts from a zero current bid too, so an opening bid must
// clear both the starting price and the bare increment.
func (a *Auction) MinAcceptableBid() domain.Amount {
	next := a.CurrentBid + domain.MinBidIncrement
	if next < a.StartingPrice {
		return a.StartingPrice
	}
	return next
}

// Patchable carries partial updates; nil fields are left untouched
type Patchable struct {
	CurrentBid    *domain.Amount  `json:"currentBid" bson:"currentBid,omitempty"`
	CurrentBidder *domain.Account `json:"currentBidder" bson:"currentBidder,omitempty"`
	EndTime       *time.Time      `json:"endTime" bson:"endTime,omitempty"`
	Active        *bool           `json:"active" bson:"active,omitempty"`
	Claimed       *bool           `json:"claimed" bson:"claimed,omitempty"`
	Cancelled     *bool           `json:"cancelled" bson:"cancelled,omitempty"`
}

type FindAllOptions struct {
	Seller        *domain.Account
	CurrentBidder *domain.Account
	Active        *bool
	Claimed       *bool
	Cancelled     *bool
	EndTimeGT     *time.Time
	EndTimeLT     *time.Time
	PriceGTE      *domain.Amount
	PriceLTE      *domain.Amount
	NameContains  *string
	Offset        *int32
	Limit         *int32
	SortBy        *string
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithSeller(seller domain.Account) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Seller = seller.ToLowerPtr()
		return nil
	}
}

func WithCurrentBidder(bidder domain.Account) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.CurrentBidder = bidder.ToLowerPtr()
		return nil
	}
}

func WithActive(active bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Active = &active
		return nil
	}
}

func WithClaimed(claimed bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Claimed = &claimed
		return nil
	}
}

func WithCancelled(cancelled bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Cancelled = &cancelled
		return nil
	}
}

func WithEndTimeGT(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.EndTimeGT = &t
		return nil
	}
}

func WithEndTimeLT(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.EndTimeLT = &t
		return nil
	}
}

func WithPriceGTE(amount domain.Amount) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.PriceGTE = &amount
		return nil
	}
}

func WithPriceLTE(amount domain.Amount) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.PriceLTE = &amount
		return nil
	}
}

func WithNameContains(fragment string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.NameContains = &fragment
		return nil
	}
}

func WithPagination(offset, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithSort(sort string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SortBy = &sort
		return nil
	}
}

// Repo persists Auction records. NextId allocates a strictly increasing
// id starting at 0 and never reuses one.
type Repo interface {
	NextId(ctx ctx.Ctx) (domain.AuctionId, error)
	Insert(ctx ctx.Ctx, auction *Auction) error
	FindOne(ctx ctx.Ctx, id domain.AuctionId) (*Auction, error)
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Auction, error)
	Count(ctx ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	Update(ctx ctx.Ctx, id domain.AuctionId, patchable Patchable) error
}

// UseCase is the auction ledger operation surface. Every mutating call
// takes the caller-supplied current time so deadline checks never read an
// ambient clock, and commits all fund movement and state change as one
// unit or not at all.
type UseCase interface {
	Create(ctx ctx.Ctx, seller domain.Account, itemName, description string, startingPrice domain.Amount, now time.Time) (domain.AuctionId, error)
	PlaceBid(ctx ctx.Ctx, id domain.AuctionId, bidder domain.Account, amount domain.Amount, now time.Time) error
	End(ctx ctx.Ctx, id domain.AuctionId, caller domain.Account, now time.Time) (domain.Account, domain.Amount, error)
	Cancel(ctx ctx.Ctx, id domain.AuctionId, caller domain.Account) error
	Extend(ctx ctx.Ctx, id domain.AuctionId, caller domain.Account, additional time.Duration, now time.Time) (time.Time, error)
	WithdrawCredit(ctx ctx.Ctx, id domain.AuctionId, claimant domain.Account) (domain.Amount, error)

	Get(ctx ctx.Ctx, id domain.AuctionId) (*Auction, error)
	GetBatch(ctx ctx.Ctx, ids []domain.AuctionId) ([]*Auction, error)
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Auction, error)
	EndingSoon(ctx ctx.Ctx, now time.Time, within time.Duration, limit int32) ([]*Auction, error)
	SearchByName(ctx ctx.Ctx, fragment string, limit int32) ([]*Auction, error)
	TopBids(ctx ctx.Ctx, limit int32) ([]*Auction, error)
	GetCredit(ctx ctx.Ctx, id domain.AuctionId, account domain.Account) (domain.Amount, error)
	GetEvents(ctx ctx.Ctx, id domain.AuctionId) ([]Event, error)
}
