package auction

import (
	"github.com/Mohit8269/Action-House/base/ctx"
	"github.com/Mohit8269/Action-House/domain"
)

// Credit is the withdrawable balance owed to an account that has been
// outbid on an auction. Its lifecycle is independent of the parent
// auction: a credit stays claimable forever, even after settlement.
type Credit struct {
	AuctionId domain.AuctionId `json:"auctionId" bson:"auctionId"`
	Account   domain.Account   `json:"account" bson:"account"`
	Balance   domain.Amount    `json:"balance" bson:"balance"`
}

func (c *Credit) ToId() CreditId {
	return CreditId{AuctionId: c.AuctionId, Account: c.Account}
}

type CreditId struct {
	AuctionId domain.AuctionId `json:"auctionId" bson:"auctionId"`
	Account   domain.Account   `json:"account" bson:"account"`
}

// CreditRepo accumulates and drains per-(auction, account) balances.
// Add upserts, so an account outbid several times on one auction accrues
// a single combined balance. Drain atomically zeroes a positive balance
// and returns what it held; it returns domain.ErrNoCredit when the entry
// is missing or already zero.
type CreditRepo interface {
	Add(ctx ctx.Ctx, id CreditId, amount domain.Amount) error
	FindOne(ctx ctx.Ctx, id CreditId) (*Credit, error)
	FindAll(ctx ctx.Ctx, account domain.Account) ([]*Credit, error)
	Drain(ctx ctx.Ctx, id CreditId) (domain.Amount, error)
}
