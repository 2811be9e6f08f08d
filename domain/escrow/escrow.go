package escrow

import (
	"time"

	"github.com/Mohit8269/Action-House/base/ctx"
	"github.com/Mohit8269/Action-House/domain"
)

type EntryType string

const (
	EntryTypeDeposit EntryType = "deposit"
	EntryTypePayout  EntryType = "payout"
)

// Entry is one row of the append-only custody journal. Deposits record
// funds entering custody with an accepted bid; payouts record funds
// leaving custody toward a seller settlement or a credit withdrawal.
type Entry struct {
	AuctionId domain.AuctionId `json:"auctionId" bson:"auctionId"`
	Type      EntryType        `json:"type" bson:"type"`
	Account   domain.Account   `json:"account" bson:"account"`
	Amount    domain.Amount    `json:"amount" bson:"amount"`
	Time      time.Time        `json:"time" bson:"time"`
}

// Balance is the running custody total, maintained together with every
// journal row so conservation can be checked in O(1).
type Balance struct {
	Name  string        `json:"name" bson:"name"`
	Total domain.Amount `json:"total" bson:"total"`
}

// Repo writes journal rows and moves the running balance. Debit must
// fail with domain.ErrInsufficientCustody rather than let the balance go
// negative.
type Repo interface {
	Credit(ctx ctx.Ctx, entry *Entry) error
	Debit(ctx ctx.Ctx, entry *Entry) error
	Total(ctx ctx.Ctx) (domain.Amount, error)
	FindEntries(ctx ctx.Ctx, auctionId domain.AuctionId) ([]Entry, error)
}

// UseCase authorizes fund movement. Callers invoke it inside the same
// transaction as the ledger mutation: if authorization fails the whole
// operation aborts with no state change.
type UseCase interface {
	Deposit(ctx ctx.Ctx, auctionId domain.AuctionId, from domain.Account, amount domain.Amount, now time.Time) error
	Payout(ctx ctx.Ctx, auctionId domain.AuctionId, to domain.Account, amount domain.Amount, now time.Time) error
	TotalCustody(ctx ctx.Ctx) (domain.Amount, error)
}
