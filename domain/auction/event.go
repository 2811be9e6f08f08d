package auction

import (
	"time"

	"github.com/Mohit8269/Action-House/base/ctx"
	"github.com/Mohit8269/Action-House/domain"
)

type EventType string

const (
	EventTypeAuctionCreated   EventType = "auctionCreated"
	EventTypeBidPlaced        EventType = "bidPlaced"
	EventTypeAuctionEnded     EventType = "auctionEnded"
	EventTypeAuctionCancelled EventType = "auctionCancelled"
	EventTypeAuctionExtended  EventType = "auctionExtended"
	EventTypeCreditWithdrawn  EventType = "creditWithdrawn"
)

// Event is an informational notification record for external observers.
// Events are written alongside ledger mutations but carry no invariants
// of their own.
type Event struct {
	EventId   string           `json:"eventId" bson:"eventId"`
	AuctionId domain.AuctionId `json:"auctionId" bson:"auctionId"`
	Type      EventType        `json:"type" bson:"type"`
	Account   domain.Account   `json:"account" bson:"account"`
	// To is the counterparty when funds moved, e.g. the seller on settlement
	To     domain.Account `json:"to,omitempty" bson:"to,omitempty"`
	Amount domain.Amount  `json:"amount" bson:"amount"`
	Time   time.Time      `json:"time" bson:"time"`
}

type FindEventsOptions struct {
	AuctionId *domain.AuctionId
	Account   *domain.Account
	Types     []EventType
	TimeGTE   *time.Time
	Offset    *int32
	Limit     *int32
}

type FindEventsOptionsFunc func(*FindEventsOptions) error

func GetFindEventsOptions(opts ...FindEventsOptionsFunc) (FindEventsOptions, error) {
	res := FindEventsOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func EventsWithAuctionId(id domain.AuctionId) FindEventsOptionsFunc {
	return func(options *FindEventsOptions) error {
		options.AuctionId = &id
		return nil
	}
}

func EventsWithAccount(account domain.Account) FindEventsOptionsFunc {
	return func(options *FindEventsOptions) error {
		options.Account = account.ToLowerPtr()
		return nil
	}
}

func EventsWithTypes(types ...EventType) FindEventsOptionsFunc {
	return func(options *FindEventsOptions) error {
		options.Types = types
		return nil
	}
}

func EventsWithTimeGTE(t time.Time) FindEventsOptionsFunc {
	return func(options *FindEventsOptions) error {
		options.TimeGTE = &t
		return nil
	}
}

func EventsWithPagination(offset, limit int32) FindEventsOptionsFunc {
	return func(options *FindEventsOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type EventRepo interface {
	Insert(ctx ctx.Ctx, event *Event) error
	FindAll(ctx ctx.Ctx, opts ...FindEventsOptionsFunc) ([]Event, error)
}
