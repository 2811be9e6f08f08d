package statistic

import (
	bCtx "github.com/Mohit8269/Action-House/base/ctx"
	"github.com/Mohit8269/Action-House/domain"
)

// StateBucket aggregates auctions sharing a lifecycle state.
type StateBucket struct {
	State string `json:"state" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
	// Volume sums currentBid across the bucket
	Volume domain.Amount `json:"volume" bson:"volume"`
	// AverageBid is volume/count rendered with decimal math, empty when
	// the bucket is empty
	AverageBid string `json:"averageBid" bson:"-"`
}

const (
	StateOpen      = "open"
	StateSettled   = "settled"
	StateCancelled = "cancelled"
)

// Summary is the aggregate statistics projection plus the custody total,
// which by conservation equals the sum of open auctions' current bids and
// all outstanding credits.
type Summary struct {
	Buckets      []StateBucket `json:"buckets"`
	TotalCustody domain.Amount `json:"totalCustody"`
}

type Repo interface {
	AggregateByState(ctx bCtx.Ctx) ([]StateBucket, error)
}

type UseCase interface {
	Summary(ctx bCtx.Ctx) (*Summary, error)
}
