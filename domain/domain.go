package domain

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/xerrors"
)

// Table is a mongo collection name
type Table string

const (
	TableAuctions      Table = "auctions"
	TableCredits       Table = "credits"
	TableCustody       Table = "custody"
	TableAuctionEvents Table = "auction_events"
	TableCounters      Table = "counters"
	TableHealthCheck   Table = "healthcheck"
)

// AuctionId is monotonically assigned starting at 0 and never reused
type AuctionId int64

func (i AuctionId) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func ParseAuctionId(s string) (AuctionId, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, xerrors.Errorf("invalid auction id %s", s)
	}
	return AuctionId(id), nil
}

// Account is an opaque caller identity. The ledger performs no identity
// verification; it only compares accounts for equality.
type Account string

func (a Account) ToLower() Account {
	return Account(strings.ToLower(string(a)))
}

func (a Account) ToLowerPtr() *Account {
	res := a.ToLower()
	return &res
}

func (a Account) IsEmpty() bool {
	return len(a) == 0
}

func (a Account) Equals(b Account) bool {
	return a.ToLower() == b.ToLower()
}

// Amount is an integral quantity of the single custodied currency
type Amount int64

const (
	// AuctionDuration is the fixed listing window applied at creation
	AuctionDuration = 7 * 24 * time.Hour
	// MaxExtension caps a single extend call; cumulative extensions are unbounded
	MaxExtension = 7 * 24 * time.Hour
	// MinBidIncrement is the least a new bid must exceed the current one by
	MinBidIncrement Amount = 10
)
