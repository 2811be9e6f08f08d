package domain

import "errors"

var (
	// ErrNotFound will throw if the requested record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")

	// create
	ErrInvalidInput = errors.New("item name must be non-empty and starting price positive")

	// bid
	ErrAuctionNotActive = errors.New("auction is not active")
	ErrAuctionExpired   = errors.New("auction has expired")
	ErrSelfBid          = errors.New("seller may not bid on own auction")
	ErrBidTooLow        = errors.New("bid below starting price or minimum increment")

	// settlement
	ErrAlreadySettled = errors.New("auction already settled")
	ErrTooEarly       = errors.New("auction deadline not reached")
	ErrNotSeller      = errors.New("caller is not the seller")
	ErrHasBids        = errors.New("auction already has bids")

	// extension
	ErrInvalidDuration = errors.New("extension must be positive and at most the maximum")
	ErrAlreadyExpired  = errors.New("auction deadline already passed")

	// credit ledger
	ErrNoCredit = errors.New("no withdrawable credit")

	// custody
	ErrInsufficientCustody = errors.New("custody balance below requested payout")
)
