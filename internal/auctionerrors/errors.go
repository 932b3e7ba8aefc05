package auctionerrors

import (
	"errors"
	"fmt"
)

// Ledger-level errors
var (
	ErrUnknownAuction = errors.New("unknown auction")
	ErrNoBids         = errors.New("no bids placed on auction")
)

// business logic errors
var (
	ErrBidTooLow        = errors.New("bid below minimum increase")
	ErrMalformedCommand = errors.New("malformed command")
)

// session errors
var (
	ErrAuthFailed = errors.New("authentication failed")
)

// BelowMinimumError carries the figures a rejected bidder needs to retry.
// It unwraps to ErrBidTooLow so callers can classify it with errors.Is.
type BelowMinimumError struct {
	Minimum    float64
	CurrentBid float64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("bid below minimum increase: need at least %.2f (current bid %.2f)", e.Minimum, e.CurrentBid)
}

func (e *BelowMinimumError) Unwrap() error {
	return ErrBidTooLow
}
