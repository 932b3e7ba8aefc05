package models

import "time"

// MinIncreaseFactor is the fixed minimum-increase rule: a new bid must be
// at least 20% higher than the current bid. It is a system constant, not
// configurable per auction.
const MinIncreaseFactor = 1.20

// NoBidder marks an auction that has not received any accepted bid yet.
const NoBidder int64 = -1

// User is a static credential record loaded once at startup
type User struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"-" yaml:"password"`
}

// Auction represents a biddable item: immutable identity, mutable price state
type Auction struct {
	ID            int64   `json:"auction_id"`
	ItemName      string  `json:"item_name"`
	CurrentBid    float64 `json:"current_bid"`
	HighestBidder int64   `json:"highest_bidder"` // NoBidder until the first accepted bid
}

// MinimumNextBid returns the lowest amount the next bid on this auction may carry
func (a Auction) MinimumNextBid() float64 {
	return a.CurrentBid * MinIncreaseFactor
}

// Bid records one accepted bid on an auction
type Bid struct {
	BidID     string    `json:"bid_id"`
	AuctionID int64     `json:"auction_id"`
	BidderID  int64     `json:"bidder_id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}
