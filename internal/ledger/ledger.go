package ledger

import (
	"fmt"
	"sync"
	"time"

	"auction-service/internal/auctionerrors"
	model "auction-service/internal/models"
	"auction-service/utils"
)

// AuctionLedger is the authoritative view of all auctions and their bid state
type AuctionLedger interface {
	GetAll() []model.Auction
	TryApplyBid(auctionID, bidderID int64, amount float64) (model.Auction, error)
	BidsByAuction(auctionID int64) ([]model.Bid, error)
	WinningBid(auctionID int64) (model.Bid, error)
}

// MemoryLedger is a concurrency-safe in-memory implementation of AuctionLedger.
// A single mutex guards every read and the whole read-decide-write sequence of
// a bid, so concurrent bids resolve in some total order and no listing ever
// observes an intermediate state.
type MemoryLedger struct {
	mu       sync.Mutex
	auctions []model.Auction       // insertion order, ascending id
	index    map[int64]int         // key: auctionID -> value: position in auctions
	bids     map[int64][]model.Bid // key: auctionID -> value: accepted bids, oldest first
}

// NewMemoryLedger creates an empty in-memory ledger
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		index: make(map[int64]int),
		bids:  make(map[int64][]model.Bid),
	}
}

// AddAuction registers an auction at startup. Auctions are never created,
// removed or re-seeded after the acceptor starts.
func (l *MemoryLedger) AddAuction(a model.Auction) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.index[a.ID]; exists {
		return
	}
	if a.HighestBidder == 0 {
		a.HighestBidder = model.NoBidder
	}
	l.index[a.ID] = len(l.auctions)
	l.auctions = append(l.auctions, a)
}

// GetAll returns a snapshot of every auction in insertion order
func (l *MemoryLedger) GetAll() []model.Auction {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]model.Auction(nil), l.auctions...)
}

// TryApplyBid is the sole mutator of auction state. It atomically checks the
// minimum-increase rule and either applies the bid and returns the updated
// auction, or rejects it leaving the auction untouched.
func (l *MemoryLedger) TryApplyBid(auctionID, bidderID int64, amount float64) (model.Auction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	pos, ok := l.index[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("apply bid on auction %d: %w", auctionID, auctionerrors.ErrUnknownAuction)
	}

	auction := l.auctions[pos]
	minimum := auction.MinimumNextBid()
	if amount < minimum {
		return model.Auction{}, fmt.Errorf("apply bid on auction %d: %w", auctionID, &auctionerrors.BelowMinimumError{
			Minimum:    minimum,
			CurrentBid: auction.CurrentBid,
		})
	}

	auction.CurrentBid = amount
	auction.HighestBidder = bidderID
	l.auctions[pos] = auction

	l.bids[auctionID] = append(l.bids[auctionID], model.Bid{
		BidID:     utils.GenerateID(),
		AuctionID: auctionID,
		BidderID:  bidderID,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	})

	return auction, nil
}

// BidsByAuction returns the accepted-bid history for an auction, oldest first
func (l *MemoryLedger) BidsByAuction(auctionID int64) ([]model.Bid, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.index[auctionID]; !ok {
		return nil, fmt.Errorf("get bids for auction %d: %w", auctionID, auctionerrors.ErrUnknownAuction)
	}
	return append([]model.Bid(nil), l.bids[auctionID]...), nil
}

// WinningBid returns the currently leading bid for an auction. Accepted bids
// are strictly increasing, so the leader is always the most recent one.
func (l *MemoryLedger) WinningBid(auctionID int64) (model.Bid, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.index[auctionID]; !ok {
		return model.Bid{}, fmt.Errorf("get winning bid for auction %d: %w", auctionID, auctionerrors.ErrUnknownAuction)
	}
	bids := l.bids[auctionID]
	if len(bids) == 0 {
		return model.Bid{}, fmt.Errorf("get winning bid for auction %d: %w", auctionID, auctionerrors.ErrNoBids)
	}
	return bids[len(bids)-1], nil
}
