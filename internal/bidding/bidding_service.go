package bidding

import (
	"fmt"
	"math"

	"auction-service/internal/auctionerrors"
	"auction-service/internal/ledger"
	"auction-service/internal/models"
)

// Service defines the business logic shared by the TCP session handler and
// the admin API: listing auctions and placing bids under the minimum-increase
// rule. All state lives in the ledger; the service holds no state of its own.
type Service struct {
	ledger ledger.AuctionLedger
}

// NewService creates a new Service instance
func NewService(l ledger.AuctionLedger) *Service {
	return &Service{
		ledger: l,
	}
}

// ListAuctions returns a snapshot of every auction in ascending-id order
func (s *Service) ListAuctions() []models.Auction {
	return s.ledger.GetAll()
}

// PlaceBid validates and applies a bid for a client against an auction
func (s *Service) PlaceBid(auctionID, bidderID int64, amount float64) (models.Auction, error) {
	if auctionID <= 0 {
		return models.Auction{}, fmt.Errorf("service: %w - non-positive auction id %d", auctionerrors.ErrUnknownAuction, auctionID)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return models.Auction{}, fmt.Errorf("service: %w - non-finite bid amount", auctionerrors.ErrMalformedCommand)
	}

	updated, err := s.ledger.TryApplyBid(auctionID, bidderID, amount)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: bid by client %d on auction %d: %w", bidderID, auctionID, err)
	}

	return updated, nil
}

// BidsForAuction returns the accepted-bid history for a specific auction
func (s *Service) BidsForAuction(auctionID int64) ([]models.Bid, error) {
	if auctionID <= 0 {
		return nil, fmt.Errorf("service: %w - non-positive auction id %d", auctionerrors.ErrUnknownAuction, auctionID)
	}

	bids, err := s.ledger.BidsByAuction(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %d: %w", auctionID, err)
	}

	return bids, nil
}

// WinningBid returns the currently leading bid for a specific auction
func (s *Service) WinningBid(auctionID int64) (models.Bid, error) {
	if auctionID <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - non-positive auction id %d", auctionerrors.ErrUnknownAuction, auctionID)
	}

	winning, err := s.ledger.WinningBid(auctionID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get winning bid for auction %d: %w", auctionID, err)
	}

	return winning, nil
}
