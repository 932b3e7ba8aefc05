package helpers

// Response DTOs
type AuctionResponse struct {
	AuctionID      int64   `json:"auction_id"`
	ItemName       string  `json:"item_name"`
	CurrentBid     float64 `json:"current_bid"`
	HighestBidder  int64   `json:"highest_bidder"`
	MinimumNextBid float64 `json:"minimum_next_bid"`
}

type BidResponse struct {
	BidID     string  `json:"bid_id"`
	AuctionID int64   `json:"auction_id"`
	BidderID  int64   `json:"bidder_id"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
}
