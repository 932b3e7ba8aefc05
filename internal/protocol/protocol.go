// Package protocol defines the text protocol spoken between the auction
// server and its clients: the exact message formats, command parsing, and
// the framing layer both sides use to reassemble messages from the byte
// stream.
//
// Framing: client-to-server messages are single newline-terminated lines.
// Server-to-client messages are blocks: one or more non-empty lines followed
// by one empty line. A TCP stream gives no guarantee that one write arrives
// as one read, so both sides read through a buffered reader and rely only on
// these delimiters.
package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"auction-service/internal/auctionerrors"
	model "auction-service/internal/models"
)

// Fixed protocol strings. Clients match on these, do not reword them.
const (
	PromptUsername = "Enter username: "
	PromptPassword = "Enter password: "
	MsgAuthSuccess = "Authentication successful"
	MsgAuthFailure = "Authentication failed. Disconnecting..."
	WelcomeHeader  = "Welcome to the Auction! Current items:"
	ListHeader     = "Current Auction List:"
	MsgInvalidBid  = "Error: Invalid auction ID or bid amount"
)

// CommandKind classifies one line received from a client
type CommandKind int

const (
	CmdList CommandKind = iota
	CmdQuit
	CmdBid
)

// Command is one parsed client command
type Command struct {
	Kind      CommandKind
	AuctionID int64
	Amount    float64
}

// ParseCommand classifies a raw command line. A line that is neither a
// listing request, a quit token, nor a well-formed "<auction_id> <amount>"
// pair fails with ErrMalformedCommand; it is never read as garbage values.
func ParseCommand(line string) (Command, error) {
	trimmed := strings.TrimSpace(line)

	if len(trimmed) >= 2 && strings.EqualFold(trimmed[:2], "ls") {
		return Command{Kind: CmdList}, nil
	}
	if len(trimmed) >= 1 && (trimmed[0] == 'q' || trimmed[0] == 'Q') {
		return Command{Kind: CmdQuit}, nil
	}

	fields := strings.Fields(trimmed)
	if len(fields) != 2 {
		return Command{}, fmt.Errorf("parse %q: %w", line, auctionerrors.ErrMalformedCommand)
	}

	auctionID, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Command{}, fmt.Errorf("parse auction id %q: %w", fields[0], auctionerrors.ErrMalformedCommand)
	}

	amount, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Command{}, fmt.Errorf("parse bid amount %q: %w", fields[1], auctionerrors.ErrMalformedCommand)
	}

	return Command{Kind: CmdBid, AuctionID: auctionID, Amount: amount}, nil
}

// AuctionLine renders one auction entry of a listing
func AuctionLine(a model.Auction) string {
	return fmt.Sprintf("Auction ID %d: %s, Current Bid: %.2f (Minimum next bid: %.2f)",
		a.ID, a.ItemName, a.CurrentBid, a.MinimumNextBid())
}

// Listing renders a full listing block under the given header line
func Listing(header string, auctions []model.Auction) string {
	var b strings.Builder
	b.WriteString(header)
	for _, a := range auctions {
		b.WriteByte('\n')
		b.WriteString(AuctionLine(a))
	}
	return b.String()
}

// BidAccepted renders the update notice for a freshly accepted bid
func BidAccepted(a model.Auction) string {
	return fmt.Sprintf("Update: Auction ID %d: New highest bid is %.2f by Client %d\nMinimum next bid required: %.2f",
		a.ID, a.CurrentBid, a.HighestBidder, a.MinimumNextBid())
}

// BidBelowMinimum renders the rejection notice for a bid under the 20% step
func BidBelowMinimum(minimum, currentBid float64) string {
	return fmt.Sprintf("Error: Bid must be at least %.2f (20%% more than current bid of %.2f)",
		minimum, currentBid)
}

// WriteBlock sends one server message: the text's lines followed by the
// empty terminator line.
func WriteBlock(w io.Writer, text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(w, text+"\n")
	return err
}

// ReadBlock reads one server message: lines up to (not including) the empty
// terminator line. Returns io.EOF only when the stream ends before any
// content arrives.
func ReadBlock(r *bufio.Reader) (string, error) {
	var lines []string
	for {
		raw, err := r.ReadString('\n')
		line := strings.TrimRight(raw, "\r\n")
		if err != nil {
			if errors.Is(err, io.EOF) {
				if line != "" {
					lines = append(lines, line)
				}
				if len(lines) == 0 {
					return "", io.EOF
				}
				return strings.Join(lines, "\n"), nil
			}
			return "", err
		}
		if line == "" {
			if len(lines) == 0 {
				continue
			}
			return strings.Join(lines, "\n"), nil
		}
		lines = append(lines, line)
	}
}
