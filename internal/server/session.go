package server

import (
	"bufio"
	"errors"
	"net"
	"strings"

	"auction-service/internal/auctionerrors"
	"auction-service/internal/auditlog"
	"auction-service/internal/auth"
	model "auction-service/internal/models"
	"auction-service/internal/protocol"
	"auction-service/utils"
)

// AuctionService is the slice of the bidding service a session needs
type AuctionService interface {
	ListAuctions() []model.Auction
	PlaceBid(auctionID, bidderID int64, amount float64) (model.Auction, error)
}

// Session owns one client connection for its whole lifetime: it runs the
// authentication exchange, serves the initial listing, then dispatches
// commands until the client quits, disconnects, or the connection fails.
// Nothing outside the session touches its connection.
type Session struct {
	id      int64
	conn    net.Conn
	service AuctionService
	creds   auth.CredentialStore
	audit   *auditlog.Sink
}

func newSession(id int64, conn net.Conn, service AuctionService, creds auth.CredentialStore, audit *auditlog.Sink) *Session {
	return &Session{
		id:      id,
		conn:    conn,
		service: service,
		creds:   creds,
		audit:   audit,
	}
}

// run drives the session state machine to completion. It always closes the
// connection on return and never lets a session failure escape to the acceptor.
func (s *Session) run() {
	defer s.conn.Close()
	defer func() {
		if r := recover(); r != nil {
			utils.Error("session panicked", map[string]any{"client_id": s.id, "panic": r})
		}
	}()

	reader := bufio.NewReader(s.conn)

	if !s.authenticate(reader) {
		s.audit.Printf("Authentication failed for client %d", s.id)
		return
	}

	s.audit.Printf("New client connected. Client ID: %d", s.id)
	utils.Info("client authenticated", map[string]any{"client_id": s.id, "remote": s.conn.RemoteAddr().String()})

	welcome := protocol.Listing(protocol.WelcomeHeader, s.service.ListAuctions())
	if err := protocol.WriteBlock(s.conn, welcome); err != nil {
		s.audit.Printf("Error sending initial auction list to client %d", s.id)
		return
	}

	for {
		line, err := readLine(reader)
		if err != nil {
			s.audit.Printf("Client %d disconnected", s.id)
			return
		}

		if done := s.dispatch(line); done {
			return
		}
	}
}

// authenticate runs the two prompt/response exchanges and evaluates exactly
// one credential pair. On failure the result notice is sent and the session
// ends; retrying means reconnecting.
func (s *Session) authenticate(reader *bufio.Reader) bool {
	if err := protocol.WriteBlock(s.conn, protocol.PromptUsername); err != nil {
		return false
	}
	username, err := readLine(reader)
	if err != nil {
		return false
	}

	if err := protocol.WriteBlock(s.conn, protocol.PromptPassword); err != nil {
		return false
	}
	password, err := readLine(reader)
	if err != nil {
		return false
	}

	ok := s.creds.Authenticate(username, password)
	s.audit.Printf("Authentication attempt by %q for client %d: success=%t", username, s.id, ok)

	if !ok {
		_ = protocol.WriteBlock(s.conn, protocol.MsgAuthFailure)
		return false
	}
	return protocol.WriteBlock(s.conn, protocol.MsgAuthSuccess) == nil
}

// dispatch handles one command line and writes exactly one response block,
// except for quit, which closes without a response. Returns true when the
// session should end.
func (s *Session) dispatch(line string) bool {
	cmd, err := protocol.ParseCommand(line)
	if err != nil {
		s.audit.Printf("Invalid command from client %d: %q", s.id, line)
		return s.respond(protocol.MsgInvalidBid)
	}

	switch cmd.Kind {
	case protocol.CmdList:
		s.audit.Printf("Client %d requested current auction list", s.id)
		return s.respond(protocol.Listing(protocol.ListHeader, s.service.ListAuctions()))

	case protocol.CmdQuit:
		s.audit.Printf("Client %d quit", s.id)
		return true

	default:
		return s.handleBid(cmd)
	}
}

func (s *Session) handleBid(cmd protocol.Command) bool {
	s.audit.Printf("Received bid from Client %d: Auction ID %d, Amount %.2f", s.id, cmd.AuctionID, cmd.Amount)

	updated, err := s.service.PlaceBid(cmd.AuctionID, s.id, cmd.Amount)
	if err == nil {
		s.audit.Printf("New highest bid: Auction ID %d, Amount %.2f, Client %d", updated.ID, updated.CurrentBid, s.id)
		return s.respond(protocol.BidAccepted(updated))
	}

	var belowMin *auctionerrors.BelowMinimumError
	if errors.As(err, &belowMin) {
		s.audit.Printf("Invalid bid (below minimum increase): Auction ID %d, Amount %.2f, Client %d", cmd.AuctionID, cmd.Amount, s.id)
		return s.respond(protocol.BidBelowMinimum(belowMin.Minimum, belowMin.CurrentBid))
	}

	s.audit.Printf("Invalid bid received from client %d", s.id)
	return s.respond(protocol.MsgInvalidBid)
}

// respond writes one response block; a write failure ends the session
func (s *Session) respond(text string) bool {
	if err := protocol.WriteBlock(s.conn, text); err != nil {
		s.audit.Printf("Error sending response to client %d", s.id)
		return true
	}
	return false
}

// readLine reads one newline-terminated client message
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
