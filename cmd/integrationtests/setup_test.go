package integrationtests

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"auction-service/internal/admin"
	"auction-service/internal/auditlog"
	"auction-service/internal/auth"
	"auction-service/internal/bidding"
	"auction-service/internal/config"
	"auction-service/internal/ledger"
	model "auction-service/internal/models"
	"auction-service/internal/protocol"
	"auction-service/internal/server"
)

// harness wires a real TCP server and the admin router over one shared ledger,
// the same way main() does.
type harness struct {
	srv    *server.Server
	router *gin.Engine
	ledger *ledger.MemoryLedger
}

// setupHarness starts everything from the default configuration
func setupHarness(t *testing.T) *harness {
	t.Helper()

	gin.SetMode(gin.TestMode)
	cfg := config.Default()

	l := ledger.NewMemoryLedger()
	for _, seed := range cfg.Auctions {
		l.AddAuction(model.Auction{
			ID:            seed.ID,
			ItemName:      seed.ItemName,
			CurrentBid:    seed.StartingBid,
			HighestBidder: model.NoBidder,
		})
	}

	service := bidding.NewService(l)
	creds := auth.NewStaticStore(cfg.Users)

	srv := server.New("127.0.0.1:0", cfg.Server.MaxSessions, service, creds, auditlog.NewWithWriter(io.Discard))
	if err := srv.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}
	t.Cleanup(srv.Stop)

	return &harness{
		srv:    srv,
		router: admin.SetupRouter(service),
		ledger: l,
	}
}

// tcpClient is a minimal protocol-speaking auction client for tests
type tcpClient struct {
	conn   net.Conn
	reader *bufio.Reader
}

func (h *harness) dial(t *testing.T) *tcpClient {
	t.Helper()

	conn, err := net.Dial("tcp", h.srv.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return &tcpClient{conn: conn, reader: bufio.NewReader(conn)}
}

func (c *tcpClient) readBlock(t *testing.T) string {
	t.Helper()
	block, err := protocol.ReadBlock(c.reader)
	if err != nil {
		t.Fatalf("read block: %v", err)
	}
	return block
}

func (c *tcpClient) sendLine(t *testing.T, line string) {
	t.Helper()
	if _, err := fmt.Fprintf(c.conn, "%s\n", line); err != nil {
		t.Fatalf("send line: %v", err)
	}
}

// login walks the auth exchange and returns the welcome listing
func (c *tcpClient) login(t *testing.T, username, password string) string {
	t.Helper()

	c.readBlock(t) // username prompt
	c.sendLine(t, username)
	c.readBlock(t) // password prompt
	c.sendLine(t, password)

	result := c.readBlock(t)
	if result != protocol.MsgAuthSuccess {
		t.Fatalf("authentication failed: %q", result)
	}
	return c.readBlock(t) // welcome listing
}

// adminGet executes a request against the admin router and parses the body
func (h *harness) adminGet(t *testing.T, url string) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	h.router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}
