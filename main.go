package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"auction-service/internal/admin"
	"auction-service/internal/auditlog"
	"auction-service/internal/auth"
	"auction-service/internal/bidding"
	"auction-service/internal/config"
	"auction-service/internal/ledger"
	model "auction-service/internal/models"
	"auction-service/internal/server"
	"auction-service/utils"
)

func main() {
	// optional .env; absence is fine, real environment wins
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to YAML config file (or AUCTION_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		utils.Fatal("invalid configuration", map[string]any{"error": err.Error()})
	}

	audit, err := auditlog.Open(cfg.Server.LogFile)
	if err != nil {
		utils.Fatal("unable to open audit log", map[string]any{"path": cfg.Server.LogFile, "error": err.Error()})
	}
	defer audit.Close()

	ldg := ledger.NewMemoryLedger()
	seedAuctions(ldg, cfg.Auctions)
	audit.Printf("Auctions initialized: %d items", len(cfg.Auctions))

	service := bidding.NewService(ldg)
	creds := auth.NewStaticStore(cfg.Users)

	srv := server.New(cfg.Server.ListenAddr, cfg.Server.MaxSessions, service, creds, audit)
	if err := srv.Start(); err != nil {
		utils.Fatal("failed to start auction server", map[string]any{"addr": cfg.Server.ListenAddr, "error": err.Error()})
	}

	router := admin.SetupRouter(service)
	go func() {
		if err := router.Run(cfg.Server.AdminAddr); err != nil {
			utils.Error("admin API stopped", map[string]any{"addr": cfg.Server.AdminAddr, "error": err.Error()})
		}
	}()

	fmt.Printf("Auction server started on %s (admin API on %s)\n", cfg.Server.ListenAddr, cfg.Server.AdminAddr)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	utils.Info("shutting down", nil)
	srv.Stop()
}

// seedAuctions creates the configured auctions; the ledger never grows after this
func seedAuctions(ldg *ledger.MemoryLedger, seeds []config.SeedAuction) {
	for _, seed := range seeds {
		ldg.AddAuction(model.Auction{
			ID:            seed.ID,
			ItemName:      seed.ItemName,
			CurrentBid:    seed.StartingBid,
			HighestBidder: model.NoBidder,
		})
	}
}
