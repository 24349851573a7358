package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/YroslavBochkov/investRobot/internal/id"
	"github.com/YroslavBochkov/investRobot/ledger"
	"github.com/YroslavBochkov/investRobot/market"
)

var (
	seedTicker string
	seedFIGI   string
	seedPrice  float64
	seedLots   int
	seedLot    int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Record a manually executed buy into the ledger",
	Long: `Append a filled buy to a ticker's ledger for a position opened
outside the robot, so a live run picks the position up instead of
treating the account as flat.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedTicker, "ticker", "", "ticker the position belongs to")
	seedCmd.Flags().StringVar(&seedFIGI, "figi", "", "instrument FIGI")
	seedCmd.Flags().Float64Var(&seedPrice, "price", 0, "execution price per unit")
	seedCmd.Flags().IntVar(&seedLots, "lots", 0, "lots bought")
	seedCmd.Flags().IntVar(&seedLot, "lot", 1, "instrument lot size")
	_ = seedCmd.MarkFlagRequired("ticker")
	_ = seedCmd.MarkFlagRequired("price")
	_ = seedCmd.MarkFlagRequired("lots")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if seedPrice <= 0 {
		return fmt.Errorf("--price must be positive")
	}
	if seedLots < 1 {
		return fmt.Errorf("--lots must be at least 1")
	}

	book, err := loadLedger(cfg, seedTicker)
	if err != nil {
		return err
	}

	lotPrice := seedPrice * float64(seedLot)
	fill := ledger.Fill{
		ID:            id.New(),
		Direction:     market.Buy,
		Status:        ledger.StatusFilled,
		LotsRequested: seedLots,
		LotsExecuted:  seedLots,
		Price:         lotPrice,
		Amount:        lotPrice * float64(seedLots),
		Currency:      cfg.Account.Currency,
		FIGI:          seedFIGI,
		Time:          time.Now(),
	}

	if err := book.Record(fill); err != nil {
		return err
	}
	if err := persistLedger(cfg, seedTicker, book); err != nil {
		return err
	}

	fmt.Printf("Seeded %s: %d lots at %.2f (fill %s)\n", seedTicker, seedLots, seedPrice, fill.ID)
	return nil
}
