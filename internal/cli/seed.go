package cli

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"opsboard/internal/dataset"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate a demo orders CSV",
	Long: `Generate a synthetic orders CSV for trying out the dashboard.

The output is deterministic for a given seed.

Examples:
  opsboard seed --rows 2000 --out demo.csv`,
	RunE: runSeed,
}

var (
	seedRows int
	seedOut  string
	seedSeed int64
)

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().IntVar(&seedRows, "rows", 2000, "Number of order lines to generate")
	seedCmd.Flags().StringVar(&seedOut, "out", "demo.csv", "Output CSV file")
	seedCmd.Flags().Int64Var(&seedSeed, "seed", 42, "Random seed")
}

type seedProduct struct {
	id, sku, name, category string
	price, cost             float64
}

var seedProducts = []seedProduct{
	{"P001", "SKU-1001", "Espresso Maker", "Kitchen", 129.00, 61.0},
	{"P002", "SKU-1002", "Chef Knife", "Kitchen", 89.00, 34.0},
	{"P003", "SKU-1003", "Cast Iron Pan", "Kitchen", 45.00, 19.0},
	{"P004", "SKU-2001", "Trail Backpack", "Outdoor", 149.00, 72.0},
	{"P005", "SKU-2002", "Camping Stove", "Outdoor", 79.00, 31.0},
	{"P006", "SKU-2003", "Water Bottle", "Outdoor", 24.00, 6.0},
	{"P007", "SKU-3001", "Desk Lamp", "Home", 39.00, 12.0},
	{"P008", "SKU-3002", "Throw Blanket", "Home", 59.00, 21.0},
	{"P009", "SKU-3003", "Wall Clock", "Home", 34.00, 9.0},
	{"P010", "SKU-4001", "Yoga Mat", "Fitness", 49.00, 15.0},
	{"P011", "SKU-4002", "Kettlebell 12kg", "Fitness", 65.00, 28.0},
	{"P012", "SKU-4003", "Resistance Bands", "Fitness", 19.00, 4.0},
}

var (
	seedChannels   = []string{"Online", "Retail", "Marketplace", "Wholesale"}
	seedCities     = []string{"Austin", "Chicago", "Denver", "Portland", "Raleigh"}
	seedWarehouses = []string{"East", "Central", "West"}
)

func runSeed(cmd *cobra.Command, args []string) error {
	rng := rand.New(rand.NewSource(seedSeed))
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, -6, 0)
	days := int(end.Sub(start).Hours() / 24)

	ds := &dataset.Dataset{Columns: make(map[string]bool)}
	for _, col := range dataset.ExpectedColumns {
		ds.Columns[col] = true
	}
	for _, col := range dataset.OptionalColumns {
		ds.Columns[col] = true
	}

	customers := make(map[string]time.Time)
	rows := make([]dataset.Row, 0, seedRows)
	for i := 0; i < seedRows; i++ {
		p := seedProducts[rng.Intn(len(seedProducts))]
		date := start.AddDate(0, 0, rng.Intn(days+1))
		qty := int64(1 + rng.Intn(4))
		custID := fmt.Sprintf("C%04d", 1+rng.Intn(seedRows/4+1))

		first, seen := customers[custID]
		if !seen || date.Before(first) {
			customers[custID] = date
			first = date
		}

		visits := float64(20 + rng.Intn(200))
		addToCart := visits * (0.2 + rng.Float64()*0.3)
		checkout := addToCart * (0.4 + rng.Float64()*0.4)

		rows = append(rows, dataset.Row{
			Date:            date,
			OrderID:         fmt.Sprintf("O%05d", 1+i/2),
			ProductID:       p.id,
			SKU:             p.sku,
			ProductName:     p.name,
			Category:        p.category,
			Price:           p.price,
			Cost:            p.cost,
			Qty:             qty,
			Revenue:         p.price * float64(qty),
			Channel:         seedChannels[rng.Intn(len(seedChannels))],
			City:            seedCities[rng.Intn(len(seedCities))],
			Warehouse:       seedWarehouses[rng.Intn(len(seedWarehouses))],
			InventoryOnHand: float64(rng.Intn(120)),
			LTV:             200 + rng.Float64()*800,
			CustomerID:      custID,
			FirstOrder:      !seen,
			FirstOrderDate:  first,
			Spend:           5 + rng.Float64()*45,
			Visits:          visits,
			AddToCart:       addToCart,
			Checkout:        checkout,
		})
	}

	// Second pass so every row carries its customer's true first-order date.
	for i := range rows {
		rows[i].FirstOrderDate = customers[rows[i].CustomerID]
		rows[i].FirstOrder = rows[i].Date.Equal(customers[rows[i].CustomerID])
	}

	file, err := os.Create(seedOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", seedOut, err)
	}
	defer file.Close()

	if err := dataset.WriteCSV(file, ds, rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	fmt.Printf("Wrote %d rows to %s\n", len(rows), seedOut)
	return nil
}
