package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings are the optional display settings loaded from board.yaml. A
// missing file yields the defaults.
type Settings struct {
	Title          string  `yaml:"title"`
	StockThreshold float64 `yaml:"stock_threshold"`
	TopProducts    int     `yaml:"top_products"`
	CatalogLimit   int     `yaml:"catalog_limit"`
	LowStockLimit  int     `yaml:"low_stock_limit"`
}

func DefaultSettings() Settings {
	return Settings{
		Title:          "Operations Dashboard",
		StockThreshold: 10,
		TopProducts:    8,
		CatalogLimit:   200,
		LowStockLimit:  50,
	}
}

// LoadSettings reads board.yaml, filling unset fields with defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings: %w", err)
	}
	if s.Title == "" {
		s.Title = "Operations Dashboard"
	}
	if s.StockThreshold <= 0 {
		s.StockThreshold = 10
	}
	if s.TopProducts <= 0 {
		s.TopProducts = 8
	}
	if s.CatalogLimit <= 0 {
		s.CatalogLimit = 200
	}
	if s.LowStockLimit <= 0 {
		s.LowStockLimit = 50
	}
	return s, nil
}
