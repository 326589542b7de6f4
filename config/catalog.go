package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"retail-core/retail"
)

// CatalogEntry is one product in a catalog seed file.
type CatalogEntry struct {
	ID             int             `yaml:"id"`
	Name           string          `yaml:"name"`
	Price          decimal.Decimal `yaml:"price"`
	Stock          int             `yaml:"stock"`
	Kind           string          `yaml:"kind,omitempty"`
	WarrantyMonths int             `yaml:"warranty_months,omitempty"`
	Brand          string          `yaml:"brand,omitempty"`
}

type catalogFile struct {
	Products []CatalogEntry `yaml:"products"`
}

// LoadCatalog reads a YAML catalog seed file.
func LoadCatalog(path string) ([]CatalogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return file.Products, nil
}

// DefaultCatalog is the sample catalog used when no seed file is configured.
func DefaultCatalog() []CatalogEntry {
	return []CatalogEntry{
		{ID: 101, Name: "Gaming Laptop", Price: decimal.RequireFromString("1299.99"), Stock: 10,
			Kind: string(retail.ItemElectronics), WarrantyMonths: 24, Brand: "ASUS"},
		{ID: 102, Name: "Smartphone", Price: decimal.RequireFromString("799.99"), Stock: 15,
			Kind: string(retail.ItemElectronics), WarrantyMonths: 12, Brand: "Samsung"},
		{ID: 201, Name: "C++ Programming Book", Price: decimal.RequireFromString("49.99"), Stock: 20},
	}
}

// BuildItems turns catalog entries into catalog items.
func BuildItems(entries []CatalogEntry) ([]retail.Item, error) {
	items := make([]retail.Item, 0, len(entries))
	for i, e := range entries {
		kind, err := retail.ParseItemKind(e.Kind)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}

		var item retail.Item
		switch kind {
		case retail.ItemElectronics:
			item, err = retail.NewElectronics(e.ID, e.Name, e.Price, e.Stock, e.WarrantyMonths, e.Brand)
		default:
			item, err = retail.NewProduct(e.ID, e.Name, e.Price, e.Stock)
		}
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}
