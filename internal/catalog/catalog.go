// Package catalog provides the static securities lookup table.
package catalog

import (
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"traderdesk/internal/errors"
	"traderdesk/internal/models"
)

// seedEntries is the built-in catalog. Iteration order is significant:
// Match resolves ties by first entry in this order.
var seedEntries = []models.SecurityInfo{
	{Symbol: "AAPL", Market: "NASDAQ", Currency: "USD", Name: "Apple Inc.", Price: 178.50},
	{Symbol: "GOOGL", Market: "NASDAQ", Currency: "USD", Name: "Alphabet Inc.", Price: 140.25},
	{Symbol: "MSFT", Market: "NASDAQ", Currency: "USD", Name: "Microsoft Corporation", Price: 378.91},
	{Symbol: "TSLA", Market: "NASDAQ", Currency: "USD", Name: "Tesla Inc.", Price: 242.84},
	{Symbol: "NOVN", Market: "SIX", Currency: "CHF", Name: "Novartis AG", Price: 95.20},
	{Symbol: "NESN", Market: "SIX", Currency: "CHF", Name: "Nestlé S.A.", Price: 87.45},
}

// Catalog is a read-only securities lookup table. It is safe for
// concurrent readers once constructed.
type Catalog struct {
	entries  []models.SecurityInfo
	bySymbol map[string]int
}

// New returns a catalog seeded with the built-in entries.
func New() *Catalog {
	return newFromEntries(seedEntries)
}

// NewFromCSV returns a catalog loaded from a CSV file with columns
// symbol, market, currency, name, price. An empty file is an error;
// callers wanting the defaults should use New.
func NewFromCSV(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening catalog csv")
	}
	defer f.Close()

	var entries []models.SecurityInfo
	if err := gocsv.UnmarshalFile(f, &entries); err != nil {
		return nil, errors.Wrap(err, "decoding catalog csv")
	}
	if len(entries) == 0 {
		return nil, errors.NewValidationError("csv_path", path, "catalog csv contains no entries")
	}

	return newFromEntries(entries), nil
}

func newFromEntries(entries []models.SecurityInfo) *Catalog {
	c := &Catalog{
		entries:  make([]models.SecurityInfo, len(entries)),
		bySymbol: make(map[string]int, len(entries)),
	}
	copy(c.entries, entries)
	for i, e := range c.entries {
		c.bySymbol[strings.ToUpper(e.Symbol)] = i
	}
	return c
}

// List returns all entries in seed order.
func (c *Catalog) List() []models.SecurityInfo {
	out := make([]models.SecurityInfo, len(c.entries))
	copy(out, c.entries)
	return out
}

// Get looks up a security by symbol, case-insensitively.
func (c *Catalog) Get(symbol string) (models.SecurityInfo, error) {
	i, ok := c.bySymbol[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return models.SecurityInfo{}, errors.ErrSymbolNotFound
	}
	return c.entries[i], nil
}

// Match returns the first catalog entry whose symbol or full name
// appears case-insensitively in text, or nil when none does.
func (c *Catalog) Match(text string) *models.SecurityInfo {
	lower := strings.ToLower(text)
	for i := range c.entries {
		e := c.entries[i]
		if strings.Contains(lower, strings.ToLower(e.Symbol)) ||
			strings.Contains(lower, strings.ToLower(e.Name)) {
			match := e
			return &match
		}
	}
	return nil
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}
