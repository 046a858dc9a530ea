// Package importer loads catalog products from CSV files exported by the CMS.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/logisoltech/hitek-store/internal/cart"
	"github.com/logisoltech/hitek-store/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates products.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and upserts one product per row. Rows with no category
// or name are skipped; a bad price aborts the run so a mangled export does not
// half-load.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		category := strings.ToLower(pick(record, index, "category"))
		name := pick(record, index, "name")
		if category == "" && name == "" {
			continue
		}
		if category != domain.CategoryPrinter && category != domain.CategoryLaptop {
			return imported, fmt.Errorf("unknown category %q for product %q", category, name)
		}
		if name == "" {
			return imported, fmt.Errorf("product row with category %q has no name", category)
		}

		// CMS exports carry display prices like "PKR 1,000".
		price := cart.ParsePrice(pick(record, index, "price"), math.NaN())
		if math.IsNaN(price) {
			return imported, fmt.Errorf("unparseable price for product %q", name)
		}

		stock := 0
		if v := pick(record, index, "stock"); v != "" {
			stock, err = strconv.Atoi(v)
			if err != nil {
				return imported, fmt.Errorf("bad stock for product %q: %w", name, err)
			}
		}

		p := domain.Product{
			Category:    category,
			Name:        name,
			Brand:       pick(record, index, "brand"),
			Description: pick(record, index, "description"),
			PriceCents:  int64(math.Round(price * 100)),
			Currency:    pick(record, index, "currency"),
			Image:       pick(record, index, "image"),
			Stock:       stock,
		}
		if _, err := i.productRepo.Upsert(ctx, p); err != nil {
			return imported, fmt.Errorf("upsert product %q: %w", name, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(strings.ToLower(h))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
