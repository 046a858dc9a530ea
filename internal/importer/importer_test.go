package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/logisoltech/hitek-store/internal/domain"
)

type stubProductRepo struct {
	items []domain.Product
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.items = append(s.items, p)
	return &p, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `category,name,brand,description,price,currency,image,stock
printer,HP LaserJet Pro M404dn,HP,Mono laser,"PKR 85,000",PKR,/img/m404dn.jpg,12
laptop,Dell Latitude 5440,Dell,Business laptop,285000,PKR,/img/latitude.jpg,8
,,,,,,,`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 products imported, got %d", count)
	}
	if len(repo.items) != 2 {
		t.Fatalf("expected 2 products saved, got %d", len(repo.items))
	}

	first := repo.items[0]
	if first.Category != domain.CategoryPrinter {
		t.Fatalf("unexpected category %q", first.Category)
	}
	if first.PriceCents != 8500000 {
		t.Fatalf("expected display price normalized to 8500000 cents, got %d", first.PriceCents)
	}
	if repo.items[1].Stock != 8 {
		t.Fatalf("expected stock 8, got %d", repo.items[1].Stock)
	}
}

func TestCSVImporter_RejectsUnknownCategory(t *testing.T) {
	csvData := `category,name,price
tablet,iPad,100`

	imp := NewCSVImporter(strings.NewReader(csvData), &stubProductRepo{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected category error")
	}
}

func TestCSVImporter_AbortsOnBadPrice(t *testing.T) {
	csvData := `category,name,price
printer,Okay Printer,"PKR 1,000"
laptop,Broken Laptop,free`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err == nil {
		t.Fatal("expected price error")
	}
	if count != 1 {
		t.Fatalf("expected 1 product imported before failure, got %d", count)
	}
}
