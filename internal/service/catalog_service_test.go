package service

import (
	"context"
	"errors"
	"testing"

	"go-topup-store/pkg/digiflazz"
)

func TestBuildCatalogGroupsByBrandSlug(t *testing.T) {
	rows := []digiflazz.Product{
		{Category: "Games", Brand: "Mobile Legends", BuyerSkuCode: "ML100", ProductName: "Mobile Legends 100 Diamonds", Price: 15000},
		{Category: "Games", Brand: "Mobile Legends", BuyerSkuCode: "ML250", ProductName: "Mobile Legends 250 Diamonds", Price: 35000},
		{Category: "Games", Brand: "Free Fire", BuyerSkuCode: "FF50", ProductName: "Free Fire 50 Diamonds", Price: 8000},
		{Category: "Pulsa", Brand: "Telkomsel", BuyerSkuCode: "TSEL5", ProductName: "Telkomsel 5.000", Price: 5500},
	}

	games := BuildCatalog(rows, 1000)

	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	ml := games[0]
	if ml.ID != "mobilelegends" || ml.Name != "Mobile Legends" {
		t.Fatalf("unexpected first game: %+v", ml)
	}
	if len(ml.Denominations) != 2 {
		t.Fatalf("expected 2 denominations for %s, got %d", ml.Name, len(ml.Denominations))
	}
	first := ml.Denominations[0]
	if first.ID != "ML100" || first.Name != "100 Diamonds" || first.Price != 15000 || first.SellerPrice != 16000 {
		t.Fatalf("unexpected denomination: %+v", first)
	}
	if games[1].ID != "freefire" {
		t.Fatalf("expected freefire second, got %s", games[1].ID)
	}
}

func TestBuildCatalogZeroMarkup(t *testing.T) {
	rows := []digiflazz.Product{
		{Category: "Games", Brand: "Valorant", BuyerSkuCode: "VAL125", ProductName: "Valorant 125 Points", Price: 15000},
	}

	games := BuildCatalog(rows, 0)

	d := games[0].Denominations[0]
	if d.SellerPrice != d.Price {
		t.Fatalf("zero markup should sell at base price, got %d vs %d", d.SellerPrice, d.Price)
	}
}

func TestBuildCatalogEmptyAndFiltered(t *testing.T) {
	if games := BuildCatalog(nil, 1000); len(games) != 0 {
		t.Fatalf("nil rows should yield empty catalog, got %d games", len(games))
	}

	rows := []digiflazz.Product{
		{Category: "Pulsa", Brand: "Telkomsel", BuyerSkuCode: "TSEL5", ProductName: "Telkomsel 5.000", Price: 5500},
		{Category: "E-Money", Brand: "DANA", BuyerSkuCode: "DANA10", ProductName: "DANA 10.000", Price: 10500},
	}
	if games := BuildCatalog(rows, 1000); len(games) != 0 {
		t.Fatalf("rows without Games category should yield empty catalog, got %d games", len(games))
	}
}

func TestBuildCatalogKeepsNameWithoutBrandPrefix(t *testing.T) {
	rows := []digiflazz.Product{
		{Category: "Games", Brand: "PUBG Mobile", BuyerSkuCode: "UC60", ProductName: "60 UC", Price: 14000},
	}

	games := BuildCatalog(rows, 1000)

	if got := games[0].Denominations[0].Name; got != "60 UC" {
		t.Fatalf("name without brand prefix must pass through unchanged, got %q", got)
	}
}

func TestBuildCatalogStripsOnlyFirstBrandOccurrence(t *testing.T) {
	rows := []digiflazz.Product{
		{Category: "Games", Brand: "Genshin Impact", BuyerSkuCode: "GI60", ProductName: "Genshin Impact 60 Genshin Impact Crystals", Price: 15000},
	}

	games := BuildCatalog(rows, 1000)

	if got := games[0].Denominations[0].Name; got != "60 Genshin Impact Crystals" {
		t.Fatalf("only the first brand occurrence should be stripped, got %q", got)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Mobile Legends", "mobilelegends"},
		{"Free Fire", "freefire"},
		{"Honkai: Star Rail", "honkaistarrail"},
		{"PUBG Mobile", "pubgmobile"},
		{"Call of Duty Mobile", "callofdutymobile"},
		{"  spaced  ", "spaced"},
		{"123 Go!", "123go"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDenominationLabel(t *testing.T) {
	games := BuildCatalog([]digiflazz.Product{
		{Category: "Games", Brand: "Mobile Legends", BuyerSkuCode: "ML100", ProductName: "Mobile Legends 100 Diamonds", Price: 15000},
	}, 1000)

	if got := DenominationLabel(games[0].Denominations[0]); got != "100 Diamonds - Rp 16.000" {
		t.Fatalf("unexpected label %q", got)
	}
}

type stubSource struct {
	rows []digiflazz.Product
	err  error
}

func (s *stubSource) PriceList(ctx context.Context) ([]digiflazz.Product, error) {
	return s.rows, s.err
}

func TestGetGamesDegradesToEmptyOnFetchFailure(t *testing.T) {
	svc := NewCatalogService(&stubSource{err: errors.New("upstream down")}, 1000)

	games := svc.GetGames(context.Background())
	if games == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(games) != 0 {
		t.Fatalf("expected empty catalog on fetch failure, got %d games", len(games))
	}
}

func TestGetGameNotFound(t *testing.T) {
	svc := NewCatalogService(&stubSource{}, 1000)

	if _, err := svc.GetGame(context.Background(), "mobilelegends"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestQuoteAmount(t *testing.T) {
	source := &stubSource{rows: []digiflazz.Product{
		{Category: "Games", Brand: "Mobile Legends", BuyerSkuCode: "ML100", ProductName: "Mobile Legends 100 Diamonds", Price: 15000},
		{Category: "Games", Brand: "Mobile Legends", BuyerSkuCode: "ML250", ProductName: "Mobile Legends 250 Diamonds", Price: 35000},
	}}
	svc := NewCatalogService(source, 1000)

	quote, err := svc.QuoteAmount(context.Background(), "mobilelegends", 250)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Denomination == nil || quote.Denomination.ID != "ML250" {
		t.Fatalf("expected ML250 match, got %+v", quote)
	}
	if quote.Label != "250 Diamonds - Rp 36.000" {
		t.Fatalf("unexpected quote label %q", quote.Label)
	}

	quote, err = svc.QuoteAmount(context.Background(), "mobilelegends", 999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Denomination != nil {
		t.Fatalf("expected no match for 999, got %+v", quote.Denomination)
	}
	if len(quote.Available) != 2 {
		t.Fatalf("expected available options listed, got %v", quote.Available)
	}
}
