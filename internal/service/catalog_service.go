package service

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"go-topup-store/internal/model"
	"go-topup-store/pkg/digiflazz"
	"go-topup-store/pkg/rupiah"
)

var ErrGameNotFound = errors.New("game not found")

// PriceSource supplies raw product rows from the upstream price list.
// pkg/digiflazz implements it; tests inject a stub.
type PriceSource interface {
	PriceList(ctx context.Context) ([]digiflazz.Product, error)
}

type CatalogService interface {
	// GetGames returns the current catalog. An upstream failure or an empty
	// price list degrades to an empty catalog; zero games is a valid state,
	// never an error.
	GetGames(ctx context.Context) []model.Game
	GetGame(ctx context.Context, id string) (*model.Game, error)
	QuoteAmount(ctx context.Context, gameID string, amount int64) (*Quote, error)
}

// Quote is the price-calculator result for a requested quantity. When no
// denomination matches, Available lists what the game does offer.
type Quote struct {
	Denomination *model.Denomination `json:"denomination,omitempty"`
	Label        string              `json:"label,omitempty"`
	Available    []string            `json:"available,omitempty"`
}

type catalogService struct {
	source PriceSource
	markup int64
}

// NewCatalogService wires a price source and the seller markup policy.
// Markup is IDR minor units added on top of every base price; zero disables
// it (seller price then equals base price).
func NewCatalogService(source PriceSource, markup int64) CatalogService {
	return &catalogService{source: source, markup: markup}
}

func (s *catalogService) GetGames(ctx context.Context) []model.Game {
	rows, err := s.source.PriceList(ctx)
	if err != nil {
		log.Printf("catalog: price list fetch failed, serving empty catalog: %v", err)
		return []model.Game{}
	}
	return BuildCatalog(rows, s.markup)
}

func (s *catalogService) GetGame(ctx context.Context, id string) (*model.Game, error) {
	for _, game := range s.GetGames(ctx) {
		if game.ID == id {
			return &game, nil
		}
	}
	return nil, ErrGameNotFound
}

// QuoteAmount finds the denomination whose leading quantity token equals
// amount (e.g. amount=100 matches "100 Diamonds").
func (s *catalogService) QuoteAmount(ctx context.Context, gameID string, amount int64) (*Quote, error) {
	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	for i := range game.Denominations {
		d := game.Denominations[i]
		fields := strings.Fields(d.Name)
		if len(fields) == 0 {
			continue
		}
		qty, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			continue
		}
		if qty == amount {
			return &Quote{Denomination: &d, Label: DenominationLabel(d)}, nil
		}
	}

	available := make([]string, len(game.Denominations))
	for i, d := range game.Denominations {
		available[i] = d.Name
	}
	return &Quote{Available: available}, nil
}

// BuildCatalog groups raw price-list rows into games. Only rows in the
// "Games" category survive. Rows are grouped by the brand slug; the first
// row of a slug fixes the game's display name, every row appends one
// denomination in first-seen order. No sorting, no dedup across SKUs.
func BuildCatalog(rows []digiflazz.Product, markup int64) []model.Game {
	games := []model.Game{}
	bySlug := map[string]int{}

	for _, row := range rows {
		if row.Category != "Games" {
			continue
		}

		slug := Slugify(row.Brand)
		idx, ok := bySlug[slug]
		if !ok {
			games = append(games, model.Game{ID: slug, Name: row.Brand})
			idx = len(games) - 1
			bySlug[slug] = idx
		}

		games[idx].Denominations = append(games[idx].Denominations, model.Denomination{
			ID:          row.BuyerSkuCode,
			Name:        strings.Replace(row.ProductName, row.Brand+" ", "", 1),
			Price:       row.Price,
			SellerPrice: row.Price + markup,
		})
	}

	return games
}

// Slugify lowercases name and strips everything outside [a-z0-9].
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DenominationLabel renders the buyer-facing option label, e.g.
// "100 Diamonds - Rp 16.000". The seller price is what the buyer pays.
func DenominationLabel(d model.Denomination) string {
	return d.Name + " - " + rupiah.Format(d.SellerPrice)
}
