package catalog

import (
	"fmt"

	"github.com/promolab-cl/backend-promolab/internal/money"
)

// StockLevel buckets a stock count for badge display.
type StockLevel string

// Stock badge levels. The thresholds are exact: zero is out of stock, one
// through nine is low stock, ten and above is in stock.
const (
	StockOut StockLevel = "out_of_stock"
	StockLow StockLevel = "low_stock"
	StockIn  StockLevel = "in_stock"
)

// TierTeaser is the "from N units" price preview shown on a catalog card.
type TierTeaser struct {
	Price  money.Money `json:"price"`
	MinQty int         `json:"minQty"`
	Label  string      `json:"label"`
}

// CardSummary carries the badge and preview fields a listing card renders.
type CardSummary struct {
	Available   bool        `json:"available"`
	StatusBadge string      `json:"statusBadge"`
	StockLevel  StockLevel  `json:"stockLevel"`
	StockBadge  string      `json:"stockBadge"`
	Teaser      *TierTeaser `json:"teaser,omitempty"`
}

// Summarize computes the card badges and tier teaser for a product.
//
// The teaser deliberately reads the last tier in source order instead of
// resolver-sorted order: the card is a cheap preview, while the quote
// calculator re-sorts before resolving. Both assumptions are pinned by
// tests; do not unify one into the other without a product decision.
func Summarize(p Product) CardSummary {
	s := CardSummary{
		StockLevel: stockLevel(p.Stock),
		StockBadge: stockBadge(p.Stock),
	}
	switch p.Status {
	case StatusActive, StatusPending:
		s.Available = true
		s.StatusBadge = "Disponible"
	case StatusInactive:
		s.Available = false
		s.StatusBadge = "No disponible"
	}
	if len(p.PriceBreaks) > 1 {
		last := p.PriceBreaks[len(p.PriceBreaks)-1]
		s.Teaser = &TierTeaser{
			Price:  last.Price,
			MinQty: last.MinQty,
			Label:  fmt.Sprintf("desde %d unidades", last.MinQty),
		}
	}
	return s
}

func stockLevel(stock int) StockLevel {
	switch {
	case stock == 0:
		return StockOut
	case stock < 10:
		return StockLow
	default:
		return StockIn
	}
}

func stockBadge(stock int) string {
	switch {
	case stock == 0:
		return "Sin stock"
	case stock < 10:
		return fmt.Sprintf("Stock bajo (%d)", stock)
	default:
		return fmt.Sprintf("%d disponibles", stock)
	}
}
