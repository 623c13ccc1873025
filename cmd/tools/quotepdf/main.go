package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rs/zerolog"

	"github.com/promolab-cl/backend-promolab/internal/catalog"
	"github.com/promolab-cl/backend-promolab/internal/money"
	"github.com/promolab-cl/backend-promolab/internal/pricing"
	"github.com/promolab-cl/backend-promolab/internal/quote"
)

// quotepdf renders a quote PDF for a seeded product without running the API.
// Useful for eyeballing layout changes.
func main() {
	productID := flag.Int64("product", 1, "product id from the seed catalog")
	qty := flag.Int("qty", 50, "quantity to quote")
	out := flag.String("out", "quote.pdf", "output file")
	locale := flag.String("locale", "es-CL", "currency locale")
	currency := flag.String("currency", "CLP", "ISO 4217 currency code")
	flag.Parse()

	store, err := catalog.NewStoreFromSeed(zerolog.Nop())
	if err != nil {
		log.Fatalf("load catalog seed: %v", err)
	}
	product, ok := store.ProductByID(*productID)
	if !ok {
		log.Fatalf("product %d not found in seed", *productID)
	}

	formatter := money.NewFormatter(*locale, *currency)
	quantity := pricing.ClampQuantity(*qty)
	view := quote.Build(product, quote.Input{Quantity: &quantity}, formatter.Currency())

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer f.Close()

	renderer := quote.NewPDFRenderer(formatter, nil)
	if err := renderer.Render(f, view, product, store.Company()); err != nil {
		log.Fatalf("render pdf: %v", err)
	}

	fmt.Printf("wrote %s: %s x%d = %s\n", *out, product.Name, view.Quantity, formatter.Format(view.Total))
}
