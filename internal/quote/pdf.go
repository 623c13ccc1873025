package quote

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/promolab-cl/backend-promolab/internal/catalog"
	"github.com/promolab-cl/backend-promolab/internal/money"
)

// PDFRenderer writes quote documents. The layout mirrors the storefront
// export: header, company block, product block, tier table, quote summary.
type PDFRenderer struct {
	formatter *money.Formatter
	now       func() time.Time
}

// NewPDFRenderer constructs a renderer. now is optional and defaults to
// time.Now; tests pin it for stable output.
func NewPDFRenderer(formatter *money.Formatter, now func() time.Time) *PDFRenderer {
	if now == nil {
		now = time.Now
	}
	return &PDFRenderer{formatter: formatter, now: now}
}

// Render writes the quote as a PDF document to w.
func (r *PDFRenderer) Render(w io.Writer, view View, product catalog.Product, company catalog.Company) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Cotización "+product.Name), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr("Cotización"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 5, r.now().Format("02-01-2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)
	pdf.SetTextColor(0, 0, 0)

	r.companyBlock(pdf, tr, company)
	r.productBlock(pdf, tr, product)
	if len(view.Tiers) > 0 {
		r.tierTable(pdf, tr, view.Tiers)
	}
	r.summaryBlock(pdf, tr, view)

	return pdf.Output(w)
}

func (r *PDFRenderer) companyBlock(pdf *fpdf.Fpdf, tr func(string) string, company catalog.Company) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, tr(company.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range []string{company.Address, company.Phone, company.Email, company.TaxID} {
		if line == "" {
			continue
		}
		pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (r *PDFRenderer) productBlock(pdf *fpdf.Fpdf, tr func(string) string, product catalog.Product) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, tr(product.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)

	rows := [][2]string{
		{"SKU", product.SKU},
		{"Categoría", product.Category},
		{"Proveedor", product.Supplier},
		{"Precio base", r.formatter.Format(product.BasePrice)},
		{"Stock", fmt.Sprintf("%d unidades", product.Stock)},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(35, 5, tr(row[0]), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5, tr(row[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (r *PDFRenderer) tierTable(pdf *fpdf.Fpdf, tr func(string) string, tiers []TierView) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, tr("Precios por volumen"), "", 1, "L", false, 0, "")

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(40, 6, tr("Cantidad mínima"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 6, tr("Precio unitario"), "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 6, tr("Descuento"), "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, tier := range tiers {
		discount := "-"
		if tier.Discount != nil {
			discount = fmt.Sprintf("%.0f%%", *tier.Discount)
		}
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", tier.MinQty), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, tr(r.formatter.Format(tier.Price)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, discount, "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func (r *PDFRenderer) summaryBlock(pdf *fpdf.Fpdf, tr func(string) string, view View) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, tr("Resumen"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)

	rows := [][2]string{
		{"Cantidad", fmt.Sprintf("%d unidades", view.Quantity)},
		{"Precio unitario", r.formatter.Format(view.UnitPrice)},
		{"Descuento", fmt.Sprintf("%.1f%%", view.DiscountPercent)},
		{"Total", r.formatter.Format(view.Total)},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(35, 5, tr(row[0]), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5, tr(row[1]), "", 1, "L", false, 0, "")
	}
}
