package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"allure-backend/models"
	"allure-backend/utils"

	"github.com/go-pdf/fpdf"
)

// The core PDF fonts have no rupee glyph.
const pdfCurrency = "Rs. "

// SlipFilename is the download name of an order slip.
func SlipFilename(order *models.Order) string {
	name := order.OrderNumber
	if order.Customer != nil && order.Customer.FullName != "" {
		name += "-" + strings.Join(strings.Fields(order.Customer.FullName), "-")
	}
	return name + ".pdf"
}

// RenderOrderSlip writes the printable order slip: boutique header,
// customer, items with measurements, payment summary and footer.
func RenderOrderSlip(w io.Writer, order *models.Order, settings models.BoutiqueSettings) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	width := pageW - left - right

	footer := settings.FooterText()
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 5, tr(footer), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// Header
	name := settings.BoutiqueName
	if name == "" {
		name = models.DefaultBoutiqueName
	}
	headerY := pdf.GetY()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(26, 26, 26)
	pdf.CellFormat(width*0.6, 9, tr(name), "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(102, 102, 102)
	if settings.Phone != nil && *settings.Phone != "" {
		pdf.CellFormat(width*0.6, 4, tr("Phone: "+*settings.Phone), "", 2, "L", false, 0, "")
	}
	if settings.Address != nil && *settings.Address != "" {
		pdf.MultiCell(width*0.6, 4, tr(*settings.Address), "", "L", false)
	}
	leftBottom := pdf.GetY()

	pdf.SetXY(left+width*0.6, headerY)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(26, 26, 26)
	pdf.CellFormat(width*0.4, 7, order.OrderNumber, "", 2, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(width*0.4, 5, "Date: "+utils.FormatDisplayDate(order.CreatedAt), "", 2, "R", false, 0, "")
	pdf.CellFormat(width*0.4, 5, "Delivery: "+utils.FormatDisplayDate(order.DeliveryDate), "", 2, "R", false, 0, "")

	y := pdf.GetY()
	if leftBottom > y {
		y = leftBottom
	}
	y += 2
	pdf.SetDrawColor(26, 26, 26)
	pdf.SetLineWidth(0.6)
	pdf.Line(left, y, left+width, y)
	pdf.SetLineWidth(0.2)
	pdf.SetXY(left, y+5)

	// Customer
	if order.Customer != nil {
		sectionTitle(pdf, width, "Customer")
		labelRow(pdf, tr, width, "Name", order.Customer.FullName)
		labelRow(pdf, tr, width, "Phone", order.Customer.Phone)
		if order.Customer.Address != nil && *order.Customer.Address != "" {
			labelRow(pdf, tr, width, "Address", *order.Customer.Address)
		}
		pdf.Ln(4)
	}

	// Items
	unit := settings.UnitSuffix()
	for i := range order.Items {
		item := &order.Items[i]
		price := pdfCurrency + utils.FormatIndian(item.Price)
		if item.Quantity > 1 {
			price += fmt.Sprintf(" x %d", item.Quantity)
		}

		pdf.SetFillColor(245, 245, 245)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(26, 26, 26)
		pdf.CellFormat(width*0.65, 8, fmt.Sprintf("Item %d: %s", i+1, item.GarmentType.Label()), "", 0, "L", true, 0, "")
		pdf.CellFormat(width*0.35, 8, price, "", 1, "R", true, 0, "")
		pdf.Ln(2)

		if item.Description != nil && *item.Description != "" {
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(102, 102, 102)
			pdf.CellFormat(width, 5, "Design Details:", "", 1, "L", false, 0, "")
			pdf.SetTextColor(51, 51, 51)
			pdf.MultiCell(width, 5, tr(*item.Description), "", "L", false)
			pdf.Ln(1)
		}

		if len(item.Measurements) > 0 {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetTextColor(102, 102, 102)
			pdf.CellFormat(width, 6, "Measurements:", "", 1, "L", false, 0, "")
			colW := width / 2
			for n, key := range orderedMeasurementKeys(item.GarmentType, item.Measurements) {
				val := item.Measurements[key]
				text := val.String()
				if val.IsNumber() {
					text += " " + unit
				}
				pdf.SetFont("Helvetica", "", 9)
				pdf.SetTextColor(102, 102, 102)
				pdf.CellFormat(colW*0.6, 5, tr(models.MeasurementLabel(item.GarmentType, key)), "", 0, "L", false, 0, "")
				pdf.SetFont("Helvetica", "B", 9)
				pdf.SetTextColor(26, 26, 26)
				ln := 0
				if n%2 == 1 {
					ln = 1
				}
				pdf.CellFormat(colW*0.4-4, 5, tr(text), "", ln, "R", false, 0, "")
				if ln == 0 {
					pdf.CellFormat(4, 5, "", "", 0, "L", false, 0, "")
				}
			}
			if len(item.Measurements)%2 == 1 {
				pdf.Ln(5)
			}
		}

		if item.Notes != nil && *item.Notes != "" {
			pdf.Ln(1)
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetTextColor(51, 51, 51)
			pdf.MultiCell(width, 5, tr("Notes: "+*item.Notes), "", "L", false)
		}
		pdf.Ln(5)
	}

	// Payment summary
	y = pdf.GetY()
	pdf.SetDrawColor(26, 26, 26)
	pdf.SetLineWidth(0.6)
	pdf.Line(left, y, left+width, y)
	pdf.SetLineWidth(0.2)
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(26, 26, 26)
	pdf.CellFormat(width*0.5, 7, "Total Amount", "", 0, "L", false, 0, "")
	pdf.CellFormat(width*0.5, 7, pdfCurrency+utils.FormatIndian(order.TotalAmount), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(width*0.5, 6, "Advance Paid", "", 0, "L", false, 0, "")
	pdf.SetTextColor(26, 26, 26)
	pdf.CellFormat(width*0.5, 6, pdfCurrency+utils.FormatIndian(order.AdvancePaid), "", 1, "R", false, 0, "")

	balance := order.BalanceDue()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(26, 26, 26)
	pdf.CellFormat(width*0.5, 7, "Balance Due", "", 0, "L", false, 0, "")
	if balance.IsPositive() {
		pdf.SetTextColor(234, 88, 12)
	} else {
		pdf.SetTextColor(22, 163, 74)
	}
	pdf.CellFormat(width*0.5, 7, pdfCurrency+utils.FormatIndian(balance), "", 1, "R", false, 0, "")

	if order.Notes != nil && *order.Notes != "" {
		pdf.Ln(4)
		sectionTitle(pdf, width, "Order Notes")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(51, 51, 51)
		pdf.MultiCell(width, 5, tr(*order.Notes), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render order slip: %w", err)
	}
	return pdf.Output(w)
}

func sectionTitle(pdf *fpdf.Fpdf, width float64, title string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(26, 26, 26)
	pdf.CellFormat(width, 6, strings.ToUpper(title), "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func labelRow(pdf *fpdf.Fpdf, tr func(string) string, width float64, label, value string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(width*0.45, 5, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(26, 26, 26)
	pdf.CellFormat(width*0.55, 5, tr(value), "", 1, "R", false, 0, "")
}

// orderedMeasurementKeys lists core keys first, then garment keys, each in
// catalog order, then anything else alphabetically.
func orderedMeasurementKeys(g models.GarmentType, m models.Measurements) []string {
	seen := make(map[string]bool, len(m))
	keys := make([]string, 0, len(m))
	add := func(fields []models.MeasurementField) {
		for _, f := range fields {
			if _, ok := m[f.Key]; ok && !seen[f.Key] {
				seen[f.Key] = true
				keys = append(keys, f.Key)
			}
		}
	}
	add(models.CoreMeasurements)
	if spec, ok := g.Spec(); ok {
		add(spec.Fields)
	}
	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
