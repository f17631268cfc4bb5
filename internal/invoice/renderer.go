package invoice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/udyoglabs/dukaan-backend/pkg/db/models"
)

// Issuer is the static seller identity stamped on every invoice.
type Issuer struct {
	Name    string
	Tagline string
	Contact string
	GSTIN   string
}

const (
	logoWidth       = 90.0
	watermarkSize   = 300.0
	qrSize          = 110.0
	bodyFontSize    = 10.0
	smallFontSize   = 8.5
	headerFontSize  = 18.0
	totalFontSize   = 12.0
	lineHeight      = 14.0
	sectionGap      = 18.0
	summaryWidth    = 180.0
	wordsWrapChars  = 52
	discountColor   = "#C0392B"
	termsText       = "Goods once sold will not be taken back or exchanged. All disputes are subject to local jurisdiction only. Payment is due on delivery unless agreed otherwise in writing."
	disclaimerText  = "This is a computer generated invoice and does not require a physical signature."
	signatoryLabel  = "Authorized Signatory"
	receiverCaption = "Receiver's Signature"
)

// Render turns a committed order into a positioned-block document. It is a
// pure function of its inputs: the same order, issuer, and assets always
// produce an identical document.
func Render(order *models.Order, issuer Issuer, assets Assets) *Document {
	doc := &Document{
		InvoiceNumber: order.InvoiceNumber,
		GeneratedFor:  order.CustomerName,
		Date:          order.Date,
		PageWidth:     PageWidth,
		PageHeight:    PageHeight,
		MissingAssets: append([]string(nil), assets.Missing...),
	}

	contentWidth := PageWidth - 2*PageMargin
	y := PageMargin

	// (1) issuer header, logo anchored top-right
	headerLines := []string{issuer.Name}
	if issuer.Tagline != "" {
		headerLines = append(headerLines, issuer.Tagline)
	}
	if issuer.Contact != "" {
		headerLines = append(headerLines, issuer.Contact)
	}
	if issuer.GSTIN != "" {
		headerLines = append(headerLines, "GSTIN: "+issuer.GSTIN)
	}
	headerHeight := headerFontSize + float64(len(headerLines)-1)*lineHeight
	doc.add(Block{
		Section: "header",
		Kind:    BlockText,
		X:       PageMargin,
		Y:       y,
		Width:   contentWidth - logoWidth,
		Height:  headerHeight,
		Lines:   headerLines,
		Style:   &TextStyle{FontSize: headerFontSize, Bold: true},
	})

	logoBottom := y
	if assets.Logo != nil {
		logoHeight := scaledHeight(assets.Logo, logoWidth)
		doc.add(Block{
			Section: "header",
			Kind:    BlockImage,
			X:       PageWidth - PageMargin - logoWidth,
			Y:       y,
			Width:   logoWidth,
			Height:  logoHeight,
			Image:   imageRef(assets.Logo),
		})
		logoBottom = y + logoHeight
	}

	// (2) decorative watermark, centered
	if assets.Watermark != nil {
		doc.add(Block{
			Section: "watermark",
			Kind:    BlockImage,
			X:       (PageWidth - watermarkSize) / 2,
			Y:       (PageHeight - watermarkSize) / 2,
			Width:   watermarkSize,
			Height:  watermarkSize,
			Image:   imageRef(assets.Watermark),
			Style:   &TextStyle{Opacity: 0.08},
		})
	}

	// (3) invoice metadata, offset below whichever of header/logo reaches lower
	y += headerHeight
	if logoBottom > y {
		y = logoBottom
	}
	y += sectionGap
	doc.add(Block{
		Section: "metadata",
		Kind:    BlockText,
		X:       PageMargin,
		Y:       y,
		Width:   contentWidth,
		Height:  2 * lineHeight,
		Lines: []string{
			"Invoice No: " + order.InvoiceNumber,
			"Date: " + order.Date.Format("02 Jan 2006"),
		},
		Style: &TextStyle{FontSize: bodyFontSize},
	})
	y += 2*lineHeight + sectionGap

	// (4) bill-to block, empty optional fields omitted entirely
	billLines := []string{"Bill To:", strings.ToUpper(order.CustomerName)}
	if order.CustomerPhone != nil && *order.CustomerPhone != "" {
		billLines = append(billLines, "Phone: "+*order.CustomerPhone)
	}
	if order.CustomerAddress != nil && *order.CustomerAddress != "" {
		billLines = append(billLines, *order.CustomerAddress)
	}
	if order.CustomerGSTIN != nil && *order.CustomerGSTIN != "" {
		billLines = append(billLines, "GSTIN: "+*order.CustomerGSTIN)
	}
	billHeight := float64(len(billLines)) * lineHeight
	doc.add(Block{
		Section: "bill_to",
		Kind:    BlockText,
		X:       PageMargin,
		Y:       y,
		Width:   contentWidth / 2,
		Height:  billHeight,
		Lines:   billLines,
		Style:   &TextStyle{FontSize: bodyFontSize},
	})
	y += billHeight + sectionGap

	// (5) line-item table
	rows := make([][]string, 0, len(order.Items))
	for i, item := range order.Items {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			item.ProductName,
			strconv.Itoa(item.Quantity),
			item.UnitPrice.StringFixed(2),
			item.GSTPercentage.StringFixed(2) + "%",
			item.TotalWithGST.StringFixed(2),
		})
	}
	tableHeight := float64(len(rows)+1) * lineHeight
	doc.add(Block{
		Section: "items",
		Kind:    BlockTable,
		X:       PageMargin,
		Y:       y,
		Width:   contentWidth,
		Height:  tableHeight,
		Columns: []TableColumn{
			{Title: "S.No", Width: 35, Align: "center"},
			{Title: "Description", Width: contentWidth - 35 - 45 - 80 - 50 - 90, Align: "left"},
			{Title: "Qty", Width: 45, Align: "center"},
			{Title: "Unit Price", Width: 80, Align: "right"},
			{Title: "GST%", Width: 50, Align: "center"},
			{Title: "Total", Width: 90, Align: "right"},
		},
		Rows: rows,
	})
	y += tableHeight + sectionGap

	// (6) summary block on the right
	summaryX := PageWidth - PageMargin - summaryWidth
	summaryY := y
	doc.add(Block{
		Section: "summary",
		Kind:    BlockText,
		X:       summaryX,
		Y:       summaryY,
		Width:   summaryWidth,
		Height:  lineHeight,
		Lines:   []string{"Subtotal: " + order.TotalAmount.StringFixed(2)},
		Style:   &TextStyle{FontSize: bodyFontSize, Align: "right"},
	})
	summaryY += lineHeight
	if order.DiscountAmount.IsPositive() {
		doc.add(Block{
			Section: "summary",
			Kind:    BlockText,
			X:       summaryX,
			Y:       summaryY,
			Width:   summaryWidth,
			Height:  lineHeight,
			Lines: []string{fmt.Sprintf("Discount (%s%%): -%s",
				order.DiscountPercentage.StringFixed(2), order.DiscountAmount.StringFixed(2))},
			Style: &TextStyle{FontSize: bodyFontSize, Align: "right", Color: discountColor},
		})
		summaryY += lineHeight
	}
	doc.add(Block{
		Section: "summary",
		Kind:    BlockText,
		X:       summaryX,
		Y:       summaryY,
		Width:   summaryWidth,
		Height:  lineHeight,
		Lines:   []string{"GST: " + order.TotalGST.StringFixed(2)},
		Style:   &TextStyle{FontSize: bodyFontSize, Align: "right"},
	})
	summaryY += lineHeight
	doc.add(Block{
		Section: "summary",
		Kind:    BlockRule,
		X:       summaryX,
		Y:       summaryY + 2,
		Width:   summaryWidth,
		Height:  1,
	})
	summaryY += 6
	doc.add(Block{
		Section: "summary",
		Kind:    BlockText,
		X:       summaryX,
		Y:       summaryY,
		Width:   summaryWidth,
		Height:  totalFontSize + 4,
		Lines:   []string{"Grand Total: " + order.GrandTotal.StringFixed(2)},
		Style:   &TextStyle{FontSize: totalFontSize, Bold: true, Align: "right"},
	})
	summaryY += totalFontSize + 4

	// (7) amount in words, wrapped into the space left of the summary column
	wordsLines := wrapText(AmountInWords(order.GrandTotal), wordsWrapChars)
	wordsHeight := float64(len(wordsLines)) * lineHeight
	doc.add(Block{
		Section: "amount_in_words",
		Kind:    BlockText,
		X:       PageMargin,
		Y:       y,
		Width:   contentWidth - summaryWidth - 10,
		Height:  wordsHeight,
		Lines:   wordsLines,
		Style:   &TextStyle{FontSize: bodyFontSize},
	})

	y = maxFloat(y+wordsHeight, summaryY) + sectionGap

	// (8) payment QR with caption
	if assets.PaymentQR != nil {
		doc.add(Block{
			Section: "payment_qr",
			Kind:    BlockImage,
			X:       PageMargin,
			Y:       y,
			Width:   qrSize,
			Height:  qrSize,
			Image:   imageRef(assets.PaymentQR),
		})
		doc.add(Block{
			Section: "payment_qr",
			Kind:    BlockText,
			X:       PageMargin,
			Y:       y + qrSize + 4,
			Width:   qrSize,
			Height:  lineHeight,
			Lines:   []string{"Scan to Pay"},
			Style:   &TextStyle{FontSize: smallFontSize, Align: "center"},
		})
		y += qrSize + lineHeight + sectionGap
	}

	// (9) terms and conditions
	termsLines := wrapText(termsText, 96)
	termsHeight := float64(len(termsLines)+1) * lineHeight
	doc.add(Block{
		Section: "terms",
		Kind:    BlockText,
		X:       PageMargin,
		Y:       y,
		Width:   contentWidth,
		Height:  termsHeight,
		Lines:   append([]string{"Terms & Conditions:"}, termsLines...),
		Style:   &TextStyle{FontSize: smallFontSize},
	})
	y += termsHeight + 2*sectionGap

	// (10) signature lines and closing disclaimer
	doc.add(Block{
		Section: "signatures",
		Kind:    BlockText,
		X:       PageMargin,
		Y:       y,
		Width:   contentWidth / 2,
		Height:  2 * lineHeight,
		Lines:   []string{"____________________", receiverCaption},
		Style:   &TextStyle{FontSize: bodyFontSize},
	})
	doc.add(Block{
		Section: "signatures",
		Kind:    BlockText,
		X:       PageWidth - PageMargin - summaryWidth,
		Y:       y,
		Width:   summaryWidth,
		Height:  3 * lineHeight,
		Lines:   []string{"____________________", "For " + issuer.Name, signatoryLabel},
		Style:   &TextStyle{FontSize: bodyFontSize, Align: "right"},
	})
	y += 3*lineHeight + sectionGap
	doc.add(Block{
		Section: "signatures",
		Kind:    BlockText,
		X:       PageMargin,
		Y:       y,
		Width:   contentWidth,
		Height:  lineHeight,
		Lines:   []string{disclaimerText},
		Style:   &TextStyle{FontSize: smallFontSize, Align: "center"},
	})

	return doc
}

func (d *Document) add(block Block) {
	d.Blocks = append(d.Blocks, block)
}

func imageRef(asset *Asset) *ImageRef {
	return &ImageRef{
		Name:        asset.Name,
		URL:         asset.URL,
		ContentType: asset.ContentType,
		PixelWidth:  asset.PixelWidth,
		PixelHeight: asset.PixelHeight,
	}
}

func scaledHeight(asset *Asset, width float64) float64 {
	if asset.PixelWidth <= 0 || asset.PixelHeight <= 0 {
		return width
	}
	return width * float64(asset.PixelHeight) / float64(asset.PixelWidth)
}

// wrapText greedily wraps words to the given character budget per line.
func wrapText(text string, maxChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > maxChars {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(lines, current)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
