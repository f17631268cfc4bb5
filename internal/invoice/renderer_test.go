package invoice

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/udyoglabs/dukaan-backend/pkg/db/models"
)

func testIssuer() Issuer {
	return Issuer{
		Name:    "Dukaan Traders",
		Tagline: "Quality since 1994",
		Contact: "+91-11-23456789",
		GSTIN:   "07AABCD1234E1Z1",
	}
}

func testOrder() *models.Order {
	phone := "+91-9811000000"
	return &models.Order{
		ID:                 uuid.New(),
		InvoiceNumber:      "INV-20260314-535897932",
		Date:               time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
		CustomerName:       "Ramesh Kumar",
		CustomerPhone:      &phone,
		TotalAmount:        decimal.RequireFromString("300"),
		DiscountPercentage: decimal.RequireFromString("10"),
		DiscountAmount:     decimal.RequireFromString("30"),
		TotalGST:           decimal.RequireFromString("48.6"),
		GrandTotal:         decimal.RequireFromString("318.6"),
		Items: []models.OrderItem{
			{
				ProductID:     uuid.New(),
				ProductName:   "Copper Wire 2mm",
				Quantity:      3,
				UnitPrice:     decimal.RequireFromString("100"),
				GSTPercentage: decimal.RequireFromString("18"),
				Subtotal:      decimal.RequireFromString("300"),
				TotalWithGST:  decimal.RequireFromString("354"),
				Position:      1,
			},
		},
	}
}

func sectionsOf(doc *Document) []string {
	var sections []string
	for _, block := range doc.Blocks {
		if len(sections) == 0 || sections[len(sections)-1] != block.Section {
			sections = append(sections, block.Section)
		}
	}
	return sections
}

func blocksIn(doc *Document, section string) []Block {
	var out []Block
	for _, block := range doc.Blocks {
		if block.Section == section {
			out = append(out, block)
		}
	}
	return out
}

func TestRenderSectionOrder(t *testing.T) {
	doc := Render(testOrder(), testIssuer(), Assets{})

	require.Equal(t, []string{
		"header", "metadata", "bill_to", "items",
		"summary", "amount_in_words", "terms", "signatures",
	}, sectionsOf(doc))
}

func TestRenderSectionOrderWithAllAssets(t *testing.T) {
	assets := Assets{
		Logo:      &Asset{Name: AssetLogo, URL: "https://assets.example/logo.png", PixelWidth: 180, PixelHeight: 90},
		Watermark: &Asset{Name: AssetWatermark, URL: "https://assets.example/mark.png", PixelWidth: 600, PixelHeight: 600},
		PaymentQR: &Asset{Name: AssetPaymentQR, URL: "https://assets.example/qr.png", PixelWidth: 256, PixelHeight: 256},
	}

	doc := Render(testOrder(), testIssuer(), assets)

	require.Equal(t, []string{
		"header", "watermark", "metadata", "bill_to", "items",
		"summary", "amount_in_words", "payment_qr", "terms", "signatures",
	}, sectionsOf(doc))
	require.Empty(t, doc.MissingAssets)
}

func TestRenderLogoShiftsMetadata(t *testing.T) {
	without := Render(testOrder(), testIssuer(), Assets{})
	with := Render(testOrder(), testIssuer(), Assets{
		// tall logo: 90 wide renders 180 high, far below the header text
		Logo: &Asset{Name: AssetLogo, URL: "https://assets.example/logo.png", PixelWidth: 100, PixelHeight: 200},
	})

	metaWithout := blocksIn(without, "metadata")[0]
	metaWith := blocksIn(with, "metadata")[0]
	require.Greater(t, metaWith.Y, metaWithout.Y)

	logo := blocksIn(with, "header")[1]
	require.Equal(t, BlockImage, logo.Kind)
	require.Equal(t, PageWidth-PageMargin-logoWidth, logo.X)
	require.InDelta(t, 180.0, logo.Height, 0.001)
}

func TestRenderBillToOmitsEmptyFields(t *testing.T) {
	order := testOrder()
	order.CustomerPhone = nil
	order.CustomerAddress = nil
	order.CustomerGSTIN = nil

	doc := Render(order, testIssuer(), Assets{})
	billTo := blocksIn(doc, "bill_to")[0]

	require.Equal(t, []string{"Bill To:", "RAMESH KUMAR"}, billTo.Lines)
}

func TestRenderBillToIncludesPresentFields(t *testing.T) {
	doc := Render(testOrder(), testIssuer(), Assets{})
	billTo := blocksIn(doc, "bill_to")[0]

	require.Equal(t, []string{"Bill To:", "RAMESH KUMAR", "Phone: +91-9811000000"}, billTo.Lines)
}

func TestRenderItemTable(t *testing.T) {
	doc := Render(testOrder(), testIssuer(), Assets{})
	table := blocksIn(doc, "items")[0]

	require.Equal(t, BlockTable, table.Kind)
	require.Len(t, table.Columns, 6)
	require.Equal(t, "right", table.Columns[3].Align)
	require.Equal(t, "right", table.Columns[5].Align)
	require.Equal(t, [][]string{
		{"1", "Copper Wire 2mm", "3", "100.00", "18.00%", "354.00"},
	}, table.Rows)
}

func TestRenderSummaryDiscountLine(t *testing.T) {
	withDiscount := Render(testOrder(), testIssuer(), Assets{})
	summary := blocksIn(withDiscount, "summary")

	var discountBlock *Block
	for i := range summary {
		if len(summary[i].Lines) == 1 && summary[i].Style != nil && summary[i].Style.Color == discountColor {
			discountBlock = &summary[i]
		}
	}
	require.NotNil(t, discountBlock)
	require.Equal(t, "Discount (10.00%): -30.00", discountBlock.Lines[0])

	order := testOrder()
	order.DiscountPercentage = decimal.Zero
	order.DiscountAmount = decimal.Zero
	noDiscount := Render(order, testIssuer(), Assets{})
	for _, block := range blocksIn(noDiscount, "summary") {
		if block.Style != nil {
			require.NotEqual(t, discountColor, block.Style.Color)
		}
	}
}

func TestRenderAmountInWords(t *testing.T) {
	doc := Render(testOrder(), testIssuer(), Assets{})
	words := blocksIn(doc, "amount_in_words")[0]

	joined := ""
	for i, line := range words.Lines {
		if i > 0 {
			joined += " "
		}
		joined += line
	}
	require.Equal(t, "Rupees Three Hundred Eighteen and Sixty Paise Only", joined)
}

func TestRenderIdempotent(t *testing.T) {
	order := testOrder()
	issuer := testIssuer()
	assets := Assets{
		Logo: &Asset{Name: AssetLogo, URL: "https://assets.example/logo.png", PixelWidth: 100, PixelHeight: 50},
	}

	first := Render(order, issuer, assets)
	second := Render(order, issuer, assets)
	require.Equal(t, first, second)
}

func TestRenderReportsMissingAssets(t *testing.T) {
	doc := Render(testOrder(), testIssuer(), Assets{Missing: []string{AssetLogo, AssetPaymentQR}})
	require.Equal(t, []string{AssetLogo, AssetPaymentQR}, doc.MissingAssets)
	// degraded sections are simply absent
	require.Empty(t, blocksIn(doc, "payment_qr"))
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four", 9)
	require.Equal(t, []string{"one two", "three", "four"}, lines)

	require.Nil(t, wrapText("", 10))
}
