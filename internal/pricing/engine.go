package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/udyoglabs/dukaan-backend/pkg/errors"
)

var (
	hundred    = decimal.NewFromInt(100)
	maxGSTRate = decimal.NewFromInt(100)
)

// LineInput is one cart line handed to the engine. UnitPrice and GSTPercentage
// are snapshots taken by the caller; the engine never reads the catalog.
type LineInput struct {
	ProductID     uuid.UUID
	ProductName   string
	Quantity      int
	UnitPrice     decimal.Decimal
	GSTPercentage decimal.Decimal
}

// LineResult is a priced line. Subtotal and GSTAmount carry the pre-discount
// amounts; the cart-level discount is applied only to the quote totals.
type LineResult struct {
	ProductID     uuid.UUID
	ProductName   string
	Quantity      int
	UnitPrice     decimal.Decimal
	GSTPercentage decimal.Decimal
	Subtotal      decimal.Decimal
	GSTAmount     decimal.Decimal
	TotalWithGST  decimal.Decimal
}

// Quote is the full pricing breakdown for a cart.
//
// GST is blended after the discount: the per-line GST amounts are summed
// raw, then scaled by taxable/subtotal so each rate class bears the
// discount proportionally. TotalGST therefore never equals the sum of the
// line GSTAmount fields when a discount is in play.
type Quote struct {
	Lines              []LineResult
	TotalAmount        decimal.Decimal
	DiscountPercentage decimal.Decimal
	DiscountAmount     decimal.Decimal
	TaxableAmount      decimal.Decimal
	TotalGST           decimal.Decimal
	GrandTotal         decimal.Decimal
}

// Compute prices the given lines with a cart-level discount percentage.
// All money values in the result are rounded half-up to two decimal places.
func Compute(lines []LineInput, discountPercentage decimal.Decimal) (*Quote, error) {
	if discountPercentage.IsNegative() || discountPercentage.GreaterThan(hundred) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount percentage must be between 0 and 100")
	}

	quote := &Quote{
		Lines:              make([]LineResult, 0, len(lines)),
		TotalAmount:        decimal.Zero,
		DiscountPercentage: discountPercentage,
		DiscountAmount:     decimal.Zero,
		TaxableAmount:      decimal.Zero,
		TotalGST:           decimal.Zero,
		GrandTotal:         decimal.Zero,
	}

	// Line amounts aggregate at full precision; rounding happens only on
	// the presented fields so per-line rounding error never compounds
	// across a long cart.
	rawTotal := decimal.Zero
	rawGST := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be positive")
		}
		if line.UnitPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line unit price cannot be negative")
		}
		if line.GSTPercentage.IsNegative() || line.GSTPercentage.GreaterThan(maxGSTRate) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line gst percentage must be between 0 and 100")
		}

		subtotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		gstAmount := subtotal.Mul(line.GSTPercentage).Div(hundred)

		quote.Lines = append(quote.Lines, LineResult{
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			GSTPercentage: line.GSTPercentage,
			Subtotal:      subtotal.Round(2),
			GSTAmount:     gstAmount.Round(2),
			TotalWithGST:  subtotal.Add(gstAmount).Round(2),
		})

		rawTotal = rawTotal.Add(subtotal)
		rawGST = rawGST.Add(gstAmount)
	}

	quote.TotalAmount = rawTotal.Round(2)
	if rawTotal.IsZero() {
		return quote, nil
	}

	rawDiscount := rawTotal.Mul(discountPercentage).Div(hundred)
	rawTaxable := rawTotal.Sub(rawDiscount)
	rawFinalGST := rawGST.Mul(rawTaxable).Div(rawTotal)

	quote.DiscountAmount = rawDiscount.Round(2)
	quote.TaxableAmount = rawTaxable.Round(2)
	quote.TotalGST = rawFinalGST.Round(2)
	quote.GrandTotal = rawTaxable.Add(rawFinalGST).Round(2)

	return quote, nil
}
