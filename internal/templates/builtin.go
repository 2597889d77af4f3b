package templates

import "dealcanvas/internal/models"

func text(label, def string) Field {
	return Field{Label: label, Kind: FieldKindText, Default: def}
}

func choice(label, def string, options ...string) Field {
	return Field{Label: label, Kind: FieldKindSelect, Default: def, Options: options}
}

// Builtin returns the standard catalog: swap, forward, option and bond.
func Builtin() *Catalog {
	return New([]DealTemplate{
		{
			Kind:         models.DealKindSwap,
			Title:        "Interest Rate Swap",
			HasCashflows: true,
			Fields: []Field{
				text("Notional", "1,000,000"),
				text("Fixed Rate", "3.5%"),
				text("Tenor", "5Y"),
				choice("Currency", "USD", "USD", "EUR", "GBP"),
			},
		},
		{
			Kind:  models.DealKindForward,
			Title: "FX Forward",
			Fields: []Field{
				text("Amount", "1,000,000"),
				text("Currency Pair", "EUR/USD"),
				text("Forward Rate", "1.0850"),
				text("Maturity", "3M"),
			},
		},
		{
			Kind:  models.DealKindOption,
			Title: "Option",
			Fields: []Field{
				text("Strike", "100"),
				choice("Type", "Call", "Call", "Put"),
				text("Expiry", "1Y"),
				text("Premium", "5.25"),
			},
		},
		{
			Kind:         models.DealKindBond,
			Title:        "Bond",
			HasCashflows: true,
			Fields: []Field{
				text("Face Value", "1,000"),
				text("Coupon", "4.5%"),
				text("Maturity", "10Y"),
				choice("Rating", "AA", "AAA", "AA", "A", "BBB"),
			},
		},
	}, CashflowTemplate{
		Title: "Cashflow",
		Fields: []Field{
			text("Date", "2025-01-01"),
			text("Amount", "10,000"),
			choice("Type", "Payment", "Payment", "Receipt"),
		},
	})
}
