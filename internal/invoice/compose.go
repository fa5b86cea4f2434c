package invoice

import (
	"strings"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

// GST率（固定）
const GSTRatePercent = 5

const taxType = "IGST"

// 注文番号の接頭辞を差し替えて請求書番号を作る。別採番はしない
// （注文番号が一意なら請求書番号も一意）。
func InvoiceNoFromOrderNo(orderNo string) string {
	return strings.Replace(orderNo, "VITA-", "INV-VITA-", 1)
}

type Line struct {
	Sl          int
	Description string
	Qty         int64
	UnitPrice   decimal.Decimal
	NetAmount   decimal.Decimal
	TaxRate     int
	TaxType     string
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

type Document struct {
	Order         model.Order
	HSN           string
	Lines         []Line
	TotalTax      decimal.Decimal
	GrandTotal    decimal.Decimal
	AmountInWords string
}

// SplitGrossは税込単価を税抜と税額に割る。
// 先に2桁へ丸めてから数量を掛ける（過去の請求書と一致させるため順序は変えない）。
func SplitGross(gross decimal.Decimal) (net decimal.Decimal, tax decimal.Decimal) {
	net = gross.Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(100 + GSTRatePercent)).
		Round(2)
	tax = gross.Sub(net).Round(2)
	return net, tax
}

// Buildは注文スナップショットから請求書の数値面を組み立てる。
func Build(order model.Order) Document {
	items := order.LineItems()

	doc := Document{Order: order, Lines: make([]Line, 0, len(items))}
	if len(items) > 0 && items[0].HSN != "" {
		doc.HSN = items[0].HSN
	}

	for i, it := range items {
		qty := it.Qty
		if qty <= 0 {
			qty = 1
		}
		gross := decimal.NewFromFloat(it.SalePrice)
		if gross.IsZero() {
			gross = decimal.NewFromFloat(it.Price)
		}
		netUnit, taxUnit := SplitGross(gross)
		q := decimal.NewFromInt(qty)

		parts := make([]string, 0, 3)
		if it.Title != "" {
			parts = append(parts, it.Title)
		}
		if it.Weight != "" {
			parts = append(parts, it.Weight)
		}
		if it.HSN != "" {
			parts = append(parts, "HSN:"+it.HSN)
		}

		doc.Lines = append(doc.Lines, Line{
			Sl:          i + 1,
			Description: strings.Join(parts, " | "),
			Qty:         qty,
			UnitPrice:   gross,
			NetAmount:   netUnit.Mul(q).Round(2),
			TaxRate:     GSTRatePercent,
			TaxType:     taxType,
			TaxAmount:   taxUnit.Mul(q).Round(2),
			TotalAmount: gross.Mul(q).Round(2),
		})
	}

	//スナップショットが空（または壊れている）場合は合計金額から1行作る
	if len(doc.Lines) == 0 {
		gross := decimal.NewFromFloat(order.TotalAmount)
		net, tax := SplitGross(gross)
		qty := order.Quantity
		if qty <= 0 {
			qty = 1
		}
		doc.Lines = append(doc.Lines, Line{
			Sl:          1,
			Description: "Items",
			Qty:         qty,
			UnitPrice:   gross,
			NetAmount:   net,
			TaxRate:     GSTRatePercent,
			TaxType:     taxType,
			TaxAmount:   tax,
			TotalAmount: gross,
		})
	}

	for _, l := range doc.Lines {
		doc.TotalTax = doc.TotalTax.Add(l.TaxAmount)
		doc.GrandTotal = doc.GrandTotal.Add(l.TotalAmount)
	}
	doc.AmountInWords = AmountInWords(doc.GrandTotal.Round(0).IntPart())

	return doc
}
