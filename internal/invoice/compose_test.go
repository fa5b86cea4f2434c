package invoice

import (
	"encoding/json"
	"testing"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceNoFromOrderNo(t *testing.T) {
	assert.Equal(t, "INV-VITA-10031", InvoiceNoFromOrderNo("VITA-10031"))
	//接頭辞が無ければそのまま
	assert.Equal(t, "X-123", InvoiceNoFromOrderNo("X-123"))
}

func TestSplitGross_105(t *testing.T) {
	net, tax := SplitGross(decimal.NewFromInt(105))
	assert.True(t, net.Equal(decimal.RequireFromString("100.00")), "net=%s", net)
	assert.True(t, tax.Equal(decimal.RequireFromString("5.00")), "tax=%s", tax)
}

func TestSplitGross_100(t *testing.T) {
	net, tax := SplitGross(decimal.NewFromInt(100))
	assert.True(t, net.Equal(decimal.RequireFromString("95.24")), "net=%s", net)
	assert.True(t, tax.Equal(decimal.RequireFromString("4.76")), "tax=%s", tax)
}

func TestSplitGross_NetPlusTaxEqualsGross(t *testing.T) {
	for _, gross := range []string{"1", "33.33", "99.99", "105", "210", "4999.50"} {
		g := decimal.RequireFromString(gross)
		net, tax := SplitGross(g)
		assert.True(t, net.Add(tax).Equal(g), "gross=%s net=%s tax=%s", gross, net, tax)
	}
}

func orderWithItems(t *testing.T, items []model.LineItem) model.Order {
	t.Helper()
	raw, err := json.Marshal(items)
	assert.NoError(t, err)
	return model.Order{
		OrderNo:      "VITA-10001",
		Name:         "Asha",
		Quantity:     3,
		TotalAmount:  420,
		ProductsJSON: raw,
	}
}

func TestBuild_PerItemRoundThenMultiply(t *testing.T) {
	//単価105を先に割ってから数量2を掛ける
	order := orderWithItems(t, []model.LineItem{
		{ProductID: 1, Title: "Moringa Powder", Qty: 2, SalePrice: 105, HSN: "1211"},
		{ProductID: 2, Title: "Herbal Mix", Qty: 1, SalePrice: 210},
	})

	doc := Build(order)
	assert.Len(t, doc.Lines, 2)

	l0 := doc.Lines[0]
	assert.Equal(t, 1, l0.Sl)
	assert.True(t, l0.NetAmount.Equal(decimal.RequireFromString("200.00")), "net=%s", l0.NetAmount)
	assert.True(t, l0.TaxAmount.Equal(decimal.RequireFromString("10.00")), "tax=%s", l0.TaxAmount)
	assert.True(t, l0.TotalAmount.Equal(decimal.RequireFromString("210.00")))

	l1 := doc.Lines[1]
	assert.True(t, l1.NetAmount.Equal(decimal.RequireFromString("200.00")))
	assert.True(t, l1.TaxAmount.Equal(decimal.RequireFromString("10.00")))

	assert.True(t, doc.TotalTax.Equal(decimal.RequireFromString("20.00")), "total tax=%s", doc.TotalTax)
	assert.True(t, doc.GrandTotal.Equal(decimal.RequireFromString("420.00")), "grand=%s", doc.GrandTotal)
	assert.Equal(t, "Four Hundred Twenty only", doc.AmountInWords)
	assert.Equal(t, "1211", doc.HSN)
}

func TestBuild_SalePriceZeroFallsBackToPrice(t *testing.T) {
	order := orderWithItems(t, []model.LineItem{
		{ProductID: 1, Title: "Soap", Qty: 1, Price: 105},
	})
	doc := Build(order)
	assert.Len(t, doc.Lines, 1)
	assert.True(t, doc.Lines[0].UnitPrice.Equal(decimal.NewFromInt(105)))
}

func TestBuild_EmptySnapshotSyntheticLine(t *testing.T) {
	order := model.Order{
		OrderNo:     "VITA-10002",
		Quantity:    3,
		TotalAmount: 105,
	}
	doc := Build(order)
	assert.Len(t, doc.Lines, 1)

	l := doc.Lines[0]
	assert.Equal(t, "Items", l.Description)
	assert.Equal(t, int64(3), l.Qty)
	assert.True(t, l.NetAmount.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, l.TaxAmount.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, doc.GrandTotal.Equal(decimal.RequireFromString("105.00")))
}

func TestBuild_CorruptSnapshotSyntheticLine(t *testing.T) {
	order := model.Order{
		OrderNo:      "VITA-10003",
		Quantity:     1,
		TotalAmount:  210,
		ProductsJSON: []byte("{broken"),
	}
	doc := Build(order)
	assert.Len(t, doc.Lines, 1)
	assert.Equal(t, "Items", doc.Lines[0].Description)
	assert.True(t, doc.GrandTotal.Equal(decimal.RequireFromString("210.00")))
}

func TestBuild_ZeroQtyTreatedAsOne(t *testing.T) {
	order := orderWithItems(t, []model.LineItem{
		{ProductID: 1, Title: "Tea", Qty: 0, SalePrice: 105},
	})
	doc := Build(order)
	assert.Equal(t, int64(1), doc.Lines[0].Qty)
	assert.True(t, doc.Lines[0].TotalAmount.Equal(decimal.NewFromInt(105)))
}
