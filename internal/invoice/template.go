package invoice

import (
	"bytes"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
)

// 売り手の法定情報は注文データではなく固定値
const (
	sellerName     = "VITALIME AGRO TECH PRIVATE LIMITED"
	sellerAddress1 = "5/109, Meenakshi Nagar, Alampatti"
	sellerAddress2 = "Thoothukudi, TAMIL NADU, 628503"
	sellerCountry  = "INDIA"
	sellerPAN      = "AAJCV8259L"
	sellerGSTIN    = "33AAJCV8259L1ZN"
	sellerFSSAI    = "12422029000832"
)

var tmplFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"date": func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("02/01/2006")
	},
}

var invoiceTmpl = template.Must(template.New("invoice").Funcs(tmplFuncs).Parse(`
<div style="width:100%; max-width:700px; margin:0 auto; font-family: Arial, sans-serif; font-size:11px; color:#000; padding:10px 15px; border:1px solid #ccc;">
  <div style="display:flex; justify-content:space-between; align-items:flex-start; margin-bottom:10px;">
    <div style="font-weight:bold; font-size:16px;">{{.SellerName}}</div>
    <div style="text-align:right;">
      <div style="font-weight:bold; font-size:14px;">Tax Invoice/Bill of Supply/Cash Memo</div>
      <div style="font-size:10px;">(For Supplier)</div>
    </div>
  </div>

  <div style="display:flex; justify-content:space-between; margin-top:10px;">
    <div style="width:55%;">
      <div style="font-weight:bold; margin-bottom:3px;">Sold By :</div>
      <div>
        {{.SellerName}}<br>
        {{.SellerAddress1}}<br>
        {{.SellerAddress2}}<br>
        {{.SellerCountry}}
      </div>
      <div style="margin-top:10px;">
        {{if .HSN}}<div><span style="font-weight:bold">HSN Code:</span> {{.HSN}}</div>{{end}}
        <div><span style="font-weight:bold">PAN No:</span> {{.SellerPAN}}</div>
        <div><span style="font-weight:bold">GST Registration No:</span> {{.SellerGSTIN}}</div>
      </div>
      <div style="margin-top:10px;">
        <div style="font-weight:bold">FSSAI License No.</div>
        <div>{{.SellerFSSAI}}</div>
      </div>
    </div>

    <div style="width:40%; text-align:right;">
      <div style="font-weight:bold; margin-bottom:3px;">Billing Address :</div>
      <div>
        {{.Order.Name}}<br>
        {{.Order.Address}}<br>
        {{.Order.City}}, {{.Order.State}}, {{.Order.Pin}}<br>
        {{.Order.Country}}<br>
        <span style="font-weight:bold">Mobile:</span> {{.Order.Mobile}}
      </div>
    </div>
  </div>

  <div style="display:flex; justify-content:space-between; margin-top:15px; margin-bottom:5px; font-size:11px;">
    <div>
      <div><span style="font-weight:bold">Order Number:</span> {{.Order.OrderNo}}</div>
      <div><span style="font-weight:bold">Order Date:</span> {{.OrderDate}}</div>
    </div>
    <div style="text-align:right;">
      <div><span style="font-weight:bold">Invoice Number:</span> {{.InvoiceNo}}</div>
      <div><span style="font-weight:bold">Invoice Date:</span> {{date .Order.InvoiceDate}}</div>
    </div>
  </div>

  <table style="width:100%; border-collapse:collapse; margin-top:10px;" border="1" cellpadding="4">
    <thead>
      <tr style="background:#f2f2f2; font-weight:bold;">
        <th style="width:5%; text-align:center;">Sl. No</th>
        <th style="width:35%;">Description</th>
        <th style="width:10%; text-align:right;">Unit Price</th>
        <th style="width:7%; text-align:center;">Qty</th>
        <th style="width:10%; text-align:right;">Net Amount</th>
        <th style="width:8%; text-align:center;">Tax Rate</th>
        <th style="width:8%; text-align:center;">Tax Type</th>
        <th style="width:10%; text-align:right;">Tax Amount</th>
        <th style="width:10%; text-align:right;">Total Amount</th>
      </tr>
    </thead>
    <tbody>
      {{range .Lines}}
      <tr>
        <td style="text-align:center">{{.Sl}}</td>
        <td>{{.Description}}</td>
        <td style="text-align:right">&#8377;{{money .UnitPrice}}</td>
        <td style="text-align:center">{{.Qty}}</td>
        <td style="text-align:right">&#8377;{{money .NetAmount}}</td>
        <td style="text-align:center">{{.TaxRate}}%</td>
        <td style="text-align:center">{{.TaxType}}</td>
        <td style="text-align:right">&#8377;{{money .TaxAmount}}</td>
        <td style="text-align:right">&#8377;{{money .TotalAmount}}</td>
      </tr>
      {{end}}
      <tr style="font-weight:bold;">
        <td colspan="7" style="text-align:right;">TOTAL:</td>
        <td style="text-align:right">&#8377;{{money .TotalTax}}</td>
        <td style="text-align:right">&#8377;{{money .GrandTotal}}</td>
      </tr>
    </tbody>
  </table>

  <div style="margin-top:10px; border-top:1px solid #000;">
    <div style="margin-top:8px;"><span style="font-weight:bold">Amount in Words:</span><br>{{.AmountInWords}}</div>
    <div style="display:flex; justify-content:space-between; margin-top:30px; align-items:flex-end;">
      <div><span style="font-weight:bold">Whether tax is payable under reverse charge -</span> No</div>
      <div style="text-align:right;">
        <div style="font-weight:bold;">For {{.SellerName}}:</div>
        <div style="margin-top:30px; padding-top:4px; font-style:italic; font-weight:bold;">Authorized Signatory</div>
      </div>
    </div>
  </div>
</div>
`))

type templateData struct {
	Document
	SellerName     string
	SellerAddress1 string
	SellerAddress2 string
	SellerCountry  string
	SellerPAN      string
	SellerGSTIN    string
	SellerFSSAI    string
	OrderDate      string
	InvoiceNo      string
}

// HTMLはレンダラーに渡す固定レイアウトの文書を返す。
func (d Document) HTML() ([]byte, error) {
	invoiceNo := "Not assigned"
	if d.Order.InvoiceNo != nil {
		invoiceNo = *d.Order.InvoiceNo
	}

	data := templateData{
		Document:       d,
		SellerName:     sellerName,
		SellerAddress1: sellerAddress1,
		SellerAddress2: sellerAddress2,
		SellerCountry:  sellerCountry,
		SellerPAN:      sellerPAN,
		SellerGSTIN:    sellerGSTIN,
		SellerFSSAI:    sellerFSSAI,
		OrderDate:      d.Order.OrderDate.Format("02/01/2006"),
		InvoiceNo:      invoiceNo,
	}

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
