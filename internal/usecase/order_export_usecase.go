package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	"app/internal/invoice"
	repo "app/internal/repository"

	"github.com/xuri/excelize/v2"
)

// OrderExportUsecaseは請求書日付で絞った注文をExcelに書き出す。
// 1明細1行（会計側の取り込み都合でこの形は固定）。
type OrderExportUsecase struct {
	tx repo.TransactionManager
}

func NewOrderExportUsecase(tx repo.TransactionManager) *OrderExportUsecase {
	return &OrderExportUsecase{tx: tx}
}

var exportHeaders = []string{
	"Invoice No",
	"Invoice Date",
	"Order No",
	"Order Date",
	"Customer Name",
	"City",
	"State",
	"Country",
	"Pin",
	"Mobile",
	"Email",
	"Item",
	"HSN",
	"Qty",
	"Tax Rate",
	"Unit Price (Incl. Tax)",
	"Taxable Value",
	"Tax Amount",
	"Line Total",
	"Order Total",
}

// ExportMonthは指定月の注文をExcelにして返す。
func (u *OrderExportUsecase) ExportMonth(ctx context.Context, year int, month time.Month) ([]byte, string, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)

	data, err := u.export(ctx, from, to)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("orders-%04d-%02d.xlsx", year, int(month))
	return data, filename, nil
}

// ExportRangeは"YYYY-MM"形式の月指定を受ける。
func (u *OrderExportUsecase) ExportRange(ctx context.Context, yearMonth string) ([]byte, string, error) {
	t, err := time.ParseInLocation("2006-01", yearMonth, time.Local)
	if err != nil {
		return nil, "", NewHTTPError(http.StatusBadRequest, "month must be YYYY-MM")
	}
	return u.ExportMonth(ctx, t.Year(), t.Month())
}

func (u *OrderExportUsecase) export(ctx context.Context, from time.Time, to time.Time) ([]byte, error) {
	var orders []model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		list, err := r.Orders().ListByInvoiceDateRange(ctx, from, to)
		if err != nil {
			return mapRepoError(err)
		}
		orders = list
		return nil
	})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "export failed")
	}
	rupeeFmt := "₹#,##0.00;[Red]-₹#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &rupeeFmt,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "export failed")
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A1", "T1", headerStyle)

	row := 2
	for _, o := range orders {
		doc := invoice.Build(o)
		invoiceNo := ""
		if o.InvoiceNo != nil {
			invoiceNo = *o.InvoiceNo
		}
		invoiceDate := ""
		if o.InvoiceDate != nil {
			invoiceDate = o.InvoiceDate.Format("02-01-2006")
		}

		for _, l := range doc.Lines {
			unit, _ := l.UnitPrice.Float64()
			net, _ := l.NetAmount.Float64()
			tax, _ := l.TaxAmount.Float64()
			total, _ := l.TotalAmount.Float64()

			f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &[]interface{}{
				invoiceNo,
				invoiceDate,
				o.OrderNo,
				o.OrderDate.Format("02-01-2006"),
				o.Name,
				o.City,
				o.State,
				o.Country,
				o.Pin,
				o.Mobile,
				o.Email,
				l.Description,
				doc.HSN,
				l.Qty,
				fmt.Sprintf("%d%%", l.TaxRate),
				unit,
				net,
				tax,
				total,
				o.TotalAmount,
			})
			row++
		}
	}
	if row > 2 {
		f.SetCellStyle(sheet, "P2", fmt.Sprintf("T%d", row-1), moneyStyle)
	}

	f.SetColWidth(sheet, "A", "B", 16)
	f.SetColWidth(sheet, "E", "E", 22)
	f.SetColWidth(sheet, "L", "L", 36)
	f.SetColWidth(sheet, "P", "T", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "export failed")
	}
	return buf.Bytes(), nil
}
