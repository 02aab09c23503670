package spreadsheet

import (
	"fmt"
	"io"
	"time"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const (
	retailSheet    = "Retail Orders"
	stitchingSheet = "Stitching Orders"
	dateLayout     = "2006-01-02 15:04"
)

var retailHeader = []interface{}{
	"Bill No", "Date", "Customer", "Phone", "Items", "Total", "Paid", "Due", "Profit", "Status",
}

var stitchingHeader = []interface{}{
	"Bill No", "Date", "Customer", "Phone", "Garments", "Stitching", "Shop Fabric",
	"Accessories", "Total", "Paid", "Due", "Delivery", "Status",
}

// WriteOrdersReport writes one sheet per order kind to w. Dates are rendered
// in loc. Amounts are written as rupee numbers so the sheet can sum them.
func WriteOrdersReport(w io.Writer, orders []entity.Order, stitching []entity.StitchingOrder, loc *time.Location) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", retailSheet); err != nil {
		return err
	}
	if _, err := file.NewSheet(stitchingSheet); err != nil {
		return err
	}

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := writeRow(file, retailSheet, 1, retailHeader); err != nil {
		return err
	}
	for i, o := range orders {
		row := []interface{}{
			o.BillNo,
			o.CreatedAt.In(loc).Format(dateLayout),
			o.CustomerName,
			o.CustomerPhone,
			o.Items.Len(),
			o.TotalAmount.Rupees(),
			o.AmountPaid.Rupees(),
			o.AmountDue().Rupees(),
			o.TotalProfit.Rupees(),
			string(o.Status),
		}
		if err := writeRow(file, retailSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := writeRow(file, stitchingSheet, 1, stitchingHeader); err != nil {
		return err
	}
	for i, o := range stitching {
		delivery := ""
		if o.DeliveryDate != nil {
			delivery = o.DeliveryDate.In(loc).Format("2006-01-02")
		}
		row := []interface{}{
			o.BillNo,
			o.CreatedAt.In(loc).Format(dateLayout),
			o.CustomerName,
			o.CustomerPhone,
			o.Items.Len(),
			o.StitchingCharge.Rupees(),
			o.ShopFabricCost.Rupees(),
			o.BilledAccessoryCost.Rupees(),
			o.TotalAmount.Rupees(),
			o.AmountPaid.Rupees(),
			o.AmountDue().Rupees(),
			delivery,
			string(o.Status),
		}
		if err := writeRow(file, stitchingSheet, i+2, row); err != nil {
			return err
		}
	}

	for _, sheet := range []string{retailSheet, stitchingSheet} {
		if err := file.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return err
		}
		if err := file.SetPanes(sheet, &excelize.Panes{
			Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
		}); err != nil {
			return err
		}
	}

	_, err = file.WriteTo(w)
	return err
}

func writeRow(file *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := file.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
