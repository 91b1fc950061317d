// Package export writes the merged table to the pipeline's single output
// file: orders columns, item columns, then the derived columns, with no
// synthetic row index. Nil values render as empty cells.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"orderqa/internal/dataset"
	"orderqa/internal/model"
)

const timeLayout = "2006-01-02 15:04:05"

// Derived column names appended after the source columns.
const (
	ColYear            = "order_year"
	ColMonth           = "order_month"
	ColWeekday         = "order_weekday"
	ColHour            = "order_hour"
	ColProcessingDays  = "processing_days"
	ColShippingDays    = "shipping_days"
	ColFulfillmentDays = "fulfillment_days"
	ColSLADiffDays     = "sla_diff_days"
	ColOnTime          = "on_time"
)

// Columns is the output header, in order.
func Columns() []string {
	return []string{
		dataset.ColOrderID,
		dataset.ColCustomerID,
		dataset.ColOrderStatus,
		dataset.ColPurchaseTS,
		dataset.ColApprovedAt,
		dataset.ColDeliveredCarrier,
		dataset.ColDeliveredCustomer,
		dataset.ColEstimatedDelivery,
		dataset.ColOrderItemID,
		dataset.ColProductID,
		dataset.ColSellerID,
		dataset.ColShippingLimit,
		dataset.ColPrice,
		dataset.ColFreightValue,
		ColYear,
		ColMonth,
		ColWeekday,
		ColHour,
		ColProcessingDays,
		ColShippingDays,
		ColFulfillmentDays,
		ColSLADiffDays,
		ColOnTime,
	}
}

// WriteCSV writes all merged rows to path, creating or truncating it. This
// is the final step of a run; nothing is written on earlier failures.
func WriteCSV(path string, rows []model.Merged) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for i := range rows {
		if err := w.Write(record(&rows[i])); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func record(r *model.Merged) []string {
	return []string{
		r.OrderID,
		r.CustomerID,
		r.Status,
		fmtTime(r.PurchaseTS),
		fmtTime(r.ApprovedAt),
		fmtTime(r.DeliveredCarrier),
		fmtTime(r.DeliveredCustomer),
		fmtTime(r.EstimatedDelivery),
		r.Item.OrderItemID,
		r.Item.ProductID,
		r.Item.SellerID,
		fmtTime(r.Item.ShippingLimit),
		strconv.FormatFloat(r.Item.Price, 'f', 2, 64),
		strconv.FormatFloat(r.Item.FreightValue, 'f', 2, 64),
		fmtInt(r.Year),
		fmtInt(r.Month),
		fmtInt(r.Weekday),
		fmtInt(r.Hour),
		fmtInt(r.ProcessingDays),
		fmtInt(r.ShippingDays),
		fmtInt(r.FulfillmentDays),
		fmtInt(r.SLADiffDays),
		fmtBool(r.OnTime),
	}
}

func fmtTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}

func fmtInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func fmtBool(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}
