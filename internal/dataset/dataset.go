// Package dataset loads the delimited order datasets into typed records,
// applying a declared schema: identifiers stay text, order_status stays a
// bounded categorical, listed columns parse as timestamps. A timestamp that
// fails to parse becomes nil instead of failing the load. Validation itself
// is the schema package's job, applied to the loaded result.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"orderqa/internal/schema"
)

// Column names shared with the raw CSV headers.
const (
	ColOrderID           = "order_id"
	ColCustomerID        = "customer_id"
	ColOrderStatus       = "order_status"
	ColPurchaseTS        = "order_purchase_timestamp"
	ColApprovedAt        = "order_approved_at"
	ColDeliveredCarrier  = "order_delivered_carrier_date"
	ColDeliveredCustomer = "order_delivered_customer_date"
	ColEstimatedDelivery = "order_estimated_delivery_date"

	ColOrderItemID   = "order_item_id"
	ColProductID     = "product_id"
	ColSellerID      = "seller_id"
	ColShippingLimit = "shipping_limit_date"
	ColPrice         = "price"
	ColFreightValue  = "freight_value"
)

// Timestamp layouts accepted by the loader.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// rawTable keeps the raw column values and the realized kinds of a loaded
// file so the validator can check the load result.
type rawTable struct {
	index   map[string]int
	kinds   map[string]schema.Kind
	records [][]string
}

func newRawTable(header []string, records [][]string, s schema.Schema) *rawTable {
	t := &rawTable{
		index:   make(map[string]int, len(header)),
		kinds:   make(map[string]schema.Kind, len(s.Columns)),
		records: records,
	}
	for i, name := range header {
		t.index[name] = i
	}
	// The realized kind of a present, declared column is the kind the
	// loader coerced it to.
	for _, col := range s.Columns {
		if _, ok := t.index[col.Name]; ok {
			t.kinds[col.Name] = col.Kind
		}
	}
	return t
}

func (t *rawTable) Kind(column string) (schema.Kind, bool) {
	k, ok := t.kinds[column]
	return k, ok
}

func (t *rawTable) Values(column string) []string {
	i, ok := t.index[column]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(t.records))
	for _, rec := range t.records {
		out = append(out, rec[i])
	}
	return out
}

func (t *rawTable) cell(rec []string, column string) string {
	i, ok := t.index[column]
	if !ok {
		return ""
	}
	return rec[i]
}

func readCSV(path string) (header []string, records [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("read %s: no header row", path)
	}
	return rows[0], rows[1:], nil
}

// parseTime coerces a raw timestamp value. Empty and unparseable values both
// come back nil; downstream masks exclude those rows from date arithmetic.
func parseTime(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return &ts
		}
	}
	return nil
}

func parseMoney(path string, row int, column, v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("load %s: row %d: column %s: %w", path, row, column, err)
	}
	return f, nil
}
