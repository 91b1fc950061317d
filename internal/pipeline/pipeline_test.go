package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const ordersCSV = `order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at,order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date
A,c1,delivered,2017-01-01 00:00:00,2017-01-01 06:00:00,2017-01-02 00:00:00,2017-01-05 00:00:00,2017-01-06 00:00:00
B,c2,canceled,2017-01-03 10:00:00,,,,
`

const itemsCSV = `order_id,order_item_id,product_id,seller_id,shipping_limit_date,price,freight_value
A,1,p1,s1,2017-01-04 00:00:00,100.00,10.00
Z,1,p9,s9,2017-01-04 00:00:00,40.00,4.00
`

func writeFixtures(t *testing.T) (orders, items, out string) {
	t.Helper()
	dir := t.TempDir()
	orders = filepath.Join(dir, "orders.csv")
	items = filepath.Join(dir, "items.csv")
	out = filepath.Join(dir, "integrated_data.csv")
	if err := os.WriteFile(orders, []byte(ordersCSV), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	if err := os.WriteFile(items, []byte(itemsCSV), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return orders, items, out
}

func TestRun_EndToEnd(t *testing.T) {
	orders, items, out := writeFixtures(t)

	var report bytes.Buffer
	res, err := Run(Config{OrdersPath: orders, ItemsPath: items, OutputPath: out}, zap.NewNop(), &report)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// One merged row: order A with its single item. Order B (canceled, no
	// items) and the orphan item Z both drop out of the join.
	if len(res.Rows) != 1 || res.Rows[0].OrderID != "A" {
		t.Fatalf("unexpected merged rows: %+v", res.Rows)
	}
	if res.Join.OrdersLost != 1 || res.Join.ItemsLost != 1 {
		t.Fatalf("loss accounting: %+v", res.Join)
	}
	if res.Missing.Count != 1 || res.Missing.ByStatus[0].Status != "canceled" {
		t.Fatalf("missing-order report: %+v", res.Missing)
	}

	r := res.Rows[0]
	if r.ProcessingDays == nil || *r.ProcessingDays != 1 {
		t.Fatalf("processing_days: %v", r.ProcessingDays)
	}
	if r.OnTime == nil || !*r.OnTime {
		t.Fatalf("on_time: %v", r.OnTime)
	}
	if res.KPIs.OrdersDelivered != 1 || res.KPIs.OnTimeRatePct != 100 {
		t.Fatalf("kpis: %+v", res.KPIs)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "order_id,") {
		t.Fatalf("output header: %s", data[:40])
	}
	if !strings.Contains(report.String(), "DELIVERY & SLA KPIs") {
		t.Fatalf("console report incomplete:\n%s", report.String())
	}
}

func TestRun_SchemaViolationAbortsBeforeWrite(t *testing.T) {
	orders, items, out := writeFixtures(t)
	// Duplicate the order id to break the uniqueness contract.
	data, _ := os.ReadFile(orders)
	dup := strings.ReplaceAll(string(data), "B,c2", "A,c2")
	if err := os.WriteFile(orders, []byte(dup), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}

	var report bytes.Buffer
	_, err := Run(Config{OrdersPath: orders, ItemsPath: items, OutputPath: out}, zap.NewNop(), &report)
	if err == nil || !strings.Contains(err.Error(), "schema violation") {
		t.Fatalf("want schema violation, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("no output may exist after a fatal validation error")
	}
}

func TestRun_MissingInputFile(t *testing.T) {
	_, items, out := writeFixtures(t)

	var report bytes.Buffer
	_, err := Run(Config{OrdersPath: "/no/such/file.csv", ItemsPath: items, OutputPath: out}, zap.NewNop(), &report)
	if err == nil || !strings.Contains(err.Error(), "/no/such/file.csv") {
		t.Fatalf("error should name the path: %v", err)
	}
}
