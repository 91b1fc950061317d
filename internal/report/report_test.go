package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"orderqa/internal/features"
	"orderqa/internal/join"
	"orderqa/internal/model"
)

func ts(v string) *time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", v)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestRender_ContainsAllSections(t *testing.T) {
	rows := []model.Merged{{
		Order: model.Order{
			OrderID:           "A",
			CustomerID:        "c1",
			Status:            model.StatusDelivered,
			PurchaseTS:        ts("2017-10-02 17:04:00"),
			DeliveredCarrier:  ts("2017-10-04 10:00:00"),
			DeliveredCustomer: ts("2017-10-10 21:25:13"),
			EstimatedDelivery: ts("2017-10-18 00:00:00"),
		},
		Item: model.OrderItem{OrderID: "A", Price: 58.9, FreightValue: 13.29},
	}}
	features.ExtractCalendar(rows)
	features.ComputeDurations(rows)

	jr := join.Report{
		OrdersIn: 2, ItemsIn: 1, MergedRows: 1,
		DistinctOrdersIn: 2, DistinctOrdersOut: 1,
		OrdersLost: 1, ItemsLost: 0,
		InputRevenue: 58.9, MergedRevenue: 58.9, RevenueCoveragePct: 100,
		ItemsPerOrderMean: 1, ItemsPerOrderMax: 1, SingleItemOrders: 1,
		UniqueCustomers: 1,
	}
	mr := join.MissingReport{
		Count:    1,
		Sample:   []join.MissingOrder{{OrderID: "B", Status: model.StatusCanceled}},
		ByStatus: []join.StatusCount{{Status: model.StatusCanceled, Count: 1, Percent: 100}},
	}
	kpis := features.ComputeKPIs(rows)

	var buf bytes.Buffer
	Render(&buf, rows, jr, mr, kpis)
	out := buf.String()

	for _, want := range []string{
		"JOIN QUALITY METRICS",
		"Orders lost in merge: 1",
		"Revenue coverage: 100.0%",
		"INVESTIGATING MISSING ORDERS",
		"canceled",
		"TEMPORAL PATTERNS",
		"2017: 1 orders",
		"DELIVERY & SLA KPIs",
		"orders_delivered: 1",
		"on_time_rate_%: 100.00",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q in:\n%s", want, out)
		}
	}
}

func TestRender_EmptyRows(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, nil, join.Report{RevenueCoveragePct: 100}, join.MissingReport{}, features.KPIs{})
	if !strings.Contains(buf.String(), "Total rows: 0") {
		t.Fatalf("empty render should still produce the summary:\n%s", buf.String())
	}
}
