package features

import (
	"testing"
	"time"

	"orderqa/internal/model"
)

func deliveredRow() model.Merged {
	return model.Merged{Order: model.Order{
		Status:            model.StatusDelivered,
		PurchaseTS:        ts("2017-01-01 00:00:00"),
		DeliveredCarrier:  ts("2017-01-02 00:00:00"),
		DeliveredCustomer: ts("2017-01-05 00:00:00"),
		EstimatedDelivery: ts("2017-01-06 00:00:00"),
	}}
}

func TestComputeDurations_DeliveredOrder(t *testing.T) {
	rows := []model.Merged{deliveredRow()}
	ComputeDurations(rows)
	r := rows[0]

	if r.ProcessingDays == nil || *r.ProcessingDays != 1 {
		t.Fatalf("processing_days: %v", r.ProcessingDays)
	}
	if r.ShippingDays == nil || *r.ShippingDays != 3 {
		t.Fatalf("shipping_days: %v", r.ShippingDays)
	}
	if r.FulfillmentDays == nil || *r.FulfillmentDays != 4 {
		t.Fatalf("fulfillment_days: %v", r.FulfillmentDays)
	}
	if r.SLADiffDays == nil || *r.SLADiffDays != -1 {
		t.Fatalf("sla_diff_days: %v", r.SLADiffDays)
	}
	if r.OnTime == nil || !*r.OnTime {
		t.Fatalf("on_time: %v", r.OnTime)
	}
}

func TestComputeDurations_NonDeliveredStatusGetsNoDurations(t *testing.T) {
	row := deliveredRow()
	row.Status = model.StatusShipped
	rows := []model.Merged{row}
	ComputeDurations(rows)
	r := rows[0]

	if r.ProcessingDays != nil || r.ShippingDays != nil || r.FulfillmentDays != nil {
		t.Fatalf("durations must be nil for non-delivered status: %+v", r)
	}
	// SLA only needs the customer delivery and estimate dates.
	if r.SLADiffDays == nil || r.OnTime == nil {
		t.Fatalf("sla fields should still compute: %+v", r)
	}
}

func TestComputeDurations_MissingCarrierDate(t *testing.T) {
	row := deliveredRow()
	row.DeliveredCarrier = nil
	rows := []model.Merged{row}
	ComputeDurations(rows)
	r := rows[0]

	if r.ProcessingDays != nil || r.ShippingDays != nil {
		t.Fatalf("carrier-dependent durations must be nil: %+v", r)
	}
	if r.FulfillmentDays == nil || *r.FulfillmentDays != 4 {
		t.Fatalf("fulfillment does not need the carrier date: %v", r.FulfillmentDays)
	}
}

func TestComputeDurations_UndeliveredHasNilSLA(t *testing.T) {
	row := deliveredRow()
	row.DeliveredCustomer = nil
	rows := []model.Merged{row}
	ComputeDurations(rows)
	r := rows[0]

	if r.SLADiffDays != nil || r.OnTime != nil {
		t.Fatalf("undelivered order must have nil SLA fields, not false: %+v", r)
	}
	if r.ProcessingDays != nil || r.ShippingDays != nil || r.FulfillmentDays != nil {
		t.Fatalf("durations need the customer delivery date: %+v", r)
	}
}

func TestComputeDurations_MissingEstimate(t *testing.T) {
	row := deliveredRow()
	row.EstimatedDelivery = nil
	rows := []model.Merged{row}
	ComputeDurations(rows)

	if rows[0].SLADiffDays != nil || rows[0].OnTime != nil {
		t.Fatalf("sla fields need the estimate: %+v", rows[0])
	}
}

func TestDayDiff_TruncatesTowardZero(t *testing.T) {
	a := time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := dayDiff(a, a.Add(23*time.Hour)); got != 0 {
		t.Fatalf("23h: got %d want 0", got)
	}
	if got := dayDiff(a, a.Add(-25*time.Hour)); got != -1 {
		t.Fatalf("-25h: got %d want -1", got)
	}
	if got := dayDiff(a, a.Add(49*time.Hour)); got != 2 {
		t.Fatalf("49h: got %d want 2", got)
	}
}

func TestComputeKPIs(t *testing.T) {
	onTimeRow := deliveredRow()

	lateRow := deliveredRow()
	lateRow.DeliveredCustomer = ts("2017-01-10 00:00:00")

	pendingRow := model.Merged{Order: model.Order{
		Status:     model.StatusShipped,
		PurchaseTS: ts("2017-01-01 00:00:00"),
	}}

	rows := []model.Merged{onTimeRow, lateRow, pendingRow}
	ComputeDurations(rows)
	k := ComputeKPIs(rows)

	if k.OrdersTotal != 3 || k.OrdersDelivered != 2 {
		t.Fatalf("counts: %+v", k)
	}
	if k.OnTimeRatePct != 50 {
		t.Fatalf("on_time rate: got %.2f want 50", k.OnTimeRatePct)
	}
	if k.SLADelayRatePct != 50 {
		t.Fatalf("delay rate: got %.2f want 50", k.SLADelayRatePct)
	}
	// processing 1 and 1; shipping 3 and 8; fulfillment 4 and 9.
	if k.ProcessingDaysAvg != 1 {
		t.Fatalf("processing avg: %.2f", k.ProcessingDaysAvg)
	}
	if k.ShippingDaysAvg != 5.5 {
		t.Fatalf("shipping avg: %.2f", k.ShippingDaysAvg)
	}
	if k.FulfillmentDaysAvg != 6.5 {
		t.Fatalf("fulfillment avg: %.2f", k.FulfillmentDaysAvg)
	}
}
