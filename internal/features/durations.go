package features

import (
	"time"

	"orderqa/internal/model"
)

// dayDiff is the whole-day count of b minus a, truncated toward zero.
// Fractional days never round: 23h is 0 days, -25h is -1 day.
func dayDiff(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

// ComputeDurations fills the duration and SLA fields of every merged row.
// Each field has an explicit eligibility mask; rows failing it keep nil,
// never zero:
//
//   - processing/shipping/fulfillment days only for delivered orders whose
//     participating dates are all non-nil,
//   - sla_diff_days and on_time only where both the customer delivery date
//     and the estimated delivery date are non-nil.
func ComputeDurations(rows []model.Merged) {
	for i := range rows {
		r := &rows[i]
		delivered := r.Status == model.StatusDelivered

		if delivered && r.PurchaseTS != nil && r.DeliveredCarrier != nil && r.DeliveredCustomer != nil {
			d := dayDiff(*r.PurchaseTS, *r.DeliveredCarrier)
			r.ProcessingDays = &d
		}
		if delivered && r.DeliveredCarrier != nil && r.DeliveredCustomer != nil {
			d := dayDiff(*r.DeliveredCarrier, *r.DeliveredCustomer)
			r.ShippingDays = &d
		}
		if delivered && r.PurchaseTS != nil && r.DeliveredCustomer != nil {
			d := dayDiff(*r.PurchaseTS, *r.DeliveredCustomer)
			r.FulfillmentDays = &d
		}
		if r.DeliveredCustomer != nil && r.EstimatedDelivery != nil {
			d := dayDiff(*r.EstimatedDelivery, *r.DeliveredCustomer)
			onTime := d <= 0
			r.SLADiffDays = &d
			r.OnTime = &onTime
		}
	}
}

// KPIs are the aggregate delivery and SLA figures over the merged table.
// Averages ignore nil durations; rates are over delivered rows only.
type KPIs struct {
	OrdersTotal        int
	OrdersDelivered    int
	OnTimeRatePct      float64
	ProcessingDaysAvg  float64
	ShippingDaysAvg    float64
	FulfillmentDaysAvg float64
	SLADelayRatePct    float64
}

// ComputeKPIs aggregates the derived duration and SLA columns. A row counts
// as delivered when its customer delivery date is non-nil.
func ComputeKPIs(rows []model.Merged) KPIs {
	k := KPIs{OrdersTotal: len(rows)}

	var procSum, procN, shipSum, shipN, fulSum, fulN int
	var onTime, late int
	for i := range rows {
		r := &rows[i]
		if r.DeliveredCustomer != nil {
			k.OrdersDelivered++
			if r.OnTime != nil && *r.OnTime {
				onTime++
			}
			if r.SLADiffDays != nil && *r.SLADiffDays > 0 {
				late++
			}
		}
		if r.ProcessingDays != nil {
			procSum += *r.ProcessingDays
			procN++
		}
		if r.ShippingDays != nil {
			shipSum += *r.ShippingDays
			shipN++
		}
		if r.FulfillmentDays != nil {
			fulSum += *r.FulfillmentDays
			fulN++
		}
	}

	if k.OrdersDelivered > 0 {
		k.OnTimeRatePct = float64(onTime) / float64(k.OrdersDelivered) * 100
		k.SLADelayRatePct = float64(late) / float64(k.OrdersDelivered) * 100
	}
	if procN > 0 {
		k.ProcessingDaysAvg = float64(procSum) / float64(procN)
	}
	if shipN > 0 {
		k.ShippingDaysAvg = float64(shipSum) / float64(shipN)
	}
	if fulN > 0 {
		k.FulfillmentDaysAvg = float64(fulSum) / float64(fulN)
	}
	return k
}
