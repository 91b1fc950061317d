package join

import (
	"sort"
	"time"

	"orderqa/internal/model"
)

// MissingSampleSize is how many missing orders the report lists verbatim.
const MissingSampleSize = 10

// MissingOrder is one order that has no rows in the item table.
type MissingOrder struct {
	OrderID    string
	Status     string
	PurchaseTS *time.Time
}

// StatusCount is one entry of the status breakdown over missing orders.
type StatusCount struct {
	Status  string
	Count   int
	Percent float64
}

// MissingReport explains the orders the inner join dropped: how many, a
// sample, and their status mix. Canceled and unavailable orders typically
// dominate because no item ever shipped for them.
type MissingReport struct {
	Count    int
	Sample   []MissingOrder
	ByStatus []StatusCount
}

// InvestigateMissing profiles the orders whose order_id never appears in
// the item table. sampleN caps the listed sample; sampleN <= 0 uses
// MissingSampleSize. Input order is preserved in the sample.
func InvestigateMissing(orders []model.Order, items []model.OrderItem, sampleN int) MissingReport {
	if sampleN <= 0 {
		sampleN = MissingSampleSize
	}
	withItems := make(map[string]struct{}, len(items))
	for _, it := range items {
		withItems[it.OrderID] = struct{}{}
	}

	var rep MissingReport
	counts := make(map[string]int)
	for _, o := range orders {
		if _, ok := withItems[o.OrderID]; ok {
			continue
		}
		rep.Count++
		counts[o.Status]++
		if len(rep.Sample) < sampleN {
			rep.Sample = append(rep.Sample, MissingOrder{
				OrderID:    o.OrderID,
				Status:     o.Status,
				PurchaseTS: o.PurchaseTS,
			})
		}
	}

	for status, n := range counts {
		rep.ByStatus = append(rep.ByStatus, StatusCount{
			Status:  status,
			Count:   n,
			Percent: float64(n) / float64(rep.Count) * 100,
		})
	}
	sort.Slice(rep.ByStatus, func(i, j int) bool {
		if rep.ByStatus[i].Count != rep.ByStatus[j].Count {
			return rep.ByStatus[i].Count > rep.ByStatus[j].Count
		}
		return rep.ByStatus[i].Status < rep.ByStatus[j].Status
	})
	return rep
}
