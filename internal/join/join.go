// Package join merges the validated orders and order-items tables on
// order_id and accounts for everything the inner join drops.
package join

import (
	"errors"
	"fmt"

	"orderqa/internal/model"
)

// ErrCardinality signals that an item row matched more than one order row.
// The orders schema guarantees a unique order_id, so hitting this means the
// upstream data is corrupt; the run must stop.
var ErrCardinality = errors.New("join cardinality violation: orders side is not one-to-many")

// Report carries the informational join-quality metrics. Nothing in here is
// blocking; it exists so a human can judge how much the join dropped.
type Report struct {
	OrdersIn   int
	ItemsIn    int
	MergedRows int

	DistinctOrdersIn  int
	DistinctOrdersOut int
	OrdersLost        int
	ItemsLost         int

	InputRevenue       float64
	MergedRevenue      float64
	RevenueCoveragePct float64

	ItemsPerOrderMean float64
	ItemsPerOrderMax  int
	SingleItemOrders  int
	MultiItemOrders   int

	UniqueCustomers int
}

// Merge performs the inner one-to-many join. Orders with zero matching
// items are dropped entirely; item rows referencing an absent order_id are
// dropped too. Exactly one merged row comes out per surviving item row —
// the items_lost metric depends on that invariant.
func Merge(orders []model.Order, items []model.OrderItem) ([]model.Merged, Report, error) {
	index := make(map[string]model.Order, len(orders))
	for _, o := range orders {
		if _, dup := index[o.OrderID]; dup {
			return nil, Report{}, fmt.Errorf("%w: order_id %q", ErrCardinality, o.OrderID)
		}
		index[o.OrderID] = o
	}

	merged := make([]model.Merged, 0, len(items))
	perOrder := make(map[string]int)
	customers := make(map[string]struct{})
	var inputRevenue, mergedRevenue float64

	for _, it := range items {
		inputRevenue += it.Price
		o, ok := index[it.OrderID]
		if !ok {
			continue
		}
		merged = append(merged, model.Merged{Order: o, Item: it})
		perOrder[it.OrderID]++
		customers[o.CustomerID] = struct{}{}
		mergedRevenue += it.Price
	}

	r := Report{
		OrdersIn:          len(orders),
		ItemsIn:           len(items),
		MergedRows:        len(merged),
		DistinctOrdersIn:  len(index),
		DistinctOrdersOut: len(perOrder),
		InputRevenue:      inputRevenue,
		MergedRevenue:     mergedRevenue,
		UniqueCustomers:   len(customers),
	}
	r.OrdersLost = r.DistinctOrdersIn - r.DistinctOrdersOut
	r.ItemsLost = r.ItemsIn - r.MergedRows

	if inputRevenue > 0 {
		r.RevenueCoveragePct = mergedRevenue / inputRevenue * 100
	} else {
		// No input revenue means nothing to lose.
		r.RevenueCoveragePct = 100
	}

	if len(perOrder) > 0 {
		r.ItemsPerOrderMean = float64(len(merged)) / float64(len(perOrder))
	}
	for _, n := range perOrder {
		if n > r.ItemsPerOrderMax {
			r.ItemsPerOrderMax = n
		}
		if n == 1 {
			r.SingleItemOrders++
		} else {
			r.MultiItemOrders++
		}
	}
	return merged, r, nil
}
