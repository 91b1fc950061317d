// Package report renders the human-readable console summary of a pipeline
// run: validation outcome, join quality, missing-order breakdown, temporal
// patterns and delivery/SLA KPIs. The output is for an operator's eyes,
// not for machines.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"orderqa/internal/dataset"
	"orderqa/internal/export"
	"orderqa/internal/features"
	"orderqa/internal/join"
	"orderqa/internal/model"
)

var monthNames = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Render writes the full console report for one run.
func Render(w io.Writer, rows []model.Merged, jr join.Report, mr join.MissingReport, kpis features.KPIs) {
	section(w, "MERGED DATASET")
	fmt.Fprintf(w, "Total rows: %d\n", len(rows))
	fmt.Fprintf(w, "Total columns: %d\n", len(export.Columns()))

	section(w, "MISSING VALUES ANALYSIS")
	for _, mv := range missingValues(rows) {
		fmt.Fprintf(w, "%-32s %d\n", mv.column, mv.count)
	}

	section(w, "JOIN QUALITY METRICS")
	fmt.Fprintf(w, "Original orders dataset: %d rows\n", jr.OrdersIn)
	fmt.Fprintf(w, "Original items dataset: %d rows\n", jr.ItemsIn)
	fmt.Fprintf(w, "Merged dataset: %d rows\n", jr.MergedRows)
	fmt.Fprintf(w, "Orders lost in merge: %d\n", jr.OrdersLost)
	fmt.Fprintf(w, "Items lost in merge: %d\n", jr.ItemsLost)

	section(w, "BUSINESS IMPACT VALIDATION")
	fmt.Fprintf(w, "Original total revenue: $%.2f\n", jr.InputRevenue)
	fmt.Fprintf(w, "Merged dataset revenue: $%.2f\n", jr.MergedRevenue)
	fmt.Fprintf(w, "Revenue coverage: %.1f%%\n", jr.RevenueCoveragePct)
	fmt.Fprintf(w, "Unique customers in merged dataset: %d\n", jr.UniqueCustomers)

	section(w, "ORDER RELATIONSHIP ANALYSIS")
	fmt.Fprintf(w, "Average items per order: %.2f\n", jr.ItemsPerOrderMean)
	fmt.Fprintf(w, "Max items in single order: %d\n", jr.ItemsPerOrderMax)
	fmt.Fprintf(w, "Orders with 1 item: %d\n", jr.SingleItemOrders)
	fmt.Fprintf(w, "Orders with multiple items: %d\n", jr.MultiItemOrders)

	section(w, "INVESTIGATING MISSING ORDERS")
	fmt.Fprintf(w, "Orders without items: %d\n", mr.Count)
	if len(mr.Sample) > 0 {
		fmt.Fprintln(w, "Sample of missing orders:")
		for _, mo := range mr.Sample {
			fmt.Fprintf(w, "  %s  %-12s %s\n", mo.OrderID, mo.Status, fmtTime(mo.PurchaseTS))
		}
	}
	if len(mr.ByStatus) > 0 {
		fmt.Fprintln(w, "Status breakdown of missing orders:")
		for _, sc := range mr.ByStatus {
			fmt.Fprintf(w, "  %-12s %6d  %5.1f%%\n", sc.Status, sc.Count, sc.Percent)
		}
	}

	renderTemporal(w, rows)
	renderStatus(w, rows)
	renderPriceStats(w, rows)

	section(w, "DELIVERY & SLA KPIs")
	fmt.Fprintf(w, "orders_total: %d\n", kpis.OrdersTotal)
	fmt.Fprintf(w, "orders_delivered: %d\n", kpis.OrdersDelivered)
	fmt.Fprintf(w, "on_time_rate_%%: %.2f\n", kpis.OnTimeRatePct)
	fmt.Fprintf(w, "processing_days_avg: %.2f\n", kpis.ProcessingDaysAvg)
	fmt.Fprintf(w, "shipping_days_avg: %.2f\n", kpis.ShippingDaysAvg)
	fmt.Fprintf(w, "fulfillment_days_avg: %.2f\n", kpis.FulfillmentDaysAvg)
	fmt.Fprintf(w, "sla_delay_rate_%%: %.2f\n", kpis.SLADelayRatePct)
}

func renderTemporal(w io.Writer, rows []model.Merged) {
	section(w, "TEMPORAL PATTERNS")

	var first, last *time.Time
	years := make(map[int]int)
	months := make(map[int]int)
	hours := make(map[int]int)
	for i := range rows {
		ts := rows[i].PurchaseTS
		if ts == nil {
			continue
		}
		if first == nil || ts.Before(*first) {
			first = ts
		}
		if last == nil || ts.After(*last) {
			last = ts
		}
		if rows[i].Year != nil {
			years[*rows[i].Year]++
		}
		if rows[i].Month != nil {
			months[*rows[i].Month]++
		}
		if rows[i].Hour != nil {
			hours[*rows[i].Hour]++
		}
	}
	fmt.Fprintf(w, "First order: %s\n", fmtTime(first))
	fmt.Fprintf(w, "Last order: %s\n", fmtTime(last))

	fmt.Fprintln(w, "Orders per year:")
	for _, y := range sortedKeys(years) {
		fmt.Fprintf(w, "  %d: %d orders\n", y, years[y])
	}

	fmt.Fprintln(w, "Peak hours (top 3):")
	for _, h := range topKeys(hours, 3) {
		fmt.Fprintf(w, "  %02d:00 - %d orders\n", h, hours[h])
	}

	fmt.Fprintln(w, "Orders per month:")
	for _, m := range sortedKeys(months) {
		fmt.Fprintf(w, "  %-4s (%2d): %d orders\n", monthNames[m-1], m, months[m])
	}
}

func renderStatus(w io.Writer, rows []model.Merged) {
	section(w, "ORDER STATUS DISTRIBUTION")
	counts := make(map[string]int)
	for i := range rows {
		counts[rows[i].Status]++
	}
	statuses := make([]string, 0, len(counts))
	for s := range counts {
		statuses = append(statuses, s)
	}
	sort.Slice(statuses, func(i, j int) bool {
		if counts[statuses[i]] != counts[statuses[j]] {
			return counts[statuses[i]] > counts[statuses[j]]
		}
		return statuses[i] < statuses[j]
	})
	for _, s := range statuses {
		fmt.Fprintf(w, "%-12s %d\n", s, counts[s])
	}
	if len(rows) > 0 {
		rate := float64(counts[model.StatusCanceled]) / float64(len(rows)) * 100
		fmt.Fprintf(w, "Cancel rate: %.2f%%\n", rate)
	}
}

func renderPriceStats(w io.Writer, rows []model.Merged) {
	section(w, "DESCRIPTIVE STATISTICS")
	price := newStats()
	freight := newStats()
	for i := range rows {
		price.add(rows[i].Item.Price)
		freight.add(rows[i].Item.FreightValue)
	}
	fmt.Fprintf(w, "%-14s %8s %10s %10s %10s\n", "", "count", "mean", "min", "max")
	fmt.Fprintf(w, "%-14s %8d %10.2f %10.2f %10.2f\n", dataset.ColPrice, price.n, price.mean(), price.min, price.max)
	fmt.Fprintf(w, "%-14s %8d %10.2f %10.2f %10.2f\n", dataset.ColFreightValue, freight.n, freight.mean(), freight.min, freight.max)
}

type missing struct {
	column string
	count  int
}

func missingValues(rows []model.Merged) []missing {
	nilTime := func(get func(*model.Merged) *time.Time) int {
		n := 0
		for i := range rows {
			if get(&rows[i]) == nil {
				n++
			}
		}
		return n
	}
	nilInt := func(get func(*model.Merged) *int) int {
		n := 0
		for i := range rows {
			if get(&rows[i]) == nil {
				n++
			}
		}
		return n
	}
	onTimeNil := 0
	for i := range rows {
		if rows[i].OnTime == nil {
			onTimeNil++
		}
	}
	return []missing{
		{dataset.ColPurchaseTS, nilTime(func(r *model.Merged) *time.Time { return r.PurchaseTS })},
		{dataset.ColApprovedAt, nilTime(func(r *model.Merged) *time.Time { return r.ApprovedAt })},
		{dataset.ColDeliveredCarrier, nilTime(func(r *model.Merged) *time.Time { return r.DeliveredCarrier })},
		{dataset.ColDeliveredCustomer, nilTime(func(r *model.Merged) *time.Time { return r.DeliveredCustomer })},
		{dataset.ColEstimatedDelivery, nilTime(func(r *model.Merged) *time.Time { return r.EstimatedDelivery })},
		{dataset.ColShippingLimit, nilTime(func(r *model.Merged) *time.Time { return r.Item.ShippingLimit })},
		{export.ColProcessingDays, nilInt(func(r *model.Merged) *int { return r.ProcessingDays })},
		{export.ColShippingDays, nilInt(func(r *model.Merged) *int { return r.ShippingDays })},
		{export.ColFulfillmentDays, nilInt(func(r *model.Merged) *int { return r.FulfillmentDays })},
		{export.ColSLADiffDays, nilInt(func(r *model.Merged) *int { return r.SLADiffDays })},
		{export.ColOnTime, onTimeNil},
	}
}

type stats struct {
	n        int
	sum      float64
	min, max float64
}

func newStats() *stats { return &stats{} }

func (s *stats) add(v float64) {
	if s.n == 0 || v < s.min {
		s.min = v
	}
	if s.n == 0 || v > s.max {
		s.max = v
	}
	s.sum += v
	s.n++
}

func (s *stats) mean() float64 {
	if s.n == 0 {
		return 0
	}
	return s.sum / float64(s.n)
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("=", len(title)))
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// topKeys returns the n keys with the highest counts, in key order.
func topKeys(m map[int]int, n int) []int {
	keys := sortedKeys(m)
	sort.SliceStable(keys, func(i, j int) bool { return m[keys[i]] > m[keys[j]] })
	if len(keys) > n {
		keys = keys[:n]
	}
	sort.Ints(keys)
	return keys
}

func fmtTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
