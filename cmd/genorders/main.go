package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/segmentio/kafka-go"

	"orderqa/internal/dataset"
	"orderqa/internal/model"
)

// Config holds CLI flags for the generator.
type Config struct {
	Count     int
	OrdersOut string
	ItemsOut  string
	Seed      int64
	Bootstrap string // publish order events when non-empty
	Topic     string
}

// orderEvent is the raw event shape published to the ingestion topic.
type orderEvent struct {
	OrderID    string `json:"orderId"`
	CustomerID string `json:"customerId"`
	Status     string `json:"status"`
	PurchaseTS string `json:"purchaseTs"`
}

const timeLayout = "2006-01-02 15:04:05"

func main() {
	cfg := readFlags()
	if err := run(cfg); err != nil {
		log.Fatalf("generation failed: %v", err)
	}
}

func readFlags() Config {
	var cfg Config
	flag.IntVar(&cfg.Count, "count", 100, "number of orders to generate")
	flag.StringVar(&cfg.OrdersOut, "orders-out", "olist_orders_dataset.csv", "orders CSV output")
	flag.StringVar(&cfg.ItemsOut, "items-out", "olist_order_items_dataset.csv", "items CSV output")
	flag.Int64Var(&cfg.Seed, "seed", 0, "rng seed (0 = time-based)")
	flag.StringVar(&cfg.Bootstrap, "bootstrap", "", "kafka bootstrap servers; publish events when set")
	flag.StringVar(&cfg.Topic, "topic", "order-events", "kafka topic for order events")
	flag.Parse()
	return cfg
}

func run(cfg Config) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	orders, items := generate(cfg.Count, rng)

	if err := writeOrders(cfg.OrdersOut, orders); err != nil {
		return err
	}
	if err := writeItems(cfg.ItemsOut, items); err != nil {
		return err
	}
	log.Printf("generated %d orders (%d item rows) to %s, %s", len(orders), len(items), cfg.OrdersOut, cfg.ItemsOut)

	if cfg.Bootstrap != "" {
		if err := publish(cfg, orders); err != nil {
			return fmt.Errorf("publish events: %w", err)
		}
		log.Printf("published %d order events to %s", len(orders), cfg.Topic)
	}
	return nil
}

func generate(count int, rng *rand.Rand) ([]model.Order, []model.OrderItem) {
	products := []string{"p1", "p2", "p3", "p4", "p5"}
	sellers := []string{"s1", "s2", "s3"}
	base := time.Date(2017, 1, 1, 8, 0, 0, 0, time.UTC)

	orders := make([]model.Order, 0, count)
	var items []model.OrderItem
	for i := 0; i < count; i++ {
		purchase := base.Add(time.Duration(i) * 10 * time.Minute)
		o := model.Order{
			OrderID:    fmt.Sprintf("o%04d", i+1),
			CustomerID: fmt.Sprintf("c%04d", 1+rng.Intn(count)),
			Status:     model.StatusDelivered,
			PurchaseTS: &purchase,
		}

		// Roughly one in ten orders is canceled before any item ships;
		// those drive the join loss the pipeline reports.
		if rng.Intn(10) == 0 {
			o.Status = model.StatusCanceled
			orders = append(orders, o)
			continue
		}

		approved := purchase.Add(time.Duration(1+rng.Intn(12)) * time.Hour)
		carrier := approved.Add(time.Duration(1+rng.Intn(3)) * 24 * time.Hour)
		customer := carrier.Add(time.Duration(1+rng.Intn(10)) * 24 * time.Hour)
		estimate := purchase.Add(time.Duration(7+rng.Intn(14)) * 24 * time.Hour)
		o.ApprovedAt = &approved
		o.DeliveredCarrier = &carrier
		o.DeliveredCustomer = &customer
		o.EstimatedDelivery = &estimate
		orders = append(orders, o)

		n := 1 + rng.Intn(3)
		for j := 0; j < n; j++ {
			limit := approved.Add(5 * 24 * time.Hour)
			items = append(items, model.OrderItem{
				OrderID:       o.OrderID,
				OrderItemID:   fmt.Sprintf("%d", j+1),
				ProductID:     products[rng.Intn(len(products))],
				SellerID:      sellers[rng.Intn(len(sellers))],
				ShippingLimit: &limit,
				Price:         float64(10+rng.Intn(290)) + 0.9,
				FreightValue:  float64(5 + rng.Intn(25)),
			})
		}
	}
	return orders, items
}

func writeOrders(path string, orders []model.Order) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		dataset.ColOrderID, dataset.ColCustomerID, dataset.ColOrderStatus,
		dataset.ColPurchaseTS, dataset.ColApprovedAt, dataset.ColDeliveredCarrier,
		dataset.ColDeliveredCustomer, dataset.ColEstimatedDelivery,
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, o := range orders {
		rec := []string{
			o.OrderID, o.CustomerID, o.Status,
			fmtTime(o.PurchaseTS), fmtTime(o.ApprovedAt), fmtTime(o.DeliveredCarrier),
			fmtTime(o.DeliveredCustomer), fmtTime(o.EstimatedDelivery),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

func writeItems(path string, items []model.OrderItem) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		dataset.ColOrderID, dataset.ColOrderItemID, dataset.ColProductID,
		dataset.ColSellerID, dataset.ColShippingLimit, dataset.ColPrice, dataset.ColFreightValue,
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, it := range items {
		rec := []string{
			it.OrderID, it.OrderItemID, it.ProductID, it.SellerID,
			fmtTime(it.ShippingLimit),
			fmt.Sprintf("%.2f", it.Price),
			fmt.Sprintf("%.2f", it.FreightValue),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

func publish(cfg Config, orders []model.Order) error {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Bootstrap),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
	defer w.Close()

	msgs := make([]kafka.Message, 0, len(orders))
	for _, o := range orders {
		ev := orderEvent{
			OrderID:    o.OrderID,
			CustomerID: o.CustomerID,
			Status:     o.Status,
			PurchaseTS: fmtTime(o.PurchaseTS),
		}
		b, err := json.Marshal(&ev)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", o.OrderID, err)
		}
		msgs = append(msgs, kafka.Message{Key: []byte(o.OrderID), Value: b})
	}
	return w.WriteMessages(context.Background(), msgs...)
}

func fmtTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}
