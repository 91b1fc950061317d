package model

import "time"

// Order statuses observed in the orders dataset.
const (
	StatusCreated     = "created"
	StatusApproved    = "approved"
	StatusProcessing  = "processing"
	StatusShipped     = "shipped"
	StatusDelivered   = "delivered"
	StatusCanceled    = "canceled"
	StatusUnavailable = "unavailable"
	StatusInvoiced    = "invoiced"
)

// Statuses is the bounded domain of the order_status categorical.
var Statuses = []string{
	StatusCreated,
	StatusApproved,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCanceled,
	StatusUnavailable,
	StatusInvoiced,
}

// Order is one row of the orders dataset. Timestamp fields are nil when the
// source value is empty or failed to parse.
type Order struct {
	OrderID           string
	CustomerID        string
	Status            string
	PurchaseTS        *time.Time
	ApprovedAt        *time.Time
	DeliveredCarrier  *time.Time
	DeliveredCustomer *time.Time
	EstimatedDelivery *time.Time
}

// OrderItem is one row of the order-items dataset. Many items may share an
// OrderID; item rows carry no uniqueness constraint of their own.
type OrderItem struct {
	OrderID       string
	OrderItemID   string
	ProductID     string
	SellerID      string
	ShippingLimit *time.Time
	Price         float64
	FreightValue  float64
}

// Merged is one (order, item) pair from the inner join, enriched in place
// with calendar and duration features. Derived fields stay nil where the
// eligibility mask for the field does not hold.
type Merged struct {
	Order
	Item OrderItem

	Year    *int
	Month   *int
	Weekday *int // 0=Monday .. 6=Sunday
	Hour    *int

	ProcessingDays  *int
	ShippingDays    *int
	FulfillmentDays *int
	SLADiffDays     *int
	OnTime          *bool
}
