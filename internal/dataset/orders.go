package dataset

import (
	"orderqa/internal/model"
	"orderqa/internal/schema"
)

// OrdersSchema is the declared contract for the orders dataset.
func OrdersSchema() schema.Schema {
	return schema.Schema{
		Table: "orders",
		Columns: []schema.Column{
			{Name: ColOrderID, Kind: schema.String, Unique: true},
			{Name: ColCustomerID, Kind: schema.String},
			{Name: ColOrderStatus, Kind: schema.Categorical, Domain: model.Statuses},
			{Name: ColPurchaseTS, Kind: schema.Datetime},
			{Name: ColApprovedAt, Kind: schema.Datetime},
			{Name: ColDeliveredCarrier, Kind: schema.Datetime},
			{Name: ColDeliveredCustomer, Kind: schema.Datetime},
			{Name: ColEstimatedDelivery, Kind: schema.Datetime},
		},
	}
}

// Orders is the loaded orders table: typed rows plus the raw view the
// validator checks.
type Orders struct {
	Rows []model.Order
	*rawTable
}

// LoadOrders reads the orders CSV at path, applying OrdersSchema. It does
// not validate; pass the result to OrdersSchema().Validate.
func LoadOrders(path string) (*Orders, error) {
	header, records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	raw := newRawTable(header, records, OrdersSchema())

	rows := make([]model.Order, 0, len(records))
	for _, rec := range records {
		rows = append(rows, model.Order{
			OrderID:           raw.cell(rec, ColOrderID),
			CustomerID:        raw.cell(rec, ColCustomerID),
			Status:            raw.cell(rec, ColOrderStatus),
			PurchaseTS:        parseTime(raw.cell(rec, ColPurchaseTS)),
			ApprovedAt:        parseTime(raw.cell(rec, ColApprovedAt)),
			DeliveredCarrier:  parseTime(raw.cell(rec, ColDeliveredCarrier)),
			DeliveredCustomer: parseTime(raw.cell(rec, ColDeliveredCustomer)),
			EstimatedDelivery: parseTime(raw.cell(rec, ColEstimatedDelivery)),
		})
	}
	return &Orders{Rows: rows, rawTable: raw}, nil
}
