package dataset

import (
	"orderqa/internal/model"
	"orderqa/internal/schema"
)

// ItemsSchema is the declared contract for the order-items dataset. The
// order_id here is a foreign key into orders, so it is not unique: many
// items share one order.
func ItemsSchema() schema.Schema {
	return schema.Schema{
		Table: "order_items",
		Columns: []schema.Column{
			{Name: ColOrderID, Kind: schema.String},
			{Name: ColOrderItemID, Kind: schema.String},
			{Name: ColProductID, Kind: schema.String},
			{Name: ColSellerID, Kind: schema.String},
			{Name: ColShippingLimit, Kind: schema.Datetime},
			{Name: ColPrice, Kind: schema.Float},
			{Name: ColFreightValue, Kind: schema.Float},
		},
	}
}

// Items is the loaded order-items table.
type Items struct {
	Rows []model.OrderItem
	*rawTable
}

// LoadItems reads the order-items CSV at path, applying ItemsSchema.
func LoadItems(path string) (*Items, error) {
	header, records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	raw := newRawTable(header, records, ItemsSchema())

	rows := make([]model.OrderItem, 0, len(records))
	for i, rec := range records {
		price, err := parseMoney(path, i+1, ColPrice, raw.cell(rec, ColPrice))
		if err != nil {
			return nil, err
		}
		freight, err := parseMoney(path, i+1, ColFreightValue, raw.cell(rec, ColFreightValue))
		if err != nil {
			return nil, err
		}
		rows = append(rows, model.OrderItem{
			OrderID:       raw.cell(rec, ColOrderID),
			OrderItemID:   raw.cell(rec, ColOrderItemID),
			ProductID:     raw.cell(rec, ColProductID),
			SellerID:      raw.cell(rec, ColSellerID),
			ShippingLimit: parseTime(raw.cell(rec, ColShippingLimit)),
			Price:         price,
			FreightValue:  freight,
		})
	}
	return &Items{Rows: rows, rawTable: raw}, nil
}
