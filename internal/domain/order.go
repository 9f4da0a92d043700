package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the ISO-8601 form stored in the order slot (UTC, millisecond precision)
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Order is the basket snapshot taken at checkout
type Order struct {
	Items     []RawEntry // Basket contents at checkout, raw shapes
	CreatedAt time.Time  // Captured once per checkout
	Date      string     // Locale-formatted date, e.g. 1/2/2006
	Time      string     // Locale-formatted time, e.g. 3:04:05 PM
}

type orderJSON struct {
	Items     []RawEntry `json:"items"`
	Timestamp string     `json:"timestamp"`
	Date      string     `json:"date"`
	Time      string     `json:"time"`
}

func (o Order) MarshalJSON() ([]byte, error) {
	items := o.Items
	if items == nil {
		items = []RawEntry{}
	}
	return json.Marshal(orderJSON{
		Items:     items,
		Timestamp: o.CreatedAt.UTC().Format(TimestampLayout),
		Date:      o.Date,
		Time:      o.Time,
	})
}

func (o *Order) UnmarshalJSON(data []byte) error {
	var raw orderJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	createdAt, err := time.Parse(time.RFC3339Nano, raw.Timestamp)
	if err != nil {
		return fmt.Errorf("invalid order timestamp %q: %w", raw.Timestamp, err)
	}

	o.Items = raw.Items
	o.CreatedAt = createdAt
	o.Date = raw.Date
	o.Time = raw.Time
	return nil
}

// GroupedLine is one aggregated basket line for a (product, variant) pair
type GroupedLine struct {
	ProductID string `json:"product"`
	VariantID string `json:"variant"`
	Quantity  int    `json:"quantity"` // Always >= 1
}
