package models

// SecurityInfo describes a tradable instrument from the securities catalog.
type SecurityInfo struct {
	Symbol   string  `json:"symbol" csv:"symbol"`
	Market   string  `json:"market" csv:"market"`
	Currency string  `json:"currency" csv:"currency"`
	Name     string  `json:"name" csv:"name"`
	Price    float64 `json:"price" csv:"price"`
}

// OrderForm is the structured result of parsing a natural-language order.
// Nil Security means no catalog instrument was recognized. Nil Quantity
// means unspecified, and nil Price means a market order.
type OrderForm struct {
	Security      *SecurityInfo `json:"security"`
	ContactMethod ContactMethod `json:"contact_method"`
	Quantity      *int          `json:"quantity"`
	Price         *float64      `json:"price"`
	TimeInForce   TimeInForce   `json:"time_in_force"`
	GTDDate       string        `json:"gtd_date,omitempty"`
	TraderText    string        `json:"trader_text"`
}

// NewOrderForm returns an OrderForm with the documented defaults applied.
func NewOrderForm() OrderForm {
	return OrderForm{
		ContactMethod: ContactPhone,
		TimeInForce:   TIFDay,
	}
}
