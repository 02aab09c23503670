package entity

import "github.com/sangkips/boutique-api/pkg/money"

// ReceiptHeader holds the shop header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	GSTIN     string `json:"gstin,omitempty"`
}

// ReceiptItem represents a single line on a receipt.
type ReceiptItem struct {
	Name      string       `json:"name"`
	Quantity  int          `json:"quantity"`
	UnitPrice money.Amount `json:"unit_price"`
	Total     money.Amount `json:"total"`
}

// ReceiptCharge is an extra billed line such as shop fabric or accessories.
type ReceiptCharge struct {
	Label  string       `json:"label"`
	Amount money.Amount `json:"amount"`
}

// Receipt is a printable value object composed from an order at print time.
// It is not persisted.
type Receipt struct {
	Header   ReceiptHeader   `json:"header"`
	Title    string          `json:"title"`
	BillNo   string          `json:"bill_no"`
	Date     string          `json:"date"`
	Cashier  string          `json:"cashier,omitempty"`
	Customer string          `json:"customer,omitempty"`
	Phone    string          `json:"phone,omitempty"`
	Items    []ReceiptItem   `json:"items"`
	Charges  []ReceiptCharge `json:"charges,omitempty"`
	Payments []PaymentRecord `json:"payments,omitempty"`
	Total    money.Amount    `json:"total"`
	Paid     money.Amount    `json:"paid"`
	Due      money.Amount    `json:"due"`
	Status   string          `json:"status"`
	Footer   string          `json:"footer,omitempty"`
}
