// Package metrics aggregates dashboard figures from fetched orders and stock.
//
// Every function is a pure reduction over its inputs and is recomputed from
// scratch on each call. A record whose embedded JSON failed to decode
// contributes nothing to the figures derived from that JSON and is reported
// in Summary.Quarantined; it never aborts the aggregation.
package metrics

import (
	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/internal/domain/enum"
	"github.com/sangkips/boutique-api/pkg/money"
)

// Order kinds used in projections and quarantine reports.
const (
	KindRetail    = "retail"
	KindStitching = "stitching"
)

// Input is everything the dashboard reduces over.
type Input struct {
	Orders          []entity.Order
	StitchingOrders []entity.StitchingOrder
	Items           []entity.Item
	Fabrics         []entity.Fabric
	Accessories     []entity.Accessory
}

// PaymentSplit totals collected payments by method.
type PaymentSplit struct {
	Cash  money.Amount `json:"cash"`
	UPI   money.Amount `json:"upi"`
	Card  money.Amount `json:"card"`
	Bank  money.Amount `json:"bank"`
	Other money.Amount `json:"other"`
}

// Total is the sum over all methods.
func (p PaymentSplit) Total() money.Amount {
	return p.Cash + p.UPI + p.Card + p.Bank + p.Other
}

func (p *PaymentSplit) add(r entity.PaymentRecord) {
	switch r.Method {
	case enum.PaymentMethodCash:
		p.Cash += r.Amount
	case enum.PaymentMethodUPI:
		p.UPI += r.Amount
	case enum.PaymentMethodCard:
		p.Card += r.Amount
	case enum.PaymentMethodBank:
		p.Bank += r.Amount
	default:
		p.Other += r.Amount
	}
}

// Quarantined identifies a record excluded from JSON-derived figures.
type Quarantined struct {
	Kind   string   `json:"kind"`
	BillNo int64    `json:"bill_no"`
	Fields []string `json:"fields"`
}

// StatusCounts counts orders per status.
type StatusCounts struct {
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Stuck     int `json:"stuck"`
}

func (c *StatusCounts) add(s enum.OrderStatus) {
	switch s {
	case enum.OrderStatusCompleted:
		c.Completed++
	case enum.OrderStatusStuck:
		c.Stuck++
	default:
		c.Pending++
	}
}

// Summary is the headline dashboard.
type Summary struct {
	Revenue          money.Amount  `json:"revenue"`
	RetailRevenue    money.Amount  `json:"retail_revenue"`
	StitchingRevenue money.Amount  `json:"stitching_revenue"`
	Profit           money.Amount  `json:"profit"`
	RetailProfit     money.Amount  `json:"retail_profit"`
	StitchingProfit  money.Amount  `json:"stitching_profit"`
	Dues             money.Amount  `json:"dues"`
	Payments         PaymentSplit  `json:"payments"`
	OrderCount       int           `json:"order_count"`
	StitchingCount   int           `json:"stitching_order_count"`
	Statuses         StatusCounts  `json:"statuses"`
	ItemsSold        int           `json:"items_sold"`
	UnsoldItems      int           `json:"unsold_items"`
	InventoryValue   money.Amount  `json:"inventory_value"`
	PotentialRevenue money.Amount  `json:"potential_revenue"`
	FabricValue      money.Amount  `json:"fabric_value"`
	AccessoryValue   money.Amount  `json:"accessory_value"`
	HighestValue     *OrderRef     `json:"highest_value_order,omitempty"`
	MostProfitable   *OrderRef     `json:"most_profitable_order,omitempty"`
	Quarantined      []Quarantined `json:"quarantined"`
}

// Summarize computes every headline figure.
func Summarize(in Input) *Summary {
	s := &Summary{
		RetailRevenue:    RetailRevenue(in.Orders),
		StitchingRevenue: StitchingRevenue(in.StitchingOrders),
		RetailProfit:     RetailProfit(in.Orders),
		StitchingProfit:  StitchingProfit(in.StitchingOrders),
		Dues:             Dues(in.Orders, in.StitchingOrders),
		Payments:         PaymentTotals(in.Orders, in.StitchingOrders),
		OrderCount:       len(in.Orders),
		StitchingCount:   len(in.StitchingOrders),
		ItemsSold:        ItemsSold(in.Orders),
		UnsoldItems:      UnsoldCount(in.Items),
		InventoryValue:   InventoryValue(in.Items),
		PotentialRevenue: PotentialRevenue(in.Items),
		FabricValue:      FabricValue(in.Fabrics),
		AccessoryValue:   AccessoryValue(in.Accessories),
		Quarantined:      Quarantine(in.Orders, in.StitchingOrders),
	}
	s.Revenue = s.RetailRevenue + s.StitchingRevenue
	s.Profit = s.RetailProfit + s.StitchingProfit

	for i := range in.Orders {
		s.Statuses.add(in.Orders[i].Status)
	}
	for i := range in.StitchingOrders {
		s.Statuses.add(in.StitchingOrders[i].Status)
	}

	refs := Project(in.Orders, in.StitchingOrders)
	s.HighestValue = HighestValue(refs)
	s.MostProfitable = MostProfitable(refs)

	return s
}

// RetailRevenue sums totalAmount over retail orders.
func RetailRevenue(orders []entity.Order) money.Amount {
	var total money.Amount
	for i := range orders {
		total += orders[i].TotalAmount
	}
	return total
}

// StitchingRevenue sums totalAmount over stitching orders.
func StitchingRevenue(orders []entity.StitchingOrder) money.Amount {
	var total money.Amount
	for i := range orders {
		total += orders[i].TotalAmount
	}
	return total
}

// RetailProfit sums the stored totalProfit of retail orders.
func RetailProfit(orders []entity.Order) money.Amount {
	var total money.Amount
	for i := range orders {
		total += orders[i].TotalProfit
	}
	return total
}

// StitchingProfit sums stitching charge, shop fabric and billed accessories.
func StitchingProfit(orders []entity.StitchingOrder) money.Amount {
	var total money.Amount
	for i := range orders {
		total += orders[i].Profit()
	}
	return total
}

// Dues sums totalAmount minus amountPaid over both kinds. Overpaid orders
// reduce the figure.
func Dues(orders []entity.Order, stitching []entity.StitchingOrder) money.Amount {
	var total money.Amount
	for i := range orders {
		total += orders[i].AmountDue()
	}
	for i := range stitching {
		total += stitching[i].AmountDue()
	}
	return total
}

// PaymentTotals groups every recorded payment by method. An order whose
// payment history did not decode contributes nothing.
func PaymentTotals(orders []entity.Order, stitching []entity.StitchingOrder) PaymentSplit {
	var split PaymentSplit
	for i := range orders {
		for _, p := range orders[i].PaymentHistory.Items {
			split.add(p)
		}
	}
	for i := range stitching {
		for _, p := range stitching[i].PaymentHistory.Items {
			split.add(p)
		}
	}
	return split
}

// ItemsSold counts item lines on retail orders; a malformed list counts zero.
func ItemsSold(orders []entity.Order) int {
	n := 0
	for i := range orders {
		n += orders[i].Items.Len()
	}
	return n
}

// UnsoldCount counts items still in stock.
func UnsoldCount(items []entity.Item) int {
	n := 0
	for i := range items {
		if !items[i].Sold {
			n++
		}
	}
	return n
}

// InventoryValue sums cost price over unsold items.
func InventoryValue(items []entity.Item) money.Amount {
	var total money.Amount
	for i := range items {
		if !items[i].Sold {
			total += items[i].CostPrice
		}
	}
	return total
}

// PotentialRevenue sums the list price of unsold items.
func PotentialRevenue(items []entity.Item) money.Amount {
	var total money.Amount
	for i := range items {
		if !items[i].Sold {
			total += items[i].ListPrice()
		}
	}
	return total
}

// FabricValue values remaining fabric at purchase rate.
func FabricValue(fabrics []entity.Fabric) money.Amount {
	var total money.Amount
	for i := range fabrics {
		total += fabrics[i].Stock.StockValue()
	}
	return total
}

// AccessoryValue values remaining accessories at purchase rate.
func AccessoryValue(accessories []entity.Accessory) money.Amount {
	var total money.Amount
	for i := range accessories {
		total += accessories[i].Stock.StockValue()
	}
	return total
}

// Quarantine lists the orders with at least one undecodable embedded column.
func Quarantine(orders []entity.Order, stitching []entity.StitchingOrder) []Quarantined {
	out := []Quarantined{}
	for i := range orders {
		if fields := orders[i].Malformed(); len(fields) > 0 {
			out = append(out, Quarantined{Kind: KindRetail, BillNo: orders[i].BillNo, Fields: fields})
		}
	}
	for i := range stitching {
		if fields := stitching[i].Malformed(); len(fields) > 0 {
			out = append(out, Quarantined{Kind: KindStitching, BillNo: stitching[i].BillNo, Fields: fields})
		}
	}
	return out
}
