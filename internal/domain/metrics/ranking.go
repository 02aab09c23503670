package metrics

import (
	"sort"
	"time"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/pkg/money"
)

// OrderRef is the common projection used to compare retail and stitching orders.
type OrderRef struct {
	Kind          string       `json:"kind"`
	BillNo        int64        `json:"bill_no"`
	CustomerPhone string       `json:"customer_phone"`
	CustomerName  string       `json:"customer_name"`
	Amount        money.Amount `json:"amount"`
	Profit        money.Amount `json:"profit"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Project maps both order kinds onto OrderRef, retail first.
func Project(orders []entity.Order, stitching []entity.StitchingOrder) []OrderRef {
	refs := make([]OrderRef, 0, len(orders)+len(stitching))
	for i := range orders {
		o := &orders[i]
		refs = append(refs, OrderRef{
			Kind:          KindRetail,
			BillNo:        o.BillNo,
			CustomerPhone: o.CustomerPhone,
			CustomerName:  o.CustomerName,
			Amount:        o.TotalAmount,
			Profit:        o.TotalProfit,
			CreatedAt:     o.CreatedAt,
		})
	}
	for i := range stitching {
		o := &stitching[i]
		refs = append(refs, OrderRef{
			Kind:          KindStitching,
			BillNo:        o.BillNo,
			CustomerPhone: o.CustomerPhone,
			CustomerName:  o.CustomerName,
			Amount:        o.TotalAmount,
			Profit:        o.Profit(),
			CreatedAt:     o.CreatedAt,
		})
	}
	return refs
}

// HighestValue returns the order with the largest amount; the first one wins a tie.
func HighestValue(refs []OrderRef) *OrderRef {
	return maxBy(refs, func(r OrderRef) money.Amount { return r.Amount })
}

// MostProfitable returns the order with the largest profit; the first one wins a tie.
func MostProfitable(refs []OrderRef) *OrderRef {
	return maxBy(refs, func(r OrderRef) money.Amount { return r.Profit })
}

func maxBy(refs []OrderRef, key func(OrderRef) money.Amount) *OrderRef {
	if len(refs) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(refs); i++ {
		if key(refs[i]) > key(refs[best]) {
			best = i
		}
	}
	r := refs[best]
	return &r
}

// CustomerRevenue is one row of the top-customers table.
type CustomerRevenue struct {
	Phone   string       `json:"phone"`
	Name    string       `json:"name"`
	Revenue money.Amount `json:"revenue"`
	Orders  int          `json:"orders"`
}

// TopCustomers groups both order kinds by phone, sums revenue and returns the
// n largest, ties broken by phone. n <= 0 returns every customer.
func TopCustomers(orders []entity.Order, stitching []entity.StitchingOrder, n int) []CustomerRevenue {
	byPhone := make(map[string]*CustomerRevenue)
	add := func(phone, name string, amount money.Amount) {
		c, ok := byPhone[phone]
		if !ok {
			c = &CustomerRevenue{Phone: phone}
			byPhone[phone] = c
		}
		if name != "" {
			c.Name = name
		}
		c.Revenue += amount
		c.Orders++
	}

	for i := range orders {
		add(orders[i].CustomerPhone, orders[i].CustomerName, orders[i].TotalAmount)
	}
	for i := range stitching {
		add(stitching[i].CustomerPhone, stitching[i].CustomerName, stitching[i].TotalAmount)
	}

	out := make([]CustomerRevenue, 0, len(byPhone))
	for _, c := range byPhone {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Phone < out[j].Phone
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
