package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/internal/domain/repository"
	"github.com/sangkips/boutique-api/pkg/apperror"
	"github.com/sangkips/boutique-api/pkg/money"
	"github.com/sangkips/boutique-api/pkg/printer"
	"go.uber.org/zap"
)

// receiptWidth is the character width of 58mm paper.
const receiptWidth = 32

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer       printer.Printer
	orderRepo     repository.OrderRepository
	stitchingRepo repository.StitchingOrderRepository
	settingsRepo  repository.SettingsRepository
	printerType   string
	loc           *time.Location
	log           *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	orderRepo repository.OrderRepository,
	stitchingRepo repository.StitchingOrderRepository,
	settingsRepo repository.SettingsRepository,
	printerType string,
	loc *time.Location,
	log *zap.Logger,
) *PrinterService {
	if loc == nil {
		loc = time.UTC
	}
	return &PrinterService{
		printer:       p,
		orderRepo:     orderRepo,
		stitchingRepo: stitchingRepo,
		settingsRepo:  settingsRepo,
		printerType:   printerType,
		loc:           loc,
		log:           log,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page carrying the saved shop header.
// The receipt is returned either way so it can be shown when no printer is attached.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	header, footer := s.header(ctx)
	receipt := &entity.Receipt{
		Header: header,
		Title:  "PRINTER TEST",
		BillNo: "0",
		Date:   time.Now().In(s.loc).Format("02/01/2006 15:04"),
		Items: []entity.ReceiptItem{
			{Name: "Test Item", Quantity: 1, UnitPrice: money.FromRupees(10), Total: money.FromRupees(10)},
		},
		Total:  money.FromRupees(10),
		Paid:   money.FromRupees(10),
		Status: "completed",
		Footer: footer,
	}

	if err := s.printer.Print(FormatReceipt(receipt)); err != nil {
		s.log.Warn("test print failed", zap.Error(err))
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// PrintOrderReceipt prints the receipt of a retail bill.
func (s *PrinterService) PrintOrderReceipt(ctx context.Context, billNo int64) (*entity.Receipt, error) {
	order, err := s.orderRepo.GetByBillNo(ctx, billNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	receipt := s.OrderReceipt(ctx, order)
	return receipt, s.print(receipt)
}

// PrintStitchingReceipt prints the receipt of a stitching bill.
func (s *PrinterService) PrintStitchingReceipt(ctx context.Context, billNo int64) (*entity.Receipt, error) {
	order, err := s.stitchingRepo.GetByBillNo(ctx, billNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Stitching order")
	}

	receipt := s.StitchingReceipt(ctx, order)
	return receipt, s.print(receipt)
}

func (s *PrinterService) print(r *entity.Receipt) error {
	if err := s.printer.Print(FormatReceipt(r)); err != nil {
		s.log.Warn("receipt print failed", zap.String("bill_no", r.BillNo), zap.Error(err))
		return fmt.Errorf("print failed: %w", err)
	}
	return nil
}

// OrderReceipt composes the printable receipt of a retail order.
func (s *PrinterService) OrderReceipt(ctx context.Context, o *entity.Order) *entity.Receipt {
	header, footer := s.header(ctx)
	r := &entity.Receipt{
		Header:   header,
		Title:    "RETAIL BILL",
		BillNo:   strconv.FormatInt(o.BillNo, 10),
		Date:     o.CreatedAt.In(s.loc).Format("02/01/2006 15:04"),
		Customer: o.CustomerName,
		Phone:    o.CustomerPhone,
		Payments: o.PaymentHistory.Items,
		Total:    o.TotalAmount,
		Paid:     o.AmountPaid,
		Due:      o.AmountDue(),
		Status:   string(o.Status),
		Footer:   footer,
	}
	for _, it := range o.Items.Items {
		r.Items = append(r.Items, entity.ReceiptItem{
			Name:      it.Title,
			Quantity:  1,
			UnitPrice: it.SellingPrice,
			Total:     it.SellingPrice,
		})
	}
	return r
}

// StitchingReceipt composes the printable receipt of a stitching order.
// Aster fabric is internal costing and never appears on it.
func (s *PrinterService) StitchingReceipt(ctx context.Context, o *entity.StitchingOrder) *entity.Receipt {
	header, footer := s.header(ctx)
	r := &entity.Receipt{
		Header:   header,
		Title:    "STITCHING BILL",
		BillNo:   strconv.FormatInt(o.BillNo, 10),
		Date:     o.CreatedAt.In(s.loc).Format("02/01/2006 15:04"),
		Customer: o.CustomerName,
		Phone:    o.CustomerPhone,
		Payments: o.PaymentHistory.Items,
		Total:    o.TotalAmount,
		Paid:     o.AmountPaid,
		Due:      o.AmountDue(),
		Status:   string(o.Status),
		Footer:   footer,
	}
	for _, it := range o.Items.Items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		r.Items = append(r.Items, entity.ReceiptItem{
			Name:      it.Description,
			Quantity:  qty,
			UnitPrice: it.StitchingCharge,
			Total:     it.StitchingCharge.MulQty(float64(qty)),
		})
	}
	if o.ShopFabricCost > 0 {
		r.Charges = append(r.Charges, entity.ReceiptCharge{Label: "Fabric", Amount: o.ShopFabricCost})
	}
	if o.BilledAccessoryCost > 0 {
		r.Charges = append(r.Charges, entity.ReceiptCharge{Label: "Accessories", Amount: o.BilledAccessoryCost})
	}
	return r
}

// header loads the shop details; a lookup failure still prints with defaults.
func (s *PrinterService) header(ctx context.Context) (entity.ReceiptHeader, string) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.log.Warn("shop settings lookup failed, printing defaults", zap.Error(err))
	}
	if settings == nil {
		settings = entity.DefaultShopSettings()
	}
	return entity.ReceiptHeader{
		StoreName: settings.StoreName,
		Address:   settings.Address,
		Phone:     settings.Phone,
		GSTIN:     settings.GSTIN,
	}, settings.ReceiptFooter
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt) []byte {
	gstin := ""
	if r.Header.GSTIN != "" {
		gstin = "GSTIN: " + r.Header.GSTIN
	}

	doc := printer.NewDocument(receiptWidth).
		Heading(r.Header.StoreName, r.Header.Address, r.Header.Phone, gstin).
		Title(r.Title).
		Rule().
		Field("Bill No:", r.BillNo).
		Field("Date:", r.Date).
		Field("Customer:", r.Customer).
		Field("Phone:", r.Phone).
		Rule()

	for _, item := range r.Items {
		doc.Garment(item.Quantity, item.Name, rs(item.Total), rs(item.UnitPrice))
	}
	for _, c := range r.Charges {
		doc.Field(c.Label, rs(c.Amount))
	}

	doc.Rule().Total("TOTAL:", rs(r.Total))
	for _, p := range r.Payments {
		doc.Field(p.Date.Format("02/01")+" "+string(p.Method), rs(p.Amount))
	}
	doc.Field("Paid:", rs(r.Paid))
	switch {
	case r.Due > 0:
		doc.Total("Due:", rs(r.Due))
	case r.Due < 0:
		doc.Field("Advance:", rs(-r.Due))
	}

	return doc.Field("Status:", r.Status).
		Rule().
		Footer(r.Footer).
		Finish()
}

func rs(a money.Amount) string {
	return "Rs." + a.String()
}
