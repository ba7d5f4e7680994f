package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"allure-backend/models"
	"allure-backend/utils"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/romana/rlog"
	"github.com/shopspring/decimal"
)

const (
	defaultPageSize      = 20
	defaultMaxImageBytes = 5 << 20
)

// FormatOrderNumber renders "{prefix}-{seq}" with the sequence padded to
// four digits. Longer sequences keep all their digits.
func FormatOrderNumber(prefix string, seq int64) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = models.DefaultOrderPrefix
	}
	return fmt.Sprintf("%s-%04d", prefix, seq)
}

// ImageUpload is one design photo attached to an item in the create form.
type ImageUpload struct {
	Filename string
	Caption  string
	Open     func() (io.ReadCloser, error)
}

type OrderItemInput struct {
	GarmentType  models.GarmentType  `json:"garment_type"`
	Description  string              `json:"description"`
	Measurements models.Measurements `json:"measurements"`
	Quantity     int                 `json:"quantity"`
	Price        decimal.Decimal     `json:"price"`
	Notes        string              `json:"notes"`

	Images []ImageUpload `json:"-"`
}

type CreateOrderInput struct {
	CustomerID   uuid.UUID        `json:"customer_id"`
	DeliveryDate string           `json:"delivery_date"`
	AdvancePaid  decimal.Decimal  `json:"advance_paid"`
	Notes        string           `json:"notes"`
	Items        []OrderItemInput `json:"items"`
}

type CreateOrderResult struct {
	Order         *models.Order `json:"order"`
	ImagesSaved   int           `json:"images_saved"`
	ImagesSkipped int           `json:"images_skipped"`
}

type OrderPage struct {
	Orders     []models.Order `json:"orders"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalCount int64          `json:"total_count"`
	TotalPages int            `json:"total_pages"`
}

type OrderService struct {
	orders        OrderRepository
	customers     CustomerRepository
	files         FileStore
	calendar      Calendar
	maxImageBytes int64
}

func NewOrderService(orders OrderRepository, customers CustomerRepository, files FileStore, calendar Calendar, maxImageBytes int64) *OrderService {
	if maxImageBytes <= 0 {
		maxImageBytes = defaultMaxImageBytes
	}
	return &OrderService{
		orders:        orders,
		customers:     customers,
		files:         files,
		calendar:      calendar,
		maxImageBytes: maxImageBytes,
	}
}

// Create validates the form, stores the order with its items atomically and
// then attaches design images. Image failures are logged and skipped.
func (s *OrderService) Create(ctx context.Context, settings models.BoutiqueSettings, in CreateOrderInput) (*CreateOrderResult, error) {
	order, err := s.buildOrder(in)
	if err != nil {
		return nil, err
	}

	exists, err := s.customers.Exists(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCustomerNotFound
	}

	prefix := settings.OrderPrefix
	if err := s.orders.Create(ctx, order, func(seq int64) string {
		return FormatOrderNumber(prefix, seq)
	}); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	rlog.Infof("Order %s created for customer %s with %d item(s)", order.OrderNumber, order.CustomerID, len(order.Items))

	result := &CreateOrderResult{Order: order}
	for i := range in.Items {
		item := order.Items[i]
		for _, img := range in.Items[i].Images {
			if err := s.attachImage(ctx, order.ID, item.ID, img); err != nil {
				rlog.Warnf("Order %s: skipped image %q on item %d: %v", order.OrderNumber, img.Filename, i+1, err)
				result.ImagesSkipped++
				continue
			}
			result.ImagesSaved++
		}
	}

	if full, err := s.Get(ctx, order.ID); err == nil {
		result.Order = full
	} else {
		rlog.Warnf("Order %s: reload after create failed: %v", order.OrderNumber, err)
		order.Derive(s.calendar.Today())
	}
	return result, nil
}

func (s *OrderService) buildOrder(in CreateOrderInput) (*models.Order, error) {
	if in.CustomerID == uuid.Nil {
		return nil, invalid("customer_id", "please select a customer")
	}
	if strings.TrimSpace(in.DeliveryDate) == "" {
		return nil, invalid("delivery_date", "please set a delivery date")
	}
	delivery, err := utils.ParseDate(in.DeliveryDate)
	if err != nil {
		return nil, invalid("delivery_date", "must be a date in YYYY-MM-DD format")
	}
	if len(in.Items) == 0 {
		return nil, invalid("items", "add at least one item")
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(in.Items))
	for i, it := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		if !it.GarmentType.Valid() {
			return nil, invalid(field+".garment_type", "unknown garment type %q", it.GarmentType)
		}
		price := it.Price.Round(2)
		if !price.IsPositive() {
			return nil, invalid(field+".price", "please set a price for item %d", i+1)
		}
		qty := it.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 1 {
			return nil, invalid(field+".quantity", "must be at least 1")
		}
		measurements, err := models.NormalizeMeasurements(it.GarmentType, it.Measurements)
		if err != nil {
			return nil, invalid(field+".measurements", "%s", err.Error())
		}

		item := models.OrderItem{
			GarmentType:  it.GarmentType,
			Description:  optionalText(it.Description),
			Measurements: measurements,
			Quantity:     qty,
			Price:        price,
			Notes:        optionalText(it.Notes),
			Position:     i,
		}
		total = total.Add(item.Subtotal())
		items = append(items, item)
	}

	advance := in.AdvancePaid.Round(2)
	if advance.IsNegative() {
		return nil, invalid("advance_paid", "cannot be negative")
	}
	if advance.GreaterThan(total) {
		return nil, invalid("advance_paid", "cannot exceed the order total of %s", utils.FormatIndian(total))
	}

	return &models.Order{
		CustomerID:   in.CustomerID,
		DeliveryDate: delivery,
		Status:       models.StatusReceived,
		TotalAmount:  total,
		AdvancePaid:  advance,
		Notes:        optionalText(in.Notes),
		Items:        items,
	}, nil
}

func (s *OrderService) attachImage(ctx context.Context, orderID, itemID uuid.UUID, img ImageUpload) error {
	if img.Open == nil {
		return errors.New("no image data")
	}
	rc, err := img.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, s.maxImageBytes+1))
	if err != nil {
		return err
	}
	if int64(len(data)) > s.maxImageBytes {
		return fmt.Errorf("image larger than %d bytes", s.maxImageBytes)
	}
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return fmt.Errorf("unsupported file type %s", mtype.String())
	}

	path := fmt.Sprintf("orders/%s/%s/%s%s", orderID, itemID, uuid.New(), mtype.Extension())
	if err := s.files.Upload(ctx, path, bytes.NewReader(data), mtype.String()); err != nil {
		return fmt.Errorf("upload: %w", err)
	}

	record := &models.DesignImage{
		OrderItemID: itemID,
		StoragePath: path,
		Caption:     optionalText(img.Caption),
	}
	if err := s.orders.AddDesignImage(ctx, record); err != nil {
		if derr := s.files.DeletePrefix(ctx, path); derr != nil {
			rlog.Warnf("Orphaned design image %s: %v", path, derr)
		}
		return fmt.Errorf("save image record: %w", err)
	}
	return nil
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.present(order)
	return order, nil
}

func (s *OrderService) List(ctx context.Context, filter OrderFilter) (*OrderPage, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, invalid("status", "unknown status %q", filter.Status)
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	filter.Query = strings.TrimSpace(filter.Query)

	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	today := s.calendar.Today()
	for i := range orders {
		orders[i].Derive(today)
	}
	return &OrderPage{
		Orders:     orders,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: total,
		TotalPages: pageCount(total, filter.PageSize),
	}, nil
}

// ChangeStatus sets any of the five statuses regardless of the current one.
func (s *OrderService) ChangeStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, invalid("status", "unknown status %q", status)
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	rlog.Infof("Order %s status set to %s", id, status)
	return s.Get(ctx, id)
}

// RecordPayment adds amount to the advance paid. Payments beyond the
// outstanding balance are rejected.
func (s *OrderService) RecordPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*models.Order, error) {
	// Amounts are stored to the paisa; anything that rounds to zero is no payment.
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return nil, invalid("amount", "enter a valid amount")
	}
	if err := s.orders.AddPayment(ctx, id, amount); err != nil {
		return nil, err
	}
	rlog.Infof("Order %s payment of %s recorded", id, amount.StringFixed(2))
	return s.Get(ctx, id)
}

// Delete removes the order with its items and image records, then clears
// the stored image files.
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.files.DeletePrefix(ctx, "orders/"+id.String()); err != nil {
		rlog.Warnf("Order %s deleted but image cleanup failed: %v", id, err)
	}
	return nil
}

func (s *OrderService) present(order *models.Order) {
	order.Derive(s.calendar.Today())
	for i := range order.Items {
		for j := range order.Items[i].DesignImages {
			img := &order.Items[i].DesignImages[j]
			img.URL = s.files.PublicURL(img.StoragePath)
		}
	}
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func pageCount(total int64, size int) int {
	if size <= 0 || total == 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
