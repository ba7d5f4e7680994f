package services

import (
	"context"
	"io"
	"time"

	"allure-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NumberFunc turns a sequence value into an order number.
type NumberFunc func(seq int64) string

type OrderFilter struct {
	Status     models.OrderStatus
	CustomerID uuid.UUID
	Query      string
	Page       int
	PageSize   int
}

type OrderRepository interface {
	// Create draws the next sequence value, names the order with number
	// and inserts the order and its items in one transaction.
	Create(ctx context.Context, order *models.Order, number NumberFunc) error
	AddDesignImage(ctx context.Context, img *models.DesignImage) error
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	// AddPayment raises advance_paid by amount unless that would exceed the
	// order total, in which case it returns ErrOverpayment.
	AddPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DueBy lists undelivered orders with a delivery date on or before day.
	DueBy(ctx context.Context, day time.Time) ([]models.Order, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *models.Customer) error
	Get(ctx context.Context, id uuid.UUID, withOrders bool) (*models.Customer, error)
	Update(ctx context.Context, c *models.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, query string, page, pageSize int) ([]models.Customer, int64, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	OrderIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
}

type SettingsRepository interface {
	// Get returns ErrNotFound until the boutique has been configured.
	Get(ctx context.Context) (*models.BoutiqueSettings, error)
	Save(ctx context.Context, s *models.BoutiqueSettings) error
}

type SettingsCache interface {
	Get(ctx context.Context) (*models.BoutiqueSettings, error)
	Set(ctx context.Context, s *models.BoutiqueSettings) error
	Invalidate(ctx context.Context) error
}

type PushRepository interface {
	Upsert(ctx context.Context, sub *models.PushSubscription) error
	DeleteByEndpoint(ctx context.Context, userID uuid.UUID, endpoint string) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PushSubscription, error)
	Subscribers(ctx context.Context) ([]uuid.UUID, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Count(ctx context.Context) (int64, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// FileStore keeps design images.
type FileStore interface {
	Upload(ctx context.Context, path string, r io.Reader, contentType string) error
	PublicURL(path string) string
	DeletePrefix(ctx context.Context, prefix string) error
}

// PushSender delivers one payload to one browser endpoint. It returns
// ErrSubscriptionExpired when the push service reports the endpoint gone.
type PushSender interface {
	Send(ctx context.Context, sub models.PushSubscription, payload []byte) error
}

// WhatsAppSender delivers a text message to a phone number.
type WhatsAppSender interface {
	SendWhatsApp(ctx context.Context, to, body string) (string, error)
}
