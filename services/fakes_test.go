package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"allure-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var fixedToday = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

func testCalendar() Calendar {
	return Calendar{Loc: time.UTC, Now: func() time.Time { return fixedToday.Add(10 * time.Hour) }}
}

// memOrders is an in-memory OrderRepository with a shared sequence.
type memOrders struct {
	mu        sync.Mutex
	seq       int64
	orders    map[uuid.UUID]*models.Order
	customers *memCustomers
	imageErr  error
}

func newMemOrders(customers *memCustomers) *memOrders {
	return &memOrders{orders: map[uuid.UUID]*models.Order{}, customers: customers}
}

func (m *memOrders) Create(_ context.Context, order *models.Order, number NumberFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	order.OrderNumber = number(m.seq)
	for _, o := range m.orders {
		if o.OrderNumber == order.OrderNumber {
			return ErrDuplicate
		}
	}
	order.ID = uuid.New()
	order.CreatedAt = time.Now()
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
	}
	m.orders[order.ID] = cloneOrder(order)
	return nil
}

func (m *memOrders) AddDesignImage(_ context.Context, img *models.DesignImage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.imageErr != nil {
		return m.imageErr
	}
	for _, o := range m.orders {
		for i := range o.Items {
			if o.Items[i].ID == img.OrderItemID {
				img.ID = uuid.New()
				o.Items[i].DesignImages = append(o.Items[i].DesignImages, *img)
				return nil
			}
		}
	}
	return ErrNotFound
}

func (m *memOrders) Get(_ context.Context, id uuid.UUID) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneOrder(o)
	if m.customers != nil {
		if c, ok := m.customers.byID(o.CustomerID); ok {
			out.Customer = &c
		}
	}
	return out, nil
}

func (m *memOrders) List(_ context.Context, f OrderFilter) ([]models.Order, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []models.Order
	for _, o := range m.orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.CustomerID != uuid.Nil && o.CustomerID != f.CustomerID {
			continue
		}
		if f.Query != "" && !strings.Contains(o.OrderNumber, f.Query) {
			continue
		}
		all = append(all, *cloneOrder(o))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].OrderNumber > all[j].OrderNumber })
	total := int64(len(all))
	start := (f.Page - 1) * f.PageSize
	if start > len(all) {
		start = len(all)
	}
	end := start + f.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *memOrders) UpdateStatus(_ context.Context, id uuid.UUID, status models.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	return nil
}

func (m *memOrders) AddPayment(_ context.Context, id uuid.UUID, amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return ErrNotFound
	}
	next := o.AdvancePaid.Add(amount)
	if next.GreaterThan(o.TotalAmount) {
		return ErrOverpayment
	}
	o.AdvancePaid = next
	return nil
}

func (m *memOrders) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[id]; !ok {
		return ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *memOrders) DueBy(_ context.Context, day time.Time) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Order
	for _, o := range m.orders {
		if o.Status != models.StatusDelivered && !o.DeliveryDate.After(day) {
			out = append(out, *cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeliveryDate.Before(out[j].DeliveryDate) })
	return out, nil
}

func (m *memOrders) put(o models.Order) *models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	m.orders[o.ID] = cloneOrder(&o)
	return &o
}

func cloneOrder(o *models.Order) *models.Order {
	out := *o
	out.Items = make([]models.OrderItem, len(o.Items))
	for i, it := range o.Items {
		it.DesignImages = append([]models.DesignImage(nil), it.DesignImages...)
		out.Items[i] = it
	}
	return &out
}

type memCustomers struct {
	mu        sync.Mutex
	customers map[uuid.UUID]models.Customer
}

func newMemCustomers() *memCustomers {
	return &memCustomers{customers: map[uuid.UUID]models.Customer{}}
}

func (m *memCustomers) add(name, phone string) models.Customer {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := models.Customer{ID: uuid.New(), FullName: name, Phone: phone}
	m.customers[c.ID] = c
	return c
}

func (m *memCustomers) byID(id uuid.UUID) (models.Customer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	return c, ok
}

func (m *memCustomers) Create(_ context.Context, c *models.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = uuid.New()
	m.customers[c.ID] = *c
	return nil
}

func (m *memCustomers) Get(_ context.Context, id uuid.UUID, _ bool) (*models.Customer, error) {
	c, ok := m.byID(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *memCustomers) Update(_ context.Context, c *models.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[c.ID]; !ok {
		return ErrNotFound
	}
	m.customers[c.ID] = *c
	return nil
}

func (m *memCustomers) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[id]; !ok {
		return ErrNotFound
	}
	delete(m.customers, id)
	return nil
}

func (m *memCustomers) List(_ context.Context, query string, page, size int) ([]models.Customer, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Customer
	for _, c := range m.customers {
		if query == "" || strings.Contains(strings.ToLower(c.FullName), strings.ToLower(query)) || strings.Contains(c.Phone, query) {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memCustomers) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.byID(id)
	return ok, nil
}

func (m *memCustomers) OrderIDs(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

// memFiles records uploads. failAll makes every upload fail.
type memFiles struct {
	mu      sync.Mutex
	files   map[string][]byte
	deleted []string
	failAll bool
}

func newMemFiles() *memFiles {
	return &memFiles{files: map[string][]byte{}}
}

func (m *memFiles) Upload(_ context.Context, path string, r io.Reader, _ string) error {
	if m.failAll {
		return errors.New("storage unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = data
	return nil
}

func (m *memFiles) PublicURL(path string) string {
	return "/media/" + path
}

func (m *memFiles) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, prefix)
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			delete(m.files, p)
		}
	}
	return nil
}

type memPush struct {
	mu   sync.Mutex
	subs []models.PushSubscription
}

func (m *memPush) Upsert(_ context.Context, sub *models.PushSubscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.subs {
		if m.subs[i].UserID == sub.UserID && m.subs[i].Endpoint == sub.Endpoint {
			m.subs[i].KeysP256dh = sub.KeysP256dh
			m.subs[i].KeysAuth = sub.KeysAuth
			return nil
		}
	}
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	m.subs = append(m.subs, *sub)
	return nil
}

func (m *memPush) DeleteByEndpoint(_ context.Context, userID uuid.UUID, endpoint string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.subs[:0]
	for _, s := range m.subs {
		if s.UserID != userID || s.Endpoint != endpoint {
			kept = append(kept, s)
		}
	}
	m.subs = kept
	return nil
}

func (m *memPush) DeleteByID(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.subs[:0]
	for _, s := range m.subs {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	m.subs = kept
	return nil
}

func (m *memPush) ListByUser(_ context.Context, userID uuid.UUID) ([]models.PushSubscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.PushSubscription
	for _, s := range m.subs {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memPush) Subscribers(_ context.Context) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[uuid.UUID]bool{}
	var out []uuid.UUID
	for _, s := range m.subs {
		if !seen[s.UserID] {
			seen[s.UserID] = true
			out = append(out, s.UserID)
		}
	}
	return out, nil
}

// fakeSender fails the endpoints listed in errs.
type fakeSender struct {
	mu       sync.Mutex
	errs     map[string]error
	payloads map[string][]byte
}

func newFakeSender() *fakeSender {
	return &fakeSender{errs: map[string]error{}, payloads: map[string][]byte{}}
}

func (f *fakeSender) Send(_ context.Context, sub models.PushSubscription, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[sub.Endpoint]; err != nil {
		return err
	}
	f.payloads[sub.Endpoint] = payload
	return nil
}

type memSettings struct {
	stored *models.BoutiqueSettings
	saves  int
}

func (m *memSettings) Get(context.Context) (*models.BoutiqueSettings, error) {
	if m.stored == nil {
		return nil, ErrNotFound
	}
	s := *m.stored
	return &s, nil
}

func (m *memSettings) Save(_ context.Context, s *models.BoutiqueSettings) error {
	m.saves++
	cp := *s
	m.stored = &cp
	return nil
}

type memCache struct {
	value       *models.BoutiqueSettings
	invalidated int
}

func (m *memCache) Get(context.Context) (*models.BoutiqueSettings, error) {
	return m.value, nil
}

func (m *memCache) Set(_ context.Context, s *models.BoutiqueSettings) error {
	cp := *s
	m.value = &cp
	return nil
}

func (m *memCache) Invalidate(context.Context) error {
	m.value = nil
	m.invalidated++
	return nil
}

type memUsers struct {
	mu    sync.Mutex
	users []models.User
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return ErrDuplicate
		}
	}
	// Mirror the BeforeCreate hook.
	if err := u.BeforeCreate(nil); err != nil {
		return err
	}
	m.users = append(m.users, *u)
	return nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memUsers) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

func (m *memUsers) TouchLastLogin(context.Context, uuid.UUID, time.Time) error {
	return nil
}

type fakeWhatsApp struct {
	to, body string
}

func (f *fakeWhatsApp) SendWhatsApp(_ context.Context, to, body string) (string, error) {
	f.to, f.body = to, body
	return "SM123", nil
}
