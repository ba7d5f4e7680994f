package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"allure-backend/models"
	"allure-backend/utils"

	"github.com/google/uuid"
	"github.com/romana/rlog"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type Audience string

const (
	AudienceCustomer Audience = "customer"
	AudienceTailor   Audience = "tailor"
)

type WhatsAppShare struct {
	Audience Audience `json:"audience"`
	Message  string   `json:"message"`
	Link     string   `json:"link"`
}

func orderItemLines(order *models.Order) string {
	lines := make([]string, 0, len(order.Items))
	for i, item := range order.Items {
		desc := "No description"
		if item.Description != nil && *item.Description != "" {
			desc = *item.Description
		}
		lines = append(lines, fmt.Sprintf("%d. %s - %s", i+1, item.GarmentType.Label(), desc))
	}
	return strings.Join(lines, "\n")
}

func customerName(order *models.Order) string {
	if order.Customer == nil {
		return ""
	}
	return order.Customer.FullName
}

// CustomerMessage is the order confirmation sent to the customer.
func CustomerMessage(order *models.Order) string {
	return fmt.Sprintf("Hello %s,\n\nYour order %s has been confirmed.\n\nItems:\n%s\n\nDelivery Date: %s\nTotal: ₹%s\nAdvance Paid: ₹%s\nBalance: ₹%s\n\nThank you!",
		customerName(order),
		order.OrderNumber,
		orderItemLines(order),
		utils.FormatDisplayDate(order.DeliveryDate),
		utils.FormatIndian(order.TotalAmount),
		utils.FormatIndian(order.AdvancePaid),
		utils.FormatIndian(order.BalanceDue()),
	)
}

// TailorMessage is the work summary forwarded to the tailor with the PDF.
func TailorMessage(order *models.Order) string {
	return fmt.Sprintf("Order: %s\nCustomer: %s\nDelivery: %s\n\nItems:\n%s\n\nPlease check the attached PDF for measurements and details.",
		order.OrderNumber,
		customerName(order),
		utils.FormatDisplayDate(order.DeliveryDate),
		orderItemLines(order),
	)
}

// WhatsAppLink builds a wa.me click-to-chat link. An empty phone lets the
// user pick the recipient.
func WhatsAppLink(phone, message string) string {
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", utils.PhoneDigits(phone), text)
}

type WhatsAppService struct {
	orders *OrderService
	sender WhatsAppSender
}

// NewWhatsAppService accepts a nil sender; sending then reports
// ErrNotConfigured.
func NewWhatsAppService(orders *OrderService, sender WhatsAppSender) *WhatsAppService {
	return &WhatsAppService{orders: orders, sender: sender}
}

func (s *WhatsAppService) Share(ctx context.Context, orderID uuid.UUID, audience Audience) (*WhatsAppShare, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	switch audience {
	case "", AudienceCustomer:
		msg := CustomerMessage(order)
		phone := ""
		if order.Customer != nil {
			phone = order.Customer.Phone
		}
		return &WhatsAppShare{Audience: AudienceCustomer, Message: msg, Link: WhatsAppLink(phone, msg)}, nil
	case AudienceTailor:
		msg := TailorMessage(order)
		return &WhatsAppShare{Audience: AudienceTailor, Message: msg, Link: WhatsAppLink("", msg)}, nil
	default:
		return nil, invalid("audience", "must be customer or tailor")
	}
}

// SendToCustomer delivers the confirmation through the WhatsApp API.
func (s *WhatsAppService) SendToCustomer(ctx context.Context, orderID uuid.UUID) (string, error) {
	if s.sender == nil {
		return "", ErrNotConfigured
	}
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order.Customer == nil || utils.PhoneDigits(order.Customer.Phone) == "" {
		return "", invalid("phone", "customer has no phone number")
	}
	sid, err := s.sender.SendWhatsApp(ctx, utils.E164(order.Customer.Phone), CustomerMessage(order))
	if err != nil {
		return "", err
	}
	rlog.Infof("WhatsApp confirmation for %s sent, SID: %s", order.OrderNumber, sid)
	return sid, nil
}

// TwilioWhatsApp sends messages from the boutique's Twilio WhatsApp number.
type TwilioWhatsApp struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioWhatsApp(accountSid, authToken, from string) *TwilioWhatsApp {
	return &TwilioWhatsApp{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: from,
	}
}

func (t *TwilioWhatsApp) SendWhatsApp(ctx context.Context, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + to)
	params.SetFrom("whatsapp:" + strings.TrimPrefix(t.from, "whatsapp:"))
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio: %w", err)
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}
