package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"

	"allure-backend/models"

	"github.com/google/uuid"
	"github.com/romana/rlog"
	"golang.org/x/sync/errgroup"
)

type PushAction struct {
	Action string `json:"action"`
	Title  string `json:"title"`
}

// PushPayload is the JSON handed to the service worker.
type PushPayload struct {
	Title   string       `json:"title"`
	Body    string       `json:"body"`
	Icon    string       `json:"icon,omitempty"`
	URL     string       `json:"url,omitempty"`
	Tag     string       `json:"tag,omitempty"`
	Actions []PushAction `json:"actions,omitempty"`
}

type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

type SendResult struct {
	Sent  int `json:"sent"`
	Total int `json:"total"`
}

type PushService struct {
	subs        PushRepository
	sender      PushSender
	concurrency int
}

func NewPushService(subs PushRepository, sender PushSender, concurrency int) *PushService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &PushService{subs: subs, sender: sender, concurrency: concurrency}
}

// Subscribe registers the endpoint for the user. Re-subscribing the same
// endpoint replaces its keys.
func (s *PushService) Subscribe(ctx context.Context, userID uuid.UUID, endpoint string, keys SubscriptionKeys) error {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" || keys.P256dh == "" || keys.Auth == "" {
		return invalid("subscription", "Invalid subscription")
	}
	return s.subs.Upsert(ctx, &models.PushSubscription{
		UserID:     userID,
		Endpoint:   endpoint,
		KeysP256dh: keys.P256dh,
		KeysAuth:   keys.Auth,
	})
}

// Unsubscribe removes the endpoint; removing an unknown endpoint is not an
// error.
func (s *PushService) Unsubscribe(ctx context.Context, userID uuid.UUID, endpoint string) error {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return invalid("endpoint", "Missing endpoint")
	}
	return s.subs.DeleteByEndpoint(ctx, userID, endpoint)
}

// Send delivers payload to every endpoint of the user concurrently. One
// endpoint failing never stops the others; expired endpoints are removed.
func (s *PushService) Send(ctx context.Context, userID uuid.UUID, payload PushPayload) (SendResult, error) {
	if strings.TrimSpace(payload.Title) == "" {
		return SendResult{}, invalid("title", "Missing title")
	}
	if s.sender == nil {
		return SendResult{}, ErrNotConfigured
	}

	subs, err := s.subs.ListByUser(ctx, userID)
	if err != nil {
		return SendResult{}, err
	}
	if len(subs) == 0 {
		return SendResult{}, ErrNoSubscriptions
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return SendResult{}, err
	}

	var sent int64
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, sub := range subs {
		g.Go(func() error {
			err := s.sender.Send(ctx, sub, body)
			switch {
			case err == nil:
				atomic.AddInt64(&sent, 1)
			case errors.Is(err, ErrSubscriptionExpired):
				rlog.Infof("Removing expired push subscription %s", sub.ID)
				if derr := s.subs.DeleteByID(ctx, sub.ID); derr != nil {
					rlog.Errorf("Failed to remove expired subscription %s: %v", sub.ID, derr)
				}
			default:
				rlog.Errorf("Push notification error for subscription %s: %v", sub.ID, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return SendResult{Sent: int(sent), Total: len(subs)}, nil
}
