package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"allure-backend/models"

	webpush "github.com/SherClockHolmes/webpush-go"
)

const pushTTL = 24 * 60 * 60

// WebPushSender sends VAPID-signed web push messages.
type WebPushSender struct {
	publicKey  string
	privateKey string
	subscriber string
	client     *http.Client
}

func NewWebPushSender(publicKey, privateKey, subscriber string) *WebPushSender {
	return &WebPushSender{
		publicKey:  publicKey,
		privateKey: privateKey,
		subscriber: subscriber,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (w *WebPushSender) PublicKey() string {
	return w.publicKey
}

func (w *WebPushSender) Send(ctx context.Context, sub models.PushSubscription, payload []byte) error {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.KeysP256dh,
			Auth:   sub.KeysAuth,
		},
	}, &webpush.Options{
		HTTPClient:      w.client,
		Subscriber:      w.subscriber,
		VAPIDPublicKey:  w.publicKey,
		VAPIDPrivateKey: w.privateKey,
		TTL:             pushTTL,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return ErrSubscriptionExpired
	case resp.StatusCode >= 300:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("push service returned %d: %s", resp.StatusCode, msg)
	}
	return nil
}

// GenerateVAPIDKeys returns a new base64url key pair.
func GenerateVAPIDKeys() (privateKey, publicKey string, err error) {
	return webpush.GenerateVAPIDKeys()
}
