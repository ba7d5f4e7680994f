package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"allure-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSubs(repo *memPush, userID uuid.UUID, endpoints ...string) {
	for _, ep := range endpoints {
		_ = repo.Upsert(context.Background(), &models.PushSubscription{
			UserID: userID, Endpoint: ep, KeysP256dh: "p", KeysAuth: "a",
		})
	}
}

func TestSendPrunesExpiredSubscriptions(t *testing.T) {
	repo := &memPush{}
	sender := newFakeSender()
	userID := uuid.New()
	seedSubs(repo, userID, "https://push/1", "https://push/2", "https://push/3")
	sender.errs["https://push/2"] = ErrSubscriptionExpired

	svc := NewPushService(repo, sender, 2)
	res, err := svc.Send(context.Background(), userID, PushPayload{Title: "Hello", Body: "World"})

	require.NoError(t, err)
	assert.Equal(t, SendResult{Sent: 2, Total: 3}, res)

	left, _ := repo.ListByUser(context.Background(), userID)
	var endpoints []string
	for _, s := range left {
		endpoints = append(endpoints, s.Endpoint)
	}
	assert.ElementsMatch(t, []string{"https://push/1", "https://push/3"}, endpoints)

	var got PushPayload
	require.NoError(t, json.Unmarshal(sender.payloads["https://push/1"], &got))
	assert.Equal(t, "Hello", got.Title)
}

func TestSendKeepsSubscriptionOnOtherFailures(t *testing.T) {
	repo := &memPush{}
	sender := newFakeSender()
	userID := uuid.New()
	seedSubs(repo, userID, "https://push/1", "https://push/2")
	sender.errs["https://push/1"] = errors.New("connection reset")

	res, err := NewPushService(repo, sender, 4).Send(context.Background(), userID, PushPayload{Title: "Hi"})

	require.NoError(t, err)
	assert.Equal(t, SendResult{Sent: 1, Total: 2}, res)
	left, _ := repo.ListByUser(context.Background(), userID)
	assert.Len(t, left, 2)
}

func TestSendErrors(t *testing.T) {
	repo := &memPush{}
	userID := uuid.New()
	ctx := context.Background()

	_, err := NewPushService(repo, newFakeSender(), 1).Send(ctx, userID, PushPayload{Title: " "})
	assert.True(t, IsValidation(err))

	_, err = NewPushService(repo, newFakeSender(), 1).Send(ctx, userID, PushPayload{Title: "x"})
	assert.Equal(t, ErrNoSubscriptions, err)

	seedSubs(repo, userID, "https://push/1")
	_, err = NewPushService(repo, nil, 1).Send(ctx, userID, PushPayload{Title: "x"})
	assert.Equal(t, ErrNotConfigured, err)
}

func TestSubscribeTwiceKeepsOneRecordWithNewKeys(t *testing.T) {
	repo := &memPush{}
	svc := NewPushService(repo, nil, 1)
	userID := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.Subscribe(ctx, userID, "https://push/1", SubscriptionKeys{P256dh: "old", Auth: "old"}))
	require.NoError(t, svc.Subscribe(ctx, userID, "https://push/1", SubscriptionKeys{P256dh: "new", Auth: "new"}))

	subs, _ := repo.ListByUser(ctx, userID)
	require.Len(t, subs, 1)
	assert.Equal(t, "new", subs[0].KeysP256dh)
	assert.Equal(t, "new", subs[0].KeysAuth)
}

func TestSubscribeAndUnsubscribeValidation(t *testing.T) {
	repo := &memPush{}
	svc := NewPushService(repo, nil, 1)
	userID := uuid.New()
	ctx := context.Background()

	assert.True(t, IsValidation(svc.Subscribe(ctx, userID, "", SubscriptionKeys{P256dh: "p", Auth: "a"})))
	assert.True(t, IsValidation(svc.Subscribe(ctx, userID, "https://push/1", SubscriptionKeys{Auth: "a"})))
	assert.True(t, IsValidation(svc.Unsubscribe(ctx, userID, "")))

	require.NoError(t, svc.Subscribe(ctx, userID, "https://push/1", SubscriptionKeys{P256dh: "p", Auth: "a"}))
	require.NoError(t, svc.Unsubscribe(ctx, userID, "https://push/1"))
	require.NoError(t, svc.Unsubscribe(ctx, userID, "https://push/unknown"))
	subs, _ := repo.ListByUser(ctx, userID)
	assert.Empty(t, subs)
}
