package controllers

import (
	"context"
	"net/http"
	"time"

	"allure-backend/services"
	"allure-backend/utils"

	"github.com/gin-gonic/gin"
)

type SubscribeInput struct {
	Endpoint string                    `json:"endpoint"`
	Keys     services.SubscriptionKeys `json:"keys"`
}

type UnsubscribeInput struct {
	Endpoint string `json:"endpoint"`
}

type PushController struct {
	push           *services.PushService
	reminders      *services.ReminderService
	vapidPublicKey string
}

func NewPushController(push *services.PushService, reminders *services.ReminderService, vapidPublicKey string) *PushController {
	return &PushController{push: push, reminders: reminders, vapidPublicKey: vapidPublicKey}
}

func (pc *PushController) Subscribe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input SubscribeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid subscription")
		return
	}
	if err := pc.push.Subscribe(c.Request.Context(), userID, input.Endpoint, input.Keys); err != nil {
		respondServiceError(c, err, "Subscription")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (pc *PushController) Unsubscribe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input UnsubscribeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Missing endpoint")
		return
	}
	if err := pc.push.Unsubscribe(c.Request.Context(), userID, input.Endpoint); err != nil {
		respondServiceError(c, err, "Subscription")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Send pushes a message to every browser the caller has subscribed
func (pc *PushController) Send(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var payload services.PushPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	result, err := pc.push.Send(ctx, userID, payload)
	if err != nil {
		respondServiceError(c, err, "Subscription")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (pc *PushController) VAPIDPublicKey(c *gin.Context) {
	if pc.vapidPublicKey == "" {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Push notifications are not configured")
		return
	}
	c.JSON(http.StatusOK, gin.H{"public_key": pc.vapidPublicKey})
}

// SendReminders pushes the delivery reminder summary to the caller
func (pc *PushController) SendReminders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	run, err := pc.reminders.NotifyUser(ctx, userID)
	if err != nil {
		respondServiceError(c, err, "Subscription")
		return
	}
	c.JSON(http.StatusOK, run)
}
