// services/reminder_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"allure-backend/models"
	"allure-backend/utils"

	"github.com/google/uuid"
	"github.com/romana/rlog"
)

const maxReminderLines = 5

// ReminderService tells staff about orders whose delivery date is close or
// already past. It runs on demand; scheduling is left to the caller.
type ReminderService struct {
	orders   OrderRepository
	subs     PushRepository
	push     *PushService
	settings *SettingsService
	calendar Calendar
}

type ReminderRun struct {
	Due   int `json:"due"`
	Users int `json:"users"`
	SendResult
}

func NewReminderService(orders OrderRepository, subs PushRepository, push *PushService, settings *SettingsService, calendar Calendar) *ReminderService {
	return &ReminderService{
		orders:   orders,
		subs:     subs,
		push:     push,
		settings: settings,
		calendar: calendar,
	}
}

// DueOrders lists undelivered orders due within days of today, overdue ones
// included, earliest first.
func (s *ReminderService) DueOrders(ctx context.Context, today time.Time, days int) ([]models.Order, error) {
	if days < 0 {
		days = 0
	}
	orders, err := s.orders.DueBy(ctx, today.AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Derive(today)
	}
	return orders, nil
}

// BuildReminderPayload summarises the due orders in one notification.
func BuildReminderPayload(orders []models.Order, today time.Time) PushPayload {
	overdue := 0
	lines := make([]string, 0, maxReminderLines+1)
	for i, o := range orders {
		if o.OverdueOn(today) {
			overdue++
		}
		if i >= maxReminderLines {
			continue
		}
		lines = append(lines, reminderLine(o, today))
	}
	if extra := len(orders) - maxReminderLines; extra > 0 {
		lines = append(lines, fmt.Sprintf("+%d more", extra))
	}

	title := fmt.Sprintf("%d order(s) due soon", len(orders))
	if overdue > 0 {
		title = fmt.Sprintf("%d order(s) due soon, %d overdue", len(orders), overdue)
	}
	return PushPayload{
		Title: title,
		Body:  strings.Join(lines, "\n"),
		URL:   "/orders",
		Tag:   "delivery-reminder",
	}
}

func reminderLine(o models.Order, today time.Time) string {
	name := ""
	if o.Customer != nil {
		name = " " + o.Customer.FullName
	}
	var when string
	switch days := utils.DaysBetween(today, o.DeliveryDate); {
	case days < 0:
		when = fmt.Sprintf("overdue by %d day(s)", -days)
	case days == 0:
		when = "due today"
	case days == 1:
		when = "due tomorrow"
	default:
		when = fmt.Sprintf("due in %d days", days)
	}
	return fmt.Sprintf("%s%s: %s", o.OrderNumber, name, when)
}

// NotifyUser sends the reminder summary to one user's browsers. Nothing is
// sent when no order is due.
func (s *ReminderService) NotifyUser(ctx context.Context, userID uuid.UUID) (ReminderRun, error) {
	orders, today, err := s.load(ctx)
	if err != nil {
		return ReminderRun{}, err
	}
	run := ReminderRun{Due: len(orders)}
	if len(orders) == 0 {
		return run, nil
	}
	res, err := s.push.Send(ctx, userID, BuildReminderPayload(orders, today))
	if err != nil {
		return run, err
	}
	run.Users = 1
	run.SendResult = res
	return run, nil
}

// NotifyAll sends the summary to every user with a push subscription.
func (s *ReminderService) NotifyAll(ctx context.Context) (ReminderRun, error) {
	orders, today, err := s.load(ctx)
	if err != nil {
		return ReminderRun{}, err
	}
	run := ReminderRun{Due: len(orders)}
	if len(orders) == 0 {
		rlog.Info("No orders due, no reminders sent")
		return run, nil
	}

	users, err := s.subs.Subscribers(ctx)
	if err != nil {
		return run, err
	}
	payload := BuildReminderPayload(orders, today)
	for _, userID := range users {
		res, err := s.push.Send(ctx, userID, payload)
		if err != nil {
			if !errors.Is(err, ErrNoSubscriptions) {
				rlog.Errorf("Reminder for user %s failed: %v", userID, err)
			}
			continue
		}
		run.Users++
		run.Sent += res.Sent
		run.Total += res.Total
	}
	rlog.Infof("Delivery reminders: %d due, %d user(s), %d/%d sent", run.Due, run.Users, run.Sent, run.Total)
	return run, nil
}

func (s *ReminderService) load(ctx context.Context) ([]models.Order, time.Time, error) {
	settings, _, err := s.settings.Get(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	today := s.calendar.Today()
	orders, err := s.DueOrders(ctx, today, settings.ReminderDays)
	return orders, today, err
}
