package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

func TestBalanceDueClampsAtZero(t *testing.T) {
	o := Order{TotalAmount: decimal.NewFromInt(1000), AdvancePaid: decimal.NewFromInt(400)}
	assert.True(t, o.BalanceDue().Equal(decimal.NewFromInt(600)))

	o.AdvancePaid = decimal.NewFromInt(1200)
	assert.True(t, o.BalanceDue().IsZero())
}

func TestOverdueClassification(t *testing.T) {
	tests := []struct {
		name     string
		delivery time.Time
		status   OrderStatus
		overdue  bool
		dueToday bool
	}{
		{"yesterday open", today.AddDate(0, 0, -1), StatusReady, true, false},
		{"yesterday delivered", today.AddDate(0, 0, -1), StatusDelivered, false, false},
		{"today open", today, StatusTrial, false, true},
		{"today delivered", today, StatusDelivered, false, false},
		{"tomorrow", today.AddDate(0, 0, 1), StatusReceived, false, false},
		// A DATE read back in a local zone still compares by calendar day.
		{"today in IST", time.Date(2026, 10, 16, 0, 0, 0, 0, time.FixedZone("IST", 19800)), StatusReceived, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Order{DeliveryDate: tt.delivery, Status: tt.status}
			o.Derive(today)
			assert.Equal(t, tt.overdue, o.Overdue)
			assert.Equal(t, tt.dueToday, o.DueToday)
		})
	}
}

func TestDeriveFillsItemSubtotals(t *testing.T) {
	o := Order{
		TotalAmount: decimal.NewFromInt(3500),
		Items: []OrderItem{
			{Quantity: 2, Price: decimal.NewFromInt(1000)},
			{Quantity: 1, Price: decimal.NewFromInt(1500)},
		},
	}
	o.Derive(today)

	assert.True(t, o.Items[0].SubtotalAmount.Equal(decimal.NewFromInt(2000)))
	assert.True(t, o.Balance.Equal(decimal.NewFromInt(3500)))
}

func TestOrderJSONAmountsAreNumbers(t *testing.T) {
	o := Order{TotalAmount: decimal.RequireFromString("1500.50"), Status: StatusReceived}
	raw, err := json.Marshal(o)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, 1500.5, out["total_amount"])
	assert.Equal(t, "received", out["status"])
}

func TestStatusLabels(t *testing.T) {
	assert.True(t, StatusInProgress.Valid())
	assert.False(t, OrderStatus("cancelled").Valid())
	assert.Equal(t, "In Progress", StatusInProgress.Label())
	assert.Len(t, OrderStatusFlow, 5)
}
