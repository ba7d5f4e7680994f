package config

import (
	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/flow"
)

// ResPushSend is the sentinel resource guarding push fan-out.
const ResPushSend = "push_send"

// InitRateLimit starts sentinel and loads the push send rule. A qps of zero
// or less leaves the resource unlimited.
func InitRateLimit(qps float64) error {
	if err := sentinel.InitDefault(); err != nil {
		return err
	}
	if qps <= 0 {
		return nil
	}
	_, err := flow.LoadRules([]*flow.Rule{
		{
			Resource:               ResPushSend,
			TokenCalculateStrategy: flow.Direct,
			ControlBehavior:        flow.Reject,
			Threshold:              qps,
			StatIntervalInMs:       1000,
		},
	})
	return err
}
