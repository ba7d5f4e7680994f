package utils

import (
	"net/http"

	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	"github.com/gin-gonic/gin"
)

// RateLimit guards the handler chain with a sentinel resource. Requests
// over the configured flow rule get 429. Without a loaded rule every
// request passes.
func RateLimit(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, b := sentinel.Entry(resource, sentinel.WithTrafficType(base.Inbound))
		if b != nil {
			RespondWithError(c, http.StatusTooManyRequests, "Too many requests, please try again shortly")
			return
		}
		defer e.Exit()
		c.Next()
	}
}
