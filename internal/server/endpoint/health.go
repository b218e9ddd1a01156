// Package endpoint provides the service's system endpoints.
package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Checker reports whether a dependency is reachable.
type Checker func(ctx context.Context) error

// Health returns a handler that reports service health. When the checker
// fails the endpoint returns 503 so load balancers stop routing here.
func Health(serviceName, version string, checker Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		httpStatus := http.StatusOK

		if checker != nil {
			if err := checker(c.Request.Context()); err != nil {
				status = "unhealthy"
				httpStatus = http.StatusServiceUnavailable
			}
		}

		c.JSON(httpStatus, gin.H{
			"status":    status,
			"service":   serviceName,
			"version":   version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
