package api

import (
	"time"

	"tingtrainer/common/http"
)

func PingHandler(c *http.Context) error {
	c.Success(map[string]interface{}{
		"message":   "pong",
		"timestamp": time.Now().Unix(),
		"service":   "gate",
	})
	return nil
}

func HealthHandler(c *http.Context) error {
	c.Success(map[string]interface{}{
		"healthy":   true,
		"timestamp": time.Now().Unix(),
	})
	return nil
}
