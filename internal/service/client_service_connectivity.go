package service

import (
	"context"
	"sync"

	"github.com/eunio-health/eunio-sync/internal/adapter"
	"github.com/eunio-health/eunio-sync/internal/logger"
)

// connectivityChecker probes the remote store's health endpoint and keeps
// the last result. The reachability bit gates automatic sync triggers; a
// probe that flips the state from offline to online is reported so callers
// can kick off a catch-up sync immediately.
type connectivityChecker struct {
	gateway adapter.RemoteGateway
	logger  *logger.Logger

	mu        sync.RWMutex
	reachable bool
}

func NewConnectivityChecker(gateway adapter.RemoteGateway, log *logger.Logger) ConnectivityChecker {
	return &connectivityChecker{gateway: gateway, logger: log}
}

// Probe implements ConnectivityChecker.
func (c *connectivityChecker) Probe(ctx context.Context) bool {
	reachable := c.gateway.Ping(ctx) == nil

	c.mu.Lock()
	wasReachable := c.reachable
	c.reachable = reachable
	c.mu.Unlock()

	if reachable != wasReachable {
		c.logger.Info().Bool("reachable", reachable).Msg("connectivity state changed")
	}

	return reachable && !wasReachable
}

// IsReachable implements ConnectivityChecker.
func (c *connectivityChecker) IsReachable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reachable
}
