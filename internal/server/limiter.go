package server

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter allows one search per window per client IP
type ClientLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	clients map[string]*client
}

func NewClientLimiter(window time.Duration) *ClientLimiter {
	return &ClientLimiter{
		window:  window,
		clients: make(map[string]*client),
	}
}

func (cl *ClientLimiter) limiterFor(ip string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := time.Now()
	//Clean up clients idle for more than two windows
	for key, c := range cl.clients {
		if key != ip && now.Sub(c.lastSeen) > 2*cl.window {
			delete(cl.clients, key)
		}
	}

	c, ok := cl.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Every(cl.window), 1)}
		cl.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter
}

// Wait reports how long ip must wait before its next search; zero means go ahead.
// It does not consume the slot.
func (cl *ClientLimiter) Wait(ip string) time.Duration {
	tokens := cl.limiterFor(ip).Tokens()
	if tokens >= 1 {
		return 0
	}
	return time.Duration((1 - tokens) * float64(cl.window))
}

// Take consumes the slot for ip
func (cl *ClientLimiter) Take(ip string) bool {
	return cl.limiterFor(ip).Allow()
}

func (cl *ClientLimiter) Len() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.clients)
}

func retryAfterSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}
