package http

import "time"

// limiter is a token bucket throttling inbound messages per connection.
// It is touched only from the connection's read loop, so no locking.
type limiter struct {
	rate       float64
	burst      int
	tokens     float64
	lastUpdate time.Time
}

func newLimiter(rate float64, burst int) *limiter {
	return &limiter{
		rate:       rate,
		burst:      burst,
		tokens:     float64(burst),
		lastUpdate: time.Now(),
	}
}

func (l *limiter) Allow() bool {
	if l.rate <= 0 {
		return true
	}

	now := time.Now()
	elapsed := now.Sub(l.lastUpdate).Seconds()
	l.lastUpdate = now

	l.tokens += elapsed * l.rate
	if l.tokens > float64(l.burst) {
		l.tokens = float64(l.burst)
	}

	if l.tokens >= 1 {
		l.tokens--
		return true
	}
	return false
}
