package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type Config struct {
	RequestsPerSecond float64
	BurstSize         int
	// IdleTTL - через сколько неактивный ключ удаляется из памяти
	IdleTTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 1,
		BurstSize:         5,
		IdleTTL:           10 * time.Minute,
	}
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter - token bucket на каждый ключ (IP клиента)
type KeyedLimiter struct {
	entries map[string]*entry
	mu      sync.Mutex
	cfg     Config
	now     func() time.Time
}

func NewKeyedLimiter(cfg Config) *KeyedLimiter {
	if cfg.IdleTTL == 0 {
		cfg.IdleTTL = DefaultConfig().IdleTTL
	}
	return &KeyedLimiter{
		entries: make(map[string]*entry),
		cfg:     cfg,
		now:     time.Now,
	}
}

// Allow расходует токен ключа; false - лимит исчерпан
func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(rate.Limit(l.cfg.RequestsPerSecond), l.cfg.BurstSize)}
		l.entries[key] = e
	}
	e.lastSeen = now

	return e.limiter.AllowN(now, 1)
}

// Cleanup удаляет ключи, не использовавшиеся дольше IdleTTL
func (l *KeyedLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.cfg.IdleTTL)
	removed := 0
	for key, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, key)
			removed++
		}
	}
	return removed
}

// Len - количество отслеживаемых ключей
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
