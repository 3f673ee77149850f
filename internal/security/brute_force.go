// Package security holds in-process abuse controls shared by the HTTP layer.
package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// GuardConfig tunes lockout behaviour.
type GuardConfig struct {
	MaxAttempts int
	Window      time.Duration
	Lockout     time.Duration
	MaxRecords  int
}

// DefaultGuardConfig locks a credential for 5 minutes after 5 failures in 15 minutes.
func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		MaxAttempts: 5,
		Window:      15 * time.Minute,
		Lockout:     5 * time.Minute,
		MaxRecords:  10000,
	}
}

const guardCleanupPeriod = 60 * time.Second

type failureRecord struct {
	attempts  int
	firstFail time.Time
	lockedAt  time.Time
}

// BruteForceGuard tracks authentication failures per credential digest and
// blocks credentials that exceed the threshold within the window.
type BruteForceGuard struct {
	mu      sync.Mutex
	cfg     GuardConfig
	records map[string]*failureRecord
	log     *logrus.Logger
	now     func() time.Time
}

// NewBruteForceGuard creates a guard and starts a cleanup goroutine that
// stops when ctx is cancelled.
func NewBruteForceGuard(ctx context.Context, log *logrus.Logger, cfg GuardConfig) *BruteForceGuard {
	g := &BruteForceGuard{
		cfg:     cfg,
		records: make(map[string]*failureRecord),
		log:     log,
		now:     time.Now,
	}
	go g.cleanupLoop(ctx)

	return g
}

// digest keeps raw credentials out of memory.
func digest(credential string) string {
	h := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(h[:])
}

// IsBlocked reports whether credential is currently locked out.
func (g *BruteForceGuard) IsBlocked(credential string) bool {
	d := digest(credential)

	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.records[d]
	if !ok || rec.lockedAt.IsZero() {
		return false
	}

	return g.now().Sub(rec.lockedAt) < g.cfg.Lockout
}

// RecordFailure counts a failed authentication for credential.
func (g *BruteForceGuard) RecordFailure(credential string) {
	d := digest(credential)

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	rec, ok := g.records[d]
	if !ok || now.Sub(rec.firstFail) > g.cfg.Window {
		g.records[d] = &failureRecord{attempts: 1, firstFail: now}
		return
	}

	rec.attempts++
	if rec.attempts >= g.cfg.MaxAttempts && rec.lockedAt.IsZero() {
		rec.lockedAt = now
		g.log.WithField("credential_hash", d[:16]+"...").Warn("credential locked out after repeated auth failures")
	}
}

// Reset clears failure tracking for credential after a successful login.
func (g *BruteForceGuard) Reset(credential string) {
	d := digest(credential)

	g.mu.Lock()
	delete(g.records, d)
	g.mu.Unlock()
}

func (g *BruteForceGuard) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(guardCleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.sweep()
		}
	}
}

// sweep drops expired records and enforces MaxRecords.
func (g *BruteForceGuard) sweep() {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()

	for k, rec := range g.records {
		lockExpired := !rec.lockedAt.IsZero() && now.Sub(rec.lockedAt) >= g.cfg.Lockout
		if lockExpired || (rec.lockedAt.IsZero() && now.Sub(rec.firstFail) >= g.cfg.Window) {
			delete(g.records, k)
		}
	}

	if over := len(g.records) - g.cfg.MaxRecords; g.cfg.MaxRecords > 0 && over > 0 {
		g.evictOldest(over)
	}
}

// evictOldest removes the n records with the oldest first failure.
// Caller must hold g.mu.
func (g *BruteForceGuard) evictOldest(n int) {
	type entry struct {
		key  string
		time time.Time
	}

	entries := make([]entry, 0, len(g.records))
	for k, rec := range g.records {
		entries = append(entries, entry{k, rec.firstFail})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].time.Before(entries[j].time)
	})

	for i := range n {
		delete(g.records, entries[i].key)
	}
}

// Len returns the number of tracked credentials.
func (g *BruteForceGuard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.records)
}
