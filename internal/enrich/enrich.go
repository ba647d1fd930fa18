// Package enrich issues the per-platform statistics lookups for a candidate
// record. Lookups are independent: they run on their own goroutines, one
// failure or slow response never blocks another, and there is no ordering
// guarantee between completions.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"resume-insight/internal/backend"
	"resume-insight/internal/model"
	"resume-insight/internal/notify"
	"resume-insight/internal/session"
)

// platformDomains are the URL tokens that mark a handle as a profile URL
// rather than a bare username.
var platformDomains = []string{"leetcode.com", "codechef.com", "github.com"}

// ExtractUsername canonicalizes a platform handle. A string containing a
// known platform domain is treated as a profile URL and reduced to its last
// non-empty path segment after trimming trailing slashes; anything else is
// taken as the username itself. Empty input yields "".
func ExtractUsername(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	for _, domain := range platformDomains {
		if strings.Contains(s, domain) {
			s = strings.TrimRight(s, "/")
			parts := strings.Split(s, "/")
			for i := len(parts) - 1; i >= 0; i-- {
				if parts[i] != "" {
					return parts[i]
				}
			}
			return ""
		}
	}
	return s
}

// lookupNoun is the per-platform word used in progress messages, matching
// what each integration actually returns.
var lookupNoun = map[model.Platform]string{
	model.PlatformLeetCode: "stats",
	model.PlatformCodeChef: "profile",
	model.PlatformGitHub:   "metrics",
}

// displayName capitalizes a platform for operator-facing messages.
var displayName = map[model.Platform]string{
	model.PlatformLeetCode: "LeetCode",
	model.PlatformCodeChef: "CodeChef",
	model.PlatformGitHub:   "GitHub",
}

// Orchestrator fans platform lookups out and merges their results back into
// the session's active record. Every call transition posts exactly one
// status message: start, then success or error.
type Orchestrator struct {
	backend    *backend.Client
	store      *session.Store
	messenger  *notify.Messenger
	clearAfter time.Duration

	mu       sync.Mutex
	inflight map[string]struct{}
	wg       sync.WaitGroup
}

func NewOrchestrator(bc *backend.Client, store *session.Store, messenger *notify.Messenger, clearAfter time.Duration) *Orchestrator {
	return &Orchestrator{
		backend:    bc,
		store:      store,
		messenger:  messenger,
		clearAfter: clearAfter,
		inflight:   make(map[string]struct{}),
	}
}

// Trigger issues a lookup for every platform handle present on rec. Triggers
// are fire-and-forget: this returns as soon as the lookups are launched.
// entryID names the history entry the results belong to; completions for an
// entry that is no longer current are discarded at the store.
func (o *Orchestrator) Trigger(entryID int64, rec model.CandidateRecord) {
	for _, platform := range model.Platforms {
		raw := rec.Handle(platform)
		if raw == "" {
			continue
		}
		o.Fetch(entryID, platform, raw)
	}
}

// Fetch launches a single platform lookup. An unparseable handle is a local
// failure reported through the messenger; no call is made. A lookup already
// in flight for the same platform and username is not re-issued.
func (o *Orchestrator) Fetch(entryID int64, platform model.Platform, raw string) {
	username := ExtractUsername(raw)
	if username == "" {
		o.messenger.Post(notify.Error, fmt.Sprintf("Could not parse %s username", displayName[platform]), "⚠️")
		return
	}

	key := string(platform) + "_" + username
	o.mu.Lock()
	if _, busy := o.inflight[key]; busy {
		o.mu.Unlock()
		log.Printf("[Enrich] Lookup %s already in flight, skipping", key)
		return
	}
	o.inflight[key] = struct{}{}
	o.mu.Unlock()

	o.messenger.Post(notify.Processing, fmt.Sprintf("Fetching %s %s for %s...", displayName[platform], lookupNoun[platform], username), "⏳")

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		defer func() {
			o.mu.Lock()
			delete(o.inflight, key)
			o.mu.Unlock()
		}()
		// Deliberately not tied to the request context: an in-flight lookup
		// always resolves, even after the operator has moved on.
		o.run(context.Background(), entryID, platform, username)
	}()
}

func (o *Orchestrator) run(ctx context.Context, entryID int64, platform model.Platform, username string) {
	stats, err := o.backend.Lookup(ctx, platform, username)
	if err != nil {
		var lookupErr *backend.LookupError
		if errors.As(err, &lookupErr) {
			o.messenger.Post(notify.Error, fmt.Sprintf("%s fetch error: %s", displayName[platform], lookupErr.Message), "❌")
		} else {
			o.messenger.Post(notify.Error, fmt.Sprintf("❌ Failed to fetch %s", username), "❌")
		}
		log.Printf("[Enrich] %s lookup for %s failed: %v", platform, username, err)
		return
	}

	if !o.store.SetSlot(entryID, platform, stats) {
		// Slot untouched; the record this lookup was issued for is gone.
		return
	}
	o.messenger.Post(notify.Success, "✅ Success!", "✅")
	if o.clearAfter > 0 {
		o.messenger.ClearAfter(o.clearAfter)
	}
	log.Printf("[Enrich] %s %s merged for %s", displayName[platform], lookupNoun[platform], username)
}

// Wait blocks until every launched lookup has resolved. Tests use it; the
// service itself never waits.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}
