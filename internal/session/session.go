// Package session owns the per-session dashboard state: the analysis history
// and the currently displayed candidate record. All transitions go through
// the Store so they stay single-writer even though HTTP handlers and
// enrichment lookups run on their own goroutines.
package session

import (
	"log"
	"sync"
	"time"

	"resume-insight/internal/model"
)

// Status marks whether an analysis run produced a usable record.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// HistoryEntry is one past analysis. Immutable once created: later
// enrichment updates go to the live record, not back into the snapshot.
type HistoryEntry struct {
	ID        int64                 `json:"id"`
	Filename  string                `json:"filename"`
	Record    model.CandidateRecord `json:"data"`
	Status    Status                `json:"status"`
	ATSScore  *float64              `json:"ats_score"`
	CreatedAt time.Time             `json:"created_at"`
}

// Store holds the history list (newest first), the id of the currently
// displayed entry (0 when none), and the active record. The active record is
// never absent; clearing the selection resets it to all-defaults because
// every consumer renders fields off it unconditionally.
type Store struct {
	mu        sync.Mutex
	history   []HistoryEntry
	currentID int64
	active    model.CandidateRecord
	lastID    int64
}

func NewStore() *Store {
	return &Store{active: model.NewCandidateRecord()}
}

// Add creates a history entry for rec, prepends it, and makes it the current
// selection. Entry ids are time-derived and bumped on collision so they stay
// monotonic within the session.
func (s *Store) Add(filename string, rec model.CandidateRecord, status Status) HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	entry := HistoryEntry{
		ID:        id,
		Filename:  filename,
		Record:    rec,
		Status:    status,
		ATSScore:  rec.ATSScore,
		CreatedAt: time.Now(),
	}
	s.history = append([]HistoryEntry{entry}, s.history...)
	s.currentID = id
	s.active = rec
	return entry
}

// Select makes the entry with the given id current and restores its stored
// record as the active view. Only successful entries are selectable;
// selecting a failed or unknown id is a no-op and returns false.
func (s *Store) Select(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.history {
		if entry.ID == id {
			if entry.Status != StatusSuccess {
				return false
			}
			s.currentID = id
			s.active = entry.Record
			return true
		}
	}
	return false
}

// Clear drops the current selection and resets the active record to
// all-defaults. History is kept; it lives for the whole session.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentID = 0
	s.active = model.NewCandidateRecord()
}

// SetSlot applies an enrichment result to the active record, but only when
// the entry the lookup was issued for is still the current selection. A
// lookup has no cancellation, so a slow response can arrive after the
// operator selected another entry or logged out; those results are discarded
// here instead of silently resurrecting a stale slot.
func (s *Store) SetSlot(entryID int64, platform model.Platform, stats *model.PlatformStats) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entryID == 0 || entryID != s.currentID {
		log.Printf("[Session] Discarding %s result for entry %d (current is %d)", platform, entryID, s.currentID)
		return false
	}
	s.active.SetStats(platform, stats)
	return true
}

// History returns a snapshot of all entries, newest first.
func (s *Store) History() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// CurrentID returns the id of the selected entry, 0 when none.
func (s *Store) CurrentID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// Active returns a copy of the active candidate record.
func (s *Store) Active() model.CandidateRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}
