package chat

import (
	"sort"
	"time"

	"github.com/emgbraker/greencompanions/internal/models"
)

// Transcript is the merged, ordered view of one conversation. History pages
// and live events both funnel through Add, which dedupes by message ID, so
// a message that arrives over the socket while the history fetch is in
// flight appears exactly once.
type Transcript struct {
	msgs []models.Message
	seen map[uint]struct{}
}

func NewTranscript() *Transcript {
	return &Transcript{seen: make(map[uint]struct{})}
}

// Add inserts a message in order. Duplicates (same ID) are ignored and
// reported false.
func (t *Transcript) Add(m models.Message) bool {
	if _, ok := t.seen[m.ID]; ok {
		return false
	}
	t.seen[m.ID] = struct{}{}
	i := sort.Search(len(t.msgs), func(i int) bool { return less(m, t.msgs[i]) })
	t.msgs = append(t.msgs, models.Message{})
	copy(t.msgs[i+1:], t.msgs[i:])
	t.msgs[i] = m
	return true
}

// AddAll inserts a history page and returns how many were new.
func (t *Transcript) AddAll(msgs []models.Message) int {
	added := 0
	for _, m := range msgs {
		if t.Add(m) {
			added++
		}
	}
	return added
}

// Messages returns the transcript oldest-first. The slice is shared; callers
// must not mutate it.
func (t *Transcript) Messages() []models.Message {
	return t.msgs
}

func (t *Transcript) Len() int { return len(t.msgs) }

// less orders by creation time, breaking same-timestamp ties by ID so two
// messages committed within the clock's resolution keep insertion order.
func less(a, b models.Message) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// Entry is one rendered transcript row: either a message or a day separator
// preceding the first message of a calendar day.
type Entry struct {
	Separator string          `json:"separator,omitempty"` // "2006-01-02"
	Message   *models.Message `json:"message,omitempty"`
}

// Entries renders the transcript with a separator before the first message
// of each calendar day, evaluated in loc.
func (t *Transcript) Entries(loc *time.Location) []Entry {
	if loc == nil {
		loc = time.Local
	}
	entries := make([]Entry, 0, len(t.msgs)+4)
	var lastDay string
	for i := range t.msgs {
		m := &t.msgs[i]
		day := m.CreatedAt.In(loc).Format("2006-01-02")
		if day != lastDay {
			entries = append(entries, Entry{Separator: day})
			lastDay = day
		}
		entries = append(entries, Entry{Message: m})
	}
	return entries
}
