package runtime

import (
	"chat-sim/domain"
	"sync"

	"github.com/samber/lo"
)

// Roster is the ordered list of simulated connected participants.
// Entries are only added by connect and removed by disconnect.
type Roster struct {
	mu           sync.RWMutex
	participants []domain.Participant
}

func NewRoster() *Roster {
	return &Roster{}
}

func (r *Roster) Add(participant domain.Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.participants = append(r.participants, participant)
}

// RemoveByID drops every entry of the participant, not only the latest one,
// and returns how many were removed.
func (r *Roster) RemoveByID(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := lo.Filter(r.participants, func(p domain.Participant, _ int) bool {
		return p.ID != id
	})
	removed := len(r.participants) - len(kept)
	r.participants = kept
	return removed
}

func (r *Roster) Snapshot() []domain.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Participant{}, r.participants...)
}

func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.participants)
}
