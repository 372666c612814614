package bot

import (
	"sort"
	"sync"

	"github.com/scrimhub/scrimhub/internal/model"
)

// State caches active tournament metadata for quick slash-command answers.
// It is rebuilt from incoming tournament-created webhooks; losing it on
// restart only costs cached answers, the webhook payload remains the source
// of truth.
type State struct {
	mu     sync.RWMutex
	active map[string]model.Tournament
}

func NewState() *State {
	return &State{active: make(map[string]model.Tournament)}
}

func (s *State) Put(t model.Tournament) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[t.ScrimID] = t
}

func (s *State) Get(scrimID string) (model.Tournament, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.active[scrimID]
	return t, ok
}

func (s *State) Remove(scrimID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, scrimID)
}

// List returns cached tournaments ordered by name.
func (s *State) List() []model.Tournament {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Tournament, 0, len(s.active))
	for _, t := range s.active {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
