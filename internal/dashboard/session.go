package dashboard

import (
	"sync"
	"time"

	"marketing-studio-backend/internal/models"
)

type partition struct {
	latest    uint64
	committed uint64
	projects  []models.Project
}

// Session owns a user's filters and the last project set fetched for each
// archive partition. Each fetch takes a token; only the newest token may
// commit, so a slow response can never overwrite a newer one.
type Session struct {
	Filters *Filters

	mu         sync.Mutex
	partitions map[bool]*partition
}

func NewSession() *Session {
	return &Session{
		Filters:    NewFilters(),
		partitions: map[bool]*partition{false: {}, true: {}},
	}
}

func (s *Session) BeginFetch(archived bool) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.partitions[archived]
	p.latest++
	return p.latest
}

// CommitFetch stores projects if token is still the newest fetch and
// recomputes the available tags. It reports whether the result was applied.
func (s *Session) CommitFetch(archived bool, token uint64, projects []models.Project) bool {
	s.mu.Lock()
	p := s.partitions[archived]
	if token != p.latest || token <= p.committed {
		s.mu.Unlock()
		return false
	}
	p.committed = token
	p.projects = append([]models.Project{}, projects...)
	tags := ProjectTags(p.projects)
	s.mu.Unlock()

	s.Filters.SetAvailableTags(tags)
	return true
}

// Visible runs the reconciler over the last committed project set.
func (s *Session) Visible(archived bool, now time.Time) []models.Project {
	s.mu.Lock()
	projects := s.partitions[archived].projects
	s.mu.Unlock()
	return Reconcile(projects, s.Filters.Snapshot(), now)
}

// Registry holds one session per user. Sessions live until the process exits.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

func (r *Registry) Session(uid string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[uid]
	if !ok {
		s = NewSession()
		r.sessions[uid] = s
	}
	return s
}

func (r *Registry) Reset(uid string) {
	r.mu.Lock()
	delete(r.sessions, uid)
	r.mu.Unlock()
}
