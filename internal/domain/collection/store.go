// Package collection holds the two ordered candidate collections (pool and
// working team) and enforces that an id lives in at most one of them.
package collection

// Kind identifies a collection.
type Kind int

// Collection kinds. None means the id is unknown to the store.
const (
	None Kind = iota
	Pool
	Team
)

func (k Kind) String() string {
	switch k {
	case Pool:
		return "pool"
	case Team:
		return "team"
	default:
		return "none"
	}
}

// ParseKind maps "pool" and "team" to their Kind; anything else is None.
func ParseKind(s string) Kind {
	switch s {
	case "pool":
		return Pool
	case "team":
		return Team
	default:
		return None
	}
}

// Listener receives the new team order after every change.
type Listener func(team []string)

// Store keeps the pool and team sequences. It is not safe for concurrent
// use; callers serialise access.
//
// Removed team members are appended to the end of the pool.
type Store struct {
	pool     []string
	team     []string
	where    map[string]Kind
	listener Listener
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{where: make(map[string]Kind)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces both sequences. Ids listed twice keep their first position;
// an id present in both lists belongs to the team.
func (s *Store) Load(pool, team []string) {
	s.where = make(map[string]Kind, len(pool)+len(team))
	s.team = make([]string, 0, len(team))
	for _, id := range team {
		if _, ok := s.where[id]; ok {
			continue
		}
		s.where[id] = Team
		s.team = append(s.team, id)
	}
	s.pool = make([]string, 0, len(pool))
	for _, id := range pool {
		if _, ok := s.where[id]; ok {
			continue
		}
		s.where[id] = Pool
		s.pool = append(s.pool, id)
	}
	s.notify()
}

// MoveToTeam inserts id into the team at atIndex, taking it out of whichever
// collection held it. Unknown ids are inserted too. Returns true when the
// state changed.
func (s *Store) MoveToTeam(id string, atIndex int) bool {
	from := s.where[id]
	oldIndex := -1
	switch from {
	case Pool:
		s.pool = removeAt(s.pool, indexOf(s.pool, id))
	case Team:
		oldIndex = indexOf(s.team, id)
		s.team = removeAt(s.team, oldIndex)
	}
	at := clamp(atIndex, 0, len(s.team))
	s.team = insertAt(s.team, at, id)
	s.where[id] = Team
	if from == Team && oldIndex == at {
		return false
	}
	s.notify()
	return true
}

// MoveWithinTeam re-positions a team member. Ids not in the team are ignored.
func (s *Store) MoveWithinTeam(id string, toIndex int) bool {
	if s.where[id] != Team {
		return false
	}
	from := indexOf(s.team, id)
	s.team = removeAt(s.team, from)
	to := clamp(toIndex, 0, len(s.team))
	s.team = insertAt(s.team, to, id)
	if from == to {
		return false
	}
	s.notify()
	return true
}

// RemoveFromTeam moves id back to the end of the pool. Removing an id that is
// not in the team is a no-op.
func (s *Store) RemoveFromTeam(id string) bool {
	if s.where[id] != Team {
		return false
	}
	s.team = removeAt(s.team, indexOf(s.team, id))
	s.pool = append(s.pool, id)
	s.where[id] = Pool
	s.notify()
	return true
}

// ReplaceTeam swaps the working team for ids in the given order. Members
// that are not part of the new team return to the pool.
func (s *Store) ReplaceTeam(ids []string) bool {
	next := make([]string, 0, len(ids))
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := keep[id]; ok {
			continue
		}
		keep[id] = struct{}{}
		next = append(next, id)
	}
	if equal(next, s.team) {
		return false
	}
	for _, id := range s.team {
		if _, ok := keep[id]; !ok {
			s.pool = append(s.pool, id)
			s.where[id] = Pool
		}
	}
	filtered := s.pool[:0]
	for _, id := range s.pool {
		if _, ok := keep[id]; !ok {
			filtered = append(filtered, id)
		}
	}
	s.pool = filtered
	for _, id := range next {
		s.where[id] = Team
	}
	s.team = next
	s.notify()
	return true
}

// Pool returns a copy of the pool order.
func (s *Store) Pool() []string { return clone(s.pool) }

// Team returns a copy of the team order.
func (s *Store) Team() []string { return clone(s.team) }

// Location reports which collection holds id.
func (s *Store) Location(id string) Kind { return s.where[id] }

// TeamIndex returns the position of id in the team, or -1.
func (s *Store) TeamIndex(id string) int {
	if s.where[id] != Team {
		return -1
	}
	return indexOf(s.team, id)
}

// TeamLen returns the number of team members.
func (s *Store) TeamLen() int { return len(s.team) }

// PoolLen returns the number of pooled candidates.
func (s *Store) PoolLen() int { return len(s.pool) }

func (s *Store) notify() {
	if s.listener != nil {
		s.listener(s.Team())
	}
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func removeAt(ids []string, i int) []string {
	if i < 0 || i >= len(ids) {
		return ids
	}
	return append(ids[:i], ids[i+1:]...)
}

func insertAt(ids []string, i int, id string) []string {
	ids = append(ids, "")
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clone(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
