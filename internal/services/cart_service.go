package services

import (
	"sync"
	"time"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/domain"
)

// Session is the per-visitor state: the active criteria and the cart. Each
// event method runs to completion against the full catalog.
type Session struct {
	catalog  *catalog.Catalog
	criteria domain.Criteria
	cart     *cart.Store
}

func NewSession(c *catalog.Catalog) *Session {
	return &Session{
		catalog:  c,
		criteria: domain.Criteria{Category: domain.CategoryAll},
		cart:     cart.New(),
	}
}

// View is everything the presentation layer renders.
type View struct {
	Criteria   domain.Criteria  `json:"criteria"`
	Sort       string           `json:"sort"`
	Categories []string         `json:"categories"`
	Products   []domain.Product `json:"products"`
	Cart       cart.Summary     `json:"cart"`
}

func (s *Session) Criteria() domain.Criteria { return s.criteria }

// Search replaces the text query only; category and sort are kept.
func (s *Session) Search(text string) []domain.Product {
	s.criteria.Query = text
	return s.Visible()
}

func (s *Session) FilterByCategory(label string) []domain.Product {
	if label == "" {
		label = domain.CategoryAll
	}
	s.criteria.Category = label
	return s.Visible()
}

func (s *Session) SortByPrice(order domain.SortOrder) []domain.Product {
	s.criteria.Sort = order
	return s.Visible()
}

// SetCriteria replaces all criteria at once.
func (s *Session) SetCriteria(cr domain.Criteria) []domain.Product {
	if cr.Category == "" {
		cr.Category = domain.CategoryAll
	}
	s.criteria = cr
	return s.Visible()
}

// Visible recomputes the product list from the full catalog.
func (s *Session) Visible() []domain.Product {
	return s.catalog.Filter(s.criteria)
}

func (s *Session) AddToCart(productID int) { s.cart.Add(productID) }

func (s *Session) SetQuantity(productID, qty int) { s.cart.SetQuantity(productID, qty) }

func (s *Session) RemoveFromCart(productID int) { s.cart.Remove(productID) }

func (s *Session) CartSummary() cart.Summary { return s.cart.Summary(s.catalog) }

func (s *Session) View() View {
	return View{
		Criteria:   s.criteria,
		Sort:       s.criteria.Sort.String(),
		Categories: s.catalog.Categories(),
		Products:   s.Visible(),
		Cart:       s.CartSummary(),
	}
}

// SessionStore keeps sessions in memory, keyed by session id. Sessions idle
// for longer than the TTL are evicted; a restart discards them all.
type SessionStore struct {
	mu        sync.Mutex
	catalog   *catalog.Catalog
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
	sessions  map[string]*entry
}

type entry struct {
	mu       sync.Mutex
	s        *Session
	lastSeen time.Time
}

// NewSessionStore creates a store; ttl <= 0 uses DefaultSessionTTL.
func NewSessionStore(c *catalog.Catalog, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{catalog: c, ttl: ttl, now: time.Now, sessions: map[string]*entry{}}
}

const DefaultSessionTTL = 30 * time.Minute

// SetClock replaces the time source.
func (st *SessionStore) SetClock(now func() time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.now = now
}

func (st *SessionStore) get(sid string) *entry {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	st.sweepLocked(now)
	e, ok := st.sessions[sid]
	if !ok {
		e = &entry{s: NewSession(st.catalog)}
		st.sessions[sid] = e
	}
	e.lastSeen = now
	return e
}

// sweepLocked drops idle sessions, at most once per ttl/4.
func (st *SessionStore) sweepLocked(now time.Time) {
	if now.Sub(st.lastSweep) < st.ttl/4 {
		return
	}
	st.lastSweep = now
	for sid, e := range st.sessions {
		if now.Sub(e.lastSeen) > st.ttl {
			delete(st.sessions, sid)
		}
	}
}

// Do runs fn with exclusive access to the session for sid, creating it on
// first use.
func (st *SessionStore) Do(sid string, fn func(*Session)) {
	e := st.get(sid)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.s)
}

func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Drop forgets a session.
func (st *SessionStore) Drop(sid string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, sid)
}
