package services

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate-api/domain"
	"estate-api/query"
	"estate-api/repositories"
)

var errStoreDown = errors.New("store down")

func values(kv ...string) query.Params {
	v := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Add(kv[i], kv[i+1])
	}
	return query.FromValues(v)
}

func newCache() repositories.CacheRepository {
	return repositories.NewCacheRepository(repositories.CacheOptions{LocalTTL: time.Minute, SharedTTL: time.Minute})
}

var (
	baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	agentA   = primitive.NewObjectID()
	agentB   = primitive.NewObjectID()
)

// listings es un catálogo chico que cubre todos los campos filtrables
func listings() []domain.Property {
	return []domain.Property{
		{ID: primitive.NewObjectID(), Name: "Marina Sea View Loft", Description: "Bright loft", City: "Dubai", Type: "apartment", Price: 300000, Size: 80, Bedrooms: 1, Bathrooms: 1, Amenities: []string{"pool", "gym"}, Verified: true, AgentID: agentA, CreatedAt: baseTime},
		{ID: primitive.NewObjectID(), Name: "Palm Villa", Description: "Private beach and sea access", City: "Dubai", Type: "villa", Price: 900000, Size: 400, Bedrooms: 5, Bathrooms: 6, Amenities: []string{"pool", "gym", "beach"}, HighROI: true, Verified: true, AgentID: agentA, CreatedAt: baseTime.Add(time.Hour)},
		{ID: primitive.NewObjectID(), Name: "Downtown Studio", Description: "Close to the mall", City: "Dubai", Type: "apartment", Price: 150000, Size: 40, Bedrooms: 0, Bathrooms: 1, Amenities: []string{"gym"}, Verified: true, AgentID: agentB, CreatedAt: baseTime.Add(2 * time.Hour)},
		{ID: primitive.NewObjectID(), Name: "Corniche Penthouse", Description: "Sea view terrace", City: "Abu Dhabi", Type: "penthouse", Price: 1200000, Size: 300, Bedrooms: 3, Bathrooms: 4, Amenities: []string{"pool"}, Verified: true, AgentID: agentB, CreatedAt: baseTime.Add(3 * time.Hour)},
		{ID: primitive.NewObjectID(), Name: "Draft Townhouse", Description: "Sea breeze", City: "Dubai", Type: "townhouse", Price: 500000, Size: 200, Bedrooms: 3, Bathrooms: 3, Amenities: []string{"pool", "gym"}, Verified: false, AgentID: agentA, CreatedAt: baseTime.Add(4 * time.Hour)},
	}
}

// countingStore cuenta las lecturas que llegan al store
type countingStore struct {
	repositories.PropertyStore
	finds  atomic.Int32
	counts atomic.Int32
}

func (s *countingStore) Find(ctx context.Context, plan query.Plan) ([]domain.PropertySummary, error) {
	s.finds.Add(1)
	return s.PropertyStore.Find(ctx, plan)
}

func (s *countingStore) Count(ctx context.Context, filter query.Filter) (int64, error) {
	s.counts.Add(1)
	return s.PropertyStore.Count(ctx, filter)
}

type agentRepo struct {
	*repositories.MemoryStore[domain.Agent]
}

func newAgentRepo(agents ...domain.Agent) agentRepo {
	return agentRepo{repositories.NewMemoryStore[domain.Agent](repositories.AgentValue, agents...)}
}

func (r agentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Agent, error) {
	a, ok := r.First(func(a domain.Agent) bool { return a.ID == id })
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &a, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.PropertyEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.PropertyEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type countingCache struct {
	repositories.CacheRepository
	invalidations int
}

func (c *countingCache) Invalidate() {
	c.invalidations++
	c.CacheRepository.Invalidate()
}

type leadRepo struct {
	mu    sync.Mutex
	leads []domain.Lead
	err   error
}

func (r *leadRepo) Create(_ context.Context, lead *domain.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	lead.ID = primitive.NewObjectID()
	r.leads = append(r.leads, *lead)
	return nil
}

func (r *leadRepo) List(_ context.Context, skip int64, limit int) ([]domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []domain.Lead{}
	for i := len(r.leads) - 1 - int(skip); i >= 0 && len(out) < limit; i-- {
		out = append(out, r.leads[i])
	}
	return out, nil
}

func (r *leadRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.leads)), nil
}

type userRepo struct {
	mu     sync.Mutex
	users  map[uint]*domain.User
	nextID uint
}

func newUserRepo() *userRepo {
	return &userRepo{users: map[uint]*domain.User{}}
}

func (m *userRepo) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	user.ID = m.nextID
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *userRepo) GetByID(_ context.Context, id uint) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *userRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *userRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return m.find(func(u *domain.User) bool { return u.Username == username })
}

func (m *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return m.find(func(u *domain.User) bool { return u.Email == email })
}

func (m *userRepo) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *userRepo) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *userRepo) List(context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.User, 0, len(m.users))
	for id := uint(1); id <= m.nextID; id++ {
		if u, ok := m.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}
