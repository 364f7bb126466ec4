package testhelpers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/poofware/pledge-service/internal/models"
	"github.com/poofware/pledge-service/internal/repositories"
	"github.com/poofware/pledge-service/internal/utils"
)

// MemorySignatoryRepository is an in-memory SignatoryRepository with the
// same upsert and verification semantics as the Postgres one.
type MemorySignatoryRepository struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*models.Signatory
	now  func() time.Time
	// consumed maps utils.HashToken of a verified-away token to its row.
	consumed map[string]uuid.UUID

	// Err, when set, is returned by every call.
	Err error
	// MarkVerifiedErr, when set, is returned by MarkVerified only.
	MarkVerifiedErr error
	// BeforeUpsert runs inside Upsert before the write; tests use it to
	// simulate a concurrent request.
	BeforeUpsert func(r *MemorySignatoryRepository)
	// AfterListAll runs once ListAll has taken its snapshot, before it returns.
	AfterListAll func(r *MemorySignatoryRepository)
}

var _ repositories.SignatoryRepository = (*MemorySignatoryRepository)(nil)

func NewMemorySignatoryRepository() *MemorySignatoryRepository {
	return &MemorySignatoryRepository{
		rows:     map[uuid.UUID]*models.Signatory{},
		now:      time.Now,
		consumed: map[string]uuid.UUID{},
	}
}

// SetClock replaces the time source used for created_at / updated_at.
func (r *MemorySignatoryRepository) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// Seed stores copies of rows as-is.
func (r *MemorySignatoryRepository) Seed(rows ...*models.Signatory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range rows {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		r.rows[s.ID] = clone(s)
	}
}

// Len is the number of stored rows.
func (r *MemorySignatoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// VerifyEmailNow marks the row holding email verified, bypassing tokens.
func (r *MemorySignatoryRepository) VerifyEmailNow(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s := r.byEmailLocked(email); s != nil {
		s.Verified = true
		s.VerificationToken = nil
	}
}

func (r *MemorySignatoryRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Signatory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	s, ok := r.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return clone(s), nil
}

func (r *MemorySignatoryRepository) GetByEmail(_ context.Context, email string) (*models.Signatory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if s := r.byEmailLocked(email); s != nil {
		return clone(s), nil
	}
	return nil, utils.ErrNotFound
}

func (r *MemorySignatoryRepository) GetByToken(_ context.Context, token string) (*models.Signatory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, s := range r.rows {
		if s.VerificationToken != nil && *s.VerificationToken == token {
			return clone(s), nil
		}
	}
	if id, ok := r.consumed[utils.HashToken(token)]; ok {
		if s, ok := r.rows[id]; ok && s.Verified {
			return clone(s), nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *MemorySignatoryRepository) Upsert(_ context.Context, s *models.Signatory) (bool, error) {
	if r.BeforeUpsert != nil {
		r.BeforeUpsert(r)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	now := r.now()

	if existing := r.byEmailLocked(s.Email); existing != nil {
		if existing.Verified {
			return false, utils.ErrEmailVerified
		}
		s.ID = existing.ID
		s.CreatedAt = existing.CreatedAt
		s.UpdatedAt = now
		s.Verified = false
		r.rows[s.ID] = clone(s)
		return false, nil
	}

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = now
	s.UpdatedAt = now
	s.Verified = false
	r.rows[s.ID] = clone(s)
	return true, nil
}

func (r *MemorySignatoryRepository) MarkVerified(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if r.MarkVerifiedErr != nil {
		return r.MarkVerifiedErr
	}
	s, ok := r.rows[id]
	if !ok || s.Verified {
		return utils.ErrNoRowsUpdated
	}
	if s.VerificationToken != nil {
		r.consumed[utils.HashToken(*s.VerificationToken)] = s.ID
	}
	s.Verified = true
	s.VerificationToken = nil
	s.UpdatedAt = r.now()
	return nil
}

func (r *MemorySignatoryRepository) ReissueToken(_ context.Context, id uuid.UUID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	s, ok := r.rows[id]
	if !ok || s.Verified {
		return utils.ErrNoRowsUpdated
	}
	s.VerificationToken = utils.StrPtr(token)
	s.UpdatedAt = r.now()
	return nil
}

func (r *MemorySignatoryRepository) ListPublic(_ context.Context, limit, offset int) ([]*models.Signatory, error) {
	all, err := r.sorted()
	if err != nil {
		return nil, err
	}
	var public []*models.Signatory
	for _, s := range all {
		if s.DisplayPublicly {
			public = append(public, s)
		}
	}
	if offset >= len(public) {
		return nil, nil
	}
	public = public[offset:]
	if limit < len(public) {
		public = public[:limit]
	}
	return public, nil
}

func (r *MemorySignatoryRepository) ListAll(_ context.Context) ([]*models.Signatory, error) {
	rows, err := r.sorted()
	if err == nil && r.AfterListAll != nil {
		r.AfterListAll(r)
	}
	return rows, err
}

func (r *MemorySignatoryRepository) Ping(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Err
}

// ------------------------------------------------------------------
// internals
// ------------------------------------------------------------------

func (r *MemorySignatoryRepository) byEmailLocked(email string) *models.Signatory {
	for _, s := range r.rows {
		if s.Email == email {
			return s
		}
	}
	return nil
}

// sorted returns copies ordered newest first.
func (r *MemorySignatoryRepository) sorted() ([]*models.Signatory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]*models.Signatory, 0, len(r.rows))
	for _, s := range r.rows {
		out = append(out, clone(s))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func clone(s *models.Signatory) *models.Signatory {
	c := *s
	if s.Social != nil {
		social := *s.Social
		c.Social = &social
	}
	if s.VerificationToken != nil {
		c.VerificationToken = utils.StrPtr(*s.VerificationToken)
	}
	return &c
}
