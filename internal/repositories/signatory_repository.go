package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/pledge-service/internal/models"
	"github.com/poofware/pledge-service/internal/utils"
)

type SignatoryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Signatory, error)
	GetByEmail(ctx context.Context, email string) (*models.Signatory, error)
	// GetByToken also resolves a token that verification already consumed
	// to its verified row.
	GetByToken(ctx context.Context, token string) (*models.Signatory, error)

	// Upsert inserts s, or overwrites the unverified row holding the same
	// email in place. s.ID, CreatedAt and UpdatedAt are set from the stored
	// row. Returns utils.ErrEmailVerified when a verified row owns the email.
	Upsert(ctx context.Context, s *models.Signatory) (inserted bool, err error)

	// MarkVerified flips verified, clears the token and keeps only its hash.
	// Returns
	// utils.ErrNoRowsUpdated when the row is missing or already verified.
	MarkVerified(ctx context.Context, id uuid.UUID) error

	// ReissueToken replaces the token of an unverified row.
	ReissueToken(ctx context.Context, id uuid.UUID, token string) error

	ListPublic(ctx context.Context, limit, offset int) ([]*models.Signatory, error)
	ListAll(ctx context.Context) ([]*models.Signatory, error)

	Ping(ctx context.Context) error
}

type signatoryRepo struct {
	db DB
}

func NewSignatoryRepository(db DB) SignatoryRepository {
	return &signatoryRepo{db: db}
}

func baseSelectSignatory() string {
	return `
        SELECT id, name, email, organization, title, message, location, website,
               social, display_publicly, verified, verification_token,
               created_at, updated_at
        FROM signatories`
}

func (r *signatoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Signatory, error) {
	return r.scanSignatory(r.db.QueryRow(ctx, baseSelectSignatory()+" WHERE id=$1", id))
}

func (r *signatoryRepo) GetByEmail(ctx context.Context, email string) (*models.Signatory, error) {
	return r.scanSignatory(r.db.QueryRow(ctx, baseSelectSignatory()+" WHERE email=$1", email))
}

// GetByToken matches a live token, or the hash of a token already consumed
// by verification (that row is verified, so the token cannot verify again).
func (r *signatoryRepo) GetByToken(ctx context.Context, token string) (*models.Signatory, error) {
	return r.scanSignatory(r.db.QueryRow(ctx, baseSelectSignatory()+`
        WHERE verification_token = $1
           OR (verified AND verified_token_hash = $2)
        ORDER BY verified ASC
        LIMIT 1`, token, utils.HashToken(token)))
}

func (r *signatoryRepo) Upsert(ctx context.Context, s *models.Signatory) (bool, error) {
	social, err := encodeSocial(s.Social)
	if err != nil {
		return false, err
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	q := `
        INSERT INTO signatories (
            id, name, email, organization, title, message, location, website,
            social, display_publicly, verified, verification_token,
            created_at, updated_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8,
            $9::jsonb, $10, FALSE, $11,
            NOW(), NOW()
        )
        ON CONFLICT (email) DO UPDATE SET
            name               = EXCLUDED.name,
            organization       = EXCLUDED.organization,
            title              = EXCLUDED.title,
            message            = EXCLUDED.message,
            location           = EXCLUDED.location,
            website            = EXCLUDED.website,
            social             = EXCLUDED.social,
            display_publicly   = EXCLUDED.display_publicly,
            verification_token = EXCLUDED.verification_token,
            updated_at         = NOW()
        WHERE signatories.verified = FALSE
        RETURNING id, created_at, updated_at, (xmax = 0) AS inserted
    `
	var inserted bool
	err = r.db.QueryRow(ctx, q,
		s.ID, s.Name, s.Email, s.Organization, s.Title, s.Message, s.Location, s.Website,
		social, s.DisplayPublicly, s.VerificationToken,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt, &inserted)
	if err != nil {
		// The conflict WHERE clause filtered the row out: a verified
		// signature already owns this email.
		if errors.Is(err, pgx.ErrNoRows) {
			return false, utils.ErrEmailVerified
		}
		return false, err
	}
	s.Verified = false
	return inserted, nil
}

func (r *signatoryRepo) MarkVerified(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE signatories
        SET verified = TRUE,
            verified_token_hash = encode(sha256(convert_to(verification_token, 'UTF8')), 'hex'),
            verification_token = NULL,
            updated_at = NOW()
        WHERE id = $1 AND verified = FALSE
    `, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNoRowsUpdated
	}
	return nil
}

func (r *signatoryRepo) ReissueToken(ctx context.Context, id uuid.UUID, token string) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE signatories
        SET verification_token = $2,
            updated_at = NOW()
        WHERE id = $1 AND verified = FALSE
    `, id, token)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNoRowsUpdated
	}
	return nil
}

func (r *signatoryRepo) ListPublic(ctx context.Context, limit, offset int) ([]*models.Signatory, error) {
	rows, err := r.db.Query(ctx, baseSelectSignatory()+`
        WHERE display_publicly = TRUE
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *signatoryRepo) ListAll(ctx context.Context) ([]*models.Signatory, error) {
	rows, err := r.db.Query(ctx, baseSelectSignatory()+" ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *signatoryRepo) Ping(ctx context.Context) error {
	var one int
	return r.db.QueryRow(ctx, "SELECT 1").Scan(&one)
}

// ------------------------------------------------------------------
// internals
// ------------------------------------------------------------------

func (r *signatoryRepo) collect(rows pgx.Rows) ([]*models.Signatory, error) {
	defer rows.Close()

	var out []*models.Signatory
	for rows.Next() {
		s, err := r.scanSignatory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *signatoryRepo) scanSignatory(row pgx.Row) (*models.Signatory, error) {
	var (
		s      models.Signatory
		social []byte
	)
	err := row.Scan(
		&s.ID, &s.Name, &s.Email,
		&s.Organization, &s.Title, &s.Message, &s.Location, &s.Website,
		&social, &s.DisplayPublicly, &s.Verified, &s.VerificationToken,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	if len(social) > 0 {
		var links models.SocialLinks
		if err := json.Unmarshal(social, &links); err != nil {
			return nil, fmt.Errorf("decode social for %s: %w", s.ID, err)
		}
		s.Social = &links
	}
	return &s, nil
}

func encodeSocial(s *models.SocialLinks) (*string, error) {
	if s.IsEmpty() {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode social: %w", err)
	}
	return utils.StrPtr(string(b)), nil
}
