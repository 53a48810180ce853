package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rahul4469/compiler-craft/internal/crypto"
)

// StoredAnalysis is a validated analysis together with the source it was
// produced from.
type StoredAnalysis struct {
	ID        uuid.UUID       `json:"id"`
	Digest    string          `json:"digest"`
	Source    string          `json:"source"`
	Result    *AnalysisResult `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

// AnalysisStore persists analyses. Results are replaced wholesale, never
// edited in place. Create returns the stored valid-code analysis of the same
// source when there is one, and replaces a stored invalid-code one.
type AnalysisStore interface {
	Create(ctx context.Context, source string, result *AnalysisResult) (*StoredAnalysis, error)
	ByID(ctx context.Context, id uuid.UUID) (*StoredAnalysis, error)
	ByDigest(ctx context.Context, digest string) (*StoredAnalysis, error)
}

// AnalysisService is the PostgreSQL AnalysisStore.
type AnalysisService struct {
	pool *pgxpool.Pool
}

func NewAnalysisService(pool *pgxpool.Pool) *AnalysisService {
	return &AnalysisService{pool: pool}
}

// Create inserts the analysis. When the same source is already stored
// with a valid-code verdict, the existing row is returned instead; a stored
// invalid-code verdict is replaced so that a retry can correct it.
func (s *AnalysisService) Create(ctx context.Context, source string, result *AnalysisResult) (*StoredAnalysis, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	query := `
		INSERT INTO analyses (id, source_digest, source, result, is_valid_code)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	analysis := &StoredAnalysis{
		ID:     uuid.New(),
		Digest: crypto.SourceDigest(source),
		Source: source,
		Result: result,
	}

	qctx, cancel := withTimeout(ctx)
	defer cancel()

	err = s.pool.QueryRow(qctx, query, analysis.ID, analysis.Digest, source, resultJSON, result.IsValidCode).
		Scan(&analysis.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return s.replaceInvalid(ctx, analysis, resultJSON)
		}
		return nil, fmt.Errorf("failed to create analysis: %w", err)
	}

	return analysis, nil
}

// replaceInvalid overwrites a stored invalid-code row for the same digest.
// A stored valid-code row is kept and returned.
func (s *AnalysisService) replaceInvalid(ctx context.Context, analysis *StoredAnalysis, resultJSON []byte) (*StoredAnalysis, error) {
	query := `
		UPDATE analyses
		SET id = $1, source = $3, result = $4, is_valid_code = $5, created_at = NOW()
		WHERE source_digest = $2 AND is_valid_code = FALSE
		RETURNING created_at
	`

	qctx, cancel := withTimeout(ctx)
	defer cancel()

	err := s.pool.QueryRow(qctx, query, analysis.ID, analysis.Digest, analysis.Source, resultJSON, analysis.Result.IsValidCode).
		Scan(&analysis.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s.ByDigest(ctx, analysis.Digest)
		}
		return nil, fmt.Errorf("failed to replace analysis: %w", err)
	}
	return analysis, nil
}

func (s *AnalysisService) ByID(ctx context.Context, id uuid.UUID) (*StoredAnalysis, error) {
	return s.queryOne(ctx, `
		SELECT id, source_digest, source, result, created_at
		FROM analyses
		WHERE id = $1
	`, id)
}

func (s *AnalysisService) ByDigest(ctx context.Context, digest string) (*StoredAnalysis, error) {
	return s.queryOne(ctx, `
		SELECT id, source_digest, source, result, created_at
		FROM analyses
		WHERE source_digest = $1
	`, digest)
}

func (s *AnalysisService) queryOne(ctx context.Context, query string, arg any) (*StoredAnalysis, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	analysis := &StoredAnalysis{}
	var resultJSON []byte

	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&analysis.ID,
		&analysis.Digest,
		&analysis.Source,
		&resultJSON,
		&analysis.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	// Stored rows went through the validator on the way in; run it again so
	// a hand-edited row cannot reach the renderers.
	analysis.Result, err = ValidateAnalysis(resultJSON)
	if err != nil {
		return nil, fmt.Errorf("stored analysis %s: %w", analysis.ID, err)
	}

	return analysis, nil
}

// DefaultMemoryStoreSize is the number of analyses the in-memory store
// keeps before evicting the least recently used one.
const DefaultMemoryStoreSize = 256

// MemoryAnalysisStore keeps the most recently used analyses for the lifetime
// of the process. It is used when no DATABASE_URL is configured. Evicted
// analyses are gone: their ids return ErrAnalysisNotFound.
type MemoryAnalysisStore struct {
	mu       sync.Mutex
	byDigest *simplelru.LRU[string, *StoredAnalysis]
	byID     map[uuid.UUID]string
	now      func() time.Time
}

// NewMemoryAnalysisStore returns a store holding at most size analyses.
// A size of zero or less uses DefaultMemoryStoreSize.
func NewMemoryAnalysisStore(size int) *MemoryAnalysisStore {
	if size <= 0 {
		size = DefaultMemoryStoreSize
	}
	s := &MemoryAnalysisStore{
		byID: make(map[uuid.UUID]string),
		now:  time.Now,
	}
	// The callback runs inside Add and Remove, which are only called with
	// s.mu held.
	s.byDigest, _ = simplelru.NewLRU[string, *StoredAnalysis](size, func(_ string, evicted *StoredAnalysis) {
		delete(s.byID, evicted.ID)
	})
	return s
}

// Create stores the analysis. An existing valid-code analysis of the same
// source is returned as is; an existing invalid-code one is replaced.
func (s *MemoryAnalysisStore) Create(_ context.Context, source string, result *AnalysisResult) (*StoredAnalysis, error) {
	digest := crypto.SourceDigest(source)

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byDigest.Get(digest); ok {
		if existing.Result.IsValidCode {
			return existing, nil
		}
		s.byDigest.Remove(digest)
	}

	analysis := &StoredAnalysis{
		ID:        uuid.New(),
		Digest:    digest,
		Source:    source,
		Result:    result,
		CreatedAt: s.now(),
	}
	s.byDigest.Add(digest, analysis)
	s.byID[analysis.ID] = digest
	return analysis, nil
}

func (s *MemoryAnalysisStore) ByID(_ context.Context, id uuid.UUID) (*StoredAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	digest, ok := s.byID[id]
	if !ok {
		return nil, ErrAnalysisNotFound
	}
	analysis, ok := s.byDigest.Get(digest)
	if !ok {
		return nil, ErrAnalysisNotFound
	}
	return analysis, nil
}

func (s *MemoryAnalysisStore) ByDigest(_ context.Context, digest string) (*StoredAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	analysis, ok := s.byDigest.Get(digest)
	if !ok {
		return nil, ErrAnalysisNotFound
	}
	return analysis, nil
}

// Len reports how many analyses are held.
func (s *MemoryAnalysisStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.byDigest.Len()
}
