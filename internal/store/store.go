// Package store persists board questions and rate-limit counters to JSON
// documents on disk. Both collections are whole-document read-modify-write:
// every mutation loads the full array, changes one record and rewrites the
// file. A per-collection mutex serializes mutations so concurrent requests
// cannot clobber each other's writes.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/askanon/board/internal/models"
)

var (
	// ErrQuestionNotFound is returned when no question matches the given id.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrAlreadyUpvoted is returned when an IP upvotes the same question twice.
	ErrAlreadyUpvoted = errors.New("already upvoted")
)

const (
	questionsFile  = "questions.json"
	rateLimitsFile = "rate-limits.json"

	// DefaultCacheTTL is how long a read of the questions document stays
	// fresh before the next read goes back to disk.
	DefaultCacheTTL = 5 * time.Second

	// RateLimitWindow is the rolling submission window per IP.
	RateLimitWindow = 24 * time.Hour
)

// Store owns the questions and rate-limits documents under a data directory.
// It is safe for concurrent use.
type Store struct {
	dir      string
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time

	// questionsMu serializes question read-modify-write cycles,
	// rateLimitsMu does the same for rate-limit records.
	questionsMu  sync.Mutex
	rateLimitsMu sync.Mutex

	cacheMu   sync.RWMutex
	cached    []models.Question
	cachedAt  time.Time
	cacheWarm bool
}

// Option configures a Store.
type Option func(*Store)

// WithCacheTTL overrides the read-cache freshness window.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Store) { s.cacheTTL = ttl }
}

// WithClock injects a clock, used by tests to drive cache expiry and
// rate-limit windows deterministically.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a store rooted at dir. The directory and both documents are
// created lazily on first use.
func New(dir string, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		dir:      dir,
		cacheTTL: DefaultCacheTTL,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// init ensures the data directory and both documents exist, seeding each
// with an empty array if absent. Idempotent; called before every operation.
func (s *Store) init() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	for _, name := range []string{questionsFile, rateLimitsFile} {
		path := filepath.Join(s.dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("stat %s: %w", name, err)
		}
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
	}
	return nil
}

// Questions returns every question, newest first. Reads within the cache TTL
// are served from memory. A read or parse failure is logged and degrades to
// an empty list rather than an error.
func (s *Store) Questions() []models.Question {
	if err := s.init(); err != nil {
		s.logger.Error("init data dir", zap.Error(err))
		return nil
	}

	now := s.now()
	s.cacheMu.RLock()
	if s.cacheWarm && now.Sub(s.cachedAt) < s.cacheTTL {
		cached := cloneQuestions(s.cached)
		s.cacheMu.RUnlock()
		return cached
	}
	s.cacheMu.RUnlock()

	questions, err := s.readQuestions()
	if err != nil {
		s.logger.Error("read questions", zap.Error(err))
		return nil
	}

	s.cacheMu.Lock()
	s.cached = questions
	s.cachedAt = now
	s.cacheWarm = true
	s.cacheMu.Unlock()

	return cloneQuestions(questions)
}

func (s *Store) readQuestions() ([]models.Question, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, questionsFile))
	if err != nil {
		return nil, err
	}
	var questions []models.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// saveQuestions rewrites the whole document and refreshes the cache to the
// written value, so the next read observes the write without re-parsing.
func (s *Store) saveQuestions(questions []models.Question) error {
	if err := s.init(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, questionsFile), data, 0o644); err != nil {
		return fmt.Errorf("write questions: %w", err)
	}

	s.cacheMu.Lock()
	s.cached = questions
	s.cachedAt = s.now()
	s.cacheWarm = true
	s.cacheMu.Unlock()
	return nil
}

// AddQuestion creates a question with a fresh id and prepends it, so the
// sequence stays most-recent-first.
func (s *Store) AddQuestion(text, category string) (models.Question, error) {
	s.questionsMu.Lock()
	defer s.questionsMu.Unlock()

	q := models.Question{
		ID:         uuid.New().String(),
		Text:       text,
		Category:   category,
		Timestamp:  s.now().UTC(),
		Upvotes:    0,
		UpvotedIPs: models.NewIPSet(),
	}
	questions := append([]models.Question{q}, s.Questions()...)
	if err := s.saveQuestions(questions); err != nil {
		return models.Question{}, err
	}
	return q.Clone(), nil
}

// UpvoteQuestion records one upvote from ip. Each IP may upvote a given
// question at most once; the second attempt fails with ErrAlreadyUpvoted.
func (s *Store) UpvoteQuestion(id, ip string) (models.Question, error) {
	s.questionsMu.Lock()
	defer s.questionsMu.Unlock()

	questions := s.Questions()
	i := findQuestion(questions, id)
	if i < 0 {
		return models.Question{}, ErrQuestionNotFound
	}
	if questions[i].UpvotedIPs.Contains(ip) {
		return models.Question{}, ErrAlreadyUpvoted
	}
	if questions[i].UpvotedIPs == nil {
		// hand-edited documents may omit the field
		questions[i].UpvotedIPs = models.NewIPSet()
	}
	questions[i].Upvotes++
	questions[i].UpvotedIPs.Add(ip)
	if err := s.saveQuestions(questions); err != nil {
		return models.Question{}, err
	}
	return questions[i].Clone(), nil
}

// SetResolved applies the resolve transition: resolving stamps ResolvedAt,
// un-resolving clears it.
func (s *Store) SetResolved(id string, resolved bool) (models.Question, error) {
	s.questionsMu.Lock()
	defer s.questionsMu.Unlock()

	questions := s.Questions()
	i := findQuestion(questions, id)
	if i < 0 {
		return models.Question{}, ErrQuestionNotFound
	}
	questions[i].Resolved = resolved
	if resolved {
		now := s.now().UTC()
		questions[i].ResolvedAt = &now
	} else {
		questions[i].ResolvedAt = nil
	}
	if err := s.saveQuestions(questions); err != nil {
		return models.Question{}, err
	}
	return questions[i].Clone(), nil
}

// SetHidden applies the hide transition. Hiding stamps HiddenAt and forces
// the question resolved in the same write; un-hiding clears HiddenAt only
// and leaves the resolved state untouched.
func (s *Store) SetHidden(id string, hidden bool) (models.Question, error) {
	s.questionsMu.Lock()
	defer s.questionsMu.Unlock()

	questions := s.Questions()
	i := findQuestion(questions, id)
	if i < 0 {
		return models.Question{}, ErrQuestionNotFound
	}
	questions[i].Hidden = hidden
	if hidden {
		now := s.now().UTC()
		questions[i].HiddenAt = &now
		questions[i].Resolved = true
		questions[i].ResolvedAt = &now
	} else {
		questions[i].HiddenAt = nil
	}
	if err := s.saveQuestions(questions); err != nil {
		return models.Question{}, err
	}
	return questions[i].Clone(), nil
}

// CheckRateLimit consumes one submission slot for ip within its current
// 24-hour window, lazily creating the window on first use. It reports false
// without persisting anything when the window's budget is exhausted. Expired
// records are dropped from the set as a side effect of the next allowed
// request.
func (s *Store) CheckRateLimit(ip string, maxRequests int) (bool, error) {
	s.rateLimitsMu.Lock()
	defer s.rateLimitsMu.Unlock()

	limits, err := s.rateLimits()
	if err != nil {
		s.logger.Error("read rate limits", zap.Error(err))
		limits = nil
	}

	now := s.now()
	valid := limits[:0]
	for _, l := range limits {
		if !l.Expired(now) {
			valid = append(valid, l)
		}
	}

	idx := -1
	for i, l := range valid {
		if l.IP == ip {
			idx = i
			break
		}
	}
	if idx < 0 {
		valid = append(valid, models.RateLimit{
			IP:        ip,
			Count:     0,
			ResetDate: now.Add(RateLimitWindow).UTC(),
		})
		idx = len(valid) - 1
	}

	if valid[idx].Count >= maxRequests {
		return false, nil
	}

	valid[idx].Count++
	if err := s.saveRateLimits(valid); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) rateLimits() ([]models.RateLimit, error) {
	if err := s.init(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, rateLimitsFile))
	if err != nil {
		return nil, err
	}
	var limits []models.RateLimit
	if err := json.Unmarshal(data, &limits); err != nil {
		return nil, err
	}
	return limits, nil
}

func (s *Store) saveRateLimits(limits []models.RateLimit) error {
	if err := s.init(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(limits, "", "  ")
	if err != nil {
		return fmt.Errorf("encode rate limits: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, rateLimitsFile), data, 0o644); err != nil {
		return fmt.Errorf("write rate limits: %w", err)
	}
	return nil
}

func findQuestion(questions []models.Question, id string) int {
	for i := range questions {
		if questions[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneQuestions(questions []models.Question) []models.Question {
	out := make([]models.Question, len(questions))
	for i := range questions {
		out[i] = questions[i].Clone()
	}
	return out
}
