package leads

import (
	"context"
	"crypto/rand"
	"github.com/oklog/ulid/v2"
	"io"
	"pdsite/internal/logging"
	"sync"
	"time"
)

// Sender delivers a lead somewhere outside the process.
type Sender interface {
	Send(ctx context.Context, l Lead) error
}

// Service accepts validated input. Delivery problems are logged, never
// surfaced, so a visitor is not asked to resubmit.
type Service struct {
	store  *Store
	sender Sender
	log    logging.Logger
	now    func() time.Time

	mu      sync.Mutex
	entropy io.Reader
}

type Option func(*Service)

// WithStore persists every lead.
func WithStore(s *Store) Option {
	return func(svc *Service) { svc.store = s }
}

// WithSender forwards every lead. Without one, leads are written to the log.
func WithSender(s Sender) Option {
	return func(svc *Service) { svc.sender = s }
}

func WithClock(now func() time.Time) Option {
	return func(svc *Service) { svc.now = now }
}

func NewService(log logging.Logger, opts ...Option) *Service {
	svc := &Service{
		log:     logging.OrNoOp(log),
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *Service) newID(t time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := ulid.New(ulid.Timestamp(t), s.entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Submit sanitizes in and records it. in must already have passed Validate.
func (s *Service) Submit(ctx context.Context, in Input) (Lead, error) {
	in = in.Sanitize()
	now := s.now().UTC()

	id, err := s.newID(now)
	if err != nil {
		return Lead{}, err
	}
	l := Lead{
		ID:          id,
		Email:       in.Email,
		Name:        in.Name,
		Company:     in.Company,
		Role:        in.Role,
		Comment:     in.Comment,
		SubmittedAt: now,
	}

	if s.store != nil {
		if err := s.store.Save(l); err != nil {
			s.log.Error("failed to persist lead", "id", l.ID, "err", err)
		} else if n, err := s.store.CountByEmail(l.Email); err == nil && n > 1 {
			s.log.Info("repeat early access submission", "id", l.ID, "email", l.Email, "submissions", n)
		}
	}

	if s.sender == nil {
		s.log.Info("early access submission",
			"id", l.ID,
			"email", l.Email,
			"name", l.Name,
			"company", l.Company,
			"role", l.Role,
		)
		return l, nil
	}
	if err := s.sender.Send(ctx, l); err != nil {
		s.log.Error("failed to forward lead", "id", l.ID, "err", err)
	}
	return l, nil
}
