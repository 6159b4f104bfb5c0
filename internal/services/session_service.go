package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"smart-share-todo/internal/config"
	"smart-share-todo/internal/domain"
	"smart-share-todo/internal/errors"
	"smart-share-todo/internal/logging"
	"smart-share-todo/internal/notify"
	"smart-share-todo/internal/repository/sqlite"
)

const (
	demoUserName   = "Demo User"
	demoUserEmail  = "demo@smartsharetodo.com"
	demoUserAvatar = "https://ui-avatars.com/api/?name=Demo+User&background=random"
)

// sessionServiceImpl implements SessionService with a simulated OAuth flow
type sessionServiceImpl struct {
	repo   sqlite.Repository
	sink   notify.Sink
	mapper *domain.SnapshotMapper
	cfg    config.SessionConfig
	newID  func() string
	wait   func(ctx context.Context, d time.Duration) error
}

// NewSessionService creates a SessionService. A nil cfg uses defaults.
func NewSessionService(repo sqlite.Repository, sink notify.Sink, cfg *config.Config) SessionService {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &sessionServiceImpl{
		repo:   repo,
		sink:   notify.Safe(sink),
		mapper: domain.NewSnapshotMapper(),
		cfg:    cfg.Session,
		newID:  uuid.NewString,
		wait:   sleepContext,
	}
}

// Current returns the stored user, or nil when nobody is signed in.
// An unreadable user record counts as signed out.
func (s *sessionServiceImpl) Current(ctx context.Context) (*domain.User, error) {
	raw, err := s.repo.Get(ctx, domain.UserKey)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user, err := s.mapper.DecodeUser(raw)
	if err != nil {
		logging.Debugf("ignoring stored user: %v", err)
		return nil, nil
	}
	return &user, nil
}

// SignIn simulates an OAuth round trip with provider and stores a demo user
func (s *sessionServiceImpl) SignIn(ctx context.Context, provider string) (*domain.User, error) {
	provider = strings.TrimSpace(provider)
	if provider == "" {
		provider = s.cfg.DefaultProvider
	}

	if err := s.wait(ctx, s.cfg.SignInDelay); err != nil {
		s.notifyFailure()
		return nil, errors.WrapError(err, errors.ErrorTypeTimeout, "sign in with "+provider+" did not complete").
			WithContext("delay", s.cfg.SignInDelay)
	}

	user := domain.User{
		ID:     s.newID(),
		Name:   demoUserName,
		Email:  demoUserEmail,
		Avatar: demoUserAvatar,
	}
	raw, err := s.mapper.EncodeUser(user)
	if err != nil {
		s.notifyFailure()
		return nil, errors.NewStorageError("encode user", err)
	}
	if err := s.repo.Set(ctx, domain.UserKey, raw); err != nil {
		s.notifyFailure()
		return nil, err
	}

	logging.Debugf("signed in %s via %s", user.ID, provider)
	s.sink.Notify(notify.Notification{
		Title:       "Welcome to Smart Share Todo!",
		Description: "You've successfully signed in with " + provider,
		Severity:    notify.SeverityDefault,
	})
	return &user, nil
}

// SignOut clears the user record and the task list
func (s *sessionServiceImpl) SignOut(ctx context.Context) error {
	if err := s.repo.Delete(ctx, domain.UserKey); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, domain.TasksKey); err != nil {
		return err
	}

	s.sink.Notify(notify.Notification{
		Title:       "Signed out successfully",
		Description: "Come back soon!",
		Severity:    notify.SeverityDefault,
	})
	return nil
}

func (s *sessionServiceImpl) notifyFailure() {
	s.sink.Notify(notify.Notification{
		Title:       "Authentication failed",
		Description: "Please try again later",
		Severity:    notify.SeverityDestructive,
	})
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
