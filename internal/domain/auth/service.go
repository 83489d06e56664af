package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hrledger/internal/domain/hrerr"
	"hrledger/internal/domain/records"
)

const aggregate = "auth"

// DefaultSessionTTL is how long a login token stays valid.
const DefaultSessionTTL = time.Hour

type Service struct {
	records *records.Store
	users   *records.Collection[User]
	secret  string
	ttl     time.Duration
	now     func() time.Time
}

type Option func(*Service)

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(rs *records.Store, secret string, opts ...Option) *Service {
	s := &Service{
		records: rs,
		users:   records.NewCollection[User](rs, UsersKey),
		secret:  secret,
		ttl:     DefaultSessionTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Register(ctx context.Context, username, password string) (UserView, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return UserView{}, fmt.Errorf("username: %w", hrerr.ErrInvalidName)
	}
	if err := ValidatePassword(password); err != nil {
		return UserView{}, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return UserView{}, fmt.Errorf("hash password: %w", err)
	}

	var created User
	err = s.records.Critical(ctx, aggregate, func(ctx context.Context) error {
		_, found, err := s.findByUsername(ctx, username)
		if err != nil {
			return err
		}
		if found {
			return fmt.Errorf("username %q: %w", username, hrerr.ErrDuplicateName)
		}
		created, err = s.users.Add(ctx, User{Username: username, PasswordHash: hash, CreatedAt: s.now().UTC()})
		return err
	})
	if err != nil {
		return UserView{}, err
	}
	return UserView{ID: created.ID, Username: created.Username}, nil
}

// Login checks the credentials and issues a signed session token. Unknown
// users and wrong passwords fail the same way.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	user, found, err := s.findByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return Session{}, err
	}
	if !found || CheckPassword(user.PasswordHash, password) != nil {
		return Session{}, hrerr.ErrInvalidCredentials
	}

	now := s.now()
	token, err := GenerateToken(s.secret, Claims{UserID: user.ID, Username: user.Username}, now, s.ttl)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{
		Token:     token,
		ExpiresAt: now.Add(s.ttl).UTC(),
		User:      UserView{ID: user.ID, Username: user.Username},
	}, nil
}

// Authenticate resolves a bearer token to its user.
func (s *Service) Authenticate(token string) (UserContext, error) {
	claims, err := ParseToken(s.secret, token)
	if err != nil {
		return UserContext{}, fmt.Errorf("%w: %v", hrerr.ErrInvalidCredentials, err)
	}
	return UserContext{UserID: claims.UserID, Username: claims.Username}, nil
}

func (s *Service) findByUsername(ctx context.Context, username string) (User, bool, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return User{}, false, err
	}
	for _, user := range users {
		if user.Username == username {
			return user, true, nil
		}
	}
	return User{}, false, nil
}
