package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/securecookie"

	"github.com/riskibarqy/pl-predictor/internal/usecase"
)

const (
	CookieName = "session"
	defaultTTL = 7 * 24 * time.Hour
	signSalt   = "pl-predictor-session"
)

// Principal is the verified caller behind a session token.
type Principal struct {
	Username  string
	ExpiresAt time.Time
}

type Config struct {
	Username string
	Password string
	Secret   string
	TTL      time.Duration
}

// Manager checks the shared login and issues signed session tokens.
type Manager struct {
	username string
	password string
	codec    *securecookie.SecureCookie
	ttl      time.Duration
	now      func() time.Time
}

type claims struct {
	User      string `json:"u"`
	ExpiresAt int64  `json:"exp"`
}

// sonicSerializer encodes session claims with sonic.
type sonicSerializer struct{}

func (sonicSerializer) Serialize(src interface{}) ([]byte, error) {
	return sonic.Marshal(src)
}

func (sonicSerializer) Deserialize(src []byte, dst interface{}) error {
	return sonic.Unmarshal(src, dst)
}

func NewManager(cfg Config) (*Manager, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	if strings.TrimSpace(cfg.Username) == "" || cfg.Password == "" {
		return nil, fmt.Errorf("session username and password are required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	codec := securecookie.New(deriveKey(secret), nil).
		MaxAge(int(ttl / time.Second)).
		SetSerializer(sonicSerializer{})

	return &Manager{
		username: strings.TrimSpace(cfg.Username),
		password: cfg.Password,
		codec:    codec,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Login returns a fresh token when both credentials match.
func (m *Manager) Login(_ context.Context, username, password string) (string, Principal, error) {
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(m.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) == 1
	if !userOK || !passOK {
		return "", Principal{}, fmt.Errorf("%w: invalid login", usecase.ErrUnauthorized)
	}
	return m.Issue(m.username)
}

func (m *Manager) Issue(username string) (string, Principal, error) {
	expiresAt := m.now().Add(m.ttl).UTC().Truncate(time.Second)
	token, err := m.codec.Encode(CookieName, claims{User: username, ExpiresAt: expiresAt.Unix()})
	if err != nil {
		return "", Principal{}, fmt.Errorf("encode session: %w", err)
	}
	return token, Principal{Username: username, ExpiresAt: expiresAt}, nil
}

// Verify rejects tampered, malformed and expired tokens with ErrUnauthorized.
func (m *Manager) Verify(_ context.Context, token string) (Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Principal{}, fmt.Errorf("%w: session is required", usecase.ErrUnauthorized)
	}

	var decoded claims
	if err := m.codec.Decode(CookieName, token, &decoded); err != nil {
		return Principal{}, fmt.Errorf("%w: invalid session: %v", usecase.ErrUnauthorized, err)
	}
	if strings.TrimSpace(decoded.User) == "" {
		return Principal{}, fmt.Errorf("%w: malformed session payload", usecase.ErrUnauthorized)
	}

	expiresAt := time.Unix(decoded.ExpiresAt, 0).UTC()
	if !m.now().Before(expiresAt) {
		return Principal{}, fmt.Errorf("%w: session expired", usecase.ErrUnauthorized)
	}
	return Principal{Username: decoded.User, ExpiresAt: expiresAt}, nil
}

// deriveKey stretches the configured secret into a fixed-size hash key.
func deriveKey(secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(signSalt))
	return mac.Sum(nil)
}
