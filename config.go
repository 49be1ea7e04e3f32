package authgate

import (
	"errors"
	"strings"
	"time"
)

// Mode selects the authentication strategy wired by [Builder.Build]. The
// choice is explicit startup configuration; the gate never inspects request
// shape to pick a strategy at runtime.
type Mode string

const (
	// ModeBasic authenticates with an identifier/secret pair carried in the
	// authorization header.
	ModeBasic Mode = "basic"
	// ModeSession authenticates with an opaque session cookie resolved
	// through the session store.
	ModeSession Mode = "session"
	// ModeToken authenticates with a signed bearer token; no store
	// round-trip.
	ModeToken Mode = "token"
)

// Config is the full configuration tree consumed by [Builder.Build].
type Config struct {
	Mode     Mode
	Gate     GateConfig
	Basic    BasicConfig
	Session  SessionConfig
	JWT      JWTConfig
	Password PasswordConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

/*
====================================
GATE CONFIG
====================================
*/

// GateConfig holds the path-exclusion rules. An entry ending in '*' matches
// any path sharing its fixed prefix; any other entry requires an exact match
// after trailing-slash normalization. Loaded once at configuration time.
type GateConfig struct {
	ExcludedPaths []string
}

/*
====================================
BASIC AUTH CONFIG
====================================
*/

// BasicConfig controls the credential codec.
type BasicConfig struct {
	// Scheme is the authorization header scheme prefix. Default "Basic".
	Scheme string
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig controls the session lifecycle.
type SessionConfig struct {
	// CookieName is the request cookie carrying the session ID.
	CookieName string
	// Duration is the fixed validity window measured from creation. Zero or
	// negative means sessions never expire.
	Duration time.Duration
	// RedisPrefix namespaces durable session keys when persistence is
	// enabled through [Builder.WithRedis].
	RedisPrefix string
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig configures the token manager used by [ModeToken].
type JWTConfig struct {
	TTL           time.Duration
	SigningMethod string // "hs256" (default) or "ed25519"
	PrivateKey    []byte
	PublicKey     []byte
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig configures the default bcrypt hasher. Cost applies to
// hashing only; verification reads the cost from the stored hash.
type PasswordConfig struct {
	Cost int
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the asynchronous audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
	// RedactFields are metadata and message fields whose values are
	// replaced before events reach the sink. Defaults to the PII set
	// (email, password).
	RedactFields []string
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls the in-process metrics system.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

const (
	defaultScheme      = "Basic"
	defaultCookieName  = "_my_session_id"
	defaultRedisPrefix = "ag"
	defaultBcryptCost  = 10
)

func defaultConfig() Config {
	return Config{
		Mode: ModeSession,
		Basic: BasicConfig{
			Scheme: defaultScheme,
		},
		Session: SessionConfig{
			CookieName:  defaultCookieName,
			Duration:    24 * time.Hour,
			RedisPrefix: defaultRedisPrefix,
		},
		JWT: JWTConfig{
			TTL:           15 * time.Minute,
			SigningMethod: "hs256",
		},
		Password: PasswordConfig{
			Cost: defaultBcryptCost,
		},
		Audit: AuditConfig{
			Enabled:      false,
			BufferSize:   256,
			DropIfFull:   true,
			RedactFields: []string{"email", "password"},
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate rejects configurations that cannot produce a working gate. It
// fills nothing in; defaults are applied by [New] before user overrides.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeBasic, ModeSession, ModeToken:
	default:
		return ErrInvalidMode
	}

	if strings.TrimSpace(c.Basic.Scheme) == "" {
		return errors.New("basic scheme must not be empty")
	}
	if strings.ContainsAny(c.Basic.Scheme, " \t") {
		return errors.New("basic scheme must not contain whitespace")
	}

	if strings.TrimSpace(c.Session.CookieName) == "" {
		return errors.New("session cookie name must not be empty")
	}
	if strings.TrimSpace(c.Session.RedisPrefix) == "" {
		return errors.New("session redis prefix must not be empty")
	}

	if c.Mode == ModeToken && c.JWT.TTL <= 0 {
		return errors.New("token mode requires a positive JWT TTL")
	}

	if c.Password.Cost < 4 || c.Password.Cost > 31 {
		return errors.New("password cost out of bcrypt range")
	}

	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("audit buffer size must not be negative")
	}

	for _, p := range c.Gate.ExcludedPaths {
		if !strings.HasPrefix(p, "/") {
			return errors.New("excluded paths must be absolute")
		}
	}

	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Gate.ExcludedPaths = append([]string(nil), cfg.Gate.ExcludedPaths...)
	out.Audit.RedactFields = append([]string(nil), cfg.Audit.RedactFields...)
	out.JWT.PrivateKey = cloneBytes(cfg.JWT.PrivateKey)
	out.JWT.PublicKey = cloneBytes(cfg.JWT.PublicKey)
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
