package authgate

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/devlucky14/authgate/jwt"
	"github.com/devlucky14/authgate/password"
	"github.com/devlucky14/authgate/session"
)

// Builder assembles a [Gate]. Zero-value options fall back to defaults; a
// builder is single-use and not safe for concurrent mutation.
type Builder struct {
	config    Config
	redis     redis.UniversalClient
	provider  UserProvider
	verifier  PasswordVerifier
	auditSink AuditSink
	store     session.Store
	built     bool
}

// New creates a builder pre-loaded with default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the entire configuration tree. Call it before the
// targeted setters or it will overwrite them.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithMode selects the authentication strategy.
func (b *Builder) WithMode(mode Mode) *Builder {
	b.config.Mode = mode
	return b
}

// WithExcludedPaths sets the gate's exclusion rules.
func (b *Builder) WithExcludedPaths(paths ...string) *Builder {
	b.config.Gate.ExcludedPaths = paths
	return b
}

// WithRedis enables durable session persistence on the given client.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithUserProvider sets the user repository. Required.
func (b *Builder) WithUserProvider(provider UserProvider) *Builder {
	b.provider = provider
	return b
}

// WithPasswordVerifier overrides the default bcrypt verifier.
func (b *Builder) WithPasswordVerifier(verifier PasswordVerifier) *Builder {
	b.verifier = verifier
	return b
}

// WithAuditSink sets the destination for audit events and enables auditing.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = sink != nil
	return b
}

// WithSessionStore replaces the built-in store chain entirely. The configured
// duration and Redis client are ignored for session storage when set.
func (b *Builder) WithSessionStore(store session.Store) *Builder {
	b.store = store
	return b
}

// Build validates the configuration and assembles the gate. A builder builds
// at most once.
func (b *Builder) Build() (*Gate, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if b.provider == nil {
		return nil, errors.New("user provider is required")
	}

	metrics := NewMetrics(cfg.Metrics)

	sink := b.auditSink
	if sink != nil && len(cfg.Audit.RedactFields) > 0 {
		sink = NewRedactingSink(sink, cfg.Audit.RedactFields)
	}
	audit := newAuditDispatcher(cfg.Audit, sink)

	store := b.store
	if store == nil {
		var chain session.Store = session.NewMemoryStore()
		chain = session.NewExpiringStore(chain, cfg.Session.Duration)
		if b.redis != nil {
			repo := session.NewRedisRepository(b.redis, cfg.Session.RedisPrefix)
			chain = session.NewPersistentStore(chain, repo, cfg.Session.Duration)
		}
		store = chain
	}

	verifier := b.verifier
	if verifier == nil {
		bc, err := password.NewBcrypt(password.Config{Cost: cfg.Password.Cost})
		if err != nil {
			return nil, err
		}
		verifier = bc
	}

	var strategy Strategy
	switch cfg.Mode {
	case ModeBasic:
		s := NewBasicStrategy(cfg.Basic.Scheme, b.provider, verifier)
		s.metrics = metrics
		s.audit = audit
		strategy = s
	case ModeSession:
		s := NewSessionStrategy(cfg.Session.CookieName, store, b.provider)
		s.metrics = metrics
		s.audit = audit
		strategy = s
	case ModeToken:
		manager, err := jwt.NewManager(jwt.Config{
			TTL:           cfg.JWT.TTL,
			SigningMethod: jwt.SigningMethod(cfg.JWT.SigningMethod),
			PrivateKey:    cfg.JWT.PrivateKey,
			PublicKey:     cfg.JWT.PublicKey,
		})
		if err != nil {
			audit.Close()
			return nil, err
		}
		s := NewTokenStrategy(manager, b.provider)
		s.metrics = metrics
		s.audit = audit
		strategy = s
	default:
		return nil, ErrInvalidMode
	}

	b.built = true

	return &Gate{
		config:   cfg,
		strategy: strategy,
		store:    store,
		audit:    audit,
		metrics:  metrics,
	}, nil
}
