package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable marks a durable repository fault, as opposed to a
// normal "no such record" miss.
var ErrRedisUnavailable = errors.New("redis unavailable")

// Repository is the durable system of record behind [PersistentStore].
// Filters are always equality on session ID or user ID. Finds return
// (nil, nil) / empty slices for misses; errors mean the backend itself
// failed.
type Repository interface {
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	FindBySessionID(ctx context.Context, sessionID string) (*Session, error)
	FindByUserID(ctx context.Context, userID string) ([]*Session, error)
	Remove(ctx context.Context, s *Session) error
}

// RedisRepository stores session records in Redis: one key per session
// holding the encoded record, plus a per-user set indexing that user's
// session IDs. Writes go through a transactional pipeline so the record and
// its index entry appear together.
type RedisRepository struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisRepository creates a repository on the given client. prefix
// namespaces all keys.
func NewRedisRepository(client redis.UniversalClient, prefix string) *RedisRepository {
	return &RedisRepository{
		redis:  client,
		prefix: prefix,
	}
}

func (r *RedisRepository) key(sessionID string) string {
	return r.prefix + ":" + sessionID
}

func (r *RedisRepository) userKey(userID string) string {
	return r.prefix + ":u:" + userID
}

// Save persists a record. A positive ttl bounds the key's lifetime in Redis;
// zero keeps it until removed, for never-expiring sessions.
func (r *RedisRepository) Save(ctx context.Context, s *Session, ttl time.Duration) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}

	_, err = r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(s.SessionID), data, ttl)
		pipe.SAdd(ctx, r.userKey(s.UserID), s.SessionID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// FindBySessionID returns the record for sessionID, or (nil, nil) when no
// durable record exists.
func (r *RedisRepository) FindBySessionID(ctx context.Context, sessionID string) (*Session, error) {
	data, err := r.redis.Get(ctx, r.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	s, err := Decode(data)
	if err != nil {
		return nil, err
	}
	s.SessionID = sessionID

	return s, nil
}

// FindByUserID returns every durable record indexed for userID. Index
// entries whose record key has since vanished (TTL reaping) are skipped.
func (r *RedisRepository) FindByUserID(ctx context.Context, userID string) ([]*Session, error) {
	ids, err := r.redis.SMembers(ctx, r.userKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	pipe := r.redis.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, r.key(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	sessions := make([]*Session, 0, len(ids))
	for i, cmd := range cmds {
		data, cmdErr := cmd.Bytes()
		if cmdErr != nil {
			if errors.Is(cmdErr, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, cmdErr)
		}

		s, decErr := Decode(data)
		if decErr != nil {
			return nil, decErr
		}
		s.SessionID = ids[i]
		sessions = append(sessions, s)
	}

	return sessions, nil
}

// Remove deletes the record and its index entry. Removing an absent record
// is not an error.
func (r *RedisRepository) Remove(ctx context.Context, s *Session) error {
	_, err := r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key(s.SessionID))
		pipe.SRem(ctx, r.userKey(s.UserID), s.SessionID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// Ping returns a point-in-time repository availability check and latency.
func (r *RedisRepository) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := r.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}
