package session

import "time"

// Session is one authenticated interaction: an unguessable ID, the owning
// user, and the creation instant. Validity is always recomputed from
// CreatedAt and a configured duration; it is never cached on the record.
//
// A session belongs to exactly one user; a user may hold any number of live
// sessions concurrently.
type Session struct {
	SessionID string
	UserID    string
	// CreatedAt is a Unix timestamp. All expiry arithmetic is UTC.
	CreatedAt int64
}

// CreatedTime returns the creation instant in UTC.
func (s *Session) CreatedTime() time.Time {
	return time.Unix(s.CreatedAt, 0).UTC()
}

// expired reports whether a record created at createdAt is past its validity
// window at now. A non-positive duration means the session never expires.
// The boundary instant itself is still live: only now strictly after
// createdAt+duration expires the session.
func expired(createdAt int64, duration time.Duration, now time.Time) bool {
	if duration <= 0 {
		return false
	}
	return now.After(time.Unix(createdAt, 0).Add(duration))
}
