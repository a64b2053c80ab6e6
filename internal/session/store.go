package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"csemotors/internal/auth"
)

const (
	keyPrefix = "session:"
	// TTL is the store-level expiry for idle sessions.
	TTL = 24 * time.Hour
)

// Flash categories drained into the next rendered view.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashNotice  = "notice"
)

// Flash is a one-shot message queued for the next response only.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Record is the per-visitor session state. A populated Identity implies a
// successful login earlier in this browser session.
type Record struct {
	Identity *auth.Identity `json:"identity,omitempty"`
	Flashes  []Flash        `json:"flashes,omitempty"`
}

// Store persists session records in Redis keyed by the sessionid cookie.
// Unlike the cache wrapper, redis errors propagate to the caller: a failed
// Destroy must not read as a successful logout.
type Store struct {
	client *redis.Client
}

// NewStore creates a session store on top of an existing Redis client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Get returns the record for the session id, or (nil, nil) when the
// session does not exist.
func (s *Store) Get(ctx context.Context, sid string) (*Record, error) {
	data, err := s.client.Get(ctx, keyPrefix+sid).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &rec, nil
}

// Set stores the record, refreshing the idle TTL.
func (s *Store) Set(ctx context.Context, sid string, rec *Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sid, payload, TTL).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

// Destroy removes the session record. Destroying an absent session is not
// an error, so logout stays idempotent.
func (s *Store) Destroy(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, keyPrefix+sid).Err(); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}
	return nil
}

// SetIdentity stores the authenticated identity, preserving queued flashes.
func (s *Store) SetIdentity(ctx context.Context, sid string, identity *auth.Identity) error {
	rec, err := s.Get(ctx, sid)
	if err != nil {
		return err
	}
	if rec == nil {
		rec = &Record{}
	}
	rec.Identity = identity
	return s.Set(ctx, sid, rec)
}

// PushFlash queues a one-shot message for the next rendered response.
func (s *Store) PushFlash(ctx context.Context, sid, category, message string) error {
	rec, err := s.Get(ctx, sid)
	if err != nil {
		return err
	}
	if rec == nil {
		rec = &Record{}
	}
	rec.Flashes = append(rec.Flashes, Flash{Category: category, Message: message})
	return s.Set(ctx, sid, rec)
}

// PopFlashes drains the flash queue. A message popped here never appears
// on a later request unless requeued.
func (s *Store) PopFlashes(ctx context.Context, sid string) ([]Flash, error) {
	rec, err := s.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	if rec == nil || len(rec.Flashes) == 0 {
		return nil, nil
	}
	flashes := rec.Flashes
	rec.Flashes = nil
	if err := s.Set(ctx, sid, rec); err != nil {
		return nil, err
	}
	return flashes, nil
}
