package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Session é o estado explícito de uma sessão autenticada. Substitui o
// token "ambiente" em storage global: hidrata via /me na entrada e é
// revogada no logout.
type Session struct {
	UserID   uint      `json:"user_id"`
	ShopID   uint      `json:"shop_id"`
	Role     string    `json:"role"`
	IssuedAt time.Time `json:"issued_at"`
}

var ErrNotFound = errors.New("session not found")

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func key(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func (s *Store) Save(ctx context.Context, id string, sess Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key(id), payload, s.ttl).Err()
}

func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	payload, err := s.rdb.Get(ctx, key(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Revoke encerra a sessão; o JWT correspondente deixa de ser aceito.
func (s *Store) Revoke(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, key(id)).Err()
}
