package syncstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/nibchat/nibchat-server/internal/user"
)

const keyPrefix = "usersync:v1:"

// ErrNotFound indicates no projection exists for the user id.
var ErrNotFound = errors.New("user projection not found")

// Store is the key/value projection of user rows used for cheap session
// sync. It is derived state: refreshed on every user write, never written
// independently, so a lost key only costs a cache miss.
type Store struct {
	client *redis.Client
}

// New builds a Redis-backed projection store.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// Put replaces the projection for the user.
func (s *Store) Put(ctx context.Context, u user.User) error {
	payload, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user projection: %w", err)
	}
	return s.client.Set(ctx, keyPrefix+u.ID, payload, 0).Err()
}

// GetRaw returns the stored JSON document for the user id.
func (s *Store) GetRaw(ctx context.Context, id string) ([]byte, error) {
	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return payload, nil
}

// Get decodes the stored projection for the user id.
func (s *Store) Get(ctx context.Context, id string) (user.User, error) {
	payload, err := s.GetRaw(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	var u user.User
	if err := json.Unmarshal(payload, &u); err != nil {
		return user.User{}, fmt.Errorf("decode user projection: %w", err)
	}
	return u, nil
}

// Delete drops the projection for the user id.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}
