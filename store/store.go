// Package store persists sticker configurations.
//
// Two backends are provided:
//   - FileStore: one JSON file per configuration, for the desktop editor
//   - RedisStore: Redis-backed storage shared between editor instances
//
// A configuration saved without an ID is assigned a new UUID.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/phanxgames/sticker"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no configuration has the requested ID.
	ErrNotFound = errors.New("store: configuration not found")

	// ErrInvalidID is returned for IDs that are empty or unsafe as keys.
	ErrInvalidID = errors.New("store: invalid configuration id")
)

// ConfigStore loads and saves sticker configurations by ID.
type ConfigStore interface {
	// Load returns the configuration stored under id, or ErrNotFound.
	Load(ctx context.Context, id string) (sticker.Config, error)
	// Save stores cfg and returns its ID, assigning one when cfg.ID is empty.
	Save(ctx context.Context, cfg sticker.Config) (string, error)
	// Delete removes id. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
	Close() error
}

// validID accepts IDs made of letters, digits, dashes, and underscores.
func validID(id string) error {
	if id == "" || len(id) > 128 {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidID, id)
		}
	}
	return nil
}

// prepare assigns an ID when missing and encodes cfg.
func prepare(cfg sticker.Config) (sticker.Config, []byte, error) {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	if err := validID(cfg.ID); err != nil {
		return cfg, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return cfg, nil, fmt.Errorf("marshal config: %w", err)
	}
	return cfg, data, nil
}

// decode parses and validates a stored configuration.
func decode(id string, data []byte) (sticker.Config, error) {
	var cfg sticker.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return sticker.Config{}, fmt.Errorf("parse config %s: %w", id, err)
	}
	if err := cfg.Validate(); err != nil {
		return sticker.Config{}, fmt.Errorf("config %s: %w", id, err)
	}
	if cfg.ID == "" {
		cfg.ID = id
	}
	return cfg, nil
}
