package cli

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/charmbracelet/log"

	"github.com/phanxgames/sticker"
	"github.com/phanxgames/sticker/store"
)

// session is an engine plus the store its configuration round-trips through.
type session struct {
	engine *sticker.Engine
	store  store.ConfigStore
	logger *log.Logger

	// images holds decoded sticker content by key for surfaces that draw.
	images map[string]image.Image
}

func newSession(engine *sticker.Engine, st store.ConfigStore, logger *log.Logger) *session {
	return &session{engine: engine, store: st, logger: logger, images: make(map[string]image.Image)}
}

// restore loads the stored configuration id into the engine and attaches the
// active orientation's content when it has one. A missing id is not an
// error: the session starts from defaults and saves under that id.
func (s *session) restore(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	cfg, err := s.store.Load(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Info("new configuration", "id", id)
		cfg = sticker.DefaultConfig()
		cfg.ID = id
		return s.engine.LoadConfig(cfg)
	}
	if err != nil {
		return err
	}
	if err := s.engine.LoadConfig(cfg); err != nil {
		return err
	}
	s.logger.Debug("restored configuration", "id", id)

	if c := cfg.For(s.engine.Orientation()).Content; c != nil && c.Path != "" {
		return s.attachFile(c.Path)
	}
	return nil
}

// attachFile decodes path and attaches it as the sticker.
func (s *session) attachFile(path string) error {
	c, img, err := loadContent(path)
	if err != nil {
		return err
	}
	s.images[c.Key] = img
	if err := s.engine.AttachSticker(c); err != nil {
		return fmt.Errorf("attach %s: %w", path, err)
	}
	s.logger.Debug("attached sticker", "key", c.Key, "width", c.Width, "height", c.Height)
	return nil
}

// save writes the engine's configuration and returns its id.
func (s *session) save(ctx context.Context) (string, error) {
	cfg := s.engine.Config()
	id, err := s.store.Save(ctx, cfg)
	if err != nil {
		return "", err
	}
	if cfg.ID == "" {
		if err := s.engine.LoadConfig(withID(cfg, id)); err != nil {
			return id, err
		}
	}
	s.logger.Info("saved configuration", "id", id)
	return id, nil
}

func withID(cfg sticker.Config, id string) sticker.Config {
	cfg.ID = id
	return cfg
}
