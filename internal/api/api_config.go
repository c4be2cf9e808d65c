package api

import (
	"log/slog"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/feruzlabs/laravel-taskMaster/internal/config"
	"github.com/feruzlabs/laravel-taskMaster/internal/store"
)

// APIConfig carries the stores and runtime settings shared by all handlers.
type APIConfig struct {
	users    *store.UserStore
	tokens   *store.TokenStore
	pages    *store.PageStore
	tasks    *store.TaskStore
	platform string
	logger   *slog.Logger

	// now and loc are the single clock the date bucketing runs on;
	// tests pin them to fixed values.
	now func() time.Time
	loc *time.Location
}

func NewAPIConfig(cfg config.Config, db *gorm.DB) *APIConfig {
	api := &APIConfig{
		users:    store.NewUserStore(db),
		tokens:   store.NewTokenStore(db),
		pages:    store.NewPageStore(db),
		tasks:    store.NewTaskStore(db),
		platform: cfg.Platform,
		now:      time.Now,
		loc:      cfg.Location,
	}
	if api.loc == nil {
		api.loc = time.Local
	}
	api.NewLogger(cfg.LogLevel)
	return api
}

func (cfg *APIConfig) NewLogger(level slog.Level) {
	cfg.logger = slog.New(slog.NewJSONHandler(os.Stdout,
		&slog.HandlerOptions{Level: level}))
	slog.SetDefault(cfg.logger)
}

// today returns the current calendar date in the configured timezone.
func (cfg *APIConfig) today() string {
	return cfg.now().In(cfg.loc).Format(time.DateOnly)
}

func (cfg *APIConfig) yesterday() string {
	return cfg.now().In(cfg.loc).AddDate(0, 0, -1).Format(time.DateOnly)
}
