package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/teemow/asanasync/internal/reconcile"
)

// Config holds the sync daemon settings.
type Config struct {
	// AsanaPAT is the Asana personal access token.
	AsanaPAT string

	// AsanaUserTaskListGID identifies the "My Tasks" list to sync from.
	AsanaUserTaskListGID string

	// AsanaBaseURL overrides the Asana API base URL. Empty means the public
	// API; set it for tests or self-hosted proxies.
	AsanaBaseURL string

	// GTasksListName is the title of the Google Tasks list that holds the
	// mirrors.
	GTasksListName string

	// Interval is the pause between sync cycles.
	Interval time.Duration

	// WindowHours bounds how far back completed Asana tasks are fetched.
	WindowHours int

	// Paused makes the daemon start without syncing, for out-of-band
	// authorization.
	Paused bool
}

// Default values for optional settings.
const (
	DefaultGTasksListName = "Asana"
	DefaultWindowHours    = 24
)

// Load reads configuration from a .env file (if present) and the
// environment. It returns an error naming the first missing required
// setting.
func Load() (*Config, error) {
	// Ignore a missing .env; the environment may carry everything.
	_ = godotenv.Load()

	cfg := &Config{
		AsanaPAT:             os.Getenv("ASANA_PAT"),
		AsanaUserTaskListGID: os.Getenv("ASANA_USER_TASK_LIST_GID"),
		AsanaBaseURL:         os.Getenv("ASANA_BASE_URL"),
		GTasksListName:       getEnvOrDefault("GTASKS_LIST_NAME", DefaultGTasksListName),
		Interval:             reconcile.DefaultInterval,
		WindowHours:          DefaultWindowHours,
	}

	if cfg.AsanaPAT == "" {
		return nil, fmt.Errorf("ASANA_PAT is required; create a personal access token in the Asana developer console")
	}
	if cfg.AsanaUserTaskListGID == "" {
		return nil, fmt.Errorf("ASANA_USER_TASK_LIST_GID is required; it identifies the Asana My Tasks list to sync")
	}

	if v := os.Getenv("SYNC_INTERVAL"); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("failed to parse SYNC_INTERVAL %q: %w", v, err)
		}
		if interval <= 0 {
			return nil, fmt.Errorf("SYNC_INTERVAL must be positive, got %q", v)
		}
		cfg.Interval = interval
	}

	if v := os.Getenv("SYNC_WINDOW_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("failed to parse SYNC_WINDOW_HOURS %q: %w", v, err)
		}
		if hours <= 0 {
			return nil, fmt.Errorf("SYNC_WINDOW_HOURS must be positive, got %q", v)
		}
		cfg.WindowHours = hours
	}

	if v := os.Getenv("SYNC_PAUSED"); v != "" {
		paused, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("failed to parse SYNC_PAUSED %q: %w", v, err)
		}
		cfg.Paused = paused
	}

	return cfg, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
