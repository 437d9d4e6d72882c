package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries all process configuration, loaded from the environment.
type Config struct {
	// HTTP server
	Port string

	// Google Cloud
	ProjectID string

	// Firestore
	FirestoreDatabase string

	// Gemini
	ModelName string

	// Voice notes
	VoiceBucket string

	// Analytics export (optional)
	BigQueryDataset string
	BigQueryTable   string

	// Notion export (optional)
	NotionToken      string
	NotionDatabaseID string

	// Job queue
	QueueBufferSize int
	WorkerCount     int

	// Storage backend: "firestore" or "memory"
	StoreBackend string

	// Remote call budget per pipeline run
	RequestTimeout time.Duration
}

// Load reads configuration from the environment, applying defaults suitable
// for local development.
func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", "8080"),
		ProjectID:         getEnv("GOOGLE_CLOUD_PROJECT", ""),
		FirestoreDatabase: getEnv("FIRESTORE_DATABASE", "(default)"),
		ModelName:         getEnv("WEALTHWISE_MODEL", "gemini-2.5-flash"),
		VoiceBucket:       getEnv("VOICE_BUCKET", ""),
		BigQueryDataset:   getEnv("BQ_DATASET", ""),
		BigQueryTable:     getEnv("BQ_TABLE", "transactions"),
		NotionToken:       getEnv("NOTION_TOKEN", ""),
		NotionDatabaseID:  getEnv("NOTION_DATABASE_ID", ""),
		QueueBufferSize:   getEnvInt("QUEUE_BUFFER_SIZE", 100),
		WorkerCount:       getEnvInt("WORKER_COUNT", 5),
		StoreBackend:      getEnv("STORE_BACKEND", "memory"),
		RequestTimeout:    getEnvDuration("REQUEST_TIMEOUT", 60*time.Second),
	}
}

// Validate checks the configuration and returns an error listing every
// problem found.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.StoreBackend {
	case "memory":
	case "firestore":
		if c.ProjectID == "" {
			problems = append(problems, "GOOGLE_CLOUD_PROJECT is required for the firestore backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid store backend %q: must be \"memory\" or \"firestore\"", c.StoreBackend))
	}

	if c.QueueBufferSize < 1 {
		problems = append(problems, fmt.Sprintf("invalid queue buffer size %d", c.QueueBufferSize))
	}
	if c.WorkerCount < 1 {
		problems = append(problems, fmt.Sprintf("invalid worker count %d", c.WorkerCount))
	}
	if c.RequestTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid request timeout %s", c.RequestTimeout))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(problems, "; "))
	}
	return nil
}

// AnalyticsEnabled reports whether the BigQuery export sink is configured.
func (c *Config) AnalyticsEnabled() bool {
	return c.ProjectID != "" && c.BigQueryDataset != ""
}

// NotionEnabled reports whether the Notion export is configured.
func (c *Config) NotionEnabled() bool {
	return c.NotionToken != "" && c.NotionDatabaseID != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
