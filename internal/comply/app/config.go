package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full runtime configuration, loaded from COMPLY_* environment
// variables.
type Config struct {
	// SessionSecret signs session tokens. Required; there is no safe
	// default for an HMAC key.
	SessionSecret string `env:"COMPLY_SESSION_SECRET,notEmpty"`

	// SessionTTL is how long a login session stays valid.
	SessionTTL time.Duration `env:"COMPLY_SESSION_TTL" envDefault:"24h"`

	// Issuer is the iss claim on session tokens.
	Issuer string `env:"COMPLY_ISSUER" envDefault:"comply"`

	// AppOrigin is the base URL of the web app; invitation acceptance
	// links are built against it.
	AppOrigin string `env:"COMPLY_APP_ORIGIN" envDefault:"http://localhost:3000"`

	// AllowedOrigins is the CORS allow-list.
	AllowedOrigins []string `env:"COMPLY_ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`

	// InviteTTL is how long an invitation stays redeemable.
	InviteTTL time.Duration `env:"COMPLY_INVITE_TTL" envDefault:"168h"`

	// BootstrapToken guards the one-time bootstrap endpoint. Bootstrap is
	// disabled while unset.
	BootstrapToken string `env:"COMPLY_BOOTSTRAP_TOKEN"`

	// DatabaseFile is the SQLite database path.
	DatabaseFile string `env:"COMPLY_DATABASE_FILE" envDefault:"comply.db"`

	// EvidenceDir is where uploaded evidence files are stored.
	EvidenceDir string `env:"COMPLY_EVIDENCE_DIR" envDefault:"evidence"`

	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	Port      int    `env:"PORT" envDefault:"8080"`

	ShutdownGracePeriod   time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval  time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
	NotificationRetention time.Duration `env:"NOTIFICATION_RETENTION" envDefault:"720h"`
}

// LoadConfig parses configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("app: parse config: %w", err)
	}
	return cfg, nil
}
