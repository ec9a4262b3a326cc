package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config is read from EMY_* environment variables.
type Config struct {
	Port         string        `envconfig:"PORT" default:"8080"`
	DBDSN        string        `envconfig:"DB_DSN" default:"emytrends.db"`
	MediaDir     string        `envconfig:"MEDIA_DIR" default:"./web/media"`
	MediaBaseURL string        `envconfig:"MEDIA_BASE_URL" default:"/media"`
	LogFile      string        `envconfig:"LOG_FILE"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`
	CookieSecure bool          `envconfig:"COOKIE_SECURE" default:"false"`
	BodyLimitMB  int           `envconfig:"BODY_LIMIT_MB" default:"20"`
	WordPressURL string        `envconfig:"WORDPRESS_URL" default:"https://cms.emytrends.com/wp/index.php?rest_route=/wp/v2"`
	WordPressTTL time.Duration `envconfig:"WORDPRESS_TIMEOUT" default:"10s"`

	ImageMaxWidth  int     `envconfig:"IMAGE_MAX_WIDTH" default:"2048"`
	ImageMaxHeight int     `envconfig:"IMAGE_MAX_HEIGHT" default:"2048"`
	ImageQuality   float64 `envconfig:"IMAGE_QUALITY" default:"0.88"`
	ImageTargetKB  int     `envconfig:"IMAGE_TARGET_KB" default:"500"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("emy", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "load config")
	}
	return cfg, nil
}

// Fields is the loggable view of the config.
func (c Config) Fields() map[string]any {
	return map[string]any{
		"port":           c.Port,
		"db_dsn":         c.DBDSN,
		"media_dir":      c.MediaDir,
		"media_base_url": c.MediaBaseURL,
		"log_file":       c.LogFile,
		"log_level":      c.LogLevel,
		"wordpress_url":  c.WordPressURL,
	}
}
