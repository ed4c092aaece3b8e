package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDSN    string `envconfig:"DB_DSN" default:"jpa-project.db"` // sqlite file in project root
	LogFile  string `envconfig:"LOG_FILE" default:"./jpa-project.log"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Empty keeps sessions in process memory.
	RedisAddr    string        `envconfig:"REDIS_ADDR"`
	SessionTTL   time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	CookieSecure bool          `envconfig:"COOKIE_SECURE" default:"false"` // set true behind HTTPS

	TemplatesDir string `envconfig:"TEMPLATES_DIR" default:"./web/templates"`
	StaticDir    string `envconfig:"STATIC_DIR" default:"./web/static"`
	BcryptCost   int    `envconfig:"BCRYPT_COST" default:"10"`
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("[config] no .env file: %v", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	logrus.Infof("[config] PORT=%s DB_DRIVER=%s LOG_FILE=%s REDIS_ADDR=%q",
		cfg.Port, cfg.DBDriver, cfg.LogFile, cfg.RedisAddr)
	return cfg, nil
}
