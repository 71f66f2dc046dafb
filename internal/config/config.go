package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	AppPort         string
	ShutdownTimeout time.Duration
	LogLevel        string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	KafkaBrokers []string
	KafkaTopic   string

	// StrictDispositionFields rejects fields a code forbids instead of
	// silently dropping them.
	StrictDispositionFields bool
}

func getenv(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getbool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

func getlist(k string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(k), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func Load() *Config {
	return &Config{
		AppPort:         getenv("APP_PORT", "8080"),
		ShutdownTimeout: time.Duration(getint("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		LogLevel:        getenv("LOG_LEVEL", "info"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "collections"),
		MySQLUser: getenv("MYSQL_USER", "collections"),
		MySQLPass: getenv("MYSQL_PASS", "collections"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getint("REDIS_DB", 0),

		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		KafkaBrokers: getlist("KAFKA_BROKERS"),
		KafkaTopic:   getenv("KAFKA_TOPIC", "collections.events"),

		StrictDispositionFields: getbool("DISPOSITION_STRICT_FIELDS", true),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.IdempTTLSecs <= 0 {
		return fmt.Errorf("IDEMPOTENCY_TTL_SECONDS must be positive, got %d", c.IdempTTLSecs)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		return errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

// EventsEnabled reports whether events go to Kafka rather than nowhere.
func (c *Config) EventsEnabled() bool { return len(c.KafkaBrokers) > 0 }

// MySQLDSN is the DSN the API uses. Times are read and written in UTC.
func (c *Config) MySQLDSN() string {
	return c.mysqlConfig().FormatDSN()
}

// MigrateDSN adds multiStatements, which migration files need.
func (c *Config) MigrateDSN() string {
	mc := c.mysqlConfig()
	mc.MultiStatements = true
	return mc.FormatDSN()
}

func (c *Config) mysqlConfig() *mysqldrv.Config {
	mc := mysqldrv.NewConfig()
	mc.User = c.MySQLUser
	mc.Passwd = c.MySQLPass
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.MySQLHost, c.MySQLPort)
	mc.DBName = c.MySQLDB
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc
}
