package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

type Config struct {
	AppPort     string
	ConsolePort string

	// API base URL the console talks to, e.g. "http://localhost:8080/api".
	APIBaseURL string

	// DBDriver selects "mysql" or "sqlite".
	DBDriver   string
	SQLitePath string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	SessionTTLSecs int

	// Loan defaults applied when a create request omits them.
	DefaultLoanDurationDays int
	DefaultInterestRate     float64
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort:     getenv("APP_PORT", "8080"),
		ConsolePort: getenv("CONSOLE_PORT", "8090"),
		APIBaseURL:  getenv("API_BASE_URL", "http://localhost:8080/api"),

		DBDriver:   getenv("DB_DRIVER", "sqlite"),
		SQLitePath: getenv("SQLITE_PATH", "lookman.db"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "lookman"),
		MySQLUser: getenv("MYSQL_USER", "lookman"),
		MySQLPass: getenv("MYSQL_PASS", "lookman"),

		RedisAddr: getenv("REDIS_ADDR", ""),

		SessionTTLSecs:          86400,
		DefaultLoanDurationDays: 15,
		DefaultInterestRate:     10.00,
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("SESSION_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.SessionTTLSecs = n
		}
	}
	if v := os.Getenv("DEFAULT_LOAN_DURATION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.DefaultLoanDurationDays = n
		}
	}
	if v := os.Getenv("DEFAULT_INTEREST_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			c.DefaultInterestRate = f
		}
	}
	return c
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	case "mysql":
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (want sqlite or mysql)", c.DBDriver)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME columns
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
