package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"auction-marketplace/internal/repository"
	"auction-marketplace/internal/storage"
	"auction-marketplace/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "AUCTION"

type DBConfig struct {
	Driver   string
	DSN      string
	User     string
	Password string
	Host     string
	Port     int
	Database string
}

// DataSource returns the explicit DSN or builds one from the connection parts
func (c DBConfig) DataSource() string {
	if c.DSN != "" {
		return c.DSN
	}
	if c.Driver == repository.DriverSQLite {
		return "file:auction.db?cache=shared"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type Args struct {
	ServerURL             string
	LogLevel              string
	DB                    DBConfig
	JWTSecret             string
	JWTExpire             time.Duration
	AdminEmail            string
	AdminPassword         string
	Redis                 RedisConfig
	RateLimitRequests     int
	RateLimitWindow       time.Duration
	S3                    storage.S3Config
	MaxUploadBytes        int64
	StrictIncrementRanges bool
}

// ParseArgs reads flags, then AUCTION_* environment variables, then an optional env file
func ParseArgs(arguments []string) (Args, error) {
	flags := pflag.NewFlagSet("auction-marketplace", pflag.ContinueOnError)

	flags.String("env-file", ".env", "optional dotenv file loaded before reading the environment")
	flags.String("server-url", "0.0.0.0:8080", "")
	flags.String("log-level", "info", "")

	// db config
	flags.String("db-driver", repository.DriverPostgres, "postgres or sqlite")
	flags.String("db-dsn", "", "overrides the individual db-* connection settings")
	flags.String("db-user", "", "")
	flags.String("db-password", "", "")
	flags.String("db-host", "localhost", "")
	flags.Int("db-port", 5432, "")
	flags.String("db-database", "auctions", "")

	// session config
	flags.String("jwt-secret", "", "")
	flags.Duration("jwt-expire", 24*time.Hour, "")
	flags.String("admin-email", "", "bootstrap admin account")
	flags.String("admin-password", "", "")

	// redis config
	flags.String("redis-addr", "", "rate limiting is disabled when empty")
	flags.String("redis-password", "", "")
	flags.Int("redis-db", 0, "")
	flags.Int("rate-limit-requests", 100, "")
	flags.Duration("rate-limit-window", time.Minute, "")

	// s3 config
	flags.String("s3-endpoint", "", "")
	flags.String("s3-region", "auto", "")
	flags.String("s3-bucket", "", "uploads are disabled when empty")
	flags.String("s3-public-base-url", "", "")
	flags.String("s3-access-key-id", "", "")
	flags.String("s3-secret-access-key", "", "")
	flags.Int64("max-upload-bytes", storage.DefaultMaxUploadBytes, "")

	flags.Bool("strict-increment-ranges", false, "reject range-based increment tables with gaps or overlaps")

	if err := flags.Parse(arguments); err != nil {
		return Args{}, err
	}

	envFile, _ := flags.GetString("env-file")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		utils.Warn("failed to load env file", map[string]any{"path": envFile, "error": err.Error()})
	}

	// bind pflag to viper
	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return Args{}, err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return Args{
		ServerURL: v.GetString("server-url"),
		LogLevel:  v.GetString("log-level"),
		DB: DBConfig{
			Driver:   v.GetString("db-driver"),
			DSN:      v.GetString("db-dsn"),
			User:     v.GetString("db-user"),
			Password: v.GetString("db-password"),
			Host:     v.GetString("db-host"),
			Port:     v.GetInt("db-port"),
			Database: v.GetString("db-database"),
		},
		JWTSecret:     v.GetString("jwt-secret"),
		JWTExpire:     v.GetDuration("jwt-expire"),
		AdminEmail:    v.GetString("admin-email"),
		AdminPassword: v.GetString("admin-password"),
		Redis: RedisConfig{
			Addr:     v.GetString("redis-addr"),
			Password: v.GetString("redis-password"),
			DB:       v.GetInt("redis-db"),
		},
		RateLimitRequests: v.GetInt("rate-limit-requests"),
		RateLimitWindow:   v.GetDuration("rate-limit-window"),
		S3: storage.S3Config{
			Endpoint:        v.GetString("s3-endpoint"),
			Region:          v.GetString("s3-region"),
			Bucket:          v.GetString("s3-bucket"),
			PublicBaseURL:   v.GetString("s3-public-base-url"),
			AccessKeyID:     v.GetString("s3-access-key-id"),
			SecretAccessKey: v.GetString("s3-secret-access-key"),
		},
		MaxUploadBytes:        v.GetInt64("max-upload-bytes"),
		StrictIncrementRanges: v.GetBool("strict-increment-ranges"),
	}, nil
}

// Validate reports the first missing or inconsistent setting
func (args Args) Validate() error {
	switch {
	case args.ServerURL == "":
		return errors.New("server-url is required")
	case args.DB.Driver != repository.DriverPostgres && args.DB.Driver != repository.DriverSQLite:
		return fmt.Errorf("db-driver must be %s or %s", repository.DriverPostgres, repository.DriverSQLite)
	case args.JWTSecret == "":
		return errors.New("jwt-secret is required")
	case (args.AdminEmail == "") != (args.AdminPassword == ""):
		return errors.New("admin-email and admin-password must be set together")
	case args.S3.Bucket != "" && args.S3.PublicBaseURL == "":
		return errors.New("s3-public-base-url is required when s3-bucket is set")
	}
	return nil
}
