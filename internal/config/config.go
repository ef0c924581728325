// Package config centralises runtime configuration for the FitTrack backend.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// DB holds the backing-store connection parameters
type DB struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	PoolSize int
}

// Config captures every externally supplied knob
type Config struct {
	HTTPPort   int
	DB         DB
	SessionTTL time.Duration
}

// Load reads FITTRACK_* environment variables, applying local-dev defaults.
// Pool capacity and session TTL mirror the values the app has always run with.
func Load() Config {
	v := viper.New()
	v.SetEnvPrefix("fittrack")
	v.AutomaticEnv()

	v.SetDefault("http_port", 8000)
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "health_app")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "health")
	v.SetDefault("db_pool_size", 10)
	v.SetDefault("session_ttl", 10*time.Minute)

	return Config{
		HTTPPort: v.GetInt("http_port"),
		DB: DB{
			Host:     v.GetString("db_host"),
			Port:     v.GetInt("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			Name:     v.GetString("db_name"),
			PoolSize: v.GetInt("db_pool_size"),
		},
		SessionTTL: v.GetDuration("session_ttl"),
	}
}

// URL assembles the pgx connection string for the configured database
func (d DB) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?pool_max_conns=%d",
		d.User, d.Password, d.Host, d.Port, d.Name, d.PoolSize)
}
