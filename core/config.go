package core

import (
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	// Config holds all runtime settings. It is loaded once at startup and
	// passed around by pointer; nothing mutates it afterwards.
	Config struct {
		Debug            bool
		TestMode         bool
		Env              string
		AppName          string
		SecretKey        []byte
		FrontendBaseURL  string
		DefaultFromEmail string
		SendgridAPIKey   string
		RollbarToken     string
		Build            string

		Server   ServerConfig
		Database DatabaseConfig
	}

	ServerConfig struct {
		Host               string
		Port               string
		JWTExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		Engine     string
		Host       string
		Port       string
		Name       string
		User       string
		Password   string
		DisableTLS bool
	}
)

// Address returns the "host:port" the API server binds to.
func (c ServerConfig) Address() string { return net.JoinHostPort(c.Host, c.Port) }

// Address returns the "host:port" of the database server.
func (c DatabaseConfig) Address() string { return net.JoinHostPort(c.Host, c.Port) }

// IsConfigured reports whether a backing store was configured at all.
// An empty host puts the whole application in demo mode.
func (c DatabaseConfig) IsConfigured() bool { return c.Host != "" }

// NewConfig loads settings from the environment via viper, with an optional
// config/.env.<env> file loaded first (ignored if absent).
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "PULSE Portal")
	v.SetDefault("secretKey", "h2x)#*c2(#yg4h^$cegm2emypoq5-wer)enb$+57=dz&uox")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "noreply@pulse.com")
	v.SetDefault("serverHost", "")
	v.SetDefault("serverPort", "8000")
	v.SetDefault("jwtExpirationDelta", 24*time.Hour)
	v.SetDefault("dbEngine", "postgres")
	v.SetDefault("dbHost", "")
	v.SetDefault("dbPort", "5432")
	v.SetDefault("dbName", "pulse")
	v.SetDefault("dbUser", "")
	v.SetDefault("dbPassword", "")
	v.SetDefault("dbDisableTLS", true)

	env := os.Getenv("ENV") // DEV (default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Debug:            v.GetBool("debug"),
		TestMode:         env == "TEST",
		Env:              env,
		AppName:          v.GetString("appName"),
		SecretKey:        []byte(v.GetString("secretKey")),
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		DefaultFromEmail: v.GetString("defaultFromEmail"),
		SendgridAPIKey:   v.GetString("sendgridAPIKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		Build:            v.GetString("build"),
		Server: ServerConfig{
			Host:               v.GetString("serverHost"),
			Port:               v.GetString("serverPort"),
			JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
		},
		Database: DatabaseConfig{
			Engine:     v.GetString("dbEngine"),
			Host:       v.GetString("dbHost"),
			Port:       v.GetString("dbPort"),
			Name:       v.GetString("dbName"),
			User:       v.GetString("dbUser"),
			Password:   v.GetString("dbPassword"),
			DisableTLS: v.GetBool("dbDisableTLS"),
		},
	}
}

// NewTestConfig returns a Config suitable for unit tests; no file or env
// lookups involved.
func NewTestConfig() *Config {
	return &Config{
		Debug:            false,
		TestMode:         true,
		Env:              "TEST",
		AppName:          "PULSE Portal",
		SecretKey:        []byte("secret"),
		FrontendBaseURL:  "http://localhost:3000",
		DefaultFromEmail: "noreply@pulse.com",
		Server: ServerConfig{
			Port:               "8000",
			JWTExpirationDelta: 10 * time.Minute,
		},
	}
}
