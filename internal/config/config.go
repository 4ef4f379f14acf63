// Package config loads application configuration from environment
// variables.  Required variables abort startup with a fatal log; optional
// integrations (SMTP, AMQP, Redis) degrade to disabled when unset.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.
type Config struct {
	Env          string // application environment ("dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	JWTSecret    string // secret used to sign access tokens
	AccessTTLMin int    // access token time to live in minutes
	BcryptCost   int    // bcrypt cost for password hashing

	AMQPURL string // RabbitMQ connection URL, empty disables notifications

	SMTPHost string // SMTP server host, empty disables outgoing mail
	SMTPPort int    // SMTP server port
	SMTPUser string // SMTP username
	SMTPPass string // SMTP password
	MailFrom string // From address on confirmation mails
}

// Load reads configuration from the environment.  Missing required
// variables terminate the process.
func Load() Config {
	return Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: mustInt("ACCESS_TOKEN_TTL_MIN"),
		BcryptCost:   mustInt("BCRYPT_COST"),

		AMQPURL: os.Getenv("AMQP_URL"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: atoi(getenv("SMTP_PORT", "587")),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		MailFrom: getenv("MAIL_FROM", "rezervace@pensionkladska.cz"),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must but converts the value to an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
