package config

import (
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mind-engage/mindengage-quiz/internal/grading"
)

type BankSource string

const (
	BankSourceFile BankSource = "file"
	BankSourceDB   BankSource = "db"
)

type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	DBDriver string
	DBDSN    string

	BankSource BankSource
	BankKey    string // file name inside DataDir when BankSource is file
	BankReload string // startup|request
	DataDir    string
	StaticDir  string

	Categories       []string
	OverlapThreshold float64

	TicketSecret  string // empty disables tickets
	TicketTTL     time.Duration
	RequireTicket bool

	AdminUser     string
	AdminPassHash string // bcrypt; empty disables admin routes

	CORSOrigins []string
}

// FromEnv reads configuration from the environment after loading a .env
// file from the working directory, if present. Variables already set win.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:         envOr("HTTP_ADDR", ":5000"),
		ShutdownTimeout:  envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		DBDriver:         envOr("DB_DRIVER", "sqlite"),
		DBDSN:            envOr("DB_DSN", ""),
		BankSource:       BankSource(envOr("BANK_SOURCE", string(BankSourceFile))),
		BankKey:          envOr("BANK_KEY", "questions.json"),
		BankReload:       envOr("BANK_RELOAD", "startup"),
		DataDir:          envOr("DATA_DIR", "./data"),
		StaticDir:        envOr("STATIC_DIR", "./static"),
		Categories:       csvOr("QUIZ_CATEGORIES", "IT,軟體"),
		OverlapThreshold: envRatio("OVERLAP_THRESHOLD", grading.DefaultOverlapThreshold),
		TicketSecret:     os.Getenv("TICKET_SECRET"),
		TicketTTL:        envDuration("TICKET_TTL", 2*time.Hour),
		RequireTicket:    envBool("REQUIRE_TICKET", false),
		AdminUser:        envOr("ADMIN_USER", "admin"),
		AdminPassHash:    os.Getenv("ADMIN_PASS_HASH"),
		CORSOrigins:      csvOr("CORS_ORIGINS", "http://localhost:5000,http://127.0.0.1:5000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
// envRatio reads a finite value in [0, 1]; anything else yields def.
func envRatio(k string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(k), 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > 1 {
		return def
	}
	return v
}
func envDuration(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(k)); err == nil {
		return d
	}
	return def
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
