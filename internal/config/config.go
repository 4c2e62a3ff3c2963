package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Load reads a .env file into the process environment when one exists.
// Variables already set in the environment win.
func Load(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Get returns the trimmed value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: key=%s value=%q is not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func GetBool(key string, fallback bool) bool {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("config: key=%s value=%q is not a boolean, using %t", key, v, fallback)
		return fallback
	}
	return b
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: key=%s value=%q is not a duration, using %s", key, v, fallback)
		return fallback
	}
	return d
}
