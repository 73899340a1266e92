package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything tunable from the environment. Timing knobs exist
// so deployments (and tests) can tighten the transition pacing.
type Config struct {
	Port     string
	RoomSize int

	CountdownTick time.Duration
	AnnounceDelay time.Duration
	TugStartDelay time.Duration
	RaceEndDelay  time.Duration
}

// Load reads a local .env when present, then the environment, falling back
// to defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "3000"),
		RoomSize:      getEnvInt("ROOM_SIZE", 20),
		CountdownTick: getEnvDuration("COUNTDOWN_TICK", time.Second),
		AnnounceDelay: getEnvDuration("TUG_ANNOUNCE_DELAY", 2*time.Second),
		TugStartDelay: getEnvDuration("TUG_START_DELAY", 3*time.Second),
		RaceEndDelay:  getEnvDuration("RACE_END_DELAY", 5*time.Second),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
