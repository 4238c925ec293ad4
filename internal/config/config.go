package config

import (
	"log"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string
	DatabaseURL  string
	ControlID    string
	PadHex       bool
	RandomSource string // "math" or "crypto"
	PageTTL      time.Duration
}

// Load reads settings from the environment, falling back to the optional
// JSON file named by CONFIG_FILE and then to defaults.
func Load() Config {
	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("CONTROL_ID", "colorButton")
	v.SetDefault("PAD_HEX", false)
	v.SetDefault("RANDOM_SOURCE", "math")
	v.SetDefault("PAGE_TTL_MINUTES", "60")
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			log.Printf("[Config] Failed to read %s: %v (using environment)\n", file, err)
		}
	}

	return Config{
		Port:         v.GetString("PORT"),
		DatabaseURL:  v.GetString("DATABASE_URL"),
		ControlID:    v.GetString("CONTROL_ID"),
		PadHex:       v.GetBool("PAD_HEX"),
		RandomSource: v.GetString("RANDOM_SOURCE"),
		PageTTL:      time.Duration(getInt(v, "PAGE_TTL_MINUTES", 60)) * time.Minute,
	}
}

func getInt(v *viper.Viper, key string, fallback int) int {
	if i, err := strconv.Atoi(v.GetString(key)); err == nil && i > 0 {
		return i
	}
	return fallback
}
