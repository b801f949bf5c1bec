package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load builds the application configuration: defaults first, then an optional
// .env file, then environment variables (prefix CHARTING_).
func Load() *viper.Viper {
	v := viper.New()

	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "charting")
	v.SetDefault("port", "8080")
	v.SetDefault("mongoUri", "mongodb://localhost:27017")
	v.SetDefault("mongoDatabase", "chartingdb")
	v.SetDefault("jwtSecret", "")
	v.SetDefault("jwtExpirationDelta", 24*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 7*24*time.Hour)

	// load .env if it exists (ignore if it does not)
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	v.SetEnvPrefix("CHARTING")
	v.AutomaticEnv()

	// legacy variable names kept for deploy scripts
	_ = v.BindEnv("mongoUri", "MONGO_URI")
	_ = v.BindEnv("port", "PORT")

	return v
}
