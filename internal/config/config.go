package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceName string
	ServerPort  int

	DBDriver    string
	DatabaseURL string

	JWTSecret []byte
	JWTTTL    time.Duration

	KafkaBrokers []string

	PublicDir string
	LogLevel  string
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

func Load() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v. Using system environment variables", err)
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVICE_NAME", "storefront")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("PUBLIC_DIR", "public")
	v.SetDefault("LOG_LEVEL", "info")

	return v
}

func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		ServiceName:  v.GetString("SERVICE_NAME"),
		ServerPort:   v.GetInt("SERVER_PORT"),
		DBDriver:     strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseURL:  v.GetString("DATABASE_URL"),
		JWTSecret:    []byte(v.GetString("JWT_SECRET")),
		JWTTTL:       v.GetDuration("JWT_TTL"),
		KafkaBrokers: CSV(v.GetString("KAFKA_BROKERS")),
		PublicDir:    v.GetString("PUBLIC_DIR"),
		LogLevel:     v.GetString("LOG_LEVEL"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing required env %s", "DATABASE_URL")
	}
	if len(cfg.JWTSecret) == 0 {
		return Config{}, fmt.Errorf("missing required env %s", "JWT_SECRET")
	}
	if cfg.JWTTTL <= 0 {
		return Config{}, fmt.Errorf("JWT_TTL must be positive, got %q", v.GetString("JWT_TTL"))
	}
	if cfg.ServerPort <= 0 {
		return Config{}, fmt.Errorf("SERVER_PORT must be positive, got %q", v.GetString("SERVER_PORT"))
	}
	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
