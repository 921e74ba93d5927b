package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type SimulationConfig struct {
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	JourneyTTL    time.Duration `mapstructure:"journey_cache_ttl"`
}

type Config struct {
	DatabaseURL    string           `mapstructure:"database_url"`
	ServerPort     string           `mapstructure:"server_port"`
	JWTSecret      string           `mapstructure:"jwt_secret"`
	AllowedOrigins []string         `mapstructure:"allowed_origins"`
	Redis          RedisConfig      `mapstructure:"redis"`
	Simulation     SimulationConfig `mapstructure:"simulation"`
}

// Load reads the configuration from a YAML file and returns a Config instance.
func Load() *Config {
	v := viper.New()

	// Look for config in the current directory and ./config
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.AddConfigPath("./config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		log.Fatalf("Error unmarshalling config: %v", err)
	}

	// Fallback defaults
	if config.ServerPort == "" {
		config.ServerPort = "8080"
	}
	if config.JWTSecret == "" {
		log.Fatal("JWT secret must be set in the config file")
	}
	if len(config.AllowedOrigins) == 0 {
		config.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if config.Simulation.SessionTTL == 0 {
		config.Simulation.SessionTTL = 2 * time.Hour
	}
	if config.Simulation.SweepInterval == 0 {
		config.Simulation.SweepInterval = 5 * time.Minute
	}
	if config.Simulation.JourneyTTL == 0 {
		config.Simulation.JourneyTTL = 10 * time.Minute
	}

	return &config
}
