// Package config loads typed configuration structs from environment
// variables using caarlos0/env field tags, with optional .env file support
// via godotenv.
//
// Each configuration type is parsed at most once per process and cached, so
// packages can declare their own Config structs and call Load independently
// without worrying about duplicate parsing or ordering:
//
//	type Config struct {
//		RedisURL string `env:"GUARDKIT_REDIS_URL"`
//		Window   time.Duration `env:"GUARDKIT_WINDOW" envDefault:"1h"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
//
// MustLoad panics on failure and is intended for configuration the process
// must not start without (signing secrets, encryption keys).
package config
