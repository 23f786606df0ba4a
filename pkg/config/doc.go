// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for struct parsing. Every component of the
// dashboard declares its own Config struct with `env` and `envDefault` tags
// (cache.Config, pg.Config, httpserver.Config, logger.Config) and loads it
// through Load:
//
//	var cacheCfg cache.Config
//	if err := config.Load(&cacheCfg); err != nil {
//		return err
//	}
//
// Each type is parsed once per process and served from memory afterwards.
// Reset clears the parsed copies, which tests use together with t.Setenv.
//
// LoadEnv reads explicit .env files; variables already present in the process
// environment are never overwritten. Load reads ./.env on first use when it
// exists.
package config
