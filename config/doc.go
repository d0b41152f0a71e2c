// Package config loads iterx configuration from a YAML file, a .env file and
// ITERX_-prefixed environment variables, in that order of precedence
// (later sources win).
//
// # Usage
//
//	var cfg config.Config
//	if err := config.LoadConfig("iterx", &cfg, config.WithConfigFile(path)); err != nil {
//	    return err
//	}
//	cfg.ApplyDefaults()
//
// Environment variables map onto nested keys by splitting on underscores,
// so ITERX_LOGGING_LEVEL sets logging.level and ITERX_RANGE_BATCH_SIZE sets
// range.batch_size.
package config
