// Package logger provides structured logging for iterx using zerolog.
//
// The iterator packages log only at debug level, and only when they
// materialize values (cycle caches, reverse buffers, tee buffers). With the
// default "info" level the library stays silent.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//	  output: "stderr"
//
// # Usage
//
//	logger.Init(&cfg)
//	log := logger.Get("iterator")
//	if log.DebugEnabled() {
//	    log.Debug("cycle cached", logger.Fields("size", n))
//	}
package logger
