// Package config provides configuration management for the AirCause backend.
//
// Configuration is assembled in layers, later layers winning:
//
//  1. Default values (defaults.go)
//  2. An optional YAML file (default "config.yaml")
//  3. Environment variables, optionally seeded from a .env file
//  4. Validation, which fails fast and reports every bad field at once
//
// # Environment Variables
//
//   - PORT sets the listen address to ":<PORT>" (default 3002)
//   - GROQ_API_KEY, GROQ_BASE_URL, GROQ_MODEL configure the provider
//   - AIRCAUSE_LOG_LEVEL, AIRCAUSE_LOG_FORMAT configure logging
//   - AIRCAUSE_PROVIDER_TIMEOUT, AIRCAUSE_PROVIDER_MAX_RETRIES tune the
//     provider client
//   - AIRCAUSE_METRICS_ENABLED, AIRCAUSE_TRACING_ENABLED,
//     AIRCAUSE_TRACING_ENDPOINT toggle telemetry
//
// # Singleton
//
//	if err := config.Initialize("config.yaml"); err != nil {
//	    return err
//	}
//	cfg := config.GetConfig()
//
// # Hot Reload
//
// Watcher observes the configuration file with fsnotify and re-runs the
// full load sequence on change. Only settings that are safe to swap at
// runtime (the log level) are applied by the server; the rest take effect
// on restart.
package config
