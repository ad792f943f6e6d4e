// Package config loads runtime configuration for the RetailMediaAI CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   server base URL
//	-s string   storage backend (sqlite, memory, redis, postgres)
//	-d string   storage DSN
//	-i int      activity heartbeat interval (seconds)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "storage": "sqlite",
//	  "dsn": "retailmedia.db",
//	  "heartbeat_interval": "1m",
//	  "log_level": "info",
//	  "export_dir": "exports"
//	}
package config
