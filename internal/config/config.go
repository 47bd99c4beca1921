package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr                string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout   time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout     time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	DatabasePath        string        `mapstructure:"db_path" yaml:"db_path"`
	LogLevel            string        `mapstructure:"log_level" yaml:"log_level"`
	CursorTTL           time.Duration `mapstructure:"cursor_ttl" yaml:"cursor_ttl"`
	CursorSweepInterval time.Duration `mapstructure:"cursor_sweep_interval" yaml:"cursor_sweep_interval"`
	ClientMsgRate       float64       `mapstructure:"client_msg_rate" yaml:"client_msg_rate"`
	ClientMsgBurst      int           `mapstructure:"client_msg_burst" yaml:"client_msg_burst"`
}

// Default returns configuration with reasonable starter defaults. The cursor
// windows match the reference behavior: positions older than 5s are swept
// once a second.
func Default() Config {
	return Config{
		Addr:                ":8080",
		ReadHeaderTimeout:   5 * time.Second,
		ShutdownTimeout:     5 * time.Second,
		DatabasePath:        "./data/whiteboard.db",
		LogLevel:            "info",
		CursorTTL:           5 * time.Second,
		CursorSweepInterval: time.Second,
		ClientMsgRate:       100,
		ClientMsgBurst:      200,
	}
}
