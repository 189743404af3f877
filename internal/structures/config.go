package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type DeviceConfig struct {
	Host     string        `yaml:"host" validate:"required"`
	Password string        `yaml:"password"`
	Timeout  time.Duration `yaml:"timeout"`
}

type PollerConfig struct {
	StateDir     string        `yaml:"stateDir" validate:"required|unixPath"`
	PollInterval time.Duration `yaml:"pollInterval" validate:"required|min:1"`
}

type ArchiveConfig struct {
	Compaction         bool          `yaml:"compaction"`
	CompactionInterval time.Duration `yaml:"compactionInterval"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	Device    DeviceConfig  `yaml:"device"`
	Poller    PollerConfig  `yaml:"poller"`
	Archive   ArchiveConfig `yaml:"archive"`
	WebServer Server        `yaml:"webServer"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}
