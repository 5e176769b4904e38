package web

import (
	"github.com/solar3s/goyx5300/yx5300"
	"go.bug.st/serial.v1"
)

var DefaultConfig = Config{
	Device:  "/dev/ttyUSB0",
	Player:  yx5300.DefaultConfig,
	Web:     DefaultServerConfig,
	Watcher: yx5300.DefaultWatcherConfig,
	Serial:  *yx5300.DefaultSerialConfig,
	Log:     DefaultLogConfig,
}

type Config struct {
	Device  string // path to serial port
	Serial  serial.Mode
	Player  yx5300.Config
	Watcher yx5300.WatcherConfig
	Web     ServerConfig
	Log     LogConfig
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // console or json
	File       string // rotated log file, stdout only if empty
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

var DefaultLogConfig = LogConfig{
	Level:      "info",
	Format:     "console",
	MaxSizeMB:  10,
	MaxBackups: 3,
	MaxAgeDays: 28,
}
