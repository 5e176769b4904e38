package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rkjdid/util"
	"github.com/solar3s/goyx5300/web"
	"github.com/solar3s/goyx5300/yx5300"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var rootConfig *web.Config

var (
	device   = flag.String("dev", "", "path to serial port, overrides config's Device")
	rootPath = flag.String("root", "", "path to goyx5300's main directory (defaults to executable path)")
	cfgPath  = flag.String("config", "", "path to config (defaults to <root>/config.toml)")
	debug    = flag.Bool("debug", false, "log every frame sent to the module")
	verbose  = flag.Bool("v", false, "higher verbosity")
	version  = flag.Bool("version", false, "print version & exit")
)

// loadConfig parses flags then reads, or creates, the config file.
func loadConfig() {
	flag.Parse()

	// print version & exit
	if *version {
		fmt.Printf("goyx5300 %s\n", Version)
		os.Exit(0)
	}

	if *rootPath == "" {
		exe, err := os.Executable()
		if err != nil {
			log.Fatalf("couldn't get path to executable: %s", err)
		}
		*rootPath = filepath.Dir(exe)
	}
	err := os.MkdirAll(*rootPath, 0755)
	if err != nil {
		log.Fatalf("couldn't mkdir \"%s\": %s", *rootPath, err)
	}

	if *cfgPath == "" {
		*cfgPath = filepath.Join(*rootPath, "config.toml")
	}

	err = util.ReadTomlFile(&rootConfig, *cfgPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("error reading config \"%s\": %s", *cfgPath, err)
		}
		cfg := web.DefaultConfig
		rootConfig = &cfg
		err = util.WriteTomlFile(rootConfig, *cfgPath)
		if err != nil {
			log.Fatalf("error creating config \"%s\": %s", *cfgPath, err)
		}
		log.Printf("created new config file \"%s\"", *cfgPath)
	}

	if *device != "" {
		rootConfig.Device = *device
	}
	if *debug {
		rootConfig.Player.Debug = true
	}
	if *verbose {
		rootConfig.Web.Verbose = true
	}
}

func main() {
	loadConfig()
	sink, logger := newLoggers(rootConfig.Log, *verbose, zapcore.Lock(os.Stdout))
	defer logger.Sync()
	logger.Info("using config file", zap.String("path", *cfgPath))

	conn, err := yx5300.OpenPortName(rootConfig.Device, &rootConfig.Serial)
	if err != nil {
		logger.Fatal("error opening serial port", zap.String("dev", rootConfig.Device), zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	player, err := yx5300.New(conn, &rootConfig.Player, yx5300.WithLogger(sink), yx5300.WithMetrics(reg))
	if err != nil {
		logger.Fatal("error initializing player", zap.String("dev", rootConfig.Device), zap.Error(err))
	}
	logger.Info("connected", zap.String("dev", rootConfig.Device))

	logger.Info("starting player watcher", zap.Duration("poll", time.Duration(rootConfig.Watcher.PollRate)))
	watcher := yx5300.NewWatcher(player, &rootConfig.Watcher, logger)
	watcher.Watch()

	srv := web.NewServer(Version, player, watcher, reg, rootConfig, logger)
	logger.Info("starting webserver", zap.String("addr", "http://"+rootConfig.Web.ListenAddr))
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			logger.Fatal("http.ListenAndServe", zap.Error(err))
		}
	}()

	// small delay to allow for failure in ListenAndServe
	<-time.After(time.Millisecond * 500)
	logger.Info("Press <Ctrl-C> to quit")

	trap := make(chan os.Signal, 1)
	signal.Notify(trap, os.Interrupt)
	<-trap
	fmt.Println()
	logger.Info("quit received...")

	cleanExit := make(chan struct{})
	go func() {
		watcher.Stop()
		if err := player.Stop(); err != nil {
			logger.Warn("couldn't stop playback", zap.Error(err))
		}
		player.Close()
		close(cleanExit)
	}()
	select {
	case <-time.After(time.Second * 10):
		logger.Panic("no clean exit after 10sec")
	case <-cleanExit:
	}
}
