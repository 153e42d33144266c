package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/annel0/voxbuild/internal/app"
	"github.com/annel0/voxbuild/internal/config"
	"github.com/annel0/voxbuild/internal/logging"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Scene config (YAML or TOML), default $"+config.EnvConfig)
		outPath     = flag.String("out", "", "Output .vox path, default from config, $"+config.EnvOutput+" or "+config.DefaultOutputPath)
		compress    = flag.Bool("compress", false, "Also write a zstd-compressed copy next to the output")
		metricsFile = flag.String("metrics", "", "Write Prometheus metrics to this textfile")
		logLevel    = flag.String("log-level", "", "Console log level: trace, debug, info, warn, error")
		logFile     = flag.String("log-file", "", "Rotating log file")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	logOpts, err := loggingOptions(cfg, *logLevel, *logFile)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if err := logging.InitDefaultLogger("voxbuild", logOpts); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	if cfg == nil {
		logging.Info("Конфигурация не задана, собирается сцена-пример")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	builder := app.NewBuilder(cfg, app.Options{
		OutputPath:  *outPath,
		Compress:    *compress,
		MetricsFile: *metricsFile,
	}, nil)

	if _, err := builder.Run(ctx); err != nil {
		logging.Error("❌ %v", err)
		logging.CloseDefaultLogger()
		os.Exit(1)
	}
}

// loggingOptions собирает настройки логгера: флаг важнее конфига
func loggingOptions(cfg *config.Config, levelFlag, fileFlag string) (logging.Options, error) {
	opts := logging.DefaultOptions()

	var lc config.LoggingConfig
	if cfg != nil {
		lc = cfg.Logging
	}
	if levelFlag != "" {
		lc.Level = levelFlag
	}
	if fileFlag != "" {
		lc.File = fileFlag
	}

	level, err := logging.ParseLevel(lc.Level)
	if err != nil {
		return opts, err
	}
	opts.ConsoleLevel = level
	if level < opts.FileLevel {
		opts.FileLevel = level
	}
	opts.File = lc.File
	opts.MaxSizeMB = lc.MaxSizeMB
	opts.MaxAgeDays = lc.MaxAgeDays
	opts.MaxBackups = lc.MaxBackups
	return opts, nil
}
