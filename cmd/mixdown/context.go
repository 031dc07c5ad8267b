package main

import (
	"log/slog"
	"strings"
	"sync"

	"mixdown/internal/config"
	"mixdown/internal/export"
	"mixdown/internal/hwaccel"
	"mixdown/internal/logging"
	"mixdown/internal/media/durations"
	"mixdown/internal/media/ffprobe"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	detectorOnce sync.Once
	detector     *hwaccel.Detector

	durationsOnce sync.Once
	durations     *durations.Cache
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// ensureDetector memoizes one detector per process so every command sees the
// same probe result.
func (c *commandContext) ensureDetector() (*hwaccel.Detector, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.detectorOnce.Do(func() {
		c.detector = hwaccel.NewDetector(cfg.FFmpegBinary(), hwaccel.WithLogger(c.ensureLogger()))
	})
	return c.detector, nil
}

func (c *commandContext) ensureDurations() (*durations.Cache, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.durationsOnce.Do(func() {
		probe := ffprobe.NewClient(cfg.FFprobeBinary())
		c.durations = durations.NewCache(probe, durations.WithLogger(c.ensureLogger()))
	})
	return c.durations, nil
}

func (c *commandContext) newExporter() (*export.Exporter, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	detector, err := c.ensureDetector()
	if err != nil {
		return nil, err
	}
	return export.New(cfg.FFmpegBinary(), detector, export.WithLogger(c.ensureLogger())), nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
