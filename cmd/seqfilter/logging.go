package main

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/randalmurphal/seqfilter/config"
)

// newLogger creates a logger writing to w with the configured level and format.
func newLogger(cfg config.LogConfig, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// configFields renders the effective configuration for the startup log line.
func configFields(cfg config.Config) logrus.Fields {
	return logrus.Fields{
		"input":       cfg.Input,
		"output":      cfg.Output,
		"delimiter":   cfg.Delimiter,
		"language":    cfg.Language,
		"max_words":   cfg.MaxWords,
		"has_header":  cfg.HasHeader,
		"fix_unicode": cfg.FixUnicode,
		"workers":     cfg.Workers,
		"watch":       cfg.Watch,
	}
}
