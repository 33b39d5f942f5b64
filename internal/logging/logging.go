// Package logging builds the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Options controls logger construction.
type Options struct {
	Level string // logrus level name, defaults to info
	File  string // optional file that receives a copy of every entry
	JSON  bool
}

// New returns a logger writing to stdout, and to Options.File when set.
// The returned close function releases the file and is never nil.
func New(opts Options) (*logrus.Logger, func() error, error) {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if opts.JSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level := logrus.InfoLevel
	if opts.Level != "" {
		lvl, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		level = lvl
	}
	log.SetLevel(level)

	closeFn := func() error { return nil }
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		log.SetOutput(io.MultiWriter(os.Stdout, f))
		closeFn = f.Close
	}
	return log, closeFn, nil
}
