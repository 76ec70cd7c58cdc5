package main

import (
	"os"
	"time"

	"github.com/alexisbeaulieu97/barbar/internal/config"
	"github.com/alexisbeaulieu97/barbar/internal/logger"
)

// varsSource serves the expression variables file, reloading it whenever its
// modification time changes. A file that fails to parse keeps the last good
// variables.
type varsSource struct {
	path    string
	modTime time.Time
	vars    map[string]any
	log     *logger.Logger
}

func newVarsSource(path string, log *logger.Logger) *varsSource {
	s := &varsSource{path: path, vars: map[string]any{}, log: log}
	s.Get()
	return s
}

// Get returns the current variables.
func (s *varsSource) Get() map[string]any {
	info, err := os.Stat(s.path)
	if err != nil {
		if !s.modTime.IsZero() {
			s.modTime = time.Time{}
			s.vars = map[string]any{}
		}
		return s.vars
	}
	if info.ModTime().Equal(s.modTime) {
		return s.vars
	}

	vars, err := config.LoadVars(s.path)
	if err != nil {
		s.log.Error(err, "failed to reload variables")
		s.modTime = info.ModTime()
		return s.vars
	}

	s.modTime = info.ModTime()
	s.vars = vars
	s.log.WithFields(map[string]any{"path": s.path, "count": len(vars)}).Debug("variables reloaded")
	return s.vars
}
