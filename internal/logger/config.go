package logger

import (
	"log/slog"
	"path/filepath"
	"strings"
)

// Config selects the handler, level and the attributes stamped on every record
type Config struct {
	Level       string // any slog level name, e.g. "debug", "warn", "info+2"
	Format      string // "json" or "text"
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
}

// LogLevel parses Level. "warning" is accepted for warn, anything
// unparseable falls back to info.
func (c Config) LogLevel() slog.Level {
	name := strings.TrimSpace(c.Level)
	if strings.EqualFold(name, LogLevelWarning) {
		return slog.LevelWarn
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// BaseAttributes are stamped on every record. Empty values are left out.
func (c Config) BaseAttributes() []slog.Attr {
	var attrs []slog.Attr
	for _, a := range []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	} {
		if a.Value.String() != "" {
			attrs = append(attrs, a)
		}
	}
	return attrs
}

func (c Config) handlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level:       c.LogLevel(),
		AddSource:   c.AddSource,
		ReplaceAttr: shortSource,
	}
}

// shortSource trims source paths to package/file.go:line
func shortSource(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.SourceKey {
		return a
	}
	src, ok := a.Value.Any().(*slog.Source)
	if !ok || src == nil {
		return a
	}
	dir := filepath.Base(filepath.Dir(src.File))
	src.File = filepath.Join(dir, filepath.Base(src.File))
	src.Function = ""
	return slog.Any(a.Key, src)
}
