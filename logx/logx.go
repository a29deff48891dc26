/*
   Copyright 2025 The OGuild Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package logx

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"oguild.dev/police/channel"
)

// Logger wraps Zap and is the root of all per-channel handles.
type Logger struct {
	zap    *zap.Logger
	config *Config
}

// New creates a logger from config, writing to stderr.
func New(cfg *Config) (*Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("police: invalid log config: %w", err)
	}

	enc, err := newEncoder(cfg)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), cfg.Level)

	opts := []zap.Option{}
	if cfg.Caller.Enabled {
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(cfg.Caller.Skip))
	}
	if cfg.Stacktrace.Level != 0 {
		opts = append(opts, zap.AddStacktrace(cfg.Stacktrace.Level))
	}

	zapLogger := zap.New(core, opts...)

	if len(cfg.Fields) > 0 {
		fields := make([]zap.Field, 0, len(cfg.Fields))
		for k, v := range cfg.Fields {
			fields = append(fields, zap.String(k, v))
		}
		zapLogger = zapLogger.With(fields...)
	}

	return &Logger{zap: zapLogger, config: cfg}, nil
}

// FromZap wraps an existing zap.Logger. Useful when the host application
// already owns its logging setup and only needs per-channel handles.
func FromZap(z *zap.Logger) *Logger {
	return &Logger{zap: z, config: NewDefaultConfig()}
}

// newEncoder creates a JSON or console encoder wrapped with redaction.
func newEncoder(cfg *Config) (zapcore.Encoder, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var base zapcore.Encoder
	if cfg.Format == "console" {
		base = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		base = zapcore.NewJSONEncoder(encoderCfg)
	}
	return NewRedactingEncoder(base, cfg.Redaction)
}

// With returns a child logger carrying extra constant fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{zap: l.zap.With(fields...), config: l.config}
}

// Enabled reports whether the given level would be emitted.
func (l *Logger) Enabled(level zapcore.Level) bool {
	return l.zap.Core().Enabled(level)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	err := l.zap.Sync()
	// Syncing stderr returns EINVAL or ENOTTY on Linux; harmless.
	if err != nil && isStderrSyncError(err) {
		return nil
	}
	return err
}

// Underlying returns the wrapped zap.Logger for integration with libraries
// that require one.
func (l *Logger) Underlying() *zap.Logger {
	return l.zap
}

func isStderrSyncError(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EINVAL || errno == syscall.ENOTTY
	}
	return false
}

// Handle is an opaque, cached logger bound to one channel. All wrapper log
// emissions for a given call-site context go through the same Handle.
type Handle struct {
	ch  channel.Channel
	log *zap.Logger
}

// Channel returns the channel this handle is keyed by.
func (h *Handle) Channel() channel.Channel { return h.ch }

// Error logs at error severity on this handle's channel.
func (h *Handle) Error(msg string, fields ...zap.Field) {
	h.log.Error(msg, fields...)
}

// Warn logs at warn severity on this handle's channel.
func (h *Handle) Warn(msg string, fields ...zap.Field) {
	h.log.Warn(msg, fields...)
}

// Info logs at info severity on this handle's channel.
func (h *Handle) Info(msg string, fields ...zap.Field) {
	h.log.Info(msg, fields...)
}

// Debug logs at debug severity on this handle's channel.
func (h *Handle) Debug(msg string, fields ...zap.Field) {
	h.log.Debug(msg, fields...)
}

// Registry hands out per-channel Handles, creating each lazily on first use
// and reusing it afterwards. The cache is guarded so that concurrent first
// access creates exactly one handle per channel.
type Registry struct {
	base *Logger

	mu      sync.RWMutex
	handles map[channel.Channel]*Handle
}

// NewRegistry creates a registry over the given root logger.
func NewRegistry(base *Logger) *Registry {
	return &Registry{
		base:    base,
		handles: make(map[channel.Channel]*Handle),
	}
}

// Handle returns the handle for the given channel, creating it on first use.
// The empty channel is mapped to the Unknown sentinel so that no emission
// ever goes out on an unnamed channel.
func (r *Registry) Handle(c channel.Channel) *Handle {
	if c == channel.Empty {
		c = channel.Unknown
	}

	r.mu.RLock()
	h, ok := r.handles[c]
	r.mu.RUnlock()
	if ok {
		return h
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.handles[c]; ok {
		return h
	}
	h = &Handle{ch: c, log: r.base.zap.Named(string(c))}
	r.handles[c] = h
	return h
}

// Len returns the number of cached handles. Primarily for tests.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles)
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry over a logger built from
// NewDefaultConfig, created lazily on first use.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		l, err := New(NewDefaultConfig())
		if err != nil {
			// Defaults are known-valid; reaching this is a programming error.
			panic(err)
		}
		defaultRegistry = NewRegistry(l)
	})
	return defaultRegistry
}
