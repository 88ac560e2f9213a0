// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ LoggerInterface = (*Logger)(nil)

type Logger struct {
	*zap.SugaredLogger

	security *SecurityLogger
}

func (l *Logger) Security() SecurityLoggerInterface {
	return l.security
}

func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

// NewLogger creates a production zap logger at the given level.
// Panics on an invalid level string so that misconfiguration is caught at startup.
func NewLogger(level string) *Logger {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		panic(fmt.Sprintf("invalid log level %q: %v", level, err))
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(fmt.Sprintf("failed to build logger: %v", err))
	}

	return &Logger{
		SugaredLogger: logger.Sugar(),
		security:      &SecurityLogger{l: logger.Named("security")},
	}
}

// SecurityLogger writes audit events with a fixed schema.
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) AuthSuccess(userID string) {
	s.l.Info("authentication succeeded",
		zap.String("event", "auth_success"),
		zap.String("user_id", userID),
	)
}

func (s *SecurityLogger) AuthFailure(email string) {
	s.l.Warn("authentication failed",
		zap.String("event", "auth_failure"),
		zap.String("email", email),
	)
}

func (s *SecurityLogger) AuthzFailure(userID, permission string) {
	s.l.Warn("authorization denied",
		zap.String("event", "authz_failure"),
		zap.String("user_id", userID),
		zap.String("permission", permission),
	)
}

func (s *SecurityLogger) SessionRevoked(userID, reason string) {
	s.l.Warn("session revoked",
		zap.String("event", "session_revoked"),
		zap.String("user_id", userID),
		zap.String("reason", reason),
	)
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("system startup", zap.String("event", "system_startup"))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("system shutdown", zap.String("event", "system_shutdown"))
}
