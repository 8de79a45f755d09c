package bdd

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger returns the logger for cfg: a development logger at debug
// level on stderr when cfg.Debug is set, and a no-op logger otherwise.
func NewLogger(cfg Config) (*zap.Logger, error) {
	if !cfg.Debug {
		return zap.NewNop(), nil
	}
	log, err := zap.NewDevelopmentConfig().Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log.Named("spicy"), nil
}
