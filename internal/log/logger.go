package log

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.Mutex
	logger = zap.NewNop()
)

// Init builds the process logger. prod selects the JSON production config,
// otherwise the development config is used (tests, local runs).
func Init(prod bool) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if prod {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	mu.Lock()
	logger = l
	mu.Unlock()
	return l, nil
}

// L returns the process logger. Safe to call before Init (nop logger).
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}
