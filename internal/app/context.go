package app

import (
	"context"
	"sync"
)

var (
	baseCtx   = context.Background()
	baseCtxMu sync.RWMutex
)

// SetContext installs the process context, canceled on interrupt by main.
func SetContext(ctx context.Context) {
	baseCtxMu.Lock()
	defer baseCtxMu.Unlock()
	baseCtx = ctx
}

// Context returns the process context.
func Context() context.Context {
	baseCtxMu.RLock()
	defer baseCtxMu.RUnlock()
	return baseCtx
}
