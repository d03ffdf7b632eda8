package provisioning

import (
	"context"

	"github.com/wallettrack/deployctl/internal/config"
)

// Context wraps the dependencies and state shared by all steps of one run.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Observer Observer
	Timeouts *config.Timeouts
}

// NewContext creates a provisioning context for one run.
func NewContext(ctx context.Context, cfg *config.Config) *Context {
	timeouts := cfg.Timeouts
	if timeouts == nil {
		timeouts = config.LoadTimeouts()
	}
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Observer: NewConsoleObserver(),
		Timeouts: timeouts,
	}
}
