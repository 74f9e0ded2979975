//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/packman/internal/domain/commands"
)

// StubPackCommand is a stub implementation of commands.Pack.
type StubPackCommand struct {
	ExecuteCallCount int
	ExecuteResult    *commands.PackResult
	ExecuteErr       error
	LastOpts         commands.PackOptions
}

var _ commands.Pack = (*StubPackCommand)(nil)

func (s *StubPackCommand) Execute(
	_ context.Context,
	opts commands.PackOptions,
) (*commands.PackResult, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.ExecuteResult, s.ExecuteErr
}
