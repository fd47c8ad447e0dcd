package testutil

import (
	"context"

	"github.com/kbukum/neysla/component"
)

// TestComponent is a component.Component whose recorded state can be cleared
// between test cases.
type TestComponent interface {
	component.Component

	// Reset drops everything recorded since Start or the previous Reset.
	Reset(ctx context.Context) error
}
