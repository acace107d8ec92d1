//go:build !windows

package hook

import "errors"

// stubHooks keeps the package loadable off Windows. Installation
// always fails, which the lifecycle machinery treats as a fail-soft
// inert hook: handles work, TryRecv reports ErrEmpty, no events arrive.
type stubHooks struct{}

func newSystemHooks() osHooks {
	return stubHooks{}
}

func (stubHooks) install(Kind) (uintptr, error) {
	return 0, errors.New("low-level input hooks require windows")
}

func (stubHooks) uninstall(uintptr) {}

// wait returns immediately: with no registration there is nothing for
// the background goroutine to keep alive.
func (stubHooks) wait() {}
