package hook

// osHooks abstracts the Windows hook primitives the core needs, so the
// lifecycle machinery is the same on every platform and tests can
// substitute a recording fake. The real binding lives in
// os_windows.go; elsewhere installation always fails and handles stay
// inert.
type osHooks interface {
	// install registers the low-level hook for kind with the fixed
	// callback entry point and returns the OS token, or an error with a
	// zero token on failure.
	install(kind Kind) (uintptr, error)
	// uninstall unregisters a previously returned token. It is called
	// at most once per token.
	uninstall(token uintptr)
	// wait blocks in the OS message wait. Under normal operation on
	// Windows it does not return; its return marks the end of the
	// background goroutine's life.
	wait()
}
