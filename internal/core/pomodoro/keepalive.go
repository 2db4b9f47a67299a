package pomodoro

// KeepAlive hands out leases that keep the host from suspending the process
// while a clock is running.
type KeepAlive interface {
	Acquire(reason string) Lease
}

// Lease is held for as long as the clock runs. Release must be safe to call
// more than once.
type Lease interface {
	Release()
}

// NopKeepAlive hands out leases that do nothing.
type NopKeepAlive struct{}

// Acquire returns a no-op lease.
func (NopKeepAlive) Acquire(string) Lease {
	return nopLease{}
}

type nopLease struct{}

func (nopLease) Release() {}
