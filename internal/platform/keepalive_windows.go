//go:build windows

package platform

import (
	"fmt"
	"runtime"
	"syscall"
)

const (
	esContinuous     = 0x80000000
	esSystemRequired = 0x00000001
)

var procSetThreadExecutionState = syscall.NewLazyDLL("kernel32.dll").NewProc("SetThreadExecutionState")

// hold sets the execution state on a locked OS thread; the flag belongs to the
// thread that set it.
func hold(appName, reason string, done <-chan struct{}) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	result, _, err := procSetThreadExecutionState.Call(uintptr(esContinuous | esSystemRequired))
	if result == 0 {
		return fmt.Errorf("set thread execution state: %w", err)
	}

	<-done
	procSetThreadExecutionState.Call(uintptr(esContinuous))
	return nil
}
