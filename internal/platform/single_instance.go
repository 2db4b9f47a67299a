package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning is returned when another interactive session holds the
// instance lock.
var ErrAlreadyRunning = errors.New("another session is already running")

const (
	minLockPort = 20000
	maxLockPort = 39999
)

// InstanceLock is held by the one desktop or terminal session allowed per
// user. It is a listener on a localhost port derived from the app name.
type InstanceLock struct {
	listener net.Listener
	address  string
}

// AcquireInstanceLock takes the session lock for appName.
func AcquireInstanceLock(appName string) (*InstanceLock, error) {
	address := fmt.Sprintf("127.0.0.1:%d", lockPort(appName))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w (lock %s)", ErrAlreadyRunning, address)
	}
	return &InstanceLock{listener: listener, address: address}, nil
}

// Close releases the lock. It is safe to call more than once.
func (lock *InstanceLock) Close() error {
	if lock == nil || lock.listener == nil {
		return nil
	}
	err := lock.listener.Close()
	lock.listener = nil
	return err
}

// Address returns the bound lock address.
func (lock *InstanceLock) Address() string {
	if lock == nil {
		return ""
	}
	return lock.address
}

func lockPort(appName string) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	span := uint32(maxLockPort - minLockPort + 1)
	return minLockPort + int(hash.Sum32()%span)
}
