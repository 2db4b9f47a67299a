//go:build linux

package platform

import (
	"fmt"
	"os"

	"github.com/godbus/dbus/v5"
)

const (
	login1Service = "org.freedesktop.login1"
	login1Path    = dbus.ObjectPath("/org/freedesktop/login1")
	login1Inhibit = "org.freedesktop.login1.Manager.Inhibit"
)

// hold takes a systemd-logind "block" inhibitor for sleep and idle. The
// inhibitor lasts as long as the returned file descriptor stays open.
func hold(appName, reason string, done <-chan struct{}) error {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("connect system bus: %w", err)
	}
	defer conn.Close()

	var fd dbus.UnixFD
	manager := conn.Object(login1Service, login1Path)
	if err := manager.Call(login1Inhibit, 0, "sleep:idle", appName, reason, "block").Store(&fd); err != nil {
		return fmt.Errorf("logind inhibit: %w", err)
	}

	inhibitor := os.NewFile(uintptr(fd), "logind-inhibitor")
	defer inhibitor.Close()

	<-done
	return nil
}
