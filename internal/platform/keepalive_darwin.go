//go:build darwin

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// hold runs caffeinate bound to this process so a crash never leaves the
// assertion behind.
func hold(appName, reason string, done <-chan struct{}) error {
	cmd := exec.Command("caffeinate", "-i", "-w", strconv.Itoa(os.Getpid()))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start caffeinate: %w", err)
	}

	<-done
	_ = cmd.Process.Kill()
	_ = cmd.Wait()
	return nil
}
