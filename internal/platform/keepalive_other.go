//go:build !linux && !darwin && !windows

package platform

func hold(appName, reason string, done <-chan struct{}) error {
	return ErrKeepAliveUnsupported
}
