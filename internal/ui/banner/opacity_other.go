//go:build !windows

package banner

// The background rectangle already carries the alpha on other drivers.
func (banner *Window) applyNativeOpacity(uint8) {}
