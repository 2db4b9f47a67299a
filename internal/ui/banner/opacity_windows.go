//go:build windows

package banner

import (
	"syscall"

	"fyne.io/fyne/v2/driver"
)

const (
	extendedStyleIndex = ^uintptr(19) // GWL_EXSTYLE (-20)
	layeredStyle       = 0x00080000
	layeredAlpha       = 0x2
)

var (
	user32                  = syscall.NewLazyDLL("user32.dll")
	procGetWindowLongPtr    = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtr    = user32.NewProc("SetWindowLongPtrW")
	procSetLayeredAttribute = user32.NewProc("SetLayeredWindowAttributes")
)

// applyNativeOpacity makes the whole banner translucent; the GL surface
// ignores the background alpha on Windows.
func (banner *Window) applyNativeOpacity(alpha uint8) {
	native, ok := banner.window.(driver.NativeWindow)
	if !ok {
		return
	}

	native.RunNative(func(context any) {
		hwnd := windowHandle(context)
		if hwnd == 0 {
			return
		}
		style, _, _ := procGetWindowLongPtr.Call(hwnd, extendedStyleIndex)
		if style&layeredStyle == 0 {
			procSetWindowLongPtr.Call(hwnd, extendedStyleIndex, style|layeredStyle)
		}
		procSetLayeredAttribute.Call(hwnd, 0, uintptr(alpha), layeredAlpha)
	})
}

func windowHandle(context any) uintptr {
	switch value := context.(type) {
	case driver.WindowsWindowContext:
		return value.HWND
	case *driver.WindowsWindowContext:
		return value.HWND
	}
	return 0
}
