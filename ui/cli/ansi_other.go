//go:build !windows

package cli

// terminals outside Windows understand escape sequences already
func EnableANSI() {}
