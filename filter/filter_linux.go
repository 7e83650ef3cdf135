//go:build linux

package filter

import (
	"os"
	"runtime"

	"golang.org/x/sys/unix"
)

// Attach installs p as fd's packet filter. After a successful attach, every
// read from fd sees only packets the program accepts. The kernel copies the
// program during the call, so p carries no obligation once Attach returns.
func Attach(fd int, p *Program) error {
	fprog := p.sockFprog()

	err := unix.SetsockoptSockFprog(fd, unix.SOL_SOCKET, unix.SO_ATTACH_FILTER, &fprog)
	runtime.KeepAlive(p)

	if err != nil {
		return os.NewSyscallError("setsockopt", err)
	}

	return nil
}

// Detach removes fd's current packet filter. Whether detaching a socket
// that has no filter succeeds is up to the kernel; the result is passed
// through either way.
func Detach(fd int) error {
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_DETACH_FILTER, 0); err != nil {
		return os.NewSyscallError("setsockopt", err)
	}

	return nil
}

// Lock freezes fd's filter state: every later attach or detach fails until
// the socket is closed. The kernel offers no unlock, so neither does this
// package.
func Lock(fd int) error {
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_LOCK_FILTER, 1); err != nil {
		return os.NewSyscallError("setsockopt", err)
	}

	return nil
}
