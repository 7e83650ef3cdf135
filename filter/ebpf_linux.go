//go:build linux

package filter

import (
	"os"
	"syscall"

	"github.com/cilium/ebpf"
	"golang.org/x/sys/unix"
)

// AttachProgram attaches an extended BPF socket-filter program to c. This is
// the SO_ATTACH_BPF path for programs loaded with cilium/ebpf; classic
// programs go through AttachConn. Lock applies to this path too: locking a
// socket freezes extended filters as well.
func AttachProgram(c syscall.Conn, prog *ebpf.Program) error {
	return control(c, func(fd int) error {
		if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_ATTACH_BPF, prog.FD()); err != nil {
			return os.NewSyscallError("setsockopt", err)
		}

		return nil
	})
}

// DetachProgram removes an extended BPF socket filter from c.
func DetachProgram(c syscall.Conn) error {
	return control(c, func(fd int) error {
		if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_DETACH_BPF, 0); err != nil {
			return os.NewSyscallError("setsockopt", err)
		}

		return nil
	})
}
