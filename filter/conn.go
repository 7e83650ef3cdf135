package filter

import "syscall"

// The functions below lift Attach, Detach and Lock onto anything that can
// expose its raw descriptor through syscall.Conn, which covers every
// net.UDPConn, net.TCPConn, net.IPConn and os.File. They add no semantics;
// each forwards to the fd-level call inside RawConn.Control so the
// descriptor stays valid for the duration of the syscall.

// AttachConn installs p as c's packet filter.
func AttachConn(c syscall.Conn, p *Program) error {
	return control(c, func(fd int) error {
		return Attach(fd, p)
	})
}

// DetachConn removes c's current packet filter.
func DetachConn(c syscall.Conn) error {
	return control(c, Detach)
}

// LockConn freezes c's filter state until the socket is closed.
func LockConn(c syscall.Conn) error {
	return control(c, Lock)
}

func control(c syscall.Conn, fn func(fd int) error) error {
	raw, err := c.SyscallConn()
	if err != nil {
		return err
	}

	var opErr error

	if err := raw.Control(func(fd uintptr) {
		opErr = fn(int(fd))
	}); err != nil {
		return err
	}

	return opErr
}
