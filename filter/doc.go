// Package filter attaches classic BPF packet filters to sockets.
//
// A Program is the userspace image of the kernel's filter program: an
// ordered sequence of Op instructions plus the length/pointer pair the
// attach socket option expects. Attach, Detach and Lock each translate to a
// single setsockopt call at SOL_SOCKET level. On platforms without the
// facility the same API compiles to no-ops that always report success, so
// caller code is identical everywhere.
//
// This package transports filter programs to the kernel without inspecting
// them; malformed programs are rejected by the kernel at attach time.
package filter
