//go:build linux
// +build linux

// File: server/sockopt_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// listenControl sets SO_REUSEADDR so restarts do not trip over sockets
// lingering in TIME_WAIT.
func listenControl(network, address string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}
