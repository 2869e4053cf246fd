//go:build !linux
// +build !linux

// File: server/sockopt_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import "syscall"

// listenControl is a no-op on platforms without the unix sockopt path.
func listenControl(network, address string, c syscall.RawConn) error {
	return nil
}
