// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package shipper

import "golang.org/x/sys/unix"

// Write sends p as one datagram with MSG_DONTWAIT.
// Returns unix.EAGAIN when the socket buffer is full.
func (s *DatagramSink) Write(p []byte) (int, error) {
	raw, err := s.conn.SyscallConn()
	if err != nil {
		return 0, err
	}

	var n int
	var serr error
	err = raw.Write(func(fd uintptr) bool {
		n, serr = unix.SendmsgN(int(fd), p, nil, nil, unix.MSG_DONTWAIT)
		return true
	})
	if err != nil {
		return 0, err
	}
	return n, serr
}
