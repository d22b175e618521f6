// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !unix

package shipper

import "time"

// Write sends p as one datagram. Without MSG_DONTWAIT an already expired
// write deadline is not usable, so a short one bounds the wait instead.
func (s *DatagramSink) Write(p []byte) (int, error) {
	if err := s.conn.SetWriteDeadline(time.Now().Add(time.Millisecond)); err != nil {
		return 0, err
	}
	return s.conn.Write(p)
}
