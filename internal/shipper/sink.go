// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shipper

import (
	"fmt"
	"net"
)

// DefaultSocketPath is the local syslog socket.
const DefaultSocketPath = "/dev/log"

// DatagramSink writes each buffer as one datagram to a connected unix
// datagram socket. Write never waits for socket buffer space: when the
// receiver is not keeping up it fails immediately.
type DatagramSink struct {
	conn *net.UnixConn
}

// DialDatagram connects to the unix datagram socket at path.
func DialDatagram(path string) (*DatagramSink, error) {
	conn, err := net.DialUnix("unixgram", nil, &net.UnixAddr{Name: path, Net: "unixgram"})
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", path, err)
	}
	return &DatagramSink{conn: conn}, nil
}

// Close closes the socket.
func (s *DatagramSink) Close() error {
	return s.conn.Close()
}
