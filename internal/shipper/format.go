// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shipper

import (
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the syslog TIMESTAMP layout: seconds precision with a
// numeric zone offset.
const TimestampLayout = "2006-01-02T15:04:05-0700"

// Header holds the constant fields of every syslog line.
type Header struct {
	Facility int    `yaml:"facility"`
	Severity int    `yaml:"severity"`
	Host     string `yaml:"host"`
	AppName  string `yaml:"app_name"`
	ProcID   string `yaml:"proc_id"`
	MsgID    string `yaml:"msg_id"`
}

// DefaultHeader returns facility user (1), severity informational (6) and
// placeholder identity fields.
func DefaultHeader() Header {
	return Header{
		Facility: 1,
		Severity: 6,
		Host:     "host",
		AppName:  "app",
		ProcID:   "1",
		MsgID:    "1",
	}
}

// Priority returns the PRI value, facility*8 + severity.
func (h Header) Priority() int {
	return h.Facility*8 + h.Severity
}

// AppendLine appends one RFC 5424 line to dst:
//
//	<PRI>1 TIMESTAMP HOST APP-NAME PROCID MSGID - MSG\n
//
// msg is stripped of leading and trailing white space.
func (h Header) AppendLine(dst []byte, ts time.Time, msg string) []byte {
	dst = append(dst, '<')
	dst = strconv.AppendInt(dst, int64(h.Priority()), 10)
	dst = append(dst, ">1 "...)
	dst = ts.AppendFormat(dst, TimestampLayout)
	for _, f := range [...]string{h.Host, h.AppName, h.ProcID, h.MsgID} {
		dst = append(dst, ' ')
		dst = append(dst, f...)
	}
	dst = append(dst, " - "...)
	dst = append(dst, strings.TrimSpace(msg)...)
	return append(dst, '\n')
}
