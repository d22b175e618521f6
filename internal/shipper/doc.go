// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package shipper moves newline-delimited records from an input stream to
// a local syslog datagram socket through a [logq] queue.
//
// A Reader pushes one Record per input line and an end marker at EOF. A
// SyslogWriter polls the queue, sleeping while it is empty, formats each
// record as an RFC 5424 line and writes it without blocking. A Manager
// runs both concurrently and reports their statistics together with the
// queue's drop count.
//
// Delivery is lossy by policy: a bounded queue drops its oldest records
// under overload, and a failed socket write is counted, not retried.
package shipper
