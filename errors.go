// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logq

import "code.hybscloud.com/iox"

// ErrWouldBlock is returned by Dequeue when no item is currently available.
//
// Enqueue never reports it: both queues are unbounded linked lists, and a
// bounded queue makes room by discarding its oldest items instead of
// refusing the new one.
//
// ErrWouldBlock is a control flow signal, not a failure. A consumer that
// needs to wait for data polls again later (sleep, backoff, yield).
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
//
// Example:
//
//	for {
//	    rec, err := q.Dequeue()
//	    if logq.IsWouldBlock(err) {
//	        time.Sleep(100 * time.Millisecond)
//	        continue
//	    }
//	    ship(rec)
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates the queue was empty.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, or ErrMore.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
