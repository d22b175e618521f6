// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logq

type boundedQueue[T any] interface {
	Consumer[T]
	Len() int
}

// makeRoom discards the oldest elements of q until one more element fits
// under max, and returns how many it discarded.
//
// The check and the caller's subsequent insert are not one transaction:
// with concurrent producers the bound can be briefly exceeded or
// under-shot. It stops early if q reports empty while Len still reads
// high, which happens while another consumer's decrement is in flight.
func makeRoom[T any](q boundedQueue[T], max int) int64 {
	var dropped int64
	for q.Len() >= max {
		if _, err := q.Dequeue(); err != nil {
			break
		}
		dropped++
	}
	return dropped
}
