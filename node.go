// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logq

import "code.hybscloud.com/atomix"

// node is a cell of the MPMC list.
//
// next is read and CAS'd by any goroutine. value is written once before
// the node is linked and read (then cleared) only by the consumer whose
// head CAS made this node the new sentinel.
type node[T any] struct {
	value T
	next  atomix.Pointer[node[T]]
}

// divNode is a cell of the SPMC list.
//
// next is a plain pointer written only by the producer, before the node
// after it is published by the release store to last. Consumers read it
// only after an acquire load of last observed that publication.
type divNode[T any] struct {
	value T
	next  *divNode[T]
}
