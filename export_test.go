// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logq

// SetPeekHook installs f to run in every SPMC.Dequeue after the element is
// peeked and before the divider CAS. Must be set while no consumer runs.
func SetPeekHook(f func()) {
	peekHook = f
}
