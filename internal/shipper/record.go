// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shipper

// Record is one input line travelling through the queue.
type Record struct {
	Line string
	end  bool
}

// EndOfInput returns the marker the Reader pushes after the last line.
func EndOfInput() Record {
	return Record{end: true}
}

// IsEnd reports whether r is the end-of-input marker.
func (r Record) IsEnd() bool {
	return r.end
}
