// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package loadgen

import (
	"context"
	"time"
)

// SetClock replaces the time source and sleeper of g.
func SetClock(g *Generator, now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) {
	g.now = now
	g.sleep = sleep
}
