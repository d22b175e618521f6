// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logq_test

import (
	"fmt"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/logq"
)

// Example_readerShipper demonstrates the log pipeline shape: one reader
// pushing lines, several shippers polling with a sleep on empty.
func Example_readerShipper() {
	const lines = 100

	q := logq.NewSPMC[string](0)
	p := q.Producer()
	var shipped atomix.Int64

	var wg sync.WaitGroup
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for shipped.Load() < lines {
				if _, err := q.Dequeue(); err != nil {
					time.Sleep(time.Millisecond)
					continue
				}
				shipped.Add(1)
			}
		}()
	}

	for i := range lines {
		line := fmt.Sprintf("line %d", i)
		p.Enqueue(&line)
	}
	wg.Wait()

	fmt.Println("shipped:", shipped.Load())

	// Output:
	// shipped: 100
}
