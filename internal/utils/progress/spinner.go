package progress

import (
	"fmt"
	"sync"
	"time"
)

var frames = []rune{'▁', '▃', '▄', '▅', '▆', '▇', '█', '▇', '▆', '▅', '▄', '▃', '▁'}

// ShowLoadingAnimation animates msg on the terminal until stopChan closes.
// Run it in its own goroutine and wait on wg after closing the channel.
func ShowLoadingAnimation(stopChan chan struct{}, wg *sync.WaitGroup, msg string) {
	defer wg.Done()
	i := 0
	for {
		select {
		case <-stopChan:
			fmt.Printf("\r%s done.            \n", msg)
			return
		default:
			fmt.Printf("\r%s...  %c", msg, frames[i])
			i = (i + 1) % len(frames)
			time.Sleep(150 * time.Millisecond)
		}
	}
}
