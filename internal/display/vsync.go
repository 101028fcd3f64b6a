package display

import "time"

// vsyncTimeout bounds WaitVSync at roughly two frame periods. Hitting it is
// not an error; frame pacing is advisory.
const vsyncTimeout = 100 * time.Millisecond

// WaitVSync blocks the caller until the next vertical blank or the timeout,
// whichever comes first. Outside the graphics modes it returns immediately.
// At most one waiter is supported at a time.
func (d *Display) WaitVSync() {
	if !d.Mode().Graphics() {
		return
	}
	d.vsyncWaiting.Store(true)
	t := time.NewTimer(vsyncTimeout)
	defer t.Stop()
	select {
	case <-d.vsyncCh:
	case <-t.C:
		d.vsyncWaiting.Store(false)
	}
}

// SignalVBlank fires the vertical-blank event; the scanout calls it once per
// frame. It wakes the waiter only when one is armed, so signals never pile
// up between frames, and it cannot block.
func (d *Display) SignalVBlank() {
	if d.vsyncWaiting.CompareAndSwap(true, false) {
		select {
		case d.vsyncCh <- struct{}{}:
		default:
		}
	}
}
