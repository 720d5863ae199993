package input

// showPartialSequence displays the sequence typed so far. Once help has been
// displayed for a context further combos are shown at once; otherwise the
// display waits for the configured timeout.
func (e *Engine) showPartialSequence(ic *Context) {
	if ic.HelpDisplayed {
		if !ic.KeySequence.IsEmpty() {
			e.window.Minibuffer().Show(ic.Sequence())
		}
		return
	}

	e.clearHelpTimer()
	if ic.KeySequence.IsEmpty() {
		return
	}

	delay := e.options().HelpTimeout
	if delay <= 0 {
		e.window.Minibuffer().Show(ic.Sequence())
		ic.HelpDisplayed = true
		return
	}

	var t Timer
	t = e.sched.Schedule(delay, func() {
		e.loop.Post(func() {
			// A newer event may have cancelled or replaced this timer.
			if e.state.helpTimer != t {
				return
			}
			e.state.helpTimer = nil
			e.window.Minibuffer().Show(ic.Sequence())
			ic.HelpDisplayed = true
		})
	})
	e.state.helpTimer = t
}

func (e *Engine) clearHelpTimer() {
	if e.state.helpTimer == nil {
		return
	}
	e.sched.Cancel(e.state.helpTimer)
	e.state.helpTimer = nil
}
