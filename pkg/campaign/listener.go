package campaign

// Listener observes a run as it progresses. Callbacks are invoked
// synchronously from the sending goroutine, in recipient order: Recipient
// first, then Progress, once per processed recipient. A slow listener slows
// the campaign; do not block.
type Listener interface {
	// Recipient reports one finished attempt. errMsg is empty when sent.
	Recipient(address string, sent bool, errMsg string)

	// Progress reports processed count out of the intended total.
	Progress(processed, total int)
}

// NopListener discards all events.
type NopListener struct{}

func (NopListener) Recipient(string, bool, string) {}
func (NopListener) Progress(int, int)              {}

// ListenerFuncs adapts plain functions to the Listener interface. Nil
// fields are skipped.
type ListenerFuncs struct {
	OnRecipient func(address string, sent bool, errMsg string)
	OnProgress  func(processed, total int)
}

func (l ListenerFuncs) Recipient(address string, sent bool, errMsg string) {
	if l.OnRecipient != nil {
		l.OnRecipient(address, sent, errMsg)
	}
}

func (l ListenerFuncs) Progress(processed, total int) {
	if l.OnProgress != nil {
		l.OnProgress(processed, total)
	}
}
