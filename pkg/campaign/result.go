package campaign

import (
	"fmt"
	"time"
)

// Outcome records what happened for a single recipient.
type Outcome struct {
	// Recipient is the delivery address, or a row placeholder when the
	// record had no address.
	Recipient string

	// Sent is true when the transport accepted the message.
	Sent bool

	// Error holds the failure description for unsent recipients.
	Error string

	// At is when the attempt finished.
	At time.Time
}

// Result summarizes a finished (or cancelled) campaign run.
type Result struct {
	// Total is the intended recipient count, regardless of how far the
	// run got before cancellation.
	Total int

	// Sent and Failed count processed recipients. Sent+Failed < Total
	// means the run was cancelled partway.
	Sent   int
	Failed int

	// Errors holds one "address: reason" line per failed recipient, in
	// recipient order.
	Errors []string

	// Outcomes holds the per-recipient records for the processed prefix.
	Outcomes []Outcome

	// Cancelled is true when the run stopped before processing everyone.
	Cancelled bool

	// Success is true when no processed recipient failed. A cancelled run
	// with a clean prefix is still a success; consult Cancelled to tell
	// the two apart.
	Success bool
}

func (r *Result) record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	if o.Sent {
		r.Sent++
		return
	}
	r.Failed++
	r.Errors = append(r.Errors, fmt.Sprintf("%s: %s", o.Recipient, o.Error))
}

func (r *Result) finalize() {
	r.Success = r.Failed == 0
}
