// Package campaign orchestrates a bulk personalized send: render, compose,
// deliver, one recipient at a time, under cooperative cancellation.
//
// A Runner executes one campaign at a time. Conditions that would fail
// identically for every recipient (malformed template, bad shared
// attachment, empty recipient list) abort the run before the first send.
// Everything after that is per-recipient: a delivery failure is recorded
// as that recipient's Outcome and the loop continues.
//
// Progress and per-item events reach the Listener synchronously, in strict
// recipient order. Cancel never interrupts an in-flight send; it stops the
// loop before the next recipient starts. The final Result always accounts
// for the full intended recipient count, with only the processed prefix
// contributing outcomes.
//
//	runner := campaign.NewRunner(sender, campaign.WithLogger(log))
//	done, err := runner.Start(ctx, c, listener)
//	if err != nil {
//		return err // ErrAlreadyRunning
//	}
//	completion := <-done
package campaign
