package campaign

import "errors"

var (
	// ErrAlreadyRunning is returned by Run and Start when the runner is
	// busy with another campaign.
	ErrAlreadyRunning = errors.New("campaign: already running")

	// ErrInvalidCampaign indicates the campaign definition itself is
	// unusable (no sender, no recipients, empty templates).
	ErrInvalidCampaign = errors.New("campaign: invalid campaign")
)
