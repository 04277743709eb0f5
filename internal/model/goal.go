package model

import "time"

// Goal is a savings goal, optionally linked to an external account. Internal
// transfers into the linked account within a period count as contributions
// for that period.
type Goal struct {
	ID              string
	Name            string
	Icon            string
	LinkedAccountID string
	TargetCents     int64
	CurrentCents    int64
}

// Asset is a tracked investment holding. Valuation is supplied externally;
// the engine only tracks contributions.
type Asset struct {
	ID                string
	Name              string
	Icon              string
	CurrentValueCents int64
}

// AssetContribution records money moved into an asset.
type AssetContribution struct {
	OccurredAt  time.Time
	AssetID     string
	AmountCents int64
}
