// Package model defines domain types used by the bot.
package model

import "time"

// LineItem is one validated row of an order.
type LineItem struct {
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// Subtotal returns quantity times unit price for this line.
func (l LineItem) Subtotal() int64 { return l.Quantity * l.UnitPrice }

// LineSlot is one raw command slot before validation. Quantity and
// UnitPrice are pointers so that a submitted zero is distinguishable
// from an omitted value.
type LineSlot struct {
	Name      string
	Quantity  *int64
	UnitPrice *int64
}

// Complete reports whether all three fields of the slot were supplied.
func (s LineSlot) Complete() bool {
	return s.Name != "" && s.Quantity != nil && s.UnitPrice != nil
}

// Order is the aggregate computed once at submission time.
type Order struct {
	Lines         []LineItem `json:"lines"`
	TotalQuantity int64      `json:"total_quantity"`
	TotalPrice    int64      `json:"total_price"`
	Dropped       int        `json:"dropped"`
}

// CardState is the per-message claim record kept in the claim store,
// keyed by the order message's ID.
type CardState struct {
	Summary   string    `json:"summary"`
	Claimed   bool      `json:"claimed"`
	ClaimedBy string    `json:"claimed_by,omitempty"`
	ClaimedAt time.Time `json:"claimed_at,omitempty"`
}

// OverwriteType selects the target kind of a permission grant.
type OverwriteType int

const (
	OverwriteRole OverwriteType = iota
	OverwriteMember
)

// Overwrite is a platform-agnostic channel permission entry.
type Overwrite struct {
	TargetID string
	Type     OverwriteType
	Read     bool
	Write    bool
}

// Ticket describes a provisioned support channel.
type Ticket struct {
	ID        string
	ChannelID string
	Name      string
	CardID    string
	Claimant  string
	CreatedAt time.Time
}
