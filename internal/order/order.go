// Package order implements intake validation, aggregation, and summary
// rendering for submitted orders.
package order

import (
	"fmt"
	"strings"

	"github.com/fairyhunter13/order-ticket-bot/internal/model"
)

// MaxLines is the number of line-item slots the order command carries.
const MaxLines = 5

// Build aggregates the raw command slots into an Order. Slots are
// visited in submission order; a slot contributes only when name,
// quantity, and unit price were all supplied (zero counts as supplied).
// Incomplete slots are skipped and counted in Dropped.
func Build(slots []model.LineSlot) model.Order {
	var o model.Order
	for _, s := range slots {
		if !s.Complete() {
			if s.Name != "" || s.Quantity != nil || s.UnitPrice != nil {
				o.Dropped++
			}
			continue
		}
		line := model.LineItem{Name: s.Name, Quantity: *s.Quantity, UnitPrice: *s.UnitPrice}
		o.Lines = append(o.Lines, line)
		o.TotalQuantity += line.Quantity
		o.TotalPrice += line.Subtotal()
	}
	return o
}

// Summary renders the canonical itemized text, one line per item in
// submission order. The output is deterministic for a given Order.
func Summary(o model.Order) string {
	lines := make([]string, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, fmt.Sprintf("%s: %d x %d = %d", l.Name, l.Quantity, l.UnitPrice, l.Subtotal()))
	}
	return strings.Join(lines, "\n")
}

// MarkdownSummary renders the summary with the item name and subtotal
// bolded, for display inside the platform embed.
func MarkdownSummary(o model.Order) string {
	lines := make([]string, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, fmt.Sprintf("**%s**: %d x %d = **%d**", l.Name, l.Quantity, l.UnitPrice, l.Subtotal()))
	}
	return strings.Join(lines, "\n")
}
