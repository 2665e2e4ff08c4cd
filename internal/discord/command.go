package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// ClaimButtonID is the fixed custom ID of the claim control.
const ClaimButtonID = "claim_btn"

// orderCommand builds the /order slash command: five (item, quant,
// price) slots, the first mandatory. Required options must precede
// optional ones, so the first triple leads.
func orderCommand() *discordgo.ApplicationCommand {
	minZero := float64(0)
	opts := []*discordgo.ApplicationCommandOption{
		{Type: discordgo.ApplicationCommandOptionString, Name: "item1", Description: "First item", Required: true},
		{Type: discordgo.ApplicationCommandOptionInteger, Name: "quant1", Description: "Qty", Required: true, MinValue: &minZero},
		{Type: discordgo.ApplicationCommandOptionInteger, Name: "price1", Description: "Price per unit", Required: true, MinValue: &minZero},
	}
	ordinals := []string{"", "First", "Second", "Third", "Fourth", "Fifth"}
	for n := 2; n <= 5; n++ {
		opts = append(opts,
			&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: fmt.Sprintf("item%d", n), Description: fmt.Sprintf("%s item", ordinals[n])},
			&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionInteger, Name: fmt.Sprintf("quant%d", n), Description: "Qty", MinValue: &minZero},
			&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionInteger, Name: fmt.Sprintf("price%d", n), Description: "Price per unit", MinValue: &minZero},
		)
	}
	return &discordgo.ApplicationCommand{
		Name:        "order",
		Description: "Place an order",
		Options:     opts,
	}
}

// claimComponents renders the claim control row. The claimed variant is
// grey, relabeled, and disabled.
func claimComponents(claimed bool) []discordgo.MessageComponent {
	label := "Claim Order / Open Ticket"
	style := discordgo.SuccessButton
	if claimed {
		label = "Order Claimed"
		style = discordgo.SecondaryButton
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					CustomID: ClaimButtonID,
					Label:    label,
					Style:    style,
					Disabled: claimed,
				},
			},
		},
	}
}
