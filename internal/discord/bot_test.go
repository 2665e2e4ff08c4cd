package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/fairyhunter13/order-ticket-bot/internal/model"
	"github.com/fairyhunter13/order-ticket-bot/internal/order"
)

func strOpt(name, v string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name: name, Type: discordgo.ApplicationCommandOptionString, Value: v,
	}
}

func intOpt(name string, v int64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(v),
	}
}

func TestCommandSlots(t *testing.T) {
	opts := []*discordgo.ApplicationCommandInteractionDataOption{
		strOpt("item1", "Mug"), intOpt("quant1", 2), intOpt("price1", 10),
		strOpt("item3", "Pen"), intOpt("quant3", 5), intOpt("price3", 1),
		strOpt("item4", "Cap"), // partial: no quant4/price4
	}
	slots := commandSlots(opts)
	if len(slots) != 5 {
		t.Fatalf("expected 5 slots, got %d", len(slots))
	}
	o := order.Build(slots)
	if len(o.Lines) != 2 || o.TotalQuantity != 7 || o.TotalPrice != 25 {
		t.Fatalf("unexpected order: %+v", o)
	}
	if o.Dropped != 1 {
		t.Fatalf("expected 1 dropped slot, got %d", o.Dropped)
	}
	if got := order.Summary(o); got != "Mug: 2 x 10 = 20\nPen: 5 x 1 = 1" {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestCommandSlotsZeroValues(t *testing.T) {
	opts := []*discordgo.ApplicationCommandInteractionDataOption{
		strOpt("item1", "Sticker"), intOpt("quant1", 0), intOpt("price1", 0),
	}
	o := order.Build(commandSlots(opts))
	if len(o.Lines) != 1 {
		t.Fatalf("zero quantity and price must count as present")
	}
}

func TestClaimComponents(t *testing.T) {
	open := claimComponents(false)
	row, ok := open[0].(discordgo.ActionsRow)
	if !ok {
		t.Fatalf("expected actions row")
	}
	btn, ok := row.Components[0].(discordgo.Button)
	if !ok {
		t.Fatalf("expected button")
	}
	if btn.CustomID != ClaimButtonID || btn.Disabled || btn.Label != "Claim Order / Open Ticket" || btn.Style != discordgo.SuccessButton {
		t.Fatalf("unexpected open button: %+v", btn)
	}

	claimed := claimComponents(true)
	btn = claimed[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	if !btn.Disabled || btn.Label != "Order Claimed" || btn.Style != discordgo.SecondaryButton {
		t.Fatalf("unexpected claimed button: %+v", btn)
	}
}

func TestOrderCommandShape(t *testing.T) {
	cmd := orderCommand()
	if cmd.Name != "order" {
		t.Fatalf("command name")
	}
	if len(cmd.Options) != 15 {
		t.Fatalf("expected 15 options, got %d", len(cmd.Options))
	}
	for idx, o := range cmd.Options {
		if idx < 3 && !o.Required {
			t.Fatalf("first triple must be required, option %s is not", o.Name)
		}
		if idx >= 3 && o.Required {
			t.Fatalf("optional slots must not be required, option %s is", o.Name)
		}
	}
}

func TestToOverwrites(t *testing.T) {
	ovs := toOverwrites([]model.Overwrite{
		{TargetID: "guild", Type: model.OverwriteRole},
		{TargetID: "user", Type: model.OverwriteMember, Read: true, Write: true},
	})
	if len(ovs) != 2 {
		t.Fatalf("expected 2 overwrites")
	}
	def := ovs[0]
	if def.Type != discordgo.PermissionOverwriteTypeRole {
		t.Fatalf("default target must be a role overwrite")
	}
	if def.Deny&discordgo.PermissionViewChannel == 0 || def.Allow != 0 {
		t.Fatalf("default role must be denied view: %+v", def)
	}
	member := ovs[1]
	if member.Type != discordgo.PermissionOverwriteTypeMember {
		t.Fatalf("claimant must be a member overwrite")
	}
	if member.Allow&discordgo.PermissionViewChannel == 0 || member.Allow&discordgo.PermissionSendMessages == 0 {
		t.Fatalf("claimant must have view and send: %+v", member)
	}
}
