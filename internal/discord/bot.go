// Package discord wires the bot's order and claim workflows to the
// Discord gateway: slash-command registration, interaction handling,
// and the REST adapter the ticket service provisions channels through.
package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/fairyhunter13/order-ticket-bot/internal/config"
	"github.com/fairyhunter13/order-ticket-bot/internal/model"
	"github.com/fairyhunter13/order-ticket-bot/internal/obs"
	"github.com/fairyhunter13/order-ticket-bot/internal/order"
	"github.com/fairyhunter13/order-ticket-bot/internal/store"
	"github.com/fairyhunter13/order-ticket-bot/internal/ticket"
)

// Bot owns the long-lived gateway session. One instance is constructed
// at startup and shared by every handler.
type Bot struct {
	cfg     config.Config
	s       *discordgo.Session
	st      store.ClaimStore
	tickets *ticket.Service
	metrics *obs.Metrics

	registered []*discordgo.ApplicationCommand
}

// New builds the session and handler wiring without connecting.
func New(cfg config.Config, st store.ClaimStore, m *obs.Metrics) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	b := &Bot{cfg: cfg, s: s, st: st, metrics: m}
	b.tickets = ticket.New(sessionGateway{s: s}, st, m, cfg.AdminRoleID)
	s.AddHandler(b.onReady)
	s.AddHandler(b.onInteraction)
	return b, nil
}

// Open connects to the gateway and registers the command surface. With
// GUILD_ID set registration is guild-scoped (instant propagation);
// otherwise it is global.
func (b *Bot) Open() error {
	if err := b.s.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	cmd, err := b.s.ApplicationCommandCreate(b.s.State.User.ID, b.cfg.GuildID, orderCommand())
	if err != nil {
		_ = b.s.Close()
		return fmt.Errorf("register command: %w", err)
	}
	b.registered = append(b.registered, cmd)
	obs.Logger.Info("commands_registered", "count", len(b.registered), "guild_id", b.cfg.GuildID)
	return nil
}

// Close tears down the gateway connection.
func (b *Bot) Close() error { return b.s.Close() }

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	obs.Logger.Info("gateway_ready", "user_id", r.User.ID, "username", r.User.Username)
}

// onInteraction dispatches inbound interactions. discordgo invokes
// handlers on their own goroutines, so two interactions never block
// each other here; per-card ordering is the ticket service's job.
func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name == "order" {
			b.handleOrder(s, i)
		}
	case discordgo.InteractionMessageComponent:
		if i.MessageComponentData().CustomID == ClaimButtonID {
			b.handleClaim(s, i)
		}
	}
}

// handleOrder aggregates the command slots, renders the summary embed
// with its claim control, and registers the card in the claim store.
func (b *Bot) handleOrder(s *discordgo.Session, i *discordgo.InteractionCreate) {
	slots := commandSlots(i.ApplicationCommandData().Options)
	o := order.Build(slots)
	summary := order.Summary(o)

	b.metrics.OrdersReceived.Inc()
	if o.Dropped > 0 {
		b.metrics.LinesDropped.Add(float64(o.Dropped))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🛒 New Order Received",
		Description: order.MarkdownSummary(o),
		Color:       0x3498db,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Total Items", Value: strconv.FormatInt(o.TotalQuantity, 10), Inline: true},
			{Name: "Total Price", Value: fmt.Sprintf("**%d**", o.TotalPrice), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Click the button below to claim this order."},
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: claimComponents(false),
		},
	})
	if err != nil {
		obs.Logger.Error("order_respond_failed", "error", err)
		return
	}

	// The response message's ID keys the card in the claim store.
	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		obs.Logger.Error("order_response_fetch_failed", "error", err)
	} else if err := b.st.PutCard(msg.ID, summary); err != nil {
		obs.Logger.Error("card_register_failed", "card_id", msg.ID, "error", err)
	} else {
		obs.Logger.Info("order_received",
			"card_id", msg.ID,
			"lines", len(o.Lines),
			"dropped", o.Dropped,
			"total_quantity", o.TotalQuantity,
			"total_price", o.TotalPrice,
		)
	}

	if o.Dropped > 0 {
		note := fmt.Sprintf("%d incomplete line item(s) were ignored; an item needs a name, a quantity, and a price.", o.Dropped)
		if _, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
			Content: note,
			Flags:   discordgo.MessageFlagsEphemeral,
		}); err != nil {
			obs.Logger.Warn("dropped_lines_notice_failed", "error", err)
		}
	}
}

// handleClaim runs the claim workflow and acknowledges the activating
// user privately. Failures stay contained to this interaction.
func (b *Bot) handleClaim(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil || i.Message == nil {
		return
	}
	user := i.Member.User
	req := ticket.Request{
		CardID:    i.Message.ID,
		ChannelID: i.ChannelID,
		GuildID:   i.GuildID,
		UserID:    user.ID,
		Username:  user.Username,
		Summary:   summaryFromMessage(i.Message),
	}
	tk, err := b.tickets.Claim(context.Background(), req)
	switch {
	case errors.Is(err, ticket.ErrAlreadyClaimed):
		b.respondEphemeral(s, i, "This order has already been claimed.")
	case err != nil:
		obs.Logger.Error("claim_failed", "card_id", req.CardID, "user_id", user.ID, "error", err)
		b.respondEphemeral(s, i, "Could not open a ticket for this order. Please ask an admin.")
	default:
		b.respondEphemeral(s, i, fmt.Sprintf("Ticket created: <#%s>", tk.ChannelID))
	}
}

func (b *Bot) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		obs.Logger.Warn("interaction_ack_failed", "error", err)
	}
}

// commandSlots folds the flat option list into the five line slots.
func commandSlots(opts []*discordgo.ApplicationCommandInteractionDataOption) []model.LineSlot {
	byName := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		byName[o.Name] = o
	}
	slots := make([]model.LineSlot, 0, 5)
	for n := 1; n <= 5; n++ {
		var s model.LineSlot
		if o, ok := byName[fmt.Sprintf("item%d", n)]; ok {
			s.Name = o.StringValue()
		}
		if o, ok := byName[fmt.Sprintf("quant%d", n)]; ok {
			v := o.IntValue()
			s.Quantity = &v
		}
		if o, ok := byName[fmt.Sprintf("price%d", n)]; ok {
			v := o.IntValue()
			s.UnitPrice = &v
		}
		slots = append(slots, s)
	}
	return slots
}

// summaryFromMessage recovers the order summary from the message's
// embed, for cards the store has no record of.
func summaryFromMessage(m *discordgo.Message) string {
	if len(m.Embeds) > 0 {
		return m.Embeds[0].Description
	}
	return ""
}
