// Package ticket implements the claim workflow: it flips an order card
// to claimed exactly once and provisions the restricted support channel.
package ticket

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fairyhunter13/order-ticket-bot/internal/model"
	"github.com/fairyhunter13/order-ticket-bot/internal/obs"
	"github.com/fairyhunter13/order-ticket-bot/internal/store"
)

// ErrAlreadyClaimed is returned when the card was claimed before.
var ErrAlreadyClaimed = errors.New("order already claimed")

// Gateway is the slice of the platform API the workflow needs.
type Gateway interface {
	// DisableClaimControl edits the order message so its claim button is
	// disabled and relabeled.
	DisableClaimControl(ctx context.Context, channelID, messageID string) error
	CreateTicketChannel(ctx context.Context, guildID, name string, overwrites []model.Overwrite) (string, error)
	SendMessage(ctx context.Context, channelID, content string) error
	BotUserID() string
	HasRole(guildID, roleID string) bool
}

// Request carries the identity of one claim activation.
type Request struct {
	CardID    string // ID of the order message
	ChannelID string // channel holding the order message
	GuildID   string
	UserID    string
	Username  string
	// Summary carried on the interaction, used when the store has no
	// record of the card (e.g. a card rendered before a restart with
	// the in-memory backend).
	Summary string
}

// Service executes claims. All state transitions for one card are
// serialized through a per-card lock and finalized with a
// compare-and-set on the claim store before any channel is created.
type Service struct {
	gw          Gateway
	st          store.ClaimStore
	metrics     *obs.Metrics
	adminRoleID string
	locks       *keyedLocks
}

// New constructs a Service. adminRoleID may be empty.
func New(gw Gateway, st store.ClaimStore, m *obs.Metrics, adminRoleID string) *Service {
	return &Service{gw: gw, st: st, metrics: m, adminRoleID: adminRoleID, locks: newKeyedLocks()}
}

// Claim runs the full workflow for one activation. It returns
// ErrAlreadyClaimed when another activation won the card.
func (s *Service) Claim(ctx context.Context, req Request) (model.Ticket, error) {
	unlock := s.locks.acquire(req.CardID)
	defer unlock()

	s.metrics.ClaimAttempts.Inc()

	st, ok, err := s.st.Get(req.CardID)
	if err != nil {
		return model.Ticket{}, fmt.Errorf("load card %s: %w", req.CardID, err)
	}
	if ok && st.Claimed {
		s.metrics.ClaimConflicts.Inc()
		return model.Ticket{}, ErrAlreadyClaimed
	}
	summary := st.Summary
	if !ok {
		summary = req.Summary
		if err := s.st.PutCard(req.CardID, summary); err != nil {
			return model.Ticket{}, fmt.Errorf("register card %s: %w", req.CardID, err)
		}
	}

	// The disabled control lands before the channel exists. A failure
	// past this point leaves the card claimed with no channel; that
	// window is reported to the user and logged, not rolled back.
	if err := s.gw.DisableClaimControl(ctx, req.ChannelID, req.CardID); err != nil {
		return model.Ticket{}, fmt.Errorf("disable claim control: %w", err)
	}

	if _, won, err := s.st.TryClaim(req.CardID, req.UserID); err != nil {
		return model.Ticket{}, fmt.Errorf("claim card %s: %w", req.CardID, err)
	} else if !won {
		s.metrics.ClaimConflicts.Inc()
		return model.Ticket{}, ErrAlreadyClaimed
	}

	name := ChannelName(req.Username)
	channelID, err := s.gw.CreateTicketChannel(ctx, req.GuildID, name, s.overwrites(req))
	if err != nil {
		s.metrics.TicketFailures.Inc()
		obs.Logger.Error("ticket_channel_failed", "card_id", req.CardID, "user_id", req.UserID, "error", err)
		return model.Ticket{}, fmt.Errorf("create ticket channel: %w", err)
	}

	tk := model.Ticket{
		ID:        uuid.NewString(),
		ChannelID: channelID,
		Name:      name,
		CardID:    req.CardID,
		Claimant:  req.UserID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.gw.SendMessage(ctx, channelID, WelcomeMessage(req.UserID, summary)); err != nil {
		// The ticket exists; a missing welcome message is not fatal.
		obs.Logger.Warn("ticket_welcome_failed", "ticket_id", tk.ID, "channel_id", channelID, "error", err)
	}

	s.metrics.TicketsCreated.Inc()
	obs.Logger.Info("ticket_created",
		"ticket_id", tk.ID,
		"card_id", req.CardID,
		"channel_id", channelID,
		"claimant", req.UserID,
	)
	return tk, nil
}

// overwrites builds the access list: deny the default role, grant the
// claimant and the bot, and grant the admin role when configured and
// present in the guild.
func (s *Service) overwrites(req Request) []model.Overwrite {
	ov := []model.Overwrite{
		{TargetID: req.GuildID, Type: model.OverwriteRole},
		{TargetID: req.UserID, Type: model.OverwriteMember, Read: true, Write: true},
		{TargetID: s.gw.BotUserID(), Type: model.OverwriteMember, Read: true, Write: true},
	}
	if s.adminRoleID != "" {
		if s.gw.HasRole(req.GuildID, s.adminRoleID) {
			ov = append(ov, model.Overwrite{TargetID: s.adminRoleID, Type: model.OverwriteRole, Read: true, Write: true})
		} else {
			obs.Logger.Warn("admin_role_missing", "guild_id", req.GuildID, "role_id", s.adminRoleID)
		}
	}
	return ov
}

// ChannelName derives the ticket channel name from the claimant's
// username, normalized to the platform's channel-name alphabet.
func ChannelName(username string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(username) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	name := b.String()
	if name == "" {
		name = "customer"
	}
	return "order-" + name
}

// WelcomeMessage renders the first message posted into a ticket channel.
func WelcomeMessage(userID, summary string) string {
	return fmt.Sprintf("## Order Ticket for <@%s>\n%s\n%s\nAn admin will be with you shortly.",
		userID, summary, strings.Repeat("─", 28))
}
