package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/fairyhunter13/order-ticket-bot/internal/model"
)

// sessionGateway adapts a discordgo session to the ticket.Gateway
// interface. Each method is one REST call; the context is accepted for
// the interface but discordgo manages its own request lifecycle.
type sessionGateway struct {
	s *discordgo.Session
}

func (g sessionGateway) DisableClaimControl(ctx context.Context, channelID, messageID string) error {
	comps := claimComponents(true)
	_, err := g.s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Components: &comps,
	})
	return err
}

func (g sessionGateway) CreateTicketChannel(ctx context.Context, guildID, name string, ovs []model.Overwrite) (string, error) {
	ch, err := g.s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		PermissionOverwrites: toOverwrites(ovs),
	})
	if err != nil {
		return "", err
	}
	return ch.ID, nil
}

func (g sessionGateway) SendMessage(ctx context.Context, channelID, content string) error {
	_, err := g.s.ChannelMessageSend(channelID, content)
	return err
}

func (g sessionGateway) BotUserID() string {
	return g.s.State.User.ID
}

func (g sessionGateway) HasRole(guildID, roleID string) bool {
	if _, err := g.s.State.Role(guildID, roleID); err == nil {
		return true
	}
	roles, err := g.s.GuildRoles(guildID)
	if err != nil {
		return false
	}
	for _, r := range roles {
		if r.ID == roleID {
			return true
		}
	}
	return false
}

// toOverwrites maps platform-agnostic grants onto Discord permission
// overwrites. A target without read access gets the channel hidden.
func toOverwrites(ovs []model.Overwrite) []*discordgo.PermissionOverwrite {
	out := make([]*discordgo.PermissionOverwrite, 0, len(ovs))
	for _, o := range ovs {
		po := &discordgo.PermissionOverwrite{ID: o.TargetID}
		switch o.Type {
		case model.OverwriteMember:
			po.Type = discordgo.PermissionOverwriteTypeMember
		default:
			po.Type = discordgo.PermissionOverwriteTypeRole
		}
		if o.Read {
			po.Allow |= discordgo.PermissionViewChannel
		} else {
			po.Deny |= discordgo.PermissionViewChannel
		}
		if o.Write {
			po.Allow |= discordgo.PermissionSendMessages
		}
		out = append(out, po)
	}
	return out
}
