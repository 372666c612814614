package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "tournaments",
		Description: "List active tournaments",
	},
	{
		Name:        "clan",
		Description: "Look up a clan by tag",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "tag",
				Description: "The clan tag",
				Required:    true,
			},
		},
	},
}

// RegisterCommands upserts the guild slash commands the interaction endpoint
// handles.
func RegisterCommands(session *discordgo.Session, guildID string) error {
	me, err := session.User("@me")
	if err != nil {
		return fmt.Errorf("failed to resolve bot application: %w", err)
	}
	for _, cmd := range commands {
		if _, err := session.ApplicationCommandCreate(me.ID, guildID, cmd); err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
	}
	return nil
}
