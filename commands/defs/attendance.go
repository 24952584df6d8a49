package defs

import "github.com/bwmarrin/discordgo"

var Tryout = &discordgo.ApplicationCommand{
	Name:        "tryout",
	Description: "Open an attendance-tracked tryout panel",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "required_attendees",
			Description: "Minimum attendees needed to start",
			Required:    false,
		},
	},
}

var Training = &discordgo.ApplicationCommand{
	Name:        "training",
	Description: "Open an attendance-tracked training panel",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "required_attendees",
			Description: "Minimum attendees needed to start",
			Required:    false,
		},
	},
}
