package defs

import "github.com/bwmarrin/discordgo"

var severityChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "Minor", Value: "minor"},
	{Name: "Medium", Value: "medium"},
	{Name: "Major", Value: "major"},
}

var appealableChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "Yes", Value: "yes"},
	{Name: "No", Value: "no"},
}

var Infract = &discordgo.ApplicationCommand{
	Name:        "infract",
	Description: "Issue an infraction against a member",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The member to infract",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "kind",
			Description: "Category of the infraction (e.g. Warning, Spam)",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the infraction",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "severity",
			Description: "Severity (defaults to medium)",
			Required:    false,
			Choices:     severityChoices,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "appealable",
			Description: "Whether the infraction can be appealed (defaults to no)",
			Required:    false,
			Choices:     appealableChoices,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "note",
			Description: "Internal note",
			Required:    false,
		},
	},
}

var InfractEdit = &discordgo.ApplicationCommand{
	Name:        "infract-edit",
	Description: "Edit fields of an existing infraction",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "id",
			Description: "The infraction ID",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "kind",
			Description: "New category",
			Required:    false,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "New reason",
			Required:    false,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "severity",
			Description: "New severity",
			Required:    false,
			Choices:     severityChoices,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "appealable",
			Description: "New appealable flag",
			Required:    false,
			Choices:     appealableChoices,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "note",
			Description: "New internal note",
			Required:    false,
		},
	},
}

var InfractVoid = &discordgo.ApplicationCommand{
	Name:        "infract-void",
	Description: "Void an infraction (one-shot, cannot be undone)",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "id",
			Description: "The infraction ID",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Why the infraction is withdrawn",
			Required:    false,
		},
	},
}

var InfractList = &discordgo.ApplicationCommand{
	Name:        "infract-list",
	Description: "List a member's infractions",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The member to look up",
			Required:    true,
		},
	},
}

var InfractClear = &discordgo.ApplicationCommand{
	Name:        "infract-clear",
	Description: "Delete all infractions of a member (admins only)",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The member whose records will be deleted",
			Required:    true,
		},
	},
}

var Promote = &discordgo.ApplicationCommand{
	Name:        "promote",
	Description: "Record a member's promotion",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The member being promoted",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "new_role",
			Description: "The role the member is promoted to",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the promotion",
			Required:    false,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "note",
			Description: "Internal note",
			Required:    false,
		},
	},
}
