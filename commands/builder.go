package commands

import (
	"srrd-bot/commands/defs"
	"srrd-bot/model"

	"github.com/bwmarrin/discordgo"
)

// GenerateCommands builds the command set registered for an enabled guild.
func GenerateCommands(serverCfg *model.ServerConfig) []*discordgo.ApplicationCommand {
	cmds := []*discordgo.ApplicationCommand{
		defs.Infract,
		defs.InfractEdit,
		defs.InfractVoid,
		defs.InfractList,
		defs.InfractClear,
		defs.Promote,
		defs.SystemInfo,
	}
	if serverCfg.TryoutChannelID != "" {
		cmds = append(cmds, defs.Tryout)
	}
	if serverCfg.TrainingChannelID != "" {
		cmds = append(cmds, defs.Training)
	}
	return cmds
}
