package handlers

import (
	"fmt"
	"log"
	"strings"

	"srrd-bot/bot"
	"srrd-bot/handlers/attendance"
	"srrd-bot/handlers/auditlog"
	"srrd-bot/handlers/infraction"
	"srrd-bot/handlers/promotion"
	"srrd-bot/model"
	"srrd-bot/utils"

	"github.com/bwmarrin/discordgo"
)

func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers(b)
	addHandlers(b)

	b.Scheduler = bot.NewScheduler(b, func(table string, event *model.AttendanceEvent) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
		return attendance.PanelEmbed(table, event), attendance.PanelComponents(table, event.Status)
	})
	b.Scheduler.Start()
}

type guildHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot)

// gated wraps a command handler with the permission check. A denied caller
// gets an ephemeral refusal and the denial is mirrored to the log channel;
// the handler never runs, so no record is touched.
func gated(b *bot.Bot, allowed func(string) bool, handler guildHandler) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		serverConfig, ok := b.GetConfig().ServerConfigs[i.GuildID]
		if !ok {
			log.Printf("Could not find server config for guild: %s", i.GuildID)
			return
		}
		level := utils.CheckPermission(i.Member.Roles, i.Member.User.ID,
			serverConfig.AdminRoleIDs, serverConfig.ModRoleIDs, b.GetConfig().DeveloperUserIDs)
		if !allowed(level) {
			utils.SendErrorResponse(s, i, "You do not have permission to use this command.")
			utils.LogWarn(s, b.GetConfig().LogChannelID, "Permissions", "Denied",
				fmt.Sprintf("User %s tried /%s in guild %s.", i.Member.User.ID, i.ApplicationCommandData().Name, i.GuildID))
			return
		}
		handler(s, i, b)
	}
}

func commandHandlers(b *bot.Bot) map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"infract":       gated(b, utils.CanModerate, infraction.HandleInfract),
		"infract-edit":  gated(b, utils.CanModerate, infraction.HandleInfractEdit),
		"infract-void":  gated(b, utils.CanModerate, infraction.HandleInfractVoid),
		"infract-list":  gated(b, utils.CanModerate, infraction.HandleInfractList),
		"infract-clear": gated(b, utils.CanAdminister, infraction.HandleInfractClear),
		"promote":       gated(b, utils.CanModerate, promotion.HandlePromote),
		"tryout":        gated(b, utils.CanModerate, attendance.HandleTryout),
		"training":      gated(b, utils.CanModerate, attendance.HandleTraining),
		"system-info": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleSystemInfo(s, i, b)
		},
	}
}

func addHandlers(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})
	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			if h, ok := b.CommandHandlers[i.ApplicationCommandData().Name]; ok {
				h(s, i)
			}
		case discordgo.InteractionMessageComponent:
			if strings.HasPrefix(i.MessageComponentData().CustomID, "attendance_") {
				attendance.HandleComponent(s, i, b)
			}
		}
	})
	b.Session.AddHandler(func(s *discordgo.Session, e *discordgo.GuildAuditLogEntryCreate) {
		auditlog.HandleAuditLogEntry(s, e, b)
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageUpdate) {
		auditlog.HandleMessageUpdate(s, m, b)
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageDelete) {
		auditlog.HandleMessageDelete(s, m, b)
	})
}
