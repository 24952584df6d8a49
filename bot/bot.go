package bot

import (
	"log"
	"sync/atomic"

	"srrd-bot/commands"
	"srrd-bot/model"
	"srrd-bot/moderation"
	"srrd-bot/notify"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

// Bot is the process-wide context object: session, store handle and the
// moderation manager. Constructed once at startup, torn down on shutdown.
type Bot struct {
	Session            *discordgo.Session
	RegisteredCommands []*discordgo.ApplicationCommand
	config             atomic.Value // *model.Config
	CommandHandlers    map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
	DB                 *sqlx.DB
	Moderation         *moderation.Manager
	Scheduler          *Scheduler
	done               chan struct{}
}

func (b *Bot) GetConfig() *model.Config {
	return b.config.Load().(*model.Config)
}

func (b *Bot) GetDB() *sqlx.DB {
	return b.DB
}

func (b *Bot) GetSession() *discordgo.Session {
	return b.Session
}

func (b *Bot) Done() <-chan struct{} {
	return b.done
}

func New(cfg *model.Config, db *sqlx.DB) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent | discordgo.IntentsGuildMembers | discordgo.IntentGuildModeration

	b := &Bot{
		Session: dg,
		DB:      db,
		done:    make(chan struct{}),
	}
	b.config.Store(cfg)

	b.Moderation = &moderation.Manager{
		DB:       db,
		Delivery: &notify.SessionDelivery{Session: dg},
		GuildConfig: func(guildID string) (model.ServerConfig, bool) {
			serverCfg, ok := b.GetConfig().ServerConfigs[guildID]
			return serverCfg, ok
		},
		GuildName: b.guildName,
	}

	return b, nil
}

// guildName resolves a guild's display name for DM embeds, from state first
// and the API as fallback.
func (b *Bot) guildName(guildID string) string {
	if guild, err := b.Session.State.Guild(guildID); err == nil && guild.Name != "" {
		return guild.Name
	}
	if guild, err := b.Session.Guild(guildID); err == nil {
		return guild.Name
	}
	return "the server"
}

func (b *Bot) Close() {
	log.Println("Gracefully shutting down.")
	close(b.done)
	if b.Scheduler != nil {
		b.Scheduler.Stop()
	}
	b.Session.Close()
}

// RefreshCommands re-registers the command set for one guild.
func (b *Bot) RefreshCommands(guildID string) {
	serverCfg, ok := b.GetConfig().ServerConfigs[guildID]
	if !ok {
		log.Printf("Could not find server config for guild: %s", guildID)
		return
	}

	cmds := commands.GenerateCommands(&serverCfg)
	log.Printf("Registering %d commands for guild %s...", len(cmds), serverCfg.GuildID)
	registeredCmds, err := b.Session.ApplicationCommandBulkOverwrite(b.GetConfig().AppID, serverCfg.GuildID, cmds)
	if err != nil {
		log.Printf("cannot update commands for guild '%s': %v", serverCfg.GuildID, err)
		return
	}
	b.RegisteredCommands = append(b.RegisteredCommands, registeredCmds...)
}

// UnregisterCommands removes all registered commands from a guild.
func (b *Bot) UnregisterCommands(guildID string) {
	cmds, err := b.Session.ApplicationCommands(b.GetConfig().AppID, guildID)
	if err != nil {
		log.Printf("Could not fetch commands for guild %s: %v", guildID, err)
		return
	}
	for _, cmd := range cmds {
		if err := b.Session.ApplicationCommandDelete(b.GetConfig().AppID, guildID, cmd.ID); err != nil {
			log.Printf("Cannot delete command %s for guild %s: %v", cmd.Name, guildID, err)
		}
	}
}
