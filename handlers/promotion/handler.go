package promotion

import (
	"errors"
	"fmt"
	"log"

	"srrd-bot/bot"
	"srrd-bot/moderation"
	"srrd-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// HandlePromote handles the /promote command.
func HandlePromote(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Failed to defer interaction: %v", err)
		return
	}

	options := i.ApplicationCommandData().Options
	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		opts[opt.Name] = opt
	}

	targetUser := opts["user"].UserValue(s)
	newRole := opts["new_role"].StringValue()
	var reason, note string
	if opt, ok := opts["reason"]; ok {
		reason = opt.StringValue()
	}
	if opt, ok := opts["note"]; ok {
		note = opt.StringValue()
	}

	record, err := b.Moderation.Promote(i.GuildID, targetUser.ID, i.Member.User.ID, newRole, reason, note)
	if err != nil {
		var validationErr *moderation.ValidationError
		if errors.As(err, &validationErr) {
			utils.SendFollowUpError(s, i.Interaction, validationErr.Msg)
			return
		}
		utils.SendFollowUpError(s, i.Interaction, "Failed to record the promotion.")
		utils.LogError(s, b.GetConfig().LogChannelID, "Promotions", "Issue", err.Error())
		return
	}

	utils.SendFollowUp(s, i.Interaction, fmt.Sprintf("✅ Recorded promotion #%d: %s → %s.", record.PromotionID, targetUser.Username, newRole))
}
