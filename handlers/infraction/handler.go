package infraction

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"srrd-bot/bot"
	"srrd-bot/moderation"
	"srrd-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// HandleInfract handles the /infract command.
func HandleInfract(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Failed to defer interaction: %v", err)
		return
	}

	opts := optionMap(i)
	targetUser := opts["user"].UserValue(s)

	record, err := b.Moderation.Issue(moderation.IssueInput{
		GuildID:    i.GuildID,
		UserID:     targetUser.ID,
		IssuerID:   i.Member.User.ID,
		Kind:       stringOption(opts, "kind"),
		Reason:     stringOption(opts, "reason"),
		Severity:   stringOption(opts, "severity"),
		Appealable: stringOption(opts, "appealable"),
		Note:       stringOption(opts, "note"),
	})
	if err != nil {
		respondOperationError(s, i, b, "Issue", err)
		return
	}

	utils.SendFollowUp(s, i.Interaction, fmt.Sprintf("✅ Issued infraction #%d against %s.", record.InfractionID, targetUser.Username))
}

// HandleInfractEdit handles the /infract-edit command.
func HandleInfractEdit(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Failed to defer interaction: %v", err)
		return
	}

	opts := optionMap(i)
	id := opts["id"].IntValue()

	input := moderation.EditInput{
		Kind:       optionalString(opts, "kind"),
		Reason:     optionalString(opts, "reason"),
		Severity:   optionalString(opts, "severity"),
		Appealable: optionalString(opts, "appealable"),
		Note:       optionalString(opts, "note"),
	}

	record, changes, err := b.Moderation.Edit(i.GuildID, id, input)
	if err != nil {
		respondOperationError(s, i, b, "Edit", err)
		return
	}
	if len(changes) == 0 {
		utils.SendFollowUp(s, i.Interaction, fmt.Sprintf("No changes applied to infraction #%d.", record.InfractionID))
		return
	}

	lines := make([]string, 0, len(changes))
	for _, change := range changes {
		lines = append(lines, fmt.Sprintf("%s: %s → %s", change.Field, change.Old, change.New))
	}
	utils.SendFollowUp(s, i.Interaction, fmt.Sprintf("✅ Updated infraction #%d.\n%s", record.InfractionID, strings.Join(lines, "\n")))
}

// HandleInfractVoid handles the /infract-void command.
func HandleInfractVoid(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Failed to defer interaction: %v", err)
		return
	}

	opts := optionMap(i)
	id := opts["id"].IntValue()
	reason := stringOption(opts, "reason")

	record, err := b.Moderation.Void(i.GuildID, id, i.Member.User.ID, reason)
	if err != nil {
		respondOperationError(s, i, b, "Void", err)
		return
	}

	utils.SendFollowUp(s, i.Interaction, fmt.Sprintf("✅ Voided infraction #%d: %s", record.InfractionID, record.VoidedReason))
}

// HandleInfractList handles the /infract-list command.
func HandleInfractList(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Failed to defer interaction: %v", err)
		return
	}

	opts := optionMap(i)
	targetUser := opts["user"].UserValue(s)

	result, err := b.Moderation.List(i.GuildID, targetUser.ID)
	if err != nil {
		respondOperationError(s, i, b, "List", err)
		return
	}

	embed := buildListEmbed(targetUser, result)
	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
		Flags:  discordgo.MessageFlagsEphemeral,
	}); err != nil {
		log.Printf("Failed to send infraction list: %v", err)
	}
}

// HandleInfractClear handles the /infract-clear command.
func HandleInfractClear(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Failed to defer interaction: %v", err)
		return
	}

	opts := optionMap(i)
	targetUser := opts["user"].UserValue(s)

	if !utils.CheckAndSetClearLock(targetUser.ID) {
		utils.SendFollowUpError(s, i.Interaction, "A clear for this user just ran, try again in a minute.")
		return
	}

	count, err := b.Moderation.ClearAll(i.GuildID, targetUser.ID)
	if err != nil {
		respondOperationError(s, i, b, "Clear", err)
		return
	}

	if count == 0 {
		utils.SendFollowUp(s, i.Interaction, fmt.Sprintf("%s has no infractions to clear.", targetUser.Username))
		return
	}
	utils.LogInfo(s, b.GetConfig().LogChannelID, "Infractions", "Clear",
		fmt.Sprintf("%s cleared %d record(s) of user %s.", i.Member.User.ID, count, targetUser.ID))
	utils.SendFollowUp(s, i.Interaction, fmt.Sprintf("✅ Deleted %d infraction record(s) of %s.", count, targetUser.Username))
}

// respondOperationError renders a typed ledger failure back to the caller
// and mirrors it to the operational log channel.
func respondOperationError(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, operation string, err error) {
	var validationErr *moderation.ValidationError
	var notFoundErr *moderation.NotFoundError
	var alreadyVoidedErr *moderation.AlreadyVoidedError

	logChannelID := b.GetConfig().LogChannelID
	switch {
	case errors.As(err, &validationErr):
		utils.SendFollowUpError(s, i.Interaction, validationErr.Msg)
		utils.LogWarn(s, logChannelID, "Infractions", operation, fmt.Sprintf("Rejected: %s", validationErr.Msg))
	case errors.As(err, &notFoundErr):
		utils.SendFollowUpError(s, i.Interaction, fmt.Sprintf("No infraction #%d exists in this server.", notFoundErr.ID))
		utils.LogWarn(s, logChannelID, "Infractions", operation, err.Error())
	case errors.As(err, &alreadyVoidedErr):
		utils.SendFollowUpError(s, i.Interaction, fmt.Sprintf("Infraction #%d is already voided.", alreadyVoidedErr.ID))
		utils.LogWarn(s, logChannelID, "Infractions", operation, err.Error())
	default:
		utils.SendFollowUpError(s, i.Interaction, "The operation failed, please try again later.")
		utils.LogError(s, logChannelID, "Infractions", operation, err.Error())
	}
}
