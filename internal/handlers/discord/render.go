package discord

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/starterforten/internal/models"
	"github.com/KirkDiggler/starterforten/internal/services/engine"
	"github.com/bwmarrin/discordgo"
)

// Button IDs
const (
	ButtonStart     = "sf_start"
	ButtonBuzz      = "sf_buzz"
	ButtonCorrect   = "sf_correct"
	ButtonIncorrect = "sf_incorrect"
	ButtonReveal    = "sf_reveal"
	ButtonContinue  = "sf_continue"
	ButtonEnd       = "sf_end"
	ButtonSound     = "sf_sound"
	ButtonHistory   = "sf_history"
)

const (
	colorIdle      = 0x5865f2
	colorPresent   = 0xfee75c
	colorRevealed  = 0x57f287
	colorBonus     = 0xeb459e
	colorSummary   = 0xed4245
	maxHistoryRows = 25
)

// renderQuizMessage builds the embed and buttons for a snapshot. note is
// the host's line for whatever just happened and may be empty.
func renderQuizMessage(snap *engine.Snapshot, note string) ([]*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Score %d | Starters %d/%d | Bonuses %d/%d | Sound %s",
				snap.Score, snap.CorrectStarters, snap.TotalStarters,
				snap.CorrectBonuses, snap.TotalBonuses, onOff(snap.SoundEnabled)),
		},
	}

	var buttons []discordgo.MessageComponent

	switch snap.Phase {
	case models.PhaseIdle:
		embed.Title = "Starter for Ten"
		embed.Description = "Press Start for a new round."
		embed.Color = colorIdle
		if snap.Lifetime.Sessions > 0 {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   "Best score",
				Value:  fmt.Sprintf("%d over %d sessions", snap.Lifetime.BestScore, snap.Lifetime.Sessions),
				Inline: true,
			})
		}
		buttons = append(buttons, button("Start", ButtonStart, discordgo.PrimaryButton))

	case models.PhasePresenting:
		embed.Title = fmt.Sprintf("Starter for %d", snap.Points)
		embed.Description = snap.QuestionText
		embed.Color = colorPresent
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Clock",
			Value:  fmt.Sprintf("%ds", int(snap.Countdown.Seconds())),
			Inline: true,
		})
		buttons = append(buttons, button("Buzz", ButtonBuzz, discordgo.DangerButton))

	case models.PhaseRevealed:
		embed.Title = fmt.Sprintf("Starter for %d", snap.Points)
		embed.Description = snap.QuestionText
		embed.Color = colorRevealed
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Answer",
			Value: snap.AnswerText,
		})
		buttons = append(buttons,
			button("Correct", ButtonCorrect, discordgo.SuccessButton),
			button("Incorrect", ButtonIncorrect, discordgo.DangerButton))

	case models.PhaseBonusRound:
		embed.Title = fmt.Sprintf("Bonus %d of %d: %s", snap.BonusNumber, models.BonusQuestionsPerSet, snap.BonusTopic)
		embed.Description = snap.QuestionText
		embed.Color = colorBonus
		if snap.BonusRevealed {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Answer",
				Value: snap.AnswerText,
			})
			buttons = append(buttons,
				button("Correct", ButtonCorrect, discordgo.SuccessButton),
				button("Incorrect", ButtonIncorrect, discordgo.DangerButton))
		} else {
			buttons = append(buttons, button("Reveal", ButtonReveal, discordgo.PrimaryButton))
		}

	case models.PhaseRoundSummary:
		embed.Title = "Round summary"
		embed.Description = fmt.Sprintf("Score %d with %d wrong buzzes.", snap.Score, snap.IncorrectBuzzes)
		embed.Color = colorSummary
		buttons = append(buttons,
			button("Continue", ButtonContinue, discordgo.PrimaryButton),
			button("End", ButtonEnd, discordgo.SecondaryButton))
	}

	if note != "" {
		embed.Fields = append([]*discordgo.MessageEmbedField{{Name: "Quizmaster", Value: note}}, embed.Fields...)
	}

	buttons = append(buttons,
		button("Sound", ButtonSound, discordgo.SecondaryButton),
		button("History", ButtonHistory, discordgo.SecondaryButton))

	return []*discordgo.MessageEmbed{embed}, []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}
}

// renderHistory builds the session history embed
func renderHistory(snap *engine.Snapshot) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Session history",
		Color: colorIdle,
	}

	if len(snap.HistoryRows) == 0 {
		embed.Description = "No sessions recorded yet."
		return embed
	}

	rows := snap.HistoryRows
	if len(rows) > maxHistoryRows {
		rows = rows[len(rows)-maxHistoryRows:]
	}

	var b strings.Builder
	b.WriteString("```\n")
	fmt.Fprintf(&b, "%-20s %5s %7s %5s %5s\n", "session", "score", "buzz", "st%", "bn%")
	for _, row := range rows {
		fmt.Fprintf(&b, "%-20s %5d %6.2fs %4.0f%% %4.0f%%\n",
			row.Label, row.Score, row.AvgBuzzTimeSeconds, row.PctStartersCorrect, row.PctBonusesCorrect)
	}
	b.WriteString("```")
	embed.Description = b.String()

	t := snap.Lifetime
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%d sessions | %d points | best %d | avg buzz %.2fs",
			t.Sessions, t.Score, t.BestScore, t.AvgBuzzTimeMs/1000),
	}
	return embed
}

func button(label, customID string, style discordgo.ButtonStyle) discordgo.Button {
	return discordgo.Button{
		Label:    label,
		Style:    style,
		CustomID: customID,
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
