package discord

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/KirkDiggler/starterforten/internal/services/engine"
	"github.com/bwmarrin/discordgo"
)

// ChallengeCommand handles the /challenge command
type ChallengeCommand struct {
	BaseCommand
	games *Games
}

// NewChallengeCommand creates a new challenge command handler
func NewChallengeCommand(games *Games) *ChallengeCommand {
	return &ChallengeCommand{
		BaseCommand: BaseCommand{
			Name:        "challenge",
			Description: "Starter for Ten quiz",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "play",
					Description: "Post the quiz in this channel",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "history",
					Description: "Show recorded sessions",
				},
			},
		},
		games: games,
	}
}

// Handle processes a Discord interaction for the challenge command
func (c *ChallengeCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	switch data.Options[0].Name {
	case "play":
		return c.handlePlay(s, i)
	case "history":
		return c.handleHistory(s, i)
	default:
		return errors.New("unknown subcommand")
	}
}

// handlePlay posts the quiz message for the channel's engine
func (c *ChallengeCommand) handlePlay(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	svc, err := c.games.GetOrCreate(ctx, i.ChannelID)
	if err != nil {
		log.Printf("Error creating engine for channel %s: %v", i.ChannelID, err)
		return RespondWithError(s, i, fmt.Sprintf("Failed to set up the quiz: %v", err))
	}

	out, err := svc.GetSnapshot(ctx, &engine.GetSnapshotInput{RefreshHistory: true})
	if err != nil {
		return RespondWithError(s, i, fmt.Sprintf("Failed to load the quiz: %v", err))
	}

	embeds, components := renderQuizMessage(out.Snapshot, "")
	msg, err := s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds:     embeds,
		Components: components,
	})
	if err != nil {
		log.Printf("Error sending quiz message: %v", err)
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Failed to post the quiz: %v", err))
	}
	c.games.SetMessageID(i.ChannelID, msg.ID)

	return RespondWithEphemeralMessage(s, i, "Quiz posted. Good luck!")
}

// handleHistory shows the stored sessions to the caller
func (c *ChallengeCommand) handleHistory(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	svc, err := c.games.GetOrCreate(ctx, i.ChannelID)
	if err != nil {
		return RespondWithError(s, i, fmt.Sprintf("Failed to load history: %v", err))
	}

	out, err := svc.GetSnapshot(ctx, &engine.GetSnapshotInput{RefreshHistory: true})
	if err != nil {
		return RespondWithError(s, i, fmt.Sprintf("Failed to load history: %v", err))
	}

	return RespondWithEphemeralEmbed(s, i, renderHistory(out.Snapshot))
}
