package discord

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/KirkDiggler/starterforten/internal/services/engine"
	"github.com/KirkDiggler/starterforten/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	games      *Games
	messaging  messaging.Service
	config     *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// EngineFactory builds the engine for a channel on first use
	EngineFactory EngineFactory

	Messaging messaging.Service
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		messaging:  cfg.Messaging,
		config:     cfg,
	}

	bot.games, err = NewGames(cfg.EngineFactory, bot.onSnapshot)
	if err != nil {
		return nil, err
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(NewChallengeCommand(b.games)); err != nil {
		return fmt.Errorf("failed to register challenge command: %w", err)
	}

	log.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop removes the registered commands, stops every countdown and closes
// the Discord connection
func (b *Bot) Stop() error {
	appID, guildID := b.target()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, guildID, cmdID); err != nil {
			log.Printf("Failed to delete command %s (ID: %s): %v", cmdName, cmdID, err)
		} else {
			log.Printf("Successfully deleted command %s (ID: %s)", cmdName, cmdID)
		}
	}

	if err := b.games.Close(); err != nil {
		log.Printf("Error stopping games: %v", err)
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	appID, guildID := b.target()
	if guildID != "" {
		log.Printf("Registering command %s for guild %s", cmd.GetName(), guildID)
	} else {
		log.Printf("Registering command %s globally", cmd.GetName())
	}

	createdCmd, err := b.session.ApplicationCommandCreate(appID, guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	log.Printf("Registered command: %s with ID: %s", cmd.GetName(), createdCmd.ID)

	return nil
}

// target returns the application and guild commands are registered under
func (b *Bot) target() (string, string) {
	appID := b.config.ApplicationID
	if appID == "" {
		// Fall back to session user ID if application ID is not provided
		appID = b.session.State.User.ID
	}
	return appID, b.config.GuildID
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if h, ok := b.commands[i.ApplicationCommandData().Name]; ok {
			if err := h.Handle(s, i); err != nil {
				log.Printf("Error handling command %s: %v", i.ApplicationCommandData().Name, err)
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			log.Printf("Error handling component interaction: %v", err)
		}
	}
}

// handleComponentInteraction turns a button press into an engine intent and
// redraws the quiz message
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	customID := i.MessageComponentData().CustomID

	svc, ok := b.games.Get(i.ChannelID)
	if !ok {
		return RespondWithEphemeralMessage(s, i, b.errorText(ctx, messaging.ErrorTypeNoGame))
	}
	if i.Message != nil {
		b.games.SetMessageID(i.ChannelID, i.Message.ID)
	}

	before, err := svc.GetSnapshot(ctx, &engine.GetSnapshotInput{})
	if err != nil {
		return err
	}

	snap, err := b.dispatch(ctx, svc, customID, before.Snapshot)
	if err != nil {
		return RespondWithEphemeralMessage(s, i, b.errorText(ctx, errorTypeFor(err)))
	}

	if customID == ButtonHistory {
		return RespondWithEphemeralEmbed(s, i, renderHistory(snap))
	}

	embeds, components := renderQuizMessage(snap, b.note(ctx, before.Snapshot, snap))
	return UpdateMessage(s, i, embeds, components)
}

// dispatch runs the intent behind a button
func (b *Bot) dispatch(ctx context.Context, svc engine.Service, customID string, current *engine.Snapshot) (*engine.Snapshot, error) {
	switch customID {
	case ButtonStart:
		out, err := svc.Start(ctx, &engine.StartInput{})
		if err != nil {
			return nil, err
		}
		return out.Snapshot, nil
	case ButtonBuzz:
		out, err := svc.Buzz(ctx, &engine.BuzzInput{})
		if err != nil {
			return nil, err
		}
		return out.Snapshot, nil
	case ButtonCorrect, ButtonIncorrect:
		correct := customID == ButtonCorrect
		if current.Phase.IsBonusRound() {
			out, err := svc.JudgeBonus(ctx, &engine.JudgeBonusInput{Correct: correct})
			if err != nil {
				return nil, err
			}
			return out.Snapshot, nil
		}
		out, err := svc.JudgeStarter(ctx, &engine.JudgeStarterInput{Correct: correct})
		if err != nil {
			return nil, err
		}
		return out.Snapshot, nil
	case ButtonReveal:
		out, err := svc.RevealBonusAnswer(ctx, &engine.RevealBonusAnswerInput{})
		if err != nil {
			return nil, err
		}
		return out.Snapshot, nil
	case ButtonContinue:
		out, err := svc.ContinueRound(ctx, &engine.ContinueRoundInput{})
		if err != nil {
			return nil, err
		}
		return out.Snapshot, nil
	case ButtonEnd:
		out, err := svc.EndSession(ctx, &engine.EndSessionInput{})
		if err != nil {
			return nil, err
		}
		return out.Snapshot, nil
	case ButtonSound:
		out, err := svc.ToggleSound(ctx, &engine.ToggleSoundInput{})
		if err != nil {
			return nil, err
		}
		return out.Snapshot, nil
	case ButtonHistory:
		out, err := svc.ToggleHistoryView(ctx, &engine.ToggleHistoryViewInput{})
		if err != nil {
			return nil, err
		}
		return out.Snapshot, nil
	default:
		return nil, fmt.Errorf("unknown button %q", customID)
	}
}

// onSnapshot edits the channel's quiz message when the countdown runs out,
// since no interaction is waiting for a response then
func (b *Bot) onSnapshot(channelID string, prev, next *engine.Snapshot) {
	judgement, _, ok := messaging.JudgementBetween(prev, next)
	if !ok || judgement != messaging.JudgementTimeout {
		return
	}

	messageID := b.games.MessageID(channelID)
	if messageID == "" {
		return
	}

	embeds, components := renderQuizMessage(next, b.note(context.Background(), prev, next))
	_, err := b.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Embeds:     &embeds,
		Components: &components,
	})
	if err != nil {
		log.Printf("Error updating quiz message after timeout: %v", err)
	}
}

// note is the quizmaster's line for the change between two snapshots
func (b *Bot) note(ctx context.Context, prev, next *engine.Snapshot) string {
	if messaging.RoundEnded(prev, next) {
		out, err := b.messaging.GetRoundEndMessage(ctx, &messaging.GetRoundEndMessageInput{
			Score:           next.Score,
			CorrectStarters: next.CorrectStarters,
			TotalStarters:   next.TotalStarters,
			BestScore:       prev.Lifetime.BestScore,
		})
		if err != nil {
			log.Printf("Error getting round end message: %v", err)
			return ""
		}
		return fmt.Sprintf("**%s** %s", out.Title, out.Message)
	}

	judgement, points, ok := messaging.JudgementBetween(prev, next)
	if !ok {
		return ""
	}
	out, err := b.messaging.GetJudgementMessage(ctx, &messaging.GetJudgementMessageInput{
		Judgement: judgement,
		Points:    points,
	})
	if err != nil {
		log.Printf("Error getting judgement message: %v", err)
		return ""
	}
	return out.Message
}

func (b *Bot) errorText(ctx context.Context, errorType messaging.ErrorType) string {
	out, err := b.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		ErrorType: errorType,
	})
	if err != nil {
		return "Something went wrong."
	}
	return out.Message
}

func errorTypeFor(err error) messaging.ErrorType {
	switch {
	case errors.Is(err, engine.ErrAnswerNotRevealed):
		return messaging.ErrorTypeNotRevealed
	case errors.Is(err, engine.ErrInvalidTransition):
		return messaging.ErrorTypeInvalidAction
	default:
		return messaging.ErrorTypeUnknown
	}
}
