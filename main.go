package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"pragati/config"
	"pragati/models"
	"pragati/services"

	"github.com/rs/zerolog"
)

// Interactive terminal surface over the session core. Plain input is sent
// as a classroom challenge; lines starting with ':' are commands.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger().Level(level)

	api := services.NewAPIClient(cfg.APIBaseURL, cfg.HTTPTimeout, log)
	session := services.NewSessionService(api, log)
	dialects := services.NewDialectRegistry(api, log)
	workflow := services.NewGenerationWorkflow(api, session, dialects, cfg.Difficulty, log)

	ctx := context.Background()
	dialects.LoadLanguages(ctx)
	if err := session.LoadConversations(ctx); err != nil {
		fmt.Println("Could not reach the PRAGATI backend; conversation list may be empty.")
	}

	duration := 15

	fmt.Println("PRAGATI teaching assistant")
	fmt.Println("Type a classroom challenge to generate a micro-learning module, or :help for commands.")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Printf("[%dmin] > ", duration)
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, ":") {
			sendChallenge(ctx, workflow, session, dialects, line, duration)
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case ":quit", ":q":
			return
		case ":help":
			printHelp()
		case ":list":
			printConversations(session)
		case ":open":
			if len(fields) < 2 {
				fmt.Println("usage: :open <conversation-id>")
				continue
			}
			id, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				fmt.Println("conversation id must be a number")
				continue
			}
			session.SelectConversation(ctx, id)
			printMessages(ctx, session, dialects)
		case ":new":
			session.StartNewSession()
			fmt.Println("Started a new session.")
		case ":lang":
			if len(fields) < 2 {
				printDialects(dialects)
				continue
			}
			dialects.Select(fields[1])
			fmt.Printf("Content language set to %s.\n", fields[1])
		case ":duration":
			if len(fields) < 2 {
				fmt.Printf("Presets: %v minutes\n", config.DurationPresets)
				continue
			}
			minutes, err := strconv.Atoi(fields[1])
			if err != nil || !config.IsDurationPreset(minutes) {
				fmt.Printf("Pick one of %v minutes.\n", config.DurationPresets)
				continue
			}
			duration = minutes
		case ":feedback":
			sendFeedback(ctx, api, workflow, session, log, fields[1:])
		case ":ingest":
			if len(fields) < 2 {
				fmt.Println("usage: :ingest <pdf-path> [title]")
				continue
			}
			ingestDocument(ctx, api, fields[1], strings.Join(fields[2:], " "))
		default:
			fmt.Printf("Unknown command %s; try :help.\n", fields[0])
		}
	}
}

func sendChallenge(ctx context.Context, workflow *services.GenerationWorkflow, session *services.SessionService, dialects *services.DialectRegistry, text string, duration int) {
	fmt.Println("Generating module...")
	if err := workflow.Submit(ctx, text, duration); err != nil {
		if errors.Is(err, services.ErrGenerationInFlight) {
			fmt.Println("A generation is already running; wait for it to finish.")
			return
		}
		fmt.Println("Something went wrong. Try again?")
		return
	}
	printMessages(ctx, session, dialects)
}

func printHelp() {
	fmt.Println(`Commands:
  :list                conversations
  :open <id>           switch to a conversation
  :new                 start a fresh session
  :lang [code]         show or set the content language
  :duration <min>      set target duration (5, 15 or 40)
  :feedback <rating 1-5> <implemented|partially_implemented|planning|not_applicable> [comments]
  :ingest <pdf> [title]
  :quit`)
}

func printConversations(session *services.SessionService) {
	conversations := session.Conversations()
	if len(conversations) == 0 {
		fmt.Println("No conversations yet.")
		return
	}
	active := session.ActiveConversationID()
	for _, conv := range conversations {
		marker := " "
		if conv.ID == active {
			marker = "*"
		}
		fmt.Printf("%s %4d  %-50s  %s\n", marker, conv.ID, conv.Title, conv.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

func printDialects(dialects *services.DialectRegistry) {
	selected := dialects.Selected()
	for _, d := range dialects.Available() {
		marker := " "
		if d.Code == selected {
			marker = "*"
		}
		fmt.Printf("%s %-10s %s\n", marker, d.Code, d.Name)
	}
}

func printMessages(ctx context.Context, session *services.SessionService, dialects *services.DialectRegistry) {
	for _, msg := range session.Messages() {
		switch msg.Role {
		case models.RoleUser:
			fmt.Printf("\nYou: %s\n", msg.Content)
		default:
			if msg.ModuleData != nil {
				printModule(ctx, msg.ModuleData, dialects)
			} else {
				fmt.Printf("\nAssistant: %s\n", msg.Content)
			}
		}
	}
}

func printModule(ctx context.Context, module *models.Module, dialects *services.DialectRegistry) {
	fmt.Printf("\n=== %s (%d min) ===\n", dialects.Adapt(ctx, module.Title), module.TotalDuration)
	for i, section := range module.Sections {
		fmt.Printf("\n%d. %s (%d min)\n%s\n", i+1, dialects.Adapt(ctx, section.Title), section.DurationMinutes, dialects.Adapt(ctx, section.Content))
		if section.Activity != "" {
			fmt.Printf("Activity: %s\n", dialects.Adapt(ctx, section.Activity))
		}
	}
}

func sendFeedback(ctx context.Context, api *services.APIClient, workflow *services.GenerationWorkflow, session *services.SessionService, log zerolog.Logger, args []string) {
	module := workflow.CurrentModule()
	if module == nil {
		fmt.Println("Generate a module first, then rate it.")
		return
	}
	if len(args) < 2 {
		fmt.Println("usage: :feedback <rating 1-5> <status> [comments]")
		return
	}
	rating, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("rating must be a number between 1 and 5")
		return
	}

	form := services.NewFeedbackForm(api, log)
	err = form.Submit(ctx, models.Feedback{
		ModuleID:             module.ID,
		Challenge:            module.Challenge,
		ConversationID:       session.ActiveConversationID(),
		Rating:               rating,
		ImplementationStatus: args[1],
		Comments:             strings.Join(args[2:], " "),
	})
	switch {
	case errors.Is(err, services.ErrInvalidFeedback):
		fmt.Printf("Not submitted: %v\n", err)
	case err != nil:
		fmt.Println("Something went wrong. Please try again.")
	default:
		fmt.Println("Thank you! Your feedback helps improve the learning experience.")
	}
}

func ingestDocument(ctx context.Context, api *services.APIClient, path, title string) {
	file, err := os.Open(path)
	if err != nil {
		fmt.Printf("cannot open %s: %v\n", path, err)
		return
	}
	defer file.Close()

	result, err := api.IngestDocument(ctx, filepath.Base(path), file, title)
	if err != nil {
		fmt.Println("Ingestion failed. Is the backend reachable?")
		return
	}
	fmt.Printf("Ingested %s: document %s, %d chunks.\n", filepath.Base(path), result.DocumentID, result.ChunksCreated)
}
