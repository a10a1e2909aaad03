package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/atotto/clipboard"

	"github.com/keerthikapopuri/gameforge/internal/builder"
	"github.com/keerthikapopuri/gameforge/internal/config"
	"github.com/keerthikapopuri/gameforge/internal/logger"
	"github.com/keerthikapopuri/gameforge/internal/services"
	"github.com/keerthikapopuri/gameforge/internal/storage"
)

const defaultIdea = "A character collecting items while avoiding enemies, with level up popups"

func main() {
	scoreMode := len(os.Args) > 1 && os.Args[1] == "score"

	cfg, err := config.Load()
	if err != nil {
		// Recording a score never calls a model, so a missing credential
		// is not fatal there.
		if !scoreMode || !errors.Is(err, config.ErrMissingAPIKey) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	log := logger.Setup(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newUserStore(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	// "gameforge score <username> <game> <score> <level> [won]" records a
	// result reported back from the browser side.
	if scoreMode {
		if err := recordScore(ctx, store, os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		showStandings(ctx, store)
		return
	}

	var llm services.LLMService
	switch cfg.Provider {
	case config.ProviderOpenAI:
		llm = services.NewOpenAIService(cfg.APIKey(), cfg.ModelName)
	default:
		llm = services.NewGroqService(cfg.APIKey(), cfg.ModelName)
	}

	log.Info("Starting gameforge",
		"provider", cfg.Provider,
		"model", cfg.ModelName,
		"max_questions", cfg.MaxQuestions)

	fmt.Println(bannerStyle.Render("GAMEFORGE - describe a game, get a game"))
	fmt.Println(dimStyle.Render("Example: 'a fox collecting berries while avoiding hunters'"))
	showStandings(ctx, store)

	idea, err := promptLine("Your game idea", defaultIdea)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if idea == "" {
		idea = defaultIdea
		fmt.Println(dimStyle.Render("Using default idea: " + idea))
	}

	b := builder.New(llm, &terminalAsker{}, log, cfg.MaxQuestions, cfg.OutputRoot)
	b.OnStage = printStageBanner

	session, err := b.Run(ctx, idea)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printSummary(session)
	registerPlayer(ctx, store)
}

func newUserStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.UserStore, error) {
	if cfg.RedisURL == "" {
		return storage.NewFileStore(cfg.UsersFile, log), nil
	}

	store, err := storage.NewRedisStore(cfg.RedisURL, log)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Info("Using Redis leaderboard store", "url", cfg.RedisURL)
	return store, nil
}

func printStageBanner(stage builder.Stage) {
	var text string
	switch stage {
	case builder.StageClarifying:
		text = "PHASE 1: Let me understand your game idea"
	case builder.StagePlanning:
		text = "PHASE 2: Creating game architecture"
	case builder.StageExecuting:
		text = "PHASE 3: Generating your game (this may take a moment)"
	case builder.StageDone:
		text = "GAME READY"
	default:
		return
	}
	fmt.Println()
	fmt.Println(bannerStyle.Render(text))
}

func printSummary(s *builder.Session) {
	fmt.Println()
	fmt.Println(labelStyle.Render("Requirements:"))
	for _, f := range s.Requirements.Fields() {
		fmt.Printf("  %s: %s\n", labelStyle.Render(f.Label), f.Value)
	}

	fmt.Println()
	fmt.Printf("%s %s\n", labelStyle.Render("Game:"), s.Plan.Title(s.Requirements))
	fmt.Printf("%s %s\n", labelStyle.Render("Files:"), s.OutputDir)

	indexPath := filepath.Join(s.OutputDir, "index.html")
	fmt.Println(dimStyle.Render("Open " + indexPath + " in a browser to play."))
	fmt.Println(dimStyle.Render("Record your result with: gameforge score <name> \"<game>\" <score> <level> [won]"))

	// Best effort; not every environment has a clipboard.
	if err := clipboard.WriteAll(indexPath); err == nil {
		fmt.Println(dimStyle.Render("(path copied to clipboard)"))
	}
}

func showStandings(ctx context.Context, store storage.UserStore) {
	standings, err := store.Leaderboard(ctx, storage.LeaderboardSize)
	if err != nil || len(standings) == 0 {
		return
	}

	fmt.Println()
	fmt.Println(labelStyle.Render("Leaderboard:"))
	for i, s := range standings {
		fmt.Printf("  %2d. %-20s %6d  (%d games)\n", i+1, s.DisplayName, s.HighScore, s.GamesPlayed)
	}
}

func registerPlayer(ctx context.Context, store storage.UserStore) {
	name, err := promptLine("Player name for the leaderboard (enter to skip)", "")
	if err != nil || name == "" {
		return
	}
	user, err := store.GetOrCreateUser(ctx, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not register player: %v\n", err)
		return
	}
	fmt.Println(dimStyle.Render("Playing as " + user.DisplayName))
}

func recordScore(ctx context.Context, store storage.UserStore, args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("usage: gameforge score <username> <game> <score> <level> [won]")
	}

	score, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid score %q", args[2])
	}
	level, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("invalid level %q", args[3])
	}
	won := len(args) > 4 && args[4] == "won"

	if err := store.RecordScore(ctx, args[0], args[1], score, level, won); err != nil {
		return err
	}
	fmt.Printf("Recorded %d points for %s\n", score, args[0])
	return nil
}
