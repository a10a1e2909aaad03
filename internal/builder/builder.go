package builder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/keerthikapopuri/gameforge/internal/services"
	"github.com/keerthikapopuri/gameforge/pkg/artifact"
	"github.com/keerthikapopuri/gameforge/pkg/chat"
	"github.com/keerthikapopuri/gameforge/pkg/gamespec"
	"github.com/keerthikapopuri/gameforge/pkg/prompts"
)

// historyWindow bounds how many prior messages accompany each model call.
const historyWindow = 6

// Per-stage sampling parameters.
var (
	clarifyOpts  = services.CompletionOptions{Temperature: 0.3, MaxTokens: 2000}
	condenseOpts = services.CompletionOptions{Temperature: 0.1, MaxTokens: 2000}
	planOpts     = services.CompletionOptions{Temperature: 0.2, MaxTokens: 2000}
	executeOpts  = services.CompletionOptions{Temperature: 0.3, MaxTokens: 8000}
)

// Asker collects a free-text answer from the user for one clarifying
// question. The CLI backs it with an interactive prompt; tests script it.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// AskerFunc adapts a function to the Asker interface.
type AskerFunc func(ctx context.Context, question string) (string, error)

func (f AskerFunc) Ask(ctx context.Context, question string) (string, error) {
	return f(ctx, question)
}

// Builder drives the clarify-plan-execute pipeline for one run.
type Builder struct {
	llm          services.LLMService
	asker        Asker
	logger       *slog.Logger
	maxQuestions int
	outputRoot   string

	// OnStage, when set, is invoked as each stage begins. The CLI uses it
	// to print phase banners.
	OnStage func(Stage)
}

// New creates a pipeline builder.
func New(llm services.LLMService, asker Asker, logger *slog.Logger, maxQuestions int, outputRoot string) *Builder {
	if maxQuestions < 1 {
		maxQuestions = 3
	}
	return &Builder{
		llm:          llm,
		asker:        asker,
		logger:       logger,
		maxQuestions: maxQuestions,
		outputRoot:   outputRoot,
	}
}

// Run executes the full pipeline for an idea. On success the returned
// session is in StageDone with all three files committed under OutputDir; on
// any model-call or parsing failure the session is in StageFailed and no
// output directory exists.
func (b *Builder) Run(ctx context.Context, idea string) (*Session, error) {
	s := NewSession(idea)
	b.logger.Info("Starting game build", "session_id", s.ID, "idea", idea)

	stages := []struct {
		stage Stage
		run   func(context.Context, *Session) error
	}{
		{StageClarifying, b.clarify},
		{StagePlanning, b.plan},
		{StageExecuting, b.execute},
	}

	for _, st := range stages {
		s.Stage = st.stage
		if b.OnStage != nil {
			b.OnStage(st.stage)
		}
		b.logger.Info("Entering stage", "session_id", s.ID, "stage", st.stage)
		if err := st.run(ctx, s); err != nil {
			s.Stage = StageFailed
			b.logger.Error("Stage failed", "session_id", s.ID, "stage", st.stage, "error", err)
			return s, fmt.Errorf("%s stage: %w", st.stage, err)
		}
	}

	s.Stage = StageDone
	if b.OnStage != nil {
		b.OnStage(StageDone)
	}
	b.logger.Info("Game build complete", "session_id", s.ID, "output_dir", s.OutputDir)
	return s, nil
}

// complete issues one model call: optional system prompt, a window of the
// conversation history, then the stage prompt. The stage prompt itself is
// not folded into the history.
func (b *Builder) complete(ctx context.Context, s *Session, system, prompt string, opts services.CompletionOptions) (string, error) {
	messages := make([]chat.ChatMessage, 0, historyWindow+2)
	if system != "" {
		messages = append(messages, chat.ChatMessage{Role: chat.ChatRoleSystem, Content: system})
	}
	messages = append(messages, chat.Window(s.history, historyWindow)...)
	messages = append(messages, chat.ChatMessage{Role: chat.ChatRoleUser, Content: prompt})

	return b.llm.ChatCompletion(ctx, messages, opts)
}

// clarify runs the question loop: at most maxQuestions exchanges, ending
// early when the model signals REQUIREMENTS_CLEAR with a parseable summary.
// When the cap is hit the transcript is condensed into a summary instead.
func (b *Builder) clarify(ctx context.Context, s *Session) error {
	for asked := 0; asked < b.maxQuestions; asked++ {
		resp, err := b.complete(ctx, s, prompts.ClarifySystemPrompt, prompts.NextQuestionPrompt, clarifyOpts)
		if err != nil {
			return fmt.Errorf("model call failed: %w", err)
		}

		req, found, perr := gamespec.ParseClearResponse(resp)
		if found {
			if perr == nil {
				s.Requirements = req
				b.logger.Info("Requirements clarified", "session_id", s.ID, "questions_asked", asked)
				return nil
			}
			// Sentinel present but summary unusable; keep asking.
			b.logger.Warn("Failed to parse requirements summary", "session_id", s.ID, "error", perr)
		}

		answer, err := b.asker.Ask(ctx, resp)
		if err != nil {
			return fmt.Errorf("failed to read answer: %w", err)
		}
		s.appendExchange(resp, answer)
	}

	// Question cap reached; have the model condense the whole conversation.
	resp, err := b.complete(ctx, s, "", prompts.CondensePrompt(s.transcriptText()), condenseOpts)
	if err != nil {
		return fmt.Errorf("model call failed: %w", err)
	}

	req, perr := gamespec.ParseRequirements(resp)
	if perr != nil {
		b.logger.Warn("Failed to parse condensed requirements, using defaults", "session_id", s.ID, "error", perr)
		req = gamespec.DefaultRequirements()
	}
	s.Requirements = req
	return nil
}

// plan issues the single planning request. A reply that cannot be parsed as
// a structured plan degrades to one synthesized from the requirements; an
// empty reply or failed call aborts the run.
func (b *Builder) plan(ctx context.Context, s *Session) error {
	resp, err := b.complete(ctx, s, prompts.PlanSystemPrompt, prompts.PlanPrompt(s.Requirements), planOpts)
	if err != nil {
		return fmt.Errorf("model call failed: %w", err)
	}
	if strings.TrimSpace(resp) == "" {
		return fmt.Errorf("empty planning response")
	}

	p, perr := gamespec.ParsePlan(resp)
	if perr != nil {
		b.logger.Warn("Failed to parse plan, synthesizing from requirements", "session_id", s.ID, "error", perr)
		p = gamespec.SynthesizePlan(s.Requirements)
	}
	s.Plan = p
	b.logger.Info("Plan created", "session_id", s.ID, "game_title", p.Title(s.Requirements))
	return nil
}

// execute requests the three artifacts, enhances them with the house-style
// features, and commits them atomically. A missing artifact aborts before
// anything touches the output root.
func (b *Builder) execute(ctx context.Context, s *Session) error {
	resp, err := b.complete(ctx, s, prompts.ExecuteSystemPrompt, prompts.ExecutePrompt(s.Requirements, s.Plan), executeOpts)
	if err != nil {
		return fmt.Errorf("model call failed: %w", err)
	}

	fs, err := artifact.Parse(resp)
	if err != nil {
		return err
	}
	artifact.Enhance(fs)

	dir := artifact.OutputDir(b.outputRoot, s.Plan.Title(s.Requirements), time.Now())
	if err := artifact.Write(fs, dir); err != nil {
		return err
	}

	s.Files = fs
	s.OutputDir = dir
	return nil
}
