package builder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keerthikapopuri/gameforge/internal/services"
	"github.com/keerthikapopuri/gameforge/pkg/artifact"
	"github.com/keerthikapopuri/gameforge/pkg/chat"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// scriptedAsker replies with canned answers and records the questions asked.
type scriptedAsker struct {
	answers   []string
	questions []string
}

func (a *scriptedAsker) Ask(ctx context.Context, question string) (string, error) {
	a.questions = append(a.questions, question)
	if len(a.answers) == 0 {
		return "whatever you think is best", nil
	}
	answer := a.answers[0]
	a.answers = a.answers[1:]
	return answer, nil
}

const clearResponse = `REQUIREMENTS_CLEAR{
	"character": "fox",
	"character_action": "collects berries while avoiding hunters",
	"world_setting": "forest clearing",
	"collectibles": "berries",
	"obstacles": "hunters",
	"progression": "more hunters each level",
	"win_condition": "reach level 10",
	"lose_condition": "caught by a hunter",
	"controls": "arrow keys",
	"visual_style": "woodland cartoon"
}`

const planResponse = `{
	"framework": "vanilla",
	"game_title": "Fox Forage",
	"mechanics": ["collect berries", "avoid hunters"],
	"data_structures": ["player", "berries", "hunters"],
	"game_loop_steps": ["input", "update", "draw"],
	"key_functions": ["init", "update", "draw"],
	"visual_elements": ["fox", "berries", "hunters"]
}`

func executionResponse(t *testing.T, omit ...string) string {
	t.Helper()
	files := map[string]string{
		"index.html": `<!DOCTYPE html><html><body><canvas id="gameCanvas" width="800" height="400"></canvas></body></html>`,
		"style.css":  "body { background: #2d5a27; }",
		"game.js":    "const game = { level: 1, score: 0 };\nfunction update() { game.score += 10; }",
	}
	for _, key := range omit {
		delete(files, key)
	}
	data, err := json.Marshal(files)
	require.NoError(t, err)
	return string(data)
}

func TestRunSuccess(t *testing.T) {
	root := t.TempDir()
	mock := services.NewMockLLM(
		"What should the fox look like?",
		"How fast should the hunters move?",
		clearResponse,
		planResponse,
		executionResponse(t),
	)
	asker := &scriptedAsker{answers: []string{"a red fox with a bushy tail", "slow at first, faster each level"}}

	b := New(mock, asker, testLogger(), 3, root)

	var stages []Stage
	b.OnStage = func(s Stage) { stages = append(stages, s) }

	s, err := b.Run(context.Background(), "a fox collecting berries while avoiding hunters")
	require.NoError(t, err)

	assert.Equal(t, StageDone, s.Stage)
	assert.Equal(t, []Stage{StageClarifying, StagePlanning, StageExecuting, StageDone}, stages)
	assert.Len(t, s.Transcript, 2)
	assert.Equal(t, "fox", s.Requirements.Character)
	assert.Equal(t, "Fox Forage", s.Plan.GameTitle)

	// Output directory holds exactly the three artifacts.
	entries, err := os.ReadDir(s.OutputDir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	markup, err := os.ReadFile(filepath.Join(s.OutputDir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(markup), "<canvas")
	assert.Contains(t, string(markup), `id="username"`)

	script, err := os.ReadFile(filepath.Join(s.OutputDir, "game.js"))
	require.NoError(t, err)
	assert.Contains(t, string(script), "showLevelUp")
	assert.Contains(t, string(script), "function update()")
}

func TestClarifyQuestionCap(t *testing.T) {
	condensed := `{
		"character": "penguin",
		"character_action": "catches fish",
		"world_setting": "icy sea",
		"collectibles": "fish",
		"obstacles": "sharks",
		"progression": "faster sharks",
		"win_condition": "reach level 5",
		"lose_condition": "eaten by shark",
		"controls": "arrow keys",
		"visual_style": "flat pastel"
	}`
	mock := services.NewMockLLM(
		"Question one?",
		"Question two?",
		"Question three?",
		condensed,
		planResponse,
		executionResponse(t),
	)
	asker := &scriptedAsker{}

	b := New(mock, asker, testLogger(), 3, t.TempDir())
	s, err := b.Run(context.Background(), "a penguin catching fish")
	require.NoError(t, err)

	// Hard cap: exactly three questions reached the user, then the
	// transcript was condensed without further interaction.
	assert.Len(t, asker.questions, 3)
	assert.Equal(t, "penguin", s.Requirements.Character)
	assert.Equal(t, 6, mock.CallCount()) // 3 questions + condense + plan + execute
}

func TestClarifyCapWithUnparseableCondensation(t *testing.T) {
	mock := services.NewMockLLM(
		"Question one?",
		"Question two?",
		"Question three?",
		"I could not summarize that, sorry.",
		planResponse,
		executionResponse(t),
	)
	b := New(mock, &scriptedAsker{}, testLogger(), 3, t.TempDir())

	s, err := b.Run(context.Background(), "something vague")
	require.NoError(t, err)
	// Falls back to generic requirements rather than aborting.
	assert.Equal(t, "player", s.Requirements.Character)
}

func TestClarifySentinelWithBadSummaryKeepsAsking(t *testing.T) {
	mock := services.NewMockLLM(
		"REQUIREMENTS_CLEAR this is not json",
		clearResponse,
		planResponse,
		executionResponse(t),
	)
	asker := &scriptedAsker{}

	b := New(mock, asker, testLogger(), 3, t.TempDir())
	s, err := b.Run(context.Background(), "a fox collecting berries")
	require.NoError(t, err)

	assert.Len(t, asker.questions, 1)
	assert.Equal(t, "fox", s.Requirements.Character)
}

func TestRunClarifyModelError(t *testing.T) {
	root := t.TempDir()
	mock := services.NewMockLLM()
	mock.SetError(errors.New("connection refused"))

	b := New(mock, &scriptedAsker{}, testLogger(), 3, root)
	s, err := b.Run(context.Background(), "a fox collecting berries")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "clarifying stage")
	assert.Equal(t, StageFailed, s.Stage)
	assertEmptyDir(t, root)
}

func TestRunPlanningModelError(t *testing.T) {
	root := t.TempDir()
	// Script covers clarification only; the planning call hits an
	// exhausted script and fails.
	mock := services.NewMockLLM(clearResponse)

	b := New(mock, &scriptedAsker{}, testLogger(), 3, root)
	s, err := b.Run(context.Background(), "a fox collecting berries")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "planning stage")
	assert.Equal(t, StageFailed, s.Stage)
	assertEmptyDir(t, root)
}

func TestRunUnparseablePlanDegrades(t *testing.T) {
	mock := services.NewMockLLM(
		clearResponse,
		"Sure! Here's my thinking about the game, in prose.",
		executionResponse(t),
	)

	b := New(mock, &scriptedAsker{}, testLogger(), 3, t.TempDir())
	s, err := b.Run(context.Background(), "a fox collecting berries")

	require.NoError(t, err)
	assert.Equal(t, "vanilla", s.Plan.Framework)
	assert.Contains(t, s.Plan.Mechanics, "avoid hunters")
}

func TestRunMissingArtifactWritesNothing(t *testing.T) {
	root := t.TempDir()
	mock := services.NewMockLLM(
		clearResponse,
		planResponse,
		executionResponse(t, "style.css"),
	)

	b := New(mock, &scriptedAsker{}, testLogger(), 3, root)
	s, err := b.Run(context.Background(), "a fox collecting berries")

	require.Error(t, err)
	assert.ErrorIs(t, err, artifact.ErrMissingArtifact)
	assert.Equal(t, StageFailed, s.Stage)
	assert.Empty(t, s.OutputDir)
	assertEmptyDir(t, root)
}

func TestPlanPassedVerbatimToExecution(t *testing.T) {
	mock := services.NewMockLLM(
		clearResponse,
		planResponse,
		executionResponse(t),
	)

	b := New(mock, &scriptedAsker{}, testLogger(), 3, t.TempDir())
	_, err := b.Run(context.Background(), "a fox collecting berries")
	require.NoError(t, err)

	// The execution request carries the plan's content unmodified.
	execMessages := mock.LastMessages()
	require.NotEmpty(t, execMessages)
	assert.Equal(t, chat.ChatRoleSystem, execMessages[0].Role)
	prompt := execMessages[len(execMessages)-1].Content
	assert.Contains(t, prompt, `"game_title": "Fox Forage"`)
	assert.Contains(t, prompt, `"collect berries"`)
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no output should be committed on failure")
}
