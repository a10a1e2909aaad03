package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/keerthikapopuri/gameforge/pkg/gamespec"
)

func TestClarifySystemPrompt(t *testing.T) {
	assert.Contains(t, ClarifySystemPrompt, gamespec.RequirementsClearSentinel)
	assert.Contains(t, ClarifySystemPrompt, "ONE question at a time")
}

func TestCondensePrompt(t *testing.T) {
	p := CondensePrompt("user: Game idea: fox collecting berries\nassistant: What should the fox avoid?")
	assert.Contains(t, p, "fox collecting berries")
	assert.Contains(t, p, "Return only the JSON object")
	for _, field := range []string{"character", "obstacles", "win_condition", "visual_style"} {
		assert.Contains(t, p, field)
	}
}

func TestPlanPrompt(t *testing.T) {
	req := &gamespec.Requirements{
		Character: "fox",
		Obstacles: "hunters",
	}
	p := PlanPrompt(req)
	assert.Contains(t, p, `"character": "fox"`)
	assert.Contains(t, p, "obstacle mechanics as specified: hunters")
	assert.Contains(t, p, "game_title")
}

func TestPlanPromptNoObstacles(t *testing.T) {
	p := PlanPrompt(&gamespec.Requirements{Character: "fox"})
	assert.Contains(t, p, "obstacle mechanics as specified: none")
}

func TestExecutePrompt(t *testing.T) {
	req := &gamespec.Requirements{
		Character:    "fox",
		Collectibles: "berries",
		Obstacles:    "hunters",
	}
	plan := gamespec.SynthesizePlan(req)
	p := ExecutePrompt(req, plan)

	assert.Contains(t, p, "REQUIREMENTS:")
	assert.Contains(t, p, "TECHNICAL PLAN:")
	assert.Contains(t, p, "Main character: fox")
	assert.Contains(t, p, "cause game over on collision: hunters")
	assert.Contains(t, p, `"index.html"`)
	assert.Contains(t, p, `"game.js"`)
	// Unset fields fall back to generic wording rather than empty strings.
	assert.Contains(t, p, "Controls: arrow keys")
	assert.False(t, strings.Contains(p, "Main action: \n"))
}
