package gamespec

import (
	"fmt"
	"strings"
)

// Plan is the technical game plan produced by the planning stage.
type Plan struct {
	Framework      string   `json:"framework"`
	GameTitle      string   `json:"game_title"`
	Mechanics      []string `json:"mechanics"`
	DataStructures []string `json:"data_structures"`
	GameLoopSteps  []string `json:"game_loop_steps"`
	KeyFunctions   []string `json:"key_functions"`
	VisualElements []string `json:"visual_elements"`
}

// Title returns the plan's game title, or a title synthesized from the
// requirements when the model left it blank.
func (p *Plan) Title(req *Requirements) string {
	if strings.TrimSpace(p.GameTitle) != "" {
		return p.GameTitle
	}
	return fmt.Sprintf("%s %s", req.Character, req.CharacterAction)
}

// SynthesizePlan builds a minimal plan directly from the requirements. It is
// the degraded path taken when the planning response cannot be parsed as
// structured JSON; the pipeline continues with this plan and logs a warning.
func SynthesizePlan(req *Requirements) *Plan {
	return &Plan{
		Framework: "vanilla",
		GameTitle: fmt.Sprintf("%s %s", req.Character, req.CharacterAction),
		Mechanics: []string{
			req.CharacterAction,
			"avoid " + req.ObstaclesOr("obstacles"),
		},
		DataStructures: []string{
			"player position",
			"score",
			"collectibles array",
			"obstacles array",
		},
		GameLoopSteps: []string{
			"handle input",
			"update positions",
			"check collisions with collectibles",
			"check collisions with obstacles",
			"draw",
		},
		KeyFunctions: []string{
			"init",
			"update",
			"draw",
			"checkCollectibleCollisions",
			"checkObstacleCollisions",
		},
		VisualElements: []string{
			"character",
			"collectibles",
			"obstacles",
			"score display",
			"level display",
		},
	}
}
