package gamespec

import "strings"

// Requirements is the structured summary of a game concept produced by the
// clarification stage. Fields mirror the JSON object the model is asked to
// emit after the REQUIREMENTS_CLEAR sentinel.
type Requirements struct {
	Character       string `json:"character"`
	CharacterAction string `json:"character_action"`
	WorldSetting    string `json:"world_setting"`
	Collectibles    string `json:"collectibles"`
	Obstacles       string `json:"obstacles"`
	Progression     string `json:"progression"`
	WinCondition    string `json:"win_condition"`
	LoseCondition   string `json:"lose_condition"`
	Controls        string `json:"controls"`
	VisualStyle     string `json:"visual_style"`
}

// DefaultRequirements returns a generic requirements summary, used when the
// question cap is reached and the model's condensation of the transcript
// cannot be parsed.
func DefaultRequirements() *Requirements {
	return &Requirements{
		Character:       "player",
		CharacterAction: "moves and collects items while avoiding obstacles",
		WorldSetting:    "simple game world",
		Collectibles:    "items",
		Obstacles:       "enemies",
		Progression:     "increasing difficulty with more obstacles",
		WinCondition:    "reach target score",
		LoseCondition:   "hit by obstacle",
		Controls:        "arrow keys",
		VisualStyle:     "simple and colorful",
	}
}

// Field is a labeled requirements value, in display order.
type Field struct {
	Label string
	Value string
}

// Fields returns the requirements as ordered label/value pairs for display.
func (r *Requirements) Fields() []Field {
	return []Field{
		{"Character", r.Character},
		{"Character Action", r.CharacterAction},
		{"World Setting", r.WorldSetting},
		{"Collectibles", r.Collectibles},
		{"Obstacles", r.Obstacles},
		{"Progression", r.Progression},
		{"Win Condition", r.WinCondition},
		{"Lose Condition", r.LoseCondition},
		{"Controls", r.Controls},
		{"Visual Style", r.VisualStyle},
	}
}

// ObstaclesOr returns the obstacles description, or fallback when unset.
func (r *Requirements) ObstaclesOr(fallback string) string {
	if strings.TrimSpace(r.Obstacles) == "" {
		return fallback
	}
	return r.Obstacles
}
