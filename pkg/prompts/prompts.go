package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/keerthikapopuri/gameforge/pkg/gamespec"
)

// ClarifySystemPrompt steers the model during the clarification stage. The
// model asks one question at a time and signals completion with the
// REQUIREMENTS_CLEAR sentinel followed by a JSON summary.
const ClarifySystemPrompt = `You are a game design expert. Your role is to ask clarifying questions
about the game idea. Be concise and ask only essential questions to understand:

1. MAIN CHARACTER: What is it? (animal, person, object, etc.)
2. MAIN ACTION: What does the character do? (collect, avoid, shoot, jump, etc.)
3. COLLECTIBLES: What does the player collect? (coins, stars, items, etc.)
4. OBSTACLES: What does the player need to avoid? (enemies, traps, barriers, etc.)
5. PROGRESSION: How does the game get harder? (levels, speed, more obstacles, etc.)
6. WIN/LOSE CONDITIONS: How do you win or lose?
7. VISUAL STYLE: Any specific art style?

Ask ONE question at a time. After each answer, decide if you need another question.
When you have enough information, respond with "REQUIREMENTS_CLEAR" followed by a JSON
summary of the requirements.

Example format:
REQUIREMENTS_CLEAR{
    "character": "dog",
    "character_action": "runs and jumps to catch bones while avoiding enemies",
    "world_setting": "park with moving bones and enemy cats",
    "collectibles": "bones that move around",
    "obstacles": "enemy cats that patrol the area",
    "progression": "level up every 3 bones, bones move faster each level, more enemies appear",
    "win_condition": "reach level 10",
    "lose_condition": "hit by enemy or miss 5 bones",
    "controls": "arrow keys to move, space to jump",
    "visual_style": "cute cartoon"
}`

// NextQuestionPrompt is sent on each clarification turn; the conversation
// history carries the idea and prior answers.
const NextQuestionPrompt = "Based on our conversation so far, what's your next clarifying question?"

// PlanSystemPrompt steers the model during the planning stage.
const PlanSystemPrompt = `You are a game architect. Create a detailed technical plan for the game.
Include:
1. Framework choice (vanilla JS is simpler, Phaser for complex physics)
2. Core game mechanics in detail (including obstacles)
3. Game loop structure
4. Data structures needed (for player, collectibles, obstacles)
5. Key functions to implement
6. File structure

Output as JSON.`

// ExecuteSystemPrompt steers the model during the execution stage. The reply
// must be a JSON object keyed by the three output filenames.
const ExecuteSystemPrompt = `You are an expert game developer. Create a complete, playable HTML5 game
based on the requirements and plan. The game must:

1. Be fully functional in a browser with no external dependencies
2. Use HTML5 Canvas for rendering
3. Include all specified mechanics (including obstacles)
4. Have proper game loop with requestAnimationFrame
5. Handle user input correctly
6. Include scoring and progression
7. Have win/lose conditions as specified
8. Include clear on-screen instructions
9. Be visually appealing with CSS styling
10. Include a username input field in the UI (not in terminal)
11. Display leaderboard at the bottom of the page
12. Show a popup with "Level {level}!" when leveling up
13. Include obstacle mechanics exactly as specified

Generate THREE files: index.html, style.css, and game.js

Format your response as a JSON object with keys: "index.html", "style.css", "game.js"
Each value should be the complete file content as a string.`

// IdeaMessage frames the initial idea as the first user message.
func IdeaMessage(idea string) string {
	return "Game idea: " + idea
}

// CondensePrompt asks the model to distill a full clarification transcript
// into a requirements summary. Used when the question cap is reached without
// a REQUIREMENTS_CLEAR signal.
func CondensePrompt(transcript string) string {
	return fmt.Sprintf(`Based on this entire conversation about a game idea:
%s

Extract the key requirements into a JSON object with these fields:
- character: the main character
- character_action: what the character does
- world_setting: where the game takes place
- collectibles: what the player collects (if anything)
- obstacles: what the player avoids (if anything)
- progression: how the game gets harder
- win_condition: how to win
- lose_condition: how to lose
- controls: how to control the character
- visual_style: art style description

Return only the JSON object, no other text.`, transcript)
}

// PlanPrompt builds the single planning-stage request from the requirements.
func PlanPrompt(req *gamespec.Requirements) string {
	return fmt.Sprintf(`Based on these requirements:
%s

Create a comprehensive technical game plan. Be specific about how each mechanic will work.
Make sure to include obstacle mechanics as specified: %s

Return as JSON with these keys:
- framework: "vanilla" or "phaser" (with reason)
- game_title: catchy title based on the concept
- mechanics: list of core mechanics (including obstacle avoidance)
- data_structures: what data to track (player, collectibles, obstacles)
- game_loop_steps: list of steps in each frame
- key_functions: list of functions to implement
- visual_elements: what to draw each frame (character, collectibles, obstacles)`,
		mustJSON(req), req.ObstaclesOr("none"))
}

// ExecutePrompt builds the execution-stage request from the requirements and
// plan. The response contract (a bare JSON object, no fences) is restated at
// the end because models drift on it.
func ExecutePrompt(req *gamespec.Requirements, plan *gamespec.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "REQUIREMENTS:\n%s\n\nTECHNICAL PLAN:\n%s\n\n", mustJSON(req), mustJSON(plan))
	fmt.Fprintf(&b, `Create a complete, playable game that exactly matches these requirements.
The game should have:
- Main character: %s
- Main action: %s
- Collectibles: %s
- Obstacles: %s
- Progression: %s
- Win condition: %s
- Lose condition: %s
- Controls: %s
- Visual style: %s

CRITICAL FEATURES TO INCLUDE:
1. Username input field at the top of the game (save to localStorage)
2. Display current username in the game
3. Obstacles that move and cause game over on collision: %s
4. Level up popup that appears and fades out showing "Level X!"
5. Leaderboard at the bottom showing top scores
6. Save score button when game ends

Make sure the game is fully playable and matches the theme exactly.
The character should LOOK like %s
Collectibles should LOOK like %s
Obstacles should LOOK like %s

Return ONLY a JSON object with the three files. No other text.
Strictly follow below output format:
{
    "index.html": "<!DOCTYPE html>...</html>",
    "style.css": "body { ... }",
    "game.js": "const canvas = document.getElementById('gameCanvas'); ..."
}

Strictly follow the output format mentioned above. The output must be in complete json format with no back ticks included.`,
		orDefault(req.Character, "player"),
		orDefault(req.CharacterAction, "movement"),
		orDefault(req.Collectibles, "items"),
		req.ObstaclesOr("none"),
		orDefault(req.Progression, "levels get harder"),
		orDefault(req.WinCondition, "reach target"),
		orDefault(req.LoseCondition, "hit obstacle"),
		orDefault(req.Controls, "arrow keys"),
		orDefault(req.VisualStyle, "colorful"),
		req.ObstaclesOr("enemies"),
		orDefault(req.Character, "a character"),
		orDefault(req.Collectibles, "items"),
		req.ObstaclesOr("obstacles"),
	)
	return b.String()
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func mustJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
