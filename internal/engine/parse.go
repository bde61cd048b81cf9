package engine

import (
	"fmt"
	"strings"
)

// ParseCategory parses user input to a Category.
// Supported: personal, health, work, learning, home, other (plus a few aliases).
// "all" is accepted so the same parser can feed FilterTasks.
func ParseCategory(input string) (Category, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "", "all":
		return CategoryAll, nil
	case "personal", "me":
		return CategoryPersonal, nil
	case "health", "fitness":
		return CategoryHealth, nil
	case "work", "job", "career":
		return CategoryWork, nil
	case "learning", "study", "read", "reading":
		return CategoryLearning, nil
	case "home", "house", "chores":
		return CategoryHome, nil
	case "other", "misc":
		return CategoryOther, nil
	default:
		return "", fmt.Errorf("invalid category: %q", input)
	}
}

// ParseDifficulty accepts the names and the short forms e/m/h.
func ParseDifficulty(input string) (Difficulty, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "easy", "e":
		return DifficultyEasy, nil
	case "medium", "med", "m":
		return DifficultyMedium, nil
	case "hard", "h":
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("invalid difficulty: %q", input)
	}
}
