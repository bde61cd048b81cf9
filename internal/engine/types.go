package engine

type Category string

const (
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategoryWork     Category = "work"
	CategoryLearning Category = "learning"
	CategoryHome     Category = "home"
	CategoryOther    Category = "other"

	// CategoryAll is a filter value only; no task carries it.
	CategoryAll Category = "all"
)

// Categories lists the task categories in display order.
var Categories = []Category{
	CategoryPersonal,
	CategoryHealth,
	CategoryWork,
	CategoryLearning,
	CategoryHome,
	CategoryOther,
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryPersonal, CategoryHealth, CategoryWork, CategoryLearning, CategoryHome, CategoryOther:
		return true
	default:
		return false
	}
}

var categoryNames = map[Category]string{
	CategoryPersonal: "Personal",
	CategoryHealth:   "Health",
	CategoryWork:     "Work",
	CategoryLearning: "Learning",
	CategoryHome:     "Home",
	CategoryOther:    "Other",
}

// CategoryDisplayName returns the label for a stored category, or the raw value
// when it is not one we know.
func CategoryDisplayName(category string) string {
	if name, ok := categoryNames[Category(category)]; ok {
		return name
	}
	return category
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}
