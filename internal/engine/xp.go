package engine

import (
	"math"
	"math/rand/v2"

	"reconnect/internal/storage"
)

const (
	// XPCurveCoef scales the square-root level curve: level = floor(sqrt(totalXP/50)) + 1.
	XPCurveCoef = 50

	// XPPerCredit converts task XP to credits (5 XP = 1 credit).
	XPPerCredit = 5

	// LevelBonusPerLevel is the credit bonus per level reached on level up.
	LevelBonusPerLevel = 5

	// Habits pay a flat award regardless of the habit.
	HabitXP      = 15
	HabitCredits = 3
)

// Roller is the random source for XP rolls. *rand.Rand satisfies it.
type Roller interface {
	IntN(n int) int
}

type globalRoller struct{}

func (globalRoller) IntN(n int) int { return rand.IntN(n) }

// RollXP returns a uniformly random integer in [r.Min, r.Max].
func RollXP(roller Roller, r XPRange) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + roller.IntN(r.Max-r.Min+1)
}

// maxCurveRoot is the largest r for which r*r*XPCurveCoef fits in an int.
var maxCurveRoot = isqrt(math.MaxInt / XPCurveCoef)

// XPForLevel returns the cumulative XP needed to reach level. It saturates at
// math.MaxInt past the end of the curve.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	if level-1 > maxCurveRoot {
		return math.MaxInt
	}
	return (level - 1) * (level - 1) * XPCurveCoef
}

// XPForNextLevel returns the cumulative XP needed to reach level+1, saturating
// like XPForLevel.
func XPForNextLevel(level int) int {
	if level < 0 {
		level = 0
	}
	if level > maxCurveRoot {
		return math.MaxInt
	}
	return level * level * XPCurveCoef
}

// LevelFromTotalXP returns floor(sqrt(totalXP/50)) + 1 using integer math only.
func LevelFromTotalXP(totalXP int) int {
	if totalXP <= 0 {
		return 1
	}
	return isqrt(totalXP/XPCurveCoef) + 1
}

// isqrt returns the largest r with r*r <= n (Newton's method).
func isqrt(n int) int {
	if n < 2 {
		return max(n, 0)
	}
	x := n
	y := x/2 + x%2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

// CreditsFromXP converts task XP to credits. Habits do not use this.
func CreditsFromXP(xp int) int {
	if xp <= 0 {
		return 0
	}
	return xp / XPPerCredit
}

type LevelUp struct {
	From  int
	To    int
	Bonus int
}

// ApplyLevelUp moves the user to the level implied by TotalXP when that is higher
// than the current one. XP becomes the remainder inside the new level, so a jump
// over several levels lands correctly in one step. Calling it again without new
// XP is a no-op. A record without a level is repaired first and pays no bonus.
func ApplyLevelUp(u storage.User) (storage.User, LevelUp, bool) {
	u = RepairLevel(u)
	newLevel := LevelFromTotalXP(u.TotalXP)
	if newLevel <= u.Level {
		return u, LevelUp{}, false
	}
	lu := LevelUp{From: u.Level, To: newLevel, Bonus: newLevel * LevelBonusPerLevel}
	u.Level = newLevel
	u.XP = u.TotalXP - XPForLevel(newLevel)
	u.Credits += lu.Bonus
	return u, lu, true
}

// RepairLevel sets a missing (below 1) level to the one implied by TotalXP.
// Stored XP and credits are left alone.
func RepairLevel(u storage.User) storage.User {
	if u.Level < 1 {
		u.Level = LevelFromTotalXP(u.TotalXP)
	}
	return u
}
