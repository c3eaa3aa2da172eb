package domain

import "slices"

// WorldDiff represents the changes between two snapshots of consecutive turns.
// Snapshots only hold what the bot can see, so a removal may also mean the
// cell went out of view.
type WorldDiff struct {
	FoodAdded   []Position `json:"food_added,omitempty"`
	FoodRemoved []Position `json:"food_removed,omitempty"`
	// AntsAdded and AntsRemoved are indexed by owner, like WorldState.LiveAnts.
	AntsAdded   [][]Position `json:"ants_added,omitempty"`
	AntsRemoved [][]Position `json:"ants_removed,omitempty"`
	// Deaths is the number of dead ants reported per owner in the new snapshot.
	Deaths []int `json:"deaths,omitempty"`
}

// Empty reports whether nothing changed.
func (d *WorldDiff) Empty() bool {
	if d == nil {
		return true
	}
	return len(d.FoodAdded) == 0 && len(d.FoodRemoved) == 0 &&
		allEmpty(d.AntsAdded) && allEmpty(d.AntsRemoved) && !slices.ContainsFunc(d.Deaths, func(n int) bool { return n > 0 })
}

// Diff calculates the difference between oldWorld and newWorld.
// A nil oldWorld diffs against an empty snapshot; a nil newWorld returns nil.
// Positions are sorted so results do not depend on record order.
func Diff(oldWorld, newWorld *WorldState) *WorldDiff {
	if newWorld == nil {
		return nil
	}
	if oldWorld == nil {
		oldWorld = NewWorldState()
	}

	diff := &WorldDiff{
		FoodAdded:   minus(newWorld.Food, oldWorld.Food),
		FoodRemoved: minus(oldWorld.Food, newWorld.Food),
	}

	players := max(len(oldWorld.LiveAnts), len(newWorld.LiveAnts))
	for owner := range players {
		before := entryFor(oldWorld.LiveAnts, uint8(owner))
		after := entryFor(newWorld.LiveAnts, uint8(owner))
		diff.AntsAdded = append(diff.AntsAdded, minus(after, before))
		diff.AntsRemoved = append(diff.AntsRemoved, minus(before, after))
	}
	for _, dead := range newWorld.DeadAnts {
		diff.Deaths = append(diff.Deaths, len(dead))
	}
	return diff
}

// minus returns the sorted positions of a that are not in b.
func minus(a, b []Position) []Position {
	var out []Position
	for _, p := range a {
		if !slices.Contains(b, p) && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, Position.Compare)
	return out
}

func allEmpty(perPlayer [][]Position) bool {
	for _, ps := range perPlayer {
		if len(ps) > 0 {
			return false
		}
	}
	return true
}
