package formation

import (
	"fmt"
	"strings"

	"github.com/okian/teammate/internal/domain/model"
)

// Team is a bounded group of participants produced by an Engine.
// Teams are only created by the engine; aggregate views are recomputed on
// every call because membership changes while formation is running.
type Team struct {
	id      int
	members []model.Participant
}

// ID returns the team identifier, unique within one formation run.
func (t *Team) ID() int { return t.id }

// Len returns the current member count.
func (t *Team) Len() int { return len(t.members) }

// Members returns a copy of the current members in placement order.
func (t *Team) Members() []model.Participant {
	out := make([]model.Participant, len(t.members))
	copy(out, t.members)
	return out
}

// AverageSkill returns the mean skill rating, or 0 for an empty team.
func (t *Team) AverageSkill() float64 {
	if len(t.members) == 0 {
		return 0
	}
	total := 0
	for _, m := range t.members {
		total += m.Skill
	}
	return float64(total) / float64(len(t.members))
}

// RoleCounts groups members by role.
func (t *Team) RoleCounts() map[string]int {
	counts := make(map[string]int, len(t.members))
	for _, m := range t.members {
		counts[m.Role]++
	}
	return counts
}

// ActivityCounts groups members by activity.
func (t *Team) ActivityCounts() map[string]int {
	counts := make(map[string]int, len(t.members))
	for _, m := range t.members {
		counts[m.Activity]++
	}
	return counts
}

// CategoryCounts groups members by behavioral category.
func (t *Team) CategoryCounts() map[model.Category]int {
	counts := make(map[model.Category]int, len(t.members))
	for _, m := range t.members {
		counts[m.Category]++
	}
	return counts
}

// String renders the team the way the CLI prints it.
func (t *Team) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Team %d - AvgSkill: %.2f\n", t.id, t.AverageSkill())
	for _, m := range t.members {
		fmt.Fprintf(&sb, "\t%s (%s) - %s, %s, Skill: %d, %s\n",
			m.Name, m.ID, m.Activity, m.Role, m.Skill, m.Category)
	}
	return sb.String()
}

func (t *Team) add(p model.Participant) {
	t.members = append(t.members, p)
}

func (t *Team) hasRoom(size int) bool {
	return len(t.members) < size
}

// countActivity counts members sharing activity (case-insensitive), ignoring
// the member at index skip. Pass -1 to count everyone.
func (t *Team) countActivity(activity string, skip int) int {
	n := 0
	for i, m := range t.members {
		if i == skip {
			continue
		}
		if strings.EqualFold(m.Activity, activity) {
			n++
		}
	}
	return n
}

// swap exchanges t.members[i] and other.members[j] in one step.
func (t *Team) swap(other *Team, i, j int) {
	t.members[i], other.members[j] = other.members[j], t.members[i]
}
