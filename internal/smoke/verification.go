package smoke

import (
	"fmt"
	"strings"

	"github.com/okian/teammate/internal/domain/types"
)

// verifyFormation checks the hard formation invariants on a serialized
// result and returns one message per violation.
func verifyFormation(f types.Formation, pool int) []string {
	var out []string

	if f.Pool != pool {
		out = append(out, fmt.Sprintf("formation pool %d, server holds %d participants", f.Pool, pool))
	}
	if want := expectedTeams(f.Pool, f.TeamSize); len(f.Teams) != want {
		out = append(out, fmt.Sprintf("got %d teams, want %d", len(f.Teams), want))
	}

	seen := make(map[string]struct{}, f.Pool)
	placed := 0
	for _, t := range f.Teams {
		placed += len(t.Members)
		if len(t.Members) > f.TeamSize {
			out = append(out, fmt.Sprintf("team %d has %d members, size is %d", t.ID, len(t.Members), f.TeamSize))
		}
		activities := map[string]int{}
		for _, m := range t.Members {
			activities[strings.ToLower(m.Activity)]++
			out = append(out, duplicate(seen, m.ID)...)
		}
		for a, n := range activities {
			if n > f.ActivityCap {
				out = append(out, fmt.Sprintf("team %d has %d members playing %q, cap is %d", t.ID, n, a, f.ActivityCap))
			}
		}
	}
	for _, p := range f.Unplaced {
		out = append(out, duplicate(seen, p.ID)...)
	}

	if placed != f.Placed {
		out = append(out, fmt.Sprintf("placed reported %d, counted %d", f.Placed, placed))
	}
	if placed+len(f.Unplaced) != f.Pool {
		out = append(out, fmt.Sprintf("placed %d + unplaced %d != pool %d", placed, len(f.Unplaced), f.Pool))
	}
	return out
}

func duplicate(seen map[string]struct{}, id string) []string {
	key := strings.ToLower(id)
	if _, ok := seen[key]; ok {
		return []string{fmt.Sprintf("participant %s appears more than once", id)}
	}
	seen[key] = struct{}{}
	return nil
}

func expectedTeams(pool, size int) int {
	if size <= 0 {
		return 0
	}
	return (pool + size - 1) / size
}
