package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/okian/teammate/internal/domain/types"
	"github.com/okian/teammate/internal/domain/validation"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	teamStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

// renderFormation prints every team as a bordered card followed by the
// unplaced participants, if any.
func renderFormation(w io.Writer, f types.Formation) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Teams formed successfully. %d teams.", len(f.Teams))))
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf(
		"pool %d, placed %d, team size %d, activity cap %d, swaps %d, %.2f ms",
		f.Pool, f.Placed, f.TeamSize, f.ActivityCap, f.Swaps, f.DurationMs)))

	for _, t := range f.Teams {
		fmt.Fprintln(w, teamStyle.Render(renderTeam(t)))
	}

	if len(f.Unplaced) > 0 {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("Unplaced (%d):", len(f.Unplaced))))
		for _, p := range f.Unplaced {
			fmt.Fprintf(w, "  %s\n", memberLine(p))
		}
	}
}

func renderTeam(t types.Team) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Team %d", t.ID)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  avg skill %.2f  roles %s", t.AverageSkill, strings.Join(t.Roles, ", "))))
	for _, m := range t.Members {
		b.WriteString("\n")
		b.WriteString(memberLine(m))
	}
	return b.String()
}

func memberLine(p types.Participant) string {
	return fmt.Sprintf("%-22s %-11s %-12s %2d  %s", p.Name, p.Activity, p.Role, p.Skill, p.Category)
}

// renderValidation prints one line per issue and a verdict.
func renderValidation(w io.Writer, r validation.Report) {
	fmt.Fprintln(w, titleStyle.Render("Validation Report"))
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d participants checked", r.Checked)))
	for _, issue := range r.Issues {
		fmt.Fprintf(w, "  %s\n", issue.String())
	}
	if r.OK() {
		fmt.Fprintln(w, okStyle.Render("Validation passed."))
		return
	}
	fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("Validation failed with %d issues.", len(r.Issues))))
}

// renderDashboard prints roster totals grouped by activity and category.
func renderDashboard(w io.Writer, total int, byActivity, byCategory map[string]int) {
	fmt.Fprintln(w, titleStyle.Render("Dashboard"))
	fmt.Fprintf(w, "Participants: %d\n", total)
	fmt.Fprintln(w, teamStyle.Render(headerStyle.Render("By Game")+"\n"+counts(byActivity)))
	fmt.Fprintln(w, teamStyle.Render(headerStyle.Render("By Personality")+"\n"+counts(byCategory)))
}

func counts(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = fmt.Sprintf("%-12s %4d", k, m[k])
	}
	if len(lines) == 0 {
		return dimStyle.Render("none")
	}
	return strings.Join(lines, "\n")
}
