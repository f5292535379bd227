// Package validation checks participant records and rosters.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/okian/teammate/internal/domain/classifier"
	"github.com/okian/teammate/internal/domain/model"
)

// Field bounds.
const (
	MinSkill = 1
	MaxSkill = 10
	MinScore = 0
	MaxScore = 100
)

var emailPattern = regexp.MustCompile(`^[\w._%+-]+@[\w.-]+\.[A-Za-z]{2,}$`)

// IsValidEmail reports whether e looks like a deliverable address.
func IsValidEmail(e string) bool {
	return emailPattern.MatchString(e)
}

// IsValidSkill reports whether s is within 1..10.
func IsValidSkill(s int) bool {
	return s >= MinSkill && s <= MaxSkill
}

// IsValidAnswer reports whether a survey answer is within 1..5.
func IsValidAnswer(a int) bool {
	return a >= classifier.MinAnswer && a <= classifier.MaxAnswer
}

// Participant validates a single record in isolation.
func Participant(p model.Participant) error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return ErrMissingID
	case !IsValidEmail(p.Email):
		return fmt.Errorf("%w: %q", ErrInvalidEmail, p.Email)
	case !IsValidSkill(p.Skill):
		return fmt.Errorf("%w: %d", ErrInvalidSkill, p.Skill)
	case p.Score < MinScore || p.Score > MaxScore:
		return fmt.Errorf("%w: %d", ErrInvalidScore, p.Score)
	}
	return nil
}

// Issue describes one problem found in a roster.
type Issue struct {
	ParticipantID string `json:"participantId" yaml:"participantId"`
	Field         string `json:"field" yaml:"field"`
	Message       string `json:"message" yaml:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.ParticipantID, i.Field, i.Message)
}

// Report is the result of checking a roster.
type Report struct {
	Checked int     `json:"checked" yaml:"checked"`
	Issues  []Issue `json:"issues" yaml:"issues"`
}

// OK reports whether no issues were found.
func (r Report) OK() bool {
	return len(r.Issues) == 0
}

// Check validates every participant and the roster-wide uniqueness of IDs
// and emails. IDs and emails compare case-insensitively.
func Check(participants []model.Participant) Report {
	report := Report{Checked: len(participants), Issues: []Issue{}}
	ids := make(map[string]struct{}, len(participants))
	emails := make(map[string]struct{}, len(participants))

	add := func(p model.Participant, field, format string, args ...any) {
		report.Issues = append(report.Issues, Issue{
			ParticipantID: p.ID,
			Field:         field,
			Message:       fmt.Sprintf(format, args...),
		})
	}

	for _, p := range participants {
		id := strings.ToLower(strings.TrimSpace(p.ID))
		if id == "" {
			add(p, "id", "missing id")
		} else if _, dup := ids[id]; dup {
			add(p, "id", "duplicate id")
		} else {
			ids[id] = struct{}{}
		}

		email := strings.ToLower(p.Email)
		if !IsValidEmail(p.Email) {
			add(p, "email", "invalid email %q", p.Email)
		} else if _, dup := emails[email]; dup {
			add(p, "email", "duplicate email %q", p.Email)
		} else {
			emails[email] = struct{}{}
		}

		if !IsValidSkill(p.Skill) {
			add(p, "skill", "skill %d outside %d..%d", p.Skill, MinSkill, MaxSkill)
		}
		if p.Score < MinScore || p.Score > MaxScore {
			add(p, "score", "score %d outside %d..%d", p.Score, MinScore, MaxScore)
		}
	}
	return report
}
