package roster

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/teammate/internal/domain/classifier"
	"github.com/okian/teammate/internal/domain/model"
)

// Column layout shared by the two accepted line formats.
const (
	colID = iota
	colName
	colEmail
	colActivity
	colSkill
	colRole
	colScore // also Q1 in the survey layout
	colCategory

	minColumns    = 8
	surveyColumns = colScore + classifier.QuestionCount

	defaultSkill  = 5
	defaultScore  = 50
	defaultAnswer = 3
)

// ParseLine parses one roster line. Two layouts are accepted:
//
//	ID,Name,Email,Activity,Skill,Role,Score,Category
//	ID,Name,Email,Activity,Skill,Role,Q1,Q2,Q3,Q4,Q5
//
// Numeric fields are clamped into range; unparsable numbers fall back to a
// default. An empty category is derived from the score.
func ParseLine(line string) (model.Participant, error) {
	parts, err := split(line)
	if err != nil {
		return model.Participant{}, err
	}
	if len(parts) < minColumns {
		return model.Participant{}, fmt.Errorf("%w: want at least %d, got %d", ErrTooFewColumns, minColumns, len(parts))
	}

	p := model.Participant{
		ID:       strings.TrimSpace(parts[colID]),
		Name:     strings.TrimSpace(parts[colName]),
		Email:    strings.TrimSpace(parts[colEmail]),
		Activity: NormalizeActivity(parts[colActivity]),
		Skill:    safeParse(parts[colSkill], defaultSkill, 1, 10),
		Role:     NormalizeRole(parts[colRole]),
	}
	if p.ID == "" {
		return model.Participant{}, ErrEmptyID
	}

	switch {
	case len(parts) == minColumns:
		p.Score = safeParse(parts[colScore], defaultScore, 0, 100)
		if c := strings.TrimSpace(parts[colCategory]); c != "" {
			p.Category = model.ParseCategory(c)
		} else {
			p.Category = classifier.Classify(p.Score)
		}
	case len(parts) >= surveyColumns:
		var answers [classifier.QuestionCount]int
		for i := range answers {
			answers[i] = safeParse(parts[colScore+i], defaultAnswer, classifier.MinAnswer, classifier.MaxAnswer)
		}
		p.Score, p.Category = classifier.FromAnswers(answers)
	default:
		p.Score = safeParse(parts[colScore], defaultScore, 0, 100)
		p.Category = classifier.Classify(p.Score)
	}
	return p, nil
}

// split tokenizes a single line, honoring quoted fields.
func split(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	fields, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	return fields, nil
}

// safeParse returns s as an int clamped to [lo, hi], or def when s is not a number.
func safeParse(s string, def, lo, hi int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return min(max(v, lo), hi)
}

// NormalizeActivity maps free-text activity names onto the canonical list.
// Unrecognized names are kept as given; empty becomes "Other".
func NormalizeActivity(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.OtherValue
	}
	v := strings.ToLower(s)
	switch {
	case strings.Contains(v, "valor"):
		return "Valorant"
	case strings.Contains(v, "dota"):
		return "DOTA 2"
	case strings.Contains(v, "fifa"):
		return "FIFA"
	case strings.Contains(v, "basket"):
		return "Basketball"
	case strings.Contains(v, "badm"):
		return "Badminton"
	case strings.Contains(v, "chess"):
		return "Chess"
	case strings.Contains(v, "cs"):
		return "CS:GO"
	}
	return s
}

// NormalizeRole maps free-text role names onto the canonical list.
func NormalizeRole(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.OtherValue
	}
	v := strings.ToLower(s)
	switch {
	case strings.Contains(v, "strate"):
		return "Strategist"
	case strings.Contains(v, "attack"):
		return "Attacker"
	case strings.Contains(v, "defend"):
		return "Defender"
	case strings.Contains(v, "support"):
		return "Supporter"
	case strings.Contains(v, "coord"):
		return "Coordinator"
	}
	return s
}
