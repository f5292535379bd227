package roster

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okian/teammate/internal/domain/model"
	"github.com/okian/teammate/internal/domain/types"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var teamsHeader = []string{"teamId", "memberId", "memberName", "email", "game", "role", "skill", "personality", "personalityScore"}

var participantsHeader = []string{"ID", "Name", "Email", "PreferredGame", "SkillLevel", "PreferredRole", "PersonalityScore", "PersonalityType"}

// ParseFormat normalizes a format name. "yml" is accepted for YAML and an
// empty name means CSV.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// WriteTeams writes f in the given format.
func WriteTeams(w io.Writer, format string, f types.Formation) error {
	format, err := ParseFormat(format)
	if err != nil {
		return err
	}
	switch format {
	case FormatJSON:
		return WriteTeamsJSON(w, f)
	case FormatYAML:
		return WriteTeamsYAML(w, f)
	default:
		return WriteTeamsCSV(w, f.Teams)
	}
}

// WriteTeamsCSV writes one row per team member. Commas in names are replaced
// by spaces so the file stays readable by naive splitters.
func WriteTeamsCSV(w io.Writer, teams []types.Team) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(teamsHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range teams {
		for _, m := range t.Members {
			row := []string{
				strconv.Itoa(t.ID),
				m.ID,
				strings.ReplaceAll(m.Name, ",", " "),
				m.Email,
				m.Activity,
				m.Role,
				strconv.Itoa(m.Skill),
				m.Category,
				strconv.Itoa(m.Score),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write team %d: %w", t.ID, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTeamsJSON writes the whole formation as indented JSON.
func WriteTeamsJSON(w io.Writer, f types.Formation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteTeamsYAML writes the whole formation as YAML.
func WriteTeamsYAML(w io.Writer, f types.Formation) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// WriteParticipantsCSV writes participants in the eight-column layout that
// Import reads back.
func WriteParticipantsCSV(w io.Writer, ps []model.Participant) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(participantsHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range ps {
		row := []string{
			p.ID,
			strings.ReplaceAll(p.Name, ",", " "),
			p.Email,
			p.Activity,
			strconv.Itoa(p.Skill),
			p.Role,
			strconv.Itoa(p.Score),
			string(p.Category),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write participant %s: %w", p.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
