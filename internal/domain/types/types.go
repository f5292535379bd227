// Package types contains the wire shapes shared by the API, exporters and CLI.
package types

import (
	"sort"
	"time"

	"github.com/okian/teammate/internal/domain/formation"
	"github.com/okian/teammate/internal/domain/model"
)

// Participant is the serialized form of a participant.
type Participant struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	Activity string `json:"activity" yaml:"activity"`
	Role     string `json:"role" yaml:"role"`
	Skill    int    `json:"skill" yaml:"skill"`
	Score    int    `json:"score" yaml:"score"`
	Category string `json:"category" yaml:"category"`
}

// FromParticipant converts a domain participant.
func FromParticipant(p model.Participant) Participant {
	return Participant{
		ID:       p.ID,
		Name:     p.Name,
		Email:    p.Email,
		Activity: p.Activity,
		Role:     p.Role,
		Skill:    p.Skill,
		Score:    p.Score,
		Category: string(p.Category),
	}
}

// FromParticipants converts a slice, never returning nil.
func FromParticipants(ps []model.Participant) []Participant {
	out := make([]Participant, len(ps))
	for i, p := range ps {
		out[i] = FromParticipant(p)
	}
	return out
}

// Team is the serialized form of a formed team.
type Team struct {
	ID           int            `json:"id" yaml:"id"`
	AverageSkill float64        `json:"averageSkill" yaml:"averageSkill"`
	Roles        []string       `json:"roles" yaml:"roles"`
	Activities   map[string]int `json:"activities" yaml:"activities"`
	Members      []Participant  `json:"members" yaml:"members"`
}

// FromTeam converts an engine team. Roles are sorted.
func FromTeam(t *formation.Team) Team {
	roles := make([]string, 0, 3)
	for r := range t.RoleCounts() {
		roles = append(roles, r)
	}
	sort.Strings(roles)
	return Team{
		ID:           t.ID(),
		AverageSkill: t.AverageSkill(),
		Roles:        roles,
		Activities:   t.ActivityCounts(),
		Members:      FromParticipants(t.Members()),
	}
}

// FromTeams converts engine teams in order.
func FromTeams(teams []*formation.Team) []Team {
	out := make([]Team, len(teams))
	for i, t := range teams {
		out[i] = FromTeam(t)
	}
	return out
}

// Formation is the serialized result of a formation run.
type Formation struct {
	RunID       string        `json:"runId" yaml:"runId"`
	CreatedAt   time.Time     `json:"createdAt" yaml:"createdAt"`
	DurationMs  float64       `json:"durationMs" yaml:"durationMs"`
	TeamSize    int           `json:"teamSize" yaml:"teamSize"`
	ActivityCap int           `json:"activityCap" yaml:"activityCap"`
	Pool        int           `json:"pool" yaml:"pool"`
	Placed      int           `json:"placed" yaml:"placed"`
	Swaps       int           `json:"swaps" yaml:"swaps"`
	Teams       []Team        `json:"teams" yaml:"teams"`
	Unplaced    []Participant `json:"unplaced" yaml:"unplaced"`
}
