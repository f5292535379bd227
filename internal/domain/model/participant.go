// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
)

// Category is the behavioral style derived from the five-question survey.
type Category string

// Behavioral categories. Anything outside this set is treated as Unknown.
const (
	Leader   Category = "Leader"
	Balanced Category = "Balanced"
	Thinker  Category = "Thinker"
	Unknown  Category = "Unknown"
)

// ParseCategory maps s onto the closed category set, case-insensitively.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "leader":
		return Leader
	case "balanced":
		return Balanced
	case "thinker":
		return Thinker
	default:
		return Unknown
	}
}

// Participant describes one person in the pool. Values are copied into teams;
// the formation engine never writes to them.
type Participant struct {
	ID       string   // unique within a working set (enforced by the store)
	Name     string   // display name
	Email    string   // contact address
	Activity string   // preferred activity, e.g. "Valorant", "Chess"
	Role     string   // preferred functional role, e.g. "Strategist"
	Skill    int      // 1..10
	Score    int      // scaled survey score, 0..100
	Category Category // derived from Score
}

// String renders a one-line summary of the participant.
func (p Participant) String() string {
	return fmt.Sprintf("%s | %s | %s | Activity:%s Role:%s Skill:%d Category:%s(%d)",
		p.ID, p.Name, p.Email, p.Activity, p.Role, p.Skill, p.Category, p.Score)
}
