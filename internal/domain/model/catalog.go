package model

// Canonical activity and role names produced by input normalization.
var (
	Activities = []string{"Valorant", "DOTA 2", "FIFA", "Basketball", "Badminton", "CS:GO", "Chess", "Other"}
	Roles      = []string{"Strategist", "Attacker", "Defender", "Supporter", "Coordinator", "Other"}
)

// OtherValue is used when an activity or role is left blank.
const OtherValue = "Other"
