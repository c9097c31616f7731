package models

// Team represents a draftable competition team
type Team struct {
	// Number is the team's competition number, upper-cased (e.g. "1234A")
	Number string

	// Remaining is how many more times this team can be picked
	Remaining int
}
