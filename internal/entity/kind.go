package entity

// Kind identifies the rule set a session is played under. The state payload
// shape of a session is determined solely by its kind.
type Kind string

const (
	KindGridThree           Kind = "grid-three"
	KindGridFour            Kind = "grid-four"
	KindSimultaneousChoice  Kind = "simultaneous-choice"
	KindArithmeticRace      Kind = "arithmetic-race"
	KindNotationPassthrough Kind = "notation-passthrough"
)

// MoveInput carries one submitted move. Which fields are meaningful depends
// on the session kind; the registry validates the rest.
type MoveInput struct {
	Cell     *int   `json:"cell,omitempty"`
	Column   *int   `json:"column,omitempty"`
	Choice   string `json:"choice,omitempty"`
	Answer   string `json:"answer,omitempty"`
	Notation string `json:"notation,omitempty"`
}
