// Package grammar assigns instruction classes to decomposed tokens and
// compresses classes into macro-states. The 49-class table and the
// class-to-state map are static configuration; the package only builds
// fast lookup structure over them.
package grammar

import (
	"fmt"
	"strings"
)

// Role is the grammatical role an instruction class is tagged with.
type Role int

const (
	RoleUnclassified Role = iota
	RoleCoreControl
	RoleEnergyOperator
	RoleAuxiliary
	RoleFrequentOperator
	RoleHighImpact
	RoleFlowOperator
)

// String returns the table-form role name.
func (r Role) String() string {
	switch r {
	case RoleCoreControl:
		return "CORE_CONTROL"
	case RoleEnergyOperator:
		return "ENERGY_OPERATOR"
	case RoleAuxiliary:
		return "AUXILIARY"
	case RoleFrequentOperator:
		return "FREQUENT_OPERATOR"
	case RoleHighImpact:
		return "HIGH_IMPACT"
	case RoleFlowOperator:
		return "FLOW_OPERATOR"
	default:
		return "UNCLASSIFIED"
	}
}

// ParseRole converts a table role name to a Role. Returns the role and
// true if recognized.
func ParseRole(s string) (Role, bool) {
	switch strings.ToUpper(s) {
	case "CORE_CONTROL":
		return RoleCoreControl, true
	case "ENERGY_OPERATOR":
		return RoleEnergyOperator, true
	case "AUXILIARY":
		return RoleAuxiliary, true
	case "FREQUENT_OPERATOR":
		return RoleFrequentOperator, true
	case "HIGH_IMPACT":
		return RoleHighImpact, true
	case "FLOW_OPERATOR":
		return RoleFlowOperator, true
	default:
		return RoleUnclassified, false
	}
}

// MacroState is one of the six coarse states each class reduces to, plus
// the residue pseudo-state for unclassified tokens.
type MacroState int

const (
	StateResidue MacroState = iota
	StateCC
	StateEN
	StateAX
	StateFQ
	StateHI
	StateFL
)

// String returns the two-letter state name ("RS" for residue).
func (m MacroState) String() string {
	switch m {
	case StateCC:
		return "CC"
	case StateEN:
		return "EN"
	case StateAX:
		return "AX"
	case StateFQ:
		return "FQ"
	case StateHI:
		return "HI"
	case StateFL:
		return "FL"
	default:
		return "RS"
	}
}

// ParseMacroState converts a state name to a MacroState. Returns the
// state and true if recognized; "RS" is not parseable on purpose, it
// never appears in the states table.
func ParseMacroState(s string) (MacroState, bool) {
	switch strings.ToUpper(s) {
	case "CC":
		return StateCC, true
	case "EN":
		return StateEN, true
	case "AX":
		return StateAX, true
	case "FQ":
		return StateFQ, true
	case "HI":
		return StateHI, true
	case "FL":
		return StateFL, true
	default:
		return StateResidue, false
	}
}

// Class is one instruction class from the static table.
type Class struct {
	ID   string
	Role Role
}

// Unclassified is the residual pseudo-class. Its zero Role and empty ID
// distinguish it from every table class.
var Unclassified = Class{}

// IsClassified reports whether c is a real table class.
func (c Class) IsClassified() bool {
	return c.ID != ""
}

// String returns the class ID, or "UNCLASSIFIED" for the residual class.
func (c Class) String() string {
	if !c.IsClassified() {
		return "UNCLASSIFIED"
	}
	return c.ID
}

// compositeKey builds the exact lookup key.
func compositeKey(prefix, middle string, suffixed bool) string {
	return fmt.Sprintf("%s\x00%s\x00%t", prefix, middle, suffixed)
}

// coarseKey builds the fallback lookup key.
func coarseKey(prefix string, suffixed bool) string {
	return fmt.Sprintf("%s\x00%t", prefix, suffixed)
}
