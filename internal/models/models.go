// Package models provides domain models for the order parsing service.
package models

import "strings"

// AlgoType represents an execution algorithm family.
type AlgoType string

const (
	AlgoVWAP                    AlgoType = "vwap"
	AlgoTWAP                    AlgoType = "twap"
	AlgoPOV                     AlgoType = "pov"
	AlgoImplementationShortfall AlgoType = "implementation_shortfall"
)

// ParseAlgoType parses a string into an AlgoType, case-insensitively.
// The second return value is false for "none", empty, or unknown tokens.
func ParseAlgoType(s string) (AlgoType, bool) {
	switch AlgoType(strings.ToLower(strings.TrimSpace(s))) {
	case AlgoVWAP:
		return AlgoVWAP, true
	case AlgoTWAP:
		return AlgoTWAP, true
	case AlgoPOV:
		return AlgoPOV, true
	case AlgoImplementationShortfall:
		return AlgoImplementationShortfall, true
	}
	return "", false
}

// TimeInForce represents an order duration policy.
type TimeInForce string

const (
	TIFDay TimeInForce = "DAY"
	TIFGTD TimeInForce = "GTD"
	TIFGTC TimeInForce = "GTC"
	TIFFOK TimeInForce = "FOK"
)

// ParseTimeInForce parses a string into a TimeInForce,
// defaulting to DAY for unknown values.
func ParseTimeInForce(s string) TimeInForce {
	tif, _ := LookupTimeInForce(s)
	return tif
}

// LookupTimeInForce parses a string into a TimeInForce. Empty input is
// the DAY default; any other token that is not an enum member returns
// false so callers can treat it as a parse failure.
func LookupTimeInForce(s string) (TimeInForce, bool) {
	switch TimeInForce(strings.ToUpper(strings.TrimSpace(s))) {
	case "", TIFDay:
		return TIFDay, true
	case TIFGTD:
		return TIFGTD, true
	case TIFGTC:
		return TIFGTC, true
	case TIFFOK:
		return TIFFOK, true
	}
	return TIFDay, false
}

// ContactMethod represents how the client is contacted about an order.
type ContactMethod string

const (
	ContactPhone   ContactMethod = "phone"
	ContactEmail   ContactMethod = "email"
	ContactMeeting ContactMethod = "meeting"
	ContactPortal  ContactMethod = "portal"
)

// ParseContactMethod parses a string into a ContactMethod,
// defaulting to phone for unknown values.
func ParseContactMethod(s string) ContactMethod {
	method, _ := LookupContactMethod(s)
	return method
}

// LookupContactMethod parses a string into a ContactMethod. Empty
// input is the phone default; any other token that is not an enum
// member returns false.
func LookupContactMethod(s string) (ContactMethod, bool) {
	switch ContactMethod(strings.ToLower(strings.TrimSpace(s))) {
	case "", ContactPhone:
		return ContactPhone, true
	case ContactEmail:
		return ContactEmail, true
	case ContactMeeting:
		return ContactMeeting, true
	case ContactPortal:
		return ContactPortal, true
	}
	return ContactPhone, false
}
