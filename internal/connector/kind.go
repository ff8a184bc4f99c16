package connector

import (
	"fmt"
	"strings"
)

// Kind tags one of the five connector tokens.
type Kind uint8

const (
	// Invalid is the zero value and never produced by a successful match.
	Invalid Kind = iota
	// Arrow is the directed solid connector.
	Arrow // -->
	// Line is the undirected solid connector.
	Line // ---
	// BiArrow points both ways.
	BiArrow // <-->
	// Dotted is the directed dotted connector.
	Dotted // -.->
	// Thick is the directed heavy connector.
	Thick // ==>

	kindCount
)

var tokens = [kindCount]string{
	Invalid: "",
	Arrow:   "-->",
	Line:    "---",
	BiArrow: "<-->",
	Dotted:  "-.->",
	Thick:   "==>",
}

var names = [kindCount]string{
	Invalid: "Invalid",
	Arrow:   "Arrow",
	Line:    "Line",
	BiArrow: "BiArrow",
	Dotted:  "Dotted",
	Thick:   "Thick",
}

// All returns the valid kinds in declaration order.
func All() []Kind {
	return []Kind{Arrow, Line, BiArrow, Dotted, Thick}
}

// Token returns the literal source text of k, or "" for Invalid.
func (k Kind) Token() string {
	if k >= kindCount {
		return ""
	}
	return tokens[k]
}

func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return names[k]
}

// Valid reports whether k is one of the five real connectors.
func (k Kind) Valid() bool {
	return k > Invalid && k < kindCount
}

// Directed reports whether the connector has a single arrowhead.
func (k Kind) Directed() bool {
	switch k {
	case Arrow, Dotted, Thick:
		return true
	}
	return false
}

// Lookup maps exact token text to its Kind.
func Lookup(text string) (Kind, bool) {
	for _, k := range All() {
		if tokens[k] == text {
			return k, true
		}
	}
	return Invalid, false
}

// Prefix matches the connector that s starts with and returns it with its byte length.
// No token is a prefix of another, so at most one can match at a given position.
func Prefix(s string) (Kind, int) {
	for _, k := range All() {
		if strings.HasPrefix(s, tokens[k]) {
			return k, len(tokens[k])
		}
	}
	return Invalid, 0
}

// Tokens lists every literal token, used in diagnostics ("expected one of ...").
func Tokens() []string {
	out := make([]string, 0, kindCount-1)
	for _, k := range All() {
		out = append(out, tokens[k])
	}
	return out
}

// MarshalText encodes the literal token so JSON and msgpack output stay readable.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("connector: cannot marshal %s", k)
	}
	return []byte(tokens[k]), nil
}

// UnmarshalText accepts either the literal token ("-->") or the kind name ("Arrow").
func (k *Kind) UnmarshalText(text []byte) error {
	s := string(text)
	if kind, ok := Lookup(s); ok {
		*k = kind
		return nil
	}
	for _, kind := range All() {
		if strings.EqualFold(names[kind], s) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("connector: unknown connector %q", s)
}
