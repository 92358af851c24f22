package graphql

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Kind string

const (
	KindQuery    Kind = "query"
	KindMutation Kind = "mutation"
)

// Argument is one name/value pair of an operation's input object. Values
// are already rendered as GraphQL literals.
type Argument struct {
	Name    string
	literal string
}

func String(name string, value string) Argument {
	// A JSON string is a valid GraphQL string literal.
	encoded, _ := json.Marshal(value)
	return Argument{Name: name, literal: string(encoded)}
}

func Int(name string, value int) Argument {
	return Argument{Name: name, literal: strconv.Itoa(value)}
}

func (a Argument) Literal() string {
	return a.literal
}

// Document is a single-field GraphQL operation taking one input object.
type Document struct {
	Kind      Kind
	Field     string
	Arguments []Argument
	Selection []string
}

func (d Document) Render() (string, error) {
	if d.Kind != KindQuery && d.Kind != KindMutation {
		return "", fmt.Errorf("unsupported operation kind %q", d.Kind)
	}
	if !isName(d.Field) {
		return "", fmt.Errorf("invalid operation field %q", d.Field)
	}
	if len(d.Selection) == 0 {
		return "", errors.New("operation selection is empty")
	}

	var b strings.Builder
	b.WriteString(string(d.Kind))
	b.WriteString(" { ")
	b.WriteString(d.Field)

	if len(d.Arguments) > 0 {
		b.WriteString("(input: {")
		for i, arg := range d.Arguments {
			if !isName(arg.Name) {
				return "", fmt.Errorf("invalid argument name %q", arg.Name)
			}
			if arg.literal == "" {
				return "", fmt.Errorf("argument %q has no value", arg.Name)
			}
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(arg.Name)
			b.WriteString(": ")
			b.WriteString(arg.literal)
		}
		b.WriteString("})")
	}

	b.WriteString(" { ")
	for i, field := range d.Selection {
		if !isSelection(field) {
			return "", fmt.Errorf("invalid selection %q", field)
		}
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(field)
	}
	b.WriteString(" } }")

	return b.String(), nil
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// isSelection accepts a field name or a nested block such as
// "user { id email }". Every block opens after a field name, holds at
// least one field and closes inside the selection.
func isSelection(s string) bool {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return false
	}

	depth := 0
	prev := ""
	for _, token := range tokens {
		switch token {
		case "{":
			if !isName(prev) {
				return false
			}
			depth++
		case "}":
			if depth == 0 || prev == "{" {
				return false
			}
			depth--
		default:
			if !isName(token) {
				return false
			}
		}
		prev = token
	}
	return depth == 0
}
