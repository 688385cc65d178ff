package script

import (
	"regexp"
	"strings"
)

// Kind classifies a parsed script.
type Kind string

const (
	// KindAssignment is "name = value".
	KindAssignment Kind = "assignment"
	// KindConditional is "if ( condition ) action".
	KindConditional Kind = "condition"
	// KindGeneric is anything else. It is echoed, never executed.
	KindGeneric Kind = "script"
)

// Parsed is the result of tokenizing a CEL-like script.
type Parsed struct {
	Kind Kind `json:"type"`

	// Assignment
	Variable string `json:"variable,omitempty"`
	Value    string `json:"value,omitempty"`

	// Conditional
	Condition string `json:"condition,omitempty"`
	Action    string `json:"action,omitempty"`

	Tokens []string `json:"tokens,omitempty"`
}

// whitespace matches runs of ECMAScript white space and line terminators.
var whitespace = regexp.MustCompile(`[\s\v\p{Zs}\x{feff}\x{2028}\x{2029}]+`)

// Tokenize splits a script on whitespace runs. Leading or trailing whitespace
// yields an empty first or last token.
func Tokenize(script string) []string {
	return whitespace.Split(script, -1)
}

// Parse tokenizes a script of the minimal grammar:
//
//	name = value...
//	if ( condition... ) action...
//
// The parens must be standalone tokens and their order is not checked: the
// condition is whatever lies between the first "(" and the first ")", empty
// when ")" comes first. There is no precedence, nesting or error reporting.
// Malformed input falls through to KindGeneric.
func Parse(script string) Parsed {
	tokens := Tokenize(script)

	if len(tokens) >= 3 && tokens[1] == "=" {
		return Parsed{
			Kind:     KindAssignment,
			Variable: tokens[0],
			Value:    strings.Join(tokens[2:], " "),
			Tokens:   tokens,
		}
	}

	if tokens[0] == "if" {
		open := indexOf(tokens, "(")
		closing := indexOf(tokens, ")")
		if open >= 0 && closing >= 0 {
			var cond []string
			if open+1 < closing {
				cond = tokens[open+1 : closing]
			}
			return Parsed{
				Kind:      KindConditional,
				Condition: strings.Join(cond, " "),
				Action:    strings.Join(tokens[closing+1:], " "),
				Tokens:    tokens,
			}
		}
	}

	return Parsed{Kind: KindGeneric, Tokens: tokens}
}

// ParseConditional reads "if ( condition ) action" leniently: parens may be
// glued to their neighbours ("if (x > 5) y") and ")" must follow "(".
// ContextEvaluator uses it for script conditions; Parse keeps the strict
// token rules.
func ParseConditional(script string) (Parsed, bool) {
	padded := strings.NewReplacer("(", " ( ", ")", " ) ").Replace(script)
	tokens := strings.Fields(padded)
	if len(tokens) == 0 || tokens[0] != "if" {
		return Parsed{}, false
	}
	open := indexOf(tokens, "(")
	closing := indexOf(tokens, ")")
	if open < 0 || closing < open {
		return Parsed{}, false
	}
	return Parsed{
		Kind:      KindConditional,
		Condition: strings.Join(tokens[open+1:closing], " "),
		Action:    strings.Join(tokens[closing+1:], " "),
		Tokens:    tokens,
	}, true
}

func indexOf(tokens []string, want string) int {
	for i, t := range tokens {
		if t == want {
			return i
		}
	}
	return -1
}
