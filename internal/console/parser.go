// Package console turns typed lines into play commands and snapshots into
// the ASCII hex board shown between turns.
package console

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/talgya/rift-runner/internal/engine"
	"github.com/talgya/rift-runner/internal/world"
)

// Lexer splits a line into words and signed integers. Commas and
// parentheses count as whitespace so "p (1, -1)" reads like "p 1 -1".
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "Ident", Pattern: `[a-z]+`},
	{Name: "Whitespace", Pattern: `[ \t,()]+`},
})

// line is the grammar root.
type line struct {
	Deploy *deployExpr `parser:"( @@"`
	Pick   *pickExpr   `parser:"| @@"`
	Word   string      `parser:"| @(\"core\" | \"skip\" | \"state\" | \"quit\" | \"exit\" | \"help\") )"`
}

type deployExpr struct {
	Kind string `parser:"@(\"p\" | \"w\" | \"t\" | \"pulse\" | \"weave\" | \"temporal\")"`
	Q    int    `parser:"@Int"`
	R    int    `parser:"@Int"`
}

type pickExpr struct {
	First  int `parser:"@Int"`
	Second int `parser:"@Int"`
}

var grammar = participle.MustBuild[line](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace"),
)

// Verb is what a parsed line asks for.
type Verb uint8

const (
	VerbDeploy Verb = iota // p|w|t q r
	VerbPick               // i j, a pair of entropy core slots
	VerbCore               // Play the entropy core
	VerbSkip               // Advance without acting
	VerbState              // Reprint the board
	VerbQuit
	VerbHelp
)

// ErrEmpty is returned for a blank line.
var ErrEmpty = errors.New("empty command")

// Command is a parsed console line.
type Command struct {
	Verb   Verb
	Kind   engine.FieldKind // VerbDeploy
	At     world.HexCoord   // VerbDeploy
	First  int              // VerbPick
	Second int              // VerbPick
}

// Parse reads one console line. Matching is case-insensitive.
func Parse(input string) (Command, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return Command{}, ErrEmpty
	}

	ast, err := grammar.ParseString("", input)
	if err != nil {
		return Command{}, fmt.Errorf("parse %q: %w", input, err)
	}

	switch {
	case ast.Deploy != nil:
		kind, err := engine.ParseFieldKind(ast.Deploy.Kind)
		if err != nil {
			return Command{}, err
		}
		return Command{
			Verb: VerbDeploy,
			Kind: kind,
			At:   world.HexCoord{Q: ast.Deploy.Q, R: ast.Deploy.R},
		}, nil
	case ast.Pick != nil:
		return Command{Verb: VerbPick, First: ast.Pick.First, Second: ast.Pick.Second}, nil
	}

	switch ast.Word {
	case "core":
		return Command{Verb: VerbCore}, nil
	case "skip":
		return Command{Verb: VerbSkip}, nil
	case "state":
		return Command{Verb: VerbState}, nil
	case "quit", "exit":
		return Command{Verb: VerbQuit}, nil
	default:
		return Command{Verb: VerbHelp}, nil
	}
}

// Help lists the commands Parse understands.
const Help = `Commands:
  p|w|t q r   deploy a Pulse, Weave or Temporal field at (q, r)
  core        play the entropy core for bonus energy
  skip        advance one tick without acting
  state       reprint the board
  help        show this list
  quit        leave the run
Legend: CS core shard (CS* slowed), P/W/T fields, E# hostile essence, S stasis,
        terrain ~ mire  . basalt  * crystal  : void`
