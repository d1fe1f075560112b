package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DrStormWalker/comb/internal/taxonomy"
)

// ConditionOp is one of the relational operators a predicate condition
// can test with.
type ConditionOp int

const (
	OpLt ConditionOp = iota
	OpLtEq
	OpGt
	OpGtEq
	OpEq
	OpNeq
)

func (op ConditionOp) String() string {
	switch op {
	case OpLt:
		return "<"
	case OpLtEq:
		return "<="
	case OpGt:
		return ">"
	case OpGtEq:
		return ">="
	case OpEq:
		return "="
	case OpNeq:
		return "!="
	default:
		return "?"
	}
}

// Condition is a relational predicate over a raw integer value, e.g.
// ">0" or "!=2".
type Condition struct {
	Op      ConditionOp
	Operand int32
}

// Test evaluates the predicate against v.
func (c Condition) Test(v int32) bool {
	switch c.Op {
	case OpLt:
		return v < c.Operand
	case OpLtEq:
		return v <= c.Operand
	case OpGt:
		return v > c.Operand
	case OpGtEq:
		return v >= c.Operand
	case OpEq:
		return v == c.Operand
	case OpNeq:
		return v != c.Operand
	default:
		return false
	}
}

func (c Condition) String() string {
	return fmt.Sprintf("%s%d", c.Op, c.Operand)
}

// ParseCondition parses a predicate string of the form
// "(<|<=|>|>=|=|==|!=)\s*-?\d+". It peeks the second character to
// decide whether the operator is one or two runes, as BurntSushi/toml
// gives us a plain string and there is no punctuation-delimited lexer
// in the pipeline ahead of this.
func ParseCondition(s string) (Condition, error) {
	if len(s) < 2 {
		return Condition{}, fmt.Errorf("%w: condition %q too short", ErrBadCondition, s)
	}

	var (
		opStr, operandStr string
	)

	if s[1] == '=' {
		opStr, operandStr = s[:2], strings.TrimSpace(s[2:])
	} else {
		opStr, operandStr = s[:1], strings.TrimSpace(s[1:])
	}

	op, ok := conditionOps[opStr]
	if !ok {
		return Condition{}, fmt.Errorf("%w: condition %q: unknown operator %q", ErrBadCondition, s, opStr)
	}

	operand, err := strconv.ParseInt(operandStr, 10, 32)
	if err != nil {
		return Condition{}, fmt.Errorf("%w: condition %q: %v", ErrBadCondition, s, err)
	}

	return Condition{Op: op, Operand: int32(operand)}, nil
}

var conditionOps = map[string]ConditionOp{
	"<": OpLt, "<=": OpLtEq, ">": OpGt, ">=": OpGtEq, "=": OpEq, "==": OpEq, "!=": OpNeq,
}

// WhenConditionKind tags which variant of WhenCondition is populated.
type WhenConditionKind int

const (
	WhenKindInputState WhenConditionKind = iota
	WhenKindCondition
)

// WhenCondition is either a literal InputState or a relational
// predicate over the raw value.
type WhenCondition struct {
	Kind      WhenConditionKind
	State     taxonomy.InputState
	Condition Condition
}

// PressedWhen is the default WhenCondition for hooks and prints.
func PressedWhen() WhenCondition {
	return WhenCondition{Kind: WhenKindInputState, State: taxonomy.Pressed}
}

// Test evaluates the condition against a raw value. An InputState
// variant tests equal after decoding value as an InputState; if value
// doesn't decode to a valid InputState, the test fails closed (false).
func (w WhenCondition) Test(value int32) bool {
	switch w.Kind {
	case WhenKindInputState:
		state, err := taxonomy.InputStateFromRaw(value)
		if err != nil {
			return false
		}

		return state == w.State

	case WhenKindCondition:
		return w.Condition.Test(value)

	default:
		return false
	}
}

func (w WhenCondition) String() string {
	switch w.Kind {
	case WhenKindInputState:
		return w.State.String()
	case WhenKindCondition:
		return w.Condition.String()
	default:
		return ""
	}
}

// ParseWhenCondition parses either an InputState slug
// ("pressed"|"released"|"repeated") or a Condition predicate string.
func ParseWhenCondition(s string) (WhenCondition, error) {
	if state, err := taxonomy.ParseInputState(s); err == nil {
		return WhenCondition{Kind: WhenKindInputState, State: state}, nil
	}

	cond, err := ParseCondition(s)
	if err != nil {
		return WhenCondition{}, fmt.Errorf("config.ParseWhenCondition: %w", err)
	}

	return WhenCondition{Kind: WhenKindCondition, Condition: cond}, nil
}
