package config

import "testing"

func TestConditionSemantics(t *testing.T) {
	ops := []struct {
		op  ConditionOp
		str string
	}{
		{OpLt, "<"}, {OpLtEq, "<="}, {OpGt, ">"}, {OpGtEq, ">="}, {OpEq, "="}, {OpNeq, "!="},
	}

	ints := []int32{-3, -1, 0, 1, 2, 5}

	for _, o := range ops {
		for _, a := range ints {
			for _, b := range ints {
				cond := Condition{Op: o.op, Operand: b}

				got := cond.Test(a)

				var want bool
				switch o.op {
				case OpLt:
					want = a < b
				case OpLtEq:
					want = a <= b
				case OpGt:
					want = a > b
				case OpGtEq:
					want = a >= b
				case OpEq:
					want = a == b
				case OpNeq:
					want = a != b
				}

				if got != want {
					t.Errorf("Condition{%v,%d}.Test(%d) = %v, want %v", o.op, b, a, got, want)
				}
			}
		}
	}
}

func TestParseCondition(t *testing.T) {
	cases := []struct {
		in   string
		op   ConditionOp
		want int32
	}{
		{">0", OpGt, 0},
		{">=3", OpGtEq, 3},
		{"<=-1", OpLtEq, -1},
		{"<5", OpLt, 5},
		{"=2", OpEq, 2},
		{"==2", OpEq, 2},
		{"!=7", OpNeq, 7},
	}

	for _, c := range cases {
		got, err := ParseCondition(c.in)
		if err != nil {
			t.Fatalf("ParseCondition(%q) failed: %v", c.in, err)
		}

		if got.Op != c.op || got.Operand != c.want {
			t.Errorf("ParseCondition(%q) = %+v, want {%v %d}", c.in, got, c.op, c.want)
		}
	}
}

func TestParseWhenCondition(t *testing.T) {
	when, err := ParseWhenCondition("pressed")
	if err != nil {
		t.Fatalf("ParseWhenCondition(pressed): %v", err)
	}

	if !when.Test(1) || when.Test(0) {
		t.Errorf("ParseWhenCondition(pressed).Test: got wrong results")
	}

	when, err = ParseWhenCondition(">0")
	if err != nil {
		t.Fatalf("ParseWhenCondition(>0): %v", err)
	}

	if !when.Test(3) || when.Test(-3) {
		t.Errorf("ParseWhenCondition(>0).Test: got wrong results")
	}
}
