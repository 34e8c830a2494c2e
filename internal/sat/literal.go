package sat

import "fmt"

// Literal is a signed reference to a variable: the variable id times two,
// plus one if the literal is the negation of the variable.
type Literal int

// PositiveLiteral returns the literal asserting variable v.
func PositiveLiteral(v int) Literal {
	return Literal(v * 2)
}

// NegativeLiteral returns the literal asserting the negation of variable v.
func NegativeLiteral(v int) Literal {
	return Literal(v*2 + 1)
}

// VarID returns the id of the literal's variable.
func (l Literal) VarID() int {
	return int(l) / 2
}

// IsPositive reports whether l asserts its variable directly, as opposed to
// its negation.
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the negation of l. Negation only ever flips the polarity
// bit, never the variable it refers to.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID())
	}
	return fmt.Sprintf("-%d", l.VarID())
}
