package ast

// Equal reports whether a and b are structurally the same tree. Source
// positions are ignored, and so is the spelling of an operator that has more
// than one form (`!` and `not` are both NOT).
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Program:
		y, ok := b.(*Program)
		return ok && equalStatements(x.Statements, y.Statements)
	case *ExprStmt:
		y, ok := b.(*ExprStmt)
		return ok && Equal(x.Expr, y.Expr)
	case *BlockStmt:
		y, ok := b.(*BlockStmt)
		return ok && equalStatements(x.Stmts, y.Stmts)
	case *VarDecl:
		y, ok := b.(*VarDecl)
		return ok &&
			x.Name == y.Name &&
			x.IsConst == y.IsConst &&
			x.Mutable == y.Mutable &&
			x.Type == y.Type &&
			Equal(x.Value, y.Value)
	case *StringLiteral:
		y, ok := b.(*StringLiteral)
		return ok && x.Value == y.Value
	case *NumberLiteral:
		y, ok := b.(*NumberLiteral)
		return ok && x.Value == y.Value
	case *FloatLiteral:
		y, ok := b.(*FloatLiteral)
		return ok && x.Value == y.Value
	case *Symbol:
		y, ok := b.(*Symbol)
		return ok && x.Name == y.Name
	case *Grouping:
		y, ok := b.(*Grouping)
		return ok && Equal(x.Inner, y.Inner)
	case *Unary:
		y, ok := b.(*Unary)
		return ok && x.Operator.Type == y.Operator.Type && Equal(x.Operand, y.Operand)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Operator == y.Operator && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Assignment:
		y, ok := b.(*Assignment)
		return ok && x.Operator == y.Operator && Equal(x.Target, y.Target) && Equal(x.Value, y.Value)
	}
	return false
}

func equalStatements(a, b []Statement) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
