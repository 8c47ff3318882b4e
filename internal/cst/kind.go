package cst

// Kind tags the syntactic construct a Node represents.
type Kind uint8

const (
	// KindFile is the root node of one source file.
	KindFile Kind = iota
	// KindImport is an 'import path [as alias];' declaration.
	KindImport
	// KindFn is a function declaration.
	KindFn
	// KindTypeDecl is a 'type Name { fields }' declaration.
	KindTypeDecl
	// KindConstDecl is a 'const NAME: T = expr;' declaration.
	KindConstDecl
	// KindField is one 'name: Type' entry of a type body.
	KindField
	// KindParam is one 'name: Type' entry of a parameter list.
	KindParam
	// KindParamList is the parenthesized parameter list of a function.
	KindParamList
	// KindBlock is a '{ ... }' statement block.
	KindBlock
	// KindPath is a dotted module path.
	KindPath
	// KindTypeRef is a type reference.
	KindTypeRef

	// KindLetStmt is a 'let name[: T] = expr;' statement.
	KindLetStmt
	// KindIfStmt is an 'if cond { } [else ...]' statement.
	KindIfStmt
	// KindWhileStmt is a 'while cond { }' statement.
	KindWhileStmt
	// KindReturnStmt is a 'return [expr];' statement.
	KindReturnStmt
	// KindBreakStmt is a 'break;' statement.
	KindBreakStmt
	// KindContinueStmt is a 'continue;' statement.
	KindContinueStmt
	// KindExprStmt is an expression used as a statement.
	KindExprStmt
	// KindAssignStmt is a 'target = expr;' statement.
	KindAssignStmt

	// KindCallExpr is a call expression.
	KindCallExpr
	// KindArgList is the parenthesized argument list of a call.
	KindArgList
	// KindBinaryExpr is a binary operator expression.
	KindBinaryExpr
	// KindUnaryExpr is a prefix operator expression.
	KindUnaryExpr
	// KindMemberExpr is an 'expr.name' access.
	KindMemberExpr
	// KindParenExpr is a parenthesized expression.
	KindParenExpr
)

var kindNames = [...]string{
	KindFile:         "File",
	KindImport:       "Import",
	KindFn:           "Fn",
	KindTypeDecl:     "TypeDecl",
	KindConstDecl:    "ConstDecl",
	KindField:        "Field",
	KindParam:        "Param",
	KindParamList:    "ParamList",
	KindBlock:        "Block",
	KindPath:         "Path",
	KindTypeRef:      "TypeRef",
	KindLetStmt:      "LetStmt",
	KindIfStmt:       "IfStmt",
	KindWhileStmt:    "WhileStmt",
	KindReturnStmt:   "ReturnStmt",
	KindBreakStmt:    "BreakStmt",
	KindContinueStmt: "ContinueStmt",
	KindExprStmt:     "ExprStmt",
	KindAssignStmt:   "AssignStmt",
	KindCallExpr:     "CallExpr",
	KindArgList:      "ArgList",
	KindBinaryExpr:   "BinaryExpr",
	KindUnaryExpr:    "UnaryExpr",
	KindMemberExpr:   "MemberExpr",
	KindParenExpr:    "ParenExpr",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsDecl reports whether the kind is a top-level declaration.
func (k Kind) IsDecl() bool {
	switch k {
	case KindImport, KindFn, KindTypeDecl, KindConstDecl:
		return true
	default:
		return false
	}
}

// IsStmt reports whether the kind is a statement.
func (k Kind) IsStmt() bool {
	switch k {
	case KindLetStmt, KindIfStmt, KindWhileStmt, KindReturnStmt,
		KindBreakStmt, KindContinueStmt, KindExprStmt, KindAssignStmt, KindBlock:
		return true
	default:
		return false
	}
}
