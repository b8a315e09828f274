// Package diagnostics defines the single error type returned by every
// analysis pass. Analysis never collects multiple errors: the first one
// found aborts the pass and is returned to the caller, always carrying a
// source span.
package diagnostics

import "fmt"

// Code classifies a diagnostic by the taxonomy entry it corresponds to.
type Code string

const (
	CodeRedefined          Code = "redefined"
	CodeUnknownIdent       Code = "unknown-ident"
	CodeUnknownType        Code = "unknown-type"
	CodeTypeMismatch       Code = "type-mismatch"
	CodeNotConst           Code = "not-const"
	CodeArrayReturn        Code = "array-return"
	CodeRecursion          Code = "recursion"
	CodeCrossStageDep      Code = "cross-stage-dep"
	CodeMissingEntryPoint  Code = "missing-entry-point"
	CodeBadArity           Code = "bad-arity"
	CodeBadConstructorArgs Code = "bad-constructor-args"
	CodeNotAssignable      Code = "not-assignable"
	CodeBreakOutsideLoop   Code = "break-outside-loop"
	CodeContinueOutsideLoop Code = "continue-outside-loop"
	CodeReturnTypeMismatch Code = "return-type-mismatch"
	CodeBadAttributeType   Code = "bad-attribute-type"
	CodeBadTextureType     Code = "bad-texture-type"
	CodeCannotInferType    Code = "cannot-infer-type"
	CodeVoidInit           Code = "void-init"
	CodeBadStep            Code = "bad-step"
	CodeMissingReturn      Code = "missing-return"
)

// Span is a half-open byte/rune range into the analysed source, plus its
// 0-based line/column for display.
type Span struct {
	Start, End int
	Line, Col  int
}

// Error is the concrete error type every analysis function returns.
type Error struct {
	Span    Span
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Span.Line+1, e.Span.Col+1, e.Message)
}

func newErr(span Span, code Code, msg string, args ...interface{}) *Error {
	return &Error{Span: span, Code: code, Message: fmt.Sprintf(msg, args...)}
}

// Redefined reports a symbol redeclared in the same scope.
func Redefined(span Span, name string) *Error {
	return newErr(span, CodeRedefined, "`%s` is already defined in this scope", name)
}

// UnknownIdent reports a reference to an undeclared identifier.
func UnknownIdent(span Span, name string) *Error {
	return newErr(span, CodeUnknownIdent, "`%s` is not defined", name)
}

// UnknownType reports a reference to an undeclared type name.
func UnknownType(span Span, name string) *Error {
	return newErr(span, CodeUnknownType, "`%s` is not a type", name)
}

// TypeMismatch reports an expression whose type disagrees with context.
func TypeMismatch(span Span, expected, got string) *Error {
	return newErr(span, CodeTypeMismatch, "expected type `%s`, got `%s`", expected, got)
}

// NotConst reports an expression used where a constant is required but the
// evaluator could not fold it.
func NotConst(span Span) *Error {
	return newErr(span, CodeNotConst, "expression is not a constant")
}

// ArrayReturn reports a non-entry function declared to return an array.
func ArrayReturn(span Span, fn string) *Error {
	return newErr(span, CodeArrayReturn, "function `%s` cannot return an array", fn)
}

// Recursion reports a call graph cycle discovered by the call-tree walker:
// caller calls callee, and callee is already on the walker's call stack.
func Recursion(span Span, caller, callee string) *Error {
	return newErr(span, CodeRecursion, "function `%s` calls `%s`, forming a recursive call cycle", caller, callee)
}

// CrossStageDep reports a function reachable from both the vertex and the
// pixel stage that depends on a geometry attribute, an instance attribute,
// or a varying.
func CrossStageDep(span Span, name, kind string) *Error {
	return newErr(span, CodeCrossStageDep, "%s `%s` cannot be used across shader stages this way", kind, name)
}

// MissingEntryPoint reports a shader missing its vertex or pixel function.
func MissingEntryPoint(span Span, name string) *Error {
	return newErr(span, CodeMissingEntryPoint, "shader has no `%s` entry point", name)
}

// BadArity reports a call with the wrong number of arguments.
func BadArity(span Span, fn string, want, got int) *Error {
	return newErr(span, CodeBadArity, "`%s` expects %d argument(s), got %d", fn, want, got)
}

// BadConstructorArgs reports a constructor call whose arguments cannot be
// resolved to any overload.
func BadConstructorArgs(span Span, ty string) *Error {
	return newErr(span, CodeBadConstructorArgs, "no constructor of `%s` matches these arguments", ty)
}

// NotAssignable reports an assignment to a non-lvalue or immutable binding.
func NotAssignable(span Span, name string) *Error {
	return newErr(span, CodeNotAssignable, "`%s` cannot be assigned to", name)
}

// BreakOutsideLoop reports a break statement outside any loop.
func BreakOutsideLoop(span Span) *Error {
	return newErr(span, CodeBreakOutsideLoop, "`break` outside of a loop")
}

// ContinueOutsideLoop reports a continue statement outside any loop.
func ContinueOutsideLoop(span Span) *Error {
	return newErr(span, CodeContinueOutsideLoop, "`continue` outside of a loop")
}

// ReturnTypeMismatch reports a return expression whose type disagrees with
// the enclosing function's declared return type.
func ReturnTypeMismatch(span Span, fn, expected, got string) *Error {
	return newErr(span, CodeReturnTypeMismatch, "function `%s` returns `%s`, found `%s`", fn, expected, got)
}

// BadAttributeType reports a geometry/instance/varying decl whose type is
// not a float or vector type.
func BadAttributeType(span Span, kind, name, ty string) *Error {
	return newErr(span, CodeBadAttributeType, "%s `%s` has type `%s`, expected a float or vector type", kind, name, ty)
}

// BadTextureType reports a texture decl whose type is not a texture type.
func BadTextureType(span Span, name, ty string) *Error {
	return newErr(span, CodeBadTextureType, "texture `%s` has type `%s`, expected a texture type", name, ty)
}

// CannotInferType reports a `let` binding with no type annotation whose
// initialiser's type cannot be inferred.
func CannotInferType(span Span, name string) *Error {
	return newErr(span, CodeCannotInferType, "cannot infer a type for `%s`", name)
}

// VoidInit reports a `let` binding initialised from a void expression.
func VoidInit(span Span, name string) *Error {
	return newErr(span, CodeVoidInit, "`%s` cannot be initialised from a void expression", name)
}

// BadStep reports a `for` loop whose step does not move the counter toward
// its bound.
func BadStep(span Span, reason string) *Error {
	return newErr(span, CodeBadStep, "invalid `for` step: %s", reason)
}

// MissingReturn reports a bare `return` (one with no value) inside a
// non-void function.
func MissingReturn(span Span, fn string) *Error {
	return newErr(span, CodeMissingReturn, "function `%s` returns without a value", fn)
}
