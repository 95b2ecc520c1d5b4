package domain

import (
	"strconv"
	"strings"
	"unique"
)

// InternedString is a value object that wraps a unique.Handle[string].
// Node identities are interned so that registry lookups and child mapping
// comparisons are handle comparisons rather than string comparisons.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString creates a new InternedString from a string.
func NewInternedString(s string) InternedString {
	return InternedString{
		h: unique.Make(s),
	}
}

const (
	// ExpressionsID is the identity of the expression list parent.
	ExpressionsID = "Expressions"
	// ModulePrefix names module children in ChildID identities.
	ModulePrefix = "Module"
	// ExpressionPrefix names expression children in ChildID identities.
	ExpressionPrefix = "Expr"
)

// ChildID builds the identity of the n-th child of parent in the form
// "<parent>.<prefix>-<n>".
func ChildID(parent InternedString, prefix string, n int) InternedString {
	var b strings.Builder
	b.WriteString(parent.String())
	b.WriteByte('.')
	b.WriteString(prefix)
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(n))
	return NewInternedString(b.String())
}

// ParseChildID splits an identity built by ChildID into its parent, prefix
// and index. ok is false for identities of any other shape.
func ParseChildID(id string) (parent, prefix string, n int, ok bool) {
	dash := strings.LastIndexByte(id, '-')
	if dash < 0 {
		return "", "", 0, false
	}
	n, err := strconv.Atoi(id[dash+1:])
	if err != nil || n < 0 || strings.HasPrefix(id[dash+1:], "+") {
		return "", "", 0, false
	}
	dot := strings.LastIndexByte(id[:dash], '.')
	if dot <= 0 || dot == dash-1 {
		return "", "", 0, false
	}
	return id[:dot], id[dot+1 : dash], n, true
}

// String returns the underlying string value.
func (is InternedString) String() string {
	if is.IsZero() {
		return ""
	}
	return is.h.Value()
}

// IsZero reports whether the value was never assigned.
func (is InternedString) IsZero() bool {
	var zero unique.Handle[string]
	return is.h == zero
}

// Compare orders two identities by their string value.
func (is InternedString) Compare(other InternedString) int {
	if is == other {
		return 0
	}
	return strings.Compare(is.String(), other.String())
}

// MarshalText implements encoding.TextMarshaler.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (is *InternedString) UnmarshalText(text []byte) error {
	is.h = unique.Make(string(text))
	return nil
}
