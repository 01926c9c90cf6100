package arith

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownOperation is returned by Lookup for names it does not recognise.
var ErrUnknownOperation = errors.New("unknown operation")

// Operation is a named binary operation that suites can refer to by name.
type Operation struct {
	Name   string
	Symbol string
	Apply  func(a, b float64) float64
}

var operations = map[string]Operation{
	"add":      {Name: "add", Symbol: "+", Apply: Add},
	"subtract": {Name: "subtract", Symbol: "-", Apply: Subtract},
}

var aliases = map[string]string{
	"+":     "add",
	"plus":  "add",
	"sum":   "add",
	"-":     "subtract",
	"sub":   "subtract",
	"minus": "subtract",
}

// Lookup resolves an operation by name, symbol or alias (case-insensitive).
func Lookup(name string) (Operation, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	op, ok := operations[key]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	return op, nil
}

// Names returns the canonical operation names in sorted order.
func Names() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the operation applied to a and b, e.g. "add(1, 2)".
func (o Operation) String(a, b float64) string {
	return fmt.Sprintf("%s(%v, %v)", o.Name, a, b)
}
