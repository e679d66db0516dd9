// Package validation decides which attribute rules apply to a write and
// runs them.
//
// The rule set depends on the update mode. A full replace (PUT, and
// create) checks every attribute unconditionally. A partial merge
// (PATCH) only checks the attributes present in the payload; absent ones
// are neither validated nor returned, so the caller leaves them as they
// are on the record.
//
// Format rules are go-playground/validator tags run through Validate.Var.
// Email uniqueness needs the store, so it is checked separately through a
// UniquenessChecker, ignoring the record being updated.
package validation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aanand-mishra/students-jsonapi/internal/types"

	"github.com/go-playground/validator/v10"
)

// Mode selects the rule set.
type Mode int

const (
	// FullReplace requires every attribute.
	FullReplace Mode = iota
	// PartialMerge checks only attributes present in the payload.
	PartialMerge
)

func (m Mode) String() string {
	switch m {
	case FullReplace:
		return "full-replace"
	case PartialMerge:
		return "partial-merge"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ModeForMethod maps an HTTP verb onto an update mode. PATCH merges,
// anything else replaces.
func ModeForMethod(method string) Mode {
	if method == http.MethodPatch {
		return PartialMerge
	}
	return FullReplace
}

// Rule is one attribute's constraints.
type Rule struct {
	Field string
	// Tag is a validator tag string, e.g. "required,min=5".
	Tag string
	// Unique asks for the store-backed uniqueness check once Tag passes.
	Unique bool
}

// TagUnique and TagString are reported in FieldError.Tag for the checks
// that are not validator tags.
const (
	TagUnique = "unique"
	TagString = "string"
)

// attributeRules is ordered; errors are reported in this order.
var attributeRules = []Rule{
	{Field: types.FieldName, Tag: "required,min=5"},
	{Field: types.FieldAddress, Tag: "required"},
	{Field: types.FieldEmail, Tag: "required,email", Unique: true},
}

// SelectRules builds a fresh rule set for one request.
func SelectRules(mode Mode, attrs map[string]any) []Rule {
	rules := make([]Rule, 0, len(attributeRules))
	for _, rule := range attributeRules {
		if mode == PartialMerge {
			if _, present := attrs[rule.Field]; !present {
				continue
			}
		}
		rules = append(rules, rule)
	}
	return rules
}

// FieldError describes why one attribute failed.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

// Error carries every failing attribute of a payload.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Tag)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Duplicate builds the error reported when the store itself rejects an
// email as a duplicate.
func Duplicate() *Error {
	return &Error{Fields: []FieldError{{Field: types.FieldEmail, Tag: TagUnique}}}
}

// UniquenessChecker is the part of the store the engine needs.
type UniquenessChecker interface {
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
}

// Engine is safe for concurrent use.
type Engine struct {
	validate *validator.Validate
	checker  UniquenessChecker
}

func New(checker UniquenessChecker) *Engine {
	return &Engine{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		checker:  checker,
	}
}

// Validate checks attrs against the rules selected for mode. excludeID is
// the record being updated, or 0 when creating.
//
// String values are trimmed before the rules run and returned trimmed.
// On success it returns only the attributes that were checked. When any
// rule fails the returned error is a *Error listing every failing field.
// Any other error comes from the uniqueness lookup.
func (e *Engine) Validate(ctx context.Context, mode Mode, attrs map[string]any, excludeID int64) (map[string]string, error) {
	rules := SelectRules(mode, attrs)
	fields := make(map[string]string, len(rules))
	var failed []FieldError

	for _, rule := range rules {
		raw := attrs[rule.Field]
		value, isString := raw.(string)
		if raw != nil && !isString {
			failed = append(failed, FieldError{Field: rule.Field, Tag: TagString})
			continue
		}
		// Surrounding whitespace is not part of the value: a blank string
		// fails required and padding does not count toward min.
		value = strings.TrimSpace(value)

		if err := e.validate.Var(value, rule.Tag); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return nil, fmt.Errorf("validation: %s: %w", rule.Field, err)
			}
			for _, fe := range verrs {
				failed = append(failed, FieldError{Field: rule.Field, Tag: fe.Tag(), Param: fe.Param()})
			}
			continue
		}

		if rule.Unique {
			taken, err := e.checker.EmailTaken(ctx, value, excludeID)
			if err != nil {
				return nil, fmt.Errorf("validation: %s uniqueness: %w", rule.Field, err)
			}
			if taken {
				failed = append(failed, FieldError{Field: rule.Field, Tag: TagUnique})
				continue
			}
		}

		fields[rule.Field] = value
	}

	if len(failed) > 0 {
		return nil, &Error{Fields: failed}
	}
	return fields, nil
}
