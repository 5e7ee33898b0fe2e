package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/SscSPs/mandi_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	namePattern    = regexp.MustCompile(`^[\p{L}\p{M}\p{N}_ .,'&/()\-]+$`)
	itemPattern    = regexp.MustCompile(`^[\p{L}\p{M}\p{N}_ .,'&/()\-+%]+$`)
	angleBrackets  = strings.NewReplacer("<", "", ">", "")
	forbiddenChars = "<>"
)

// MaxDecimalPlaces is the finest precision accepted for quantities, prices and amounts.
// Products of two such values fit the four-place storage scale exactly.
const MaxDecimalPlaces int32 = 2

// Limits bounds every validated field.
type Limits struct {
	MinQuantity       decimal.Decimal
	MaxQuantity       decimal.Decimal
	MinPrice          decimal.Decimal
	MaxPrice          decimal.Decimal
	MaxAmount         decimal.Decimal
	MaxNameLength     int
	MaxItemNameLength int
	MaxNotesLength    int
}

// DefaultLimits returns the bounds used when nothing is configured.
func DefaultLimits() Limits {
	return Limits{
		MinQuantity:       decimal.RequireFromString("0.01"),
		MaxQuantity:       decimal.NewFromInt(10000),
		MinPrice:          decimal.RequireFromString("0.01"),
		MaxPrice:          decimal.NewFromInt(1000000),
		MaxAmount:         decimal.NewFromInt(100000000),
		MaxNameLength:     100,
		MaxItemNameLength: 100,
		MaxNotesLength:    500,
	}
}

// Validator checks raw field values. It holds no mutable state and is safe for concurrent use.
type Validator struct {
	limits Limits
}

func NewValidator(limits Limits) *Validator {
	return &Validator{limits: limits}
}

// NormalizeText collapses whitespace runs to a single space and trims the ends.
func NormalizeText(value string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(value, " "))
}

// SanitizeString strips angle brackets, then normalizes whitespace.
func SanitizeString(value string) string {
	return NormalizeText(angleBrackets.Replace(value))
}

// ValidateName checks a counterparty name. label is used in the error message.
func (v *Validator) ValidateName(value, label string) error {
	return v.validateText(value, label, v.limits.MaxNameLength, namePattern)
}

// ValidateItemName checks a commodity name; it also allows '+' and '%'.
func (v *Validator) ValidateItemName(value string) error {
	return v.validateText(value, "Item Name", v.limits.MaxItemNameLength, itemPattern)
}

func (v *Validator) validateText(value, label string, maxLen int, pattern *regexp.Regexp) error {
	value = NormalizeText(value)
	if value == "" {
		return apperrors.NewValidationError(fmt.Sprintf("%s cannot be empty", label))
	}
	if utf8.RuneCountInString(value) > maxLen {
		return apperrors.NewValidationError(fmt.Sprintf("%s exceeds maximum length of %d characters", label, maxLen))
	}
	if strings.ContainsAny(value, forbiddenChars) {
		return apperrors.NewValidationError(fmt.Sprintf("%s contains invalid characters", label))
	}
	if !pattern.MatchString(value) {
		return apperrors.NewValidationError(fmt.Sprintf("%s contains unsupported characters", label))
	}
	return nil
}

// ValidateNotes checks an optional free-text note. Empty is valid.
func (v *Validator) ValidateNotes(value string) error {
	if value == "" {
		return nil
	}
	if utf8.RuneCountInString(value) > v.limits.MaxNotesLength {
		return apperrors.NewValidationError(fmt.Sprintf("Notes exceed maximum length of %d characters", v.limits.MaxNotesLength))
	}
	if strings.ContainsAny(value, forbiddenChars) {
		return apperrors.NewValidationError("Notes contain invalid characters")
	}
	return nil
}

// ValidateNumericValue checks that value is a number within [min, max].
// Booleans are never treated as numbers.
func (v *Validator) ValidateNumericValue(value any, min, max decimal.Decimal, label string) error {
	d, err := toDecimal(value, label)
	if err != nil {
		return err
	}
	if d.LessThan(min) {
		return apperrors.NewValidationError(fmt.Sprintf("%s must be at least %s", label, min.String()))
	}
	if d.GreaterThan(max) {
		return apperrors.NewValidationError(fmt.Sprintf("%s cannot exceed %s", label, max.String()))
	}
	return nil
}

// ValidateQuantity, ValidatePrice and ValidateAmount apply the configured bounds
// and reject values finer than MaxDecimalPlaces.
func (v *Validator) ValidateQuantity(value any) error {
	return v.validateBounded(value, v.limits.MinQuantity, v.limits.MaxQuantity, "Quantity")
}

func (v *Validator) ValidatePrice(value any) error {
	return v.validateBounded(value, v.limits.MinPrice, v.limits.MaxPrice, "Price per Unit")
}

func (v *Validator) ValidateAmount(value any, label string) error {
	return v.validateBounded(value, decimal.Zero, v.limits.MaxAmount, label)
}

func (v *Validator) validateBounded(value any, min, max decimal.Decimal, label string) error {
	if err := v.ValidateNumericValue(value, min, max, label); err != nil {
		return err
	}
	d, _ := toDecimal(value, label)
	if !d.Equal(d.Truncate(MaxDecimalPlaces)) {
		return apperrors.NewValidationError(fmt.Sprintf("%s cannot have more than %d decimal places", label, MaxDecimalPlaces))
	}
	return nil
}

func toDecimal(value any, label string) (decimal.Decimal, error) {
	empty := apperrors.NewValidationError(fmt.Sprintf("%s cannot be empty", label))
	notNumber := apperrors.NewValidationError(fmt.Sprintf("%s must be a number", label))

	switch n := value.(type) {
	case nil:
		return decimal.Zero, empty
	case decimal.Decimal:
		return n, nil
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero, empty
		}
		return *n, nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, empty
		}
		return decimal.NewFromFloat(n), nil
	case float32:
		f := float64(n)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, empty
		}
		return decimal.NewFromFloat32(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int32:
		return decimal.NewFromInt32(n), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case uint:
		return decimal.NewFromUint64(uint64(n)), nil
	case uint64:
		return decimal.NewFromUint64(n), nil
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero, notNumber
		}
		return d, nil
	default:
		return decimal.Zero, notNumber
	}
}
