// Package validate holds the contact-field predicates and the form
// level validity rule gating the submit control.
package validate

import (
	"regexp"
	"strings"

	"github.com/primecut/storefront/internal/pricing"
)

var (
	// Deliberately loose: local@domain.tld shape, not full RFC 5322.
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Raw phone input may only contain digits, spaces, hyphens,
	// parentheses and plus signs.
	phoneRe     = regexp.MustCompile(`^[\d\s\-()+]+$`)
	nonDigitsRe = regexp.MustCompile(`\D`)
)

// Field is one predicate outcome with its user-facing message.
type Field struct {
	Valid   bool
	Message string
}

func ok() Field { return Field{Valid: true} }

func fail(msg string) Field { return Field{Valid: false, Message: msg} }

// FirstName requires a trimmed length of at least two characters.
func FirstName(v string) Field {
	if len(strings.TrimSpace(v)) < 2 {
		return fail("Please enter your first name")
	}
	return ok()
}

func LastName(v string) Field {
	if len(strings.TrimSpace(v)) < 2 {
		return fail("Please enter your last name")
	}
	return ok()
}

func Email(v string) Field {
	if !emailRe.MatchString(v) {
		return fail("Please enter a valid email address")
	}
	return ok()
}

// Phone accepts at least ten digits once formatting characters are
// stripped, and rejects raw input containing anything beyond digits,
// spaces, hyphens, parentheses and plus signs.
func Phone(v string) Field {
	digits := nonDigitsRe.ReplaceAllString(v, "")
	if !phoneRe.MatchString(v) || len(digits) < 10 {
		return fail("Please enter a valid phone number (at least 10 digits)")
	}
	return ok()
}

// Fields is the customer contact block of the order form.
type Fields struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// Check runs every field predicate and returns the failures.
func (f Fields) Check() []Field {
	var bad []Field
	for _, r := range []Field{
		FirstName(f.FirstName),
		LastName(f.LastName),
		Email(f.Email),
		Phone(f.Phone),
	} {
		if !r.Valid {
			bad = append(bad, r)
		}
	}
	return bad
}

func (f Fields) Valid() bool { return len(f.Check()) == 0 }

// Form is the whole-form validity bit: every field predicate passes,
// the cart is non-empty and a fulfillment method is selected. The
// submit control tracks this reactively after every relevant change.
func Form(fields Fields, cartSize int, method pricing.Fulfillment) bool {
	if cartSize == 0 {
		return false
	}
	if method != pricing.Delivery && method != pricing.Shipping {
		return false
	}
	return fields.Valid()
}
