package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/primecut/storefront/internal/pricing"
	"github.com/primecut/storefront/internal/validate"
)

func TestNames(t *testing.T) {
	assert.True(t, validate.FirstName("Jo").Valid)
	assert.True(t, validate.FirstName("  Jo  ").Valid)
	assert.False(t, validate.FirstName("J").Valid)
	assert.False(t, validate.FirstName("  J  ").Valid)
	assert.False(t, validate.FirstName("").Valid)

	assert.True(t, validate.LastName("Smith").Valid)
	assert.False(t, validate.LastName(" S ").Valid)
}

func TestEmail(t *testing.T) {
	assert.True(t, validate.Email("a@b.co").Valid)
	assert.True(t, validate.Email("jane.doe+orders@example.com").Valid)

	// No dot after the at sign fails the shape check.
	assert.False(t, validate.Email("test@test").Valid)
	assert.False(t, validate.Email("not an email").Valid)
	assert.False(t, validate.Email("a b@c.d").Valid)
	assert.False(t, validate.Email("").Valid)
}

func TestPhone(t *testing.T) {
	assert.True(t, validate.Phone("555-123-4567").Valid)
	assert.True(t, validate.Phone("(555) 123 4567").Valid)
	assert.True(t, validate.Phone("+1 555 123 4567").Valid)

	// Too few digits.
	assert.False(t, validate.Phone("555-1234").Valid)
	// Letters are rejected outright.
	assert.False(t, validate.Phone("555-123-456x").Valid)
	assert.False(t, validate.Phone("").Valid)
}

func validFields() validate.Fields {
	return validate.Fields{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "555-123-4567",
	}
}

func TestFieldsCheck(t *testing.T) {
	assert.Empty(t, validFields().Check())
	assert.True(t, validFields().Valid())

	bad := validFields()
	bad.Email = "test@test"
	bad.Phone = "123"
	failures := bad.Check()
	assert.Len(t, failures, 2)
	for _, f := range failures {
		assert.NotEmpty(t, f.Message)
	}
}

func TestForm(t *testing.T) {
	assert.True(t, validate.Form(validFields(), 2, pricing.Delivery))
	assert.True(t, validate.Form(validFields(), 1, pricing.Shipping))

	// Empty cart blocks submission regardless of fields.
	assert.False(t, validate.Form(validFields(), 0, pricing.Delivery))
	// Missing fulfillment method blocks submission.
	assert.False(t, validate.Form(validFields(), 2, pricing.None))

	bad := validFields()
	bad.FirstName = "J"
	assert.False(t, validate.Form(bad, 2, pricing.Delivery))
}
