package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dhruvd-1/semtok/pkg/errors"
)

func TestValidateValue(t *testing.T) {
	o := Default()

	tests := []struct {
		name     string
		class    string
		property string
		value    interface{}
		wantErr  bool
	}{
		{"unconstrained passes", "Customer", "dateOfBirth", "1990-04-01", false},
		{"required present", "Customer", "customerId", "CUS-000001", false},
		{"required nil", "Customer", "customerId", nil, true},
		{"enum ok", "Customer", "customerTier", "gold", false},
		{"enum bad", "Customer", "customerTier", "diamond", true},
		{"number min ok", "Order", "totalAmount", 10.5, false},
		{"number min violated", "Order", "totalAmount", -1.0, true},
		{"wrong type for number", "Order", "totalAmount", "ten", true},
		{"integer range ok", "Review", "rating", 5, false},
		{"integer range high", "Review", "rating", 6, true},
		{"json float as integer", "Review", "rating", 4.0, false},
		{"fractional as integer", "Review", "rating", 4.5, true},
		{"pattern ok", "Person", "email", "jane@example.com", false},
		{"pattern bad", "Person", "email", "not-an-email", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := o.ValidateValue(tt.class, tt.property, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateValueUnknownClass(t *testing.T) {
	o := Default()

	err := o.ValidateValue("Spaceship", "speed", 42)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}
