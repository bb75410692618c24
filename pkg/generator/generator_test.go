package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvd-1/semtok/pkg/errors"
	"github.com/dhruvd-1/semtok/pkg/ontology"
)

func TestRecordsDeterministic(t *testing.T) {
	ont := ontology.Default()

	a, err := New(ont, 42).Records("Customer", 10)
	require.NoError(t, err)
	b, err := New(ont, 42).Records("Customer", 10)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRecordsSeedChangesOutput(t *testing.T) {
	ont := ontology.Default()

	a, err := New(ont, 1).Records("Customer", 5)
	require.NoError(t, err)
	b, err := New(ont, 2).Records("Customer", 5)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestRecordsCoverAllProperties(t *testing.T) {
	ont := ontology.Default()

	records, err := New(ont, 7).Records("Customer", 3)
	require.NoError(t, err)
	require.Len(t, records, 3)

	props := ont.PropertiesForClass("Customer", true)
	for _, r := range records {
		assert.Len(t, r, len(props))
		for _, p := range props {
			assert.Contains(t, r, p)
		}
	}
}

func TestRecordsIDFormat(t *testing.T) {
	records, err := New(ontology.Default(), 3).Records("Customer", 2)
	require.NoError(t, err)

	assert.Equal(t, "CUS-000001", records[0]["customerId"])
	assert.Equal(t, "CUS-000002", records[1]["customerId"])
}

func TestRecordsValueShapes(t *testing.T) {
	records, err := New(ontology.Default(), 11).Records("Customer", 20)
	require.NoError(t, err)

	tiers := map[string]bool{"bronze": true, "silver": true, "gold": true, "platinum": true}
	for _, r := range records {
		email, ok := r["email"].(string)
		require.True(t, ok)
		assert.Contains(t, email, "@")

		tier, ok := r["customerTier"].(string)
		require.True(t, ok)
		assert.True(t, tiers[tier], tier)

		dob, ok := r["dateOfBirth"].(string)
		require.True(t, ok)
		require.Len(t, dob, 10)
		assert.Equal(t, byte('-'), dob[4])
		assert.Equal(t, byte('-'), dob[7])
	}
}

func TestRecordsCaseInsensitiveClass(t *testing.T) {
	records, err := New(ontology.Default(), 5).Records("customer", 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	id, _ := records[0]["customerId"].(string)
	assert.True(t, strings.HasPrefix(id, "CUS-"))
}

func TestRecordsSatisfyConstraints(t *testing.T) {
	ont := ontology.Default()

	for _, class := range []string{"Customer", "Order", "Review", "Payment", "Product"} {
		records, err := New(ont, 17).Records(class, 25)
		require.NoError(t, err, class)
		for _, r := range records {
			for name, v := range r {
				assert.NoError(t, ont.ValidateValue(class, name, v), "%s.%s", class, name)
			}
		}
	}
}

func TestRecordsRejectConstraintViolation(t *testing.T) {
	ont := &ontology.Ontology{
		Classes: map[string]*ontology.Class{
			"Kiosk": {
				Name:       "Kiosk",
				Properties: []string{"city"},
				Constraints: map[string]ontology.Constraint{
					"city": {Type: "enum", Values: []string{"Nowhere"}},
				},
			},
		},
		Properties: map[string]*ontology.Property{
			"city": {Name: "city", Datatype: "string"},
		},
	}

	_, err := New(ont, 5).Records("Kiosk", 1)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
}

func TestRecordsUnknownClass(t *testing.T) {
	_, err := New(ontology.Default(), 5).Records("Spaceship", 3)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}
