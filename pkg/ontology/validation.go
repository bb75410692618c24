package ontology

import (
	"regexp"

	"github.com/dhruvd-1/semtok/pkg/errors"
)

// ValidateValue checks a property value against the constraints declared on
// a class. Properties without constraints always validate. The returned
// error is validation-typed with class/property details attached.
func (o *Ontology) ValidateValue(className, propertyName string, value interface{}) error {
	cls, ok := o.Classes[className]
	if !ok {
		return errors.New(errors.ErrorTypeNotFound, "class not found").
			WithDetail("class", className)
	}

	con, ok := cls.Constraints[propertyName]
	if !ok {
		return nil
	}

	fail := func(msg string) error {
		return errors.New(errors.ErrorTypeValidation, msg).
			WithDetail("class", className).
			WithDetail("property", propertyName).
			WithDetail("value", value)
	}

	if con.Required && value == nil {
		return fail("property is required")
	}
	if value == nil {
		return nil
	}

	switch con.Type {
	case "string":
		if _, ok := value.(string); !ok {
			return fail("expected string value")
		}
	case "number":
		if !isNumeric(value) {
			return fail("expected numeric value")
		}
	case "integer":
		if !isInteger(value) {
			return fail("expected integer value")
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fail("expected boolean value")
		}
	case "enum":
		s, ok := value.(string)
		if !ok {
			return fail("expected string value for enum")
		}
		found := false
		for _, allowed := range con.Values {
			if s == allowed {
				found = true
				break
			}
		}
		if !found {
			return fail("value not in enum")
		}
	}

	if n, ok := asFloat(value); ok {
		if con.Min != nil && n < *con.Min {
			return fail("value below minimum")
		}
		if con.Max != nil && n > *con.Max {
			return fail("value above maximum")
		}
	}

	if con.Pattern != "" {
		if s, ok := value.(string); ok {
			re, err := regexp.Compile(con.Pattern)
			if err != nil {
				return errors.Wrap(err, errors.ErrorTypeConfig, "invalid constraint pattern").
					WithDetail("property", propertyName)
			}
			if !re.MatchString(s) {
				return fail("value does not match pattern")
			}
		}
	}

	return nil
}

func isNumeric(v interface{}) bool {
	switch v.(type) {
	case int, int32, int64, float32, float64:
		return true
	}
	return false
}

func isInteger(v interface{}) bool {
	switch n := v.(type) {
	case int, int32, int64:
		return true
	case float64:
		// JSON decoding yields float64 for all numbers
		return n == float64(int64(n))
	}
	return false
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
