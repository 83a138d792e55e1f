package domain

// Optional represents a request field with three distinct states:
// unset (the field is omitted from the outbound body), explicit null
// (the field is transmitted as JSON null, which the ClickUp API treats
// as a clear signal, e.g. unassigning a checklist item), and set to a
// value. The zero value is unset.
type Optional struct {
	present bool
	value   interface{} // nil while present means explicit null
}

// Unset returns an Optional in the unset state.
func Unset() Optional {
	return Optional{}
}

// Null returns an Optional carrying an explicit JSON null.
func Null() Optional {
	return Optional{present: true}
}

// Value returns an Optional carrying the given value.
// Value(nil) is equivalent to Null().
func Value(v interface{}) Optional {
	return Optional{present: true, value: v}
}

// Present reports whether the field was supplied at all
// (either as null or as a value).
func (o Optional) Present() bool {
	return o.present
}

// IsNull reports whether the field was supplied as explicit null.
func (o Optional) IsNull() bool {
	return o.present && o.value == nil
}

// Get returns the carried value and whether the field was supplied.
// For an explicit null the value is nil with ok true.
func (o Optional) Get() (interface{}, bool) {
	return o.value, o.present
}

// Apply writes the field into a JSON body map, preserving the three-way
// distinction: unset fields are not written at all, null fields are
// written with a nil value (serialized as JSON null), and set fields
// carry their value.
func (o Optional) Apply(body map[string]interface{}, field string) {
	if !o.present {
		return
	}
	body[field] = o.value
}
