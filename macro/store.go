package macro

// Value is a recorded annotation. Flag markers record an empty Text with
// HasText false.
type Value struct {
	Text    string
	HasText bool
}

// Store holds the annotations of one block, keyed by scope then attribute.
// A nil *Store is valid and holds nothing.
type Store struct {
	scopes map[string]map[string]Value
}

func NewStore() *Store {
	return &Store{scopes: map[string]map[string]Value{}}
}

// Record sets scope/attribute to value. Other attributes of the scope are
// left untouched.
func (s *Store) Record(scope, attribute string, value Value) {
	attrs, ok := s.scopes[scope]
	if !ok {
		attrs = map[string]Value{}
		s.scopes[scope] = attrs
	}
	attrs[attribute] = value
}

func (s *Store) recordMarker(marker Marker) {
	for _, item := range marker.Items {
		s.Record(marker.Scope, item.Attribute, Value{Text: item.Value, HasText: item.HasValue})
	}
}

// Lookup returns the value recorded for exactly scope/attribute.
func (s *Store) Lookup(scope, attribute string) (Value, bool) {
	if s == nil {
		return Value{}, false
	}
	value, ok := s.scopes[scope][attribute]
	return value, ok
}

// Check looks attribute up under scope, then under fallback. The first hit
// wins; false means the attribute is not set.
func (s *Store) Check(scope, fallback, attribute string) (Value, bool) {
	if value, ok := s.Lookup(scope, attribute); ok {
		return value, true
	}
	if fallback == "" || fallback == scope {
		return Value{}, false
	}
	return s.Lookup(fallback, attribute)
}

// Has is Check without the value.
func (s *Store) Has(scope, fallback, attribute string) bool {
	_, ok := s.Check(scope, fallback, attribute)
	return ok
}

// Len returns the number of recorded scope/attribute pairs.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	total := 0
	for _, attrs := range s.scopes {
		total += len(attrs)
	}
	return total
}
