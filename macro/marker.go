// Package macro reads annotation markers out of an extended tree. Markers are
// HTML comments of the form
//
//	<!-- scope: attribute -->
//	<!-- scope: attribute#value, other -->
//
// They annotate the next sibling block, or, with the reserved layout scope,
// mark slot boundaries for the layout partitioner.
package macro

import (
	"regexp"
	"strings"
)

var (
	markerPattern    = regexp.MustCompile(`^<!--\s*([A-Za-z][\w.-]*)\s*:\s*(.*?)\s*-->$`)
	attributePattern = regexp.MustCompile(`^[A-Za-z][\w.-]*$`)
)

// Item is one attribute of a marker.
type Item struct {
	Attribute string
	Value     string
	HasValue  bool
}

// Marker is a parsed marker comment.
type Marker struct {
	Scope string
	Items []Item
	Raw   string
}

// ParseMarker reports whether raw is a well-formed single-line marker.
// Anything else is ordinary content and yields false.
func ParseMarker(raw string) (Marker, bool) {
	trimmed := strings.TrimSpace(raw)
	if strings.ContainsAny(trimmed, "\r\n") {
		return Marker{}, false
	}

	match := markerPattern.FindStringSubmatch(trimmed)
	if len(match) != 3 || match[2] == "" {
		return Marker{}, false
	}

	marker := Marker{
		Scope: match[1],
		Raw:   trimmed,
	}
	for _, field := range strings.Split(match[2], ",") {
		item, ok := parseItem(strings.TrimSpace(field))
		if !ok {
			return Marker{}, false
		}
		marker.Items = append(marker.Items, item)
	}

	return marker, true
}

func parseItem(field string) (Item, bool) {
	attribute, value, hasValue := strings.Cut(field, "#")
	attribute = strings.TrimSpace(attribute)
	if !attributePattern.MatchString(attribute) {
		return Item{}, false
	}
	return Item{
		Attribute: attribute,
		Value:     strings.TrimSpace(value),
		HasValue:  hasValue,
	}, true
}
