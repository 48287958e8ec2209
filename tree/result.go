package tree

// WarningType categorizes non-fatal problems found while compiling.
type WarningType string

const (
	WarningUnknownNode     WarningType = "unknown_node"
	WarningDanglingMarker  WarningType = "dangling_marker"
	WarningIgnoredMarker   WarningType = "ignored_marker"
	WarningUnsafeContent   WarningType = "unsafe_content"
	WarningUnbalancedHTML  WarningType = "unbalanced_html"
	WarningDroppedFeature  WarningType = "dropped_feature"
	WarningDuplicateAnchor WarningType = "duplicate_anchor"

	WarningUnresolvedReference WarningType = "unresolved_reference"
)

// Warning represents a non-fatal issue encountered during compilation.
type Warning struct {
	Type     WarningType `json:"type" yaml:"type"`
	NodeType string      `json:"nodeType,omitempty" yaml:"nodeType,omitempty"`
	Message  string      `json:"message" yaml:"message"`
}
