package errors

import "slices"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Location and History Errors (E100-E109)
	// ============================================

	"E100": {
		Category: CategoryLocation,
		Message:  "Malformed URL pathname",
		Detail:   "The pathname contains an invalid percent-escape or does not decode to valid UTF-8.",
		DocURL:   "https://vrouter.dev/docs/errors/E100",
	},
	"E101": {
		Category: CategoryHistory,
		Message:  "Navigation not supported by a static history",
		Detail:   "A static history serves a single server render; it cannot move between entries.",
		DocURL:   "https://vrouter.dev/docs/errors/E101",
	},

	// ============================================
	// Component Errors (E102-E119)
	// ============================================

	"E102": {
		Category: CategoryComponent,
		Message:  "Component rendered outside a router",
		Detail:   "Route, Switch, Redirect, Prompt, Link and WithRouter read the router context and must be rendered inside a router.",
		DocURL:   "https://vrouter.dev/docs/errors/E102",
	},
	"E103": {
		Category: CategoryComponent,
		Message:  "Invalid Switch child",
		Detail:   "A Switch only accepts Route and Redirect children.",
		DocURL:   "https://vrouter.dev/docs/errors/E103",
	},
	"E104": {
		Category: CategoryComponent,
		Message:  "Invalid route pattern",
		Detail:   "The path pattern could not be compiled.",
		DocURL:   "https://vrouter.dev/docs/errors/E104",
	},
	"E105": {
		Category: CategoryComponent,
		Message:  "Missing route parameter",
		Detail:   "A pattern parameter had no value while generating a path.",
		DocURL:   "https://vrouter.dev/docs/errors/E105",
	},

	// ============================================
	// Config Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The configuration file has invalid values.",
		DocURL:   "https://vrouter.dev/docs/errors/E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Configuration parse error",
		Detail:   "The configuration file could not be parsed as JSON or YAML.",
		DocURL:   "https://vrouter.dev/docs/errors/E121",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid port number",
		Detail:   "The configured port number is out of range.",
		DocURL:   "https://vrouter.dev/docs/errors/E122",
	},

	// ============================================
	// CLI Errors (E140-E149)
	// ============================================

	"E141": {
		Category: CategoryCLI,
		Message:  "Configuration file not found",
		Detail:   "No routerd.json or routerd.yaml was found. Pass --config or run from the site directory.",
		DocURL:   "https://vrouter.dev/docs/errors/E141",
	},

	// ============================================
	// Export Errors (E150-E159)
	// ============================================

	"E150": {
		Category: CategoryExport,
		Message:  "Export sink write failed",
		Detail:   "A rendered page could not be written to the export destination.",
		DocURL:   "https://vrouter.dev/docs/errors/E150",
	},
	"E151": {
		Category: CategoryExport,
		Message:  "Render failed during export",
		Detail:   "A configured path failed to render.",
		DocURL:   "https://vrouter.dev/docs/errors/E151",
	},
}

// GetAllCodes returns all registered error codes in order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
