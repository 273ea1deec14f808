package errors

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
	// Parse Errors (E001-E099)
	// ============================================

	"E001": {
		Category: CategoryParse,
		Message:  "Template syntax error",
		Detail:   "The template could not be parsed. The line reported below is the first one the parser could not understand.",
		DocURL:   "https://slab.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryParse,
		Message:  "Inconsistent indentation",
		Detail:   "Indentation must use either tabs or a consistent number of spaces per level, fixed by the first indented line of the file.",
		DocURL:   "https://slab.dev/docs/errors/E002",
	},

	// ============================================
	// Config Errors (E100-E199)
	// ============================================

	"E101": {
		Category: CategoryConfig,
		Message:  "Project configuration not found",
		Detail:   "No slab.json was found in this directory or any parent directory.",
		DocURL:   "https://slab.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid project configuration",
		Detail:   "slab.json exists but could not be read or parsed.",
		DocURL:   "https://slab.dev/docs/errors/E102",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		DocURL:   "https://slab.dev/docs/errors/E103",
	},

	// ============================================
	// Codegen Errors (E200-E299)
	// ============================================

	"E201": {
		Category: CategoryCodegen,
		Message:  "Template compilation failed",
		DocURL:   "https://slab.dev/docs/errors/E201",
	},
	"E202": {
		Category: CategoryCodegen,
		Message:  "Could not write generated code",
		DocURL:   "https://slab.dev/docs/errors/E202",
	},

	// ============================================
	// Publish Errors (E300-E399)
	// ============================================

	"E301": {
		Category: CategoryPublish,
		Message:  "Publish failed",
		Detail:   "The compiled output could not be uploaded to the configured bucket.",
		DocURL:   "https://slab.dev/docs/errors/E301",
	},
	"E302": {
		Category: CategoryPublish,
		Message:  "Missing publish configuration",
		Detail:   "Publishing needs a bucket and region in slab.json, and credentials in the environment.",
		DocURL:   "https://slab.dev/docs/errors/E302",
	},
}

// Registered returns whether the given error code is known.
func Registered(code string) bool {
	_, ok := registry[code]
	return ok
}
