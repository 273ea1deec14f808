// Package config loads and validates slab.json, the project configuration
// for the slab compiler: template and output paths, markup format,
// escaping behavior, dev server settings, and the publish target.
package config
