// Package dev implements the development server: a polling file watcher
// over the template directory, in-process recompilation on change, a
// WebSocket hot reload channel for browsers, and Prometheus metrics.
package dev
