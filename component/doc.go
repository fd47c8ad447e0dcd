// Package component defines lifecycle-managed infrastructure, such as the
// HTTP transport behind a resource catalog, and a Registry that starts
// components in order and stops them in reverse.
package component
