// Package templates holds the page layout of the web GUI. Components and
// pages are generated from .templ sources with `go tool templ generate`.
package templates
