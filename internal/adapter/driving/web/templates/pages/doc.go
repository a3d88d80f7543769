// Package pages holds the full-page bodies of the web GUI.
package pages
