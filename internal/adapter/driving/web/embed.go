package web

import "embed"

// StaticFS holds the embedded static assets (stylesheet, search and overlay JS).
//
//go:embed static/*
var StaticFS embed.FS
