// Package web embeds the invoice pages and their stylesheet.
package web

import "embed"

// TemplatesFS holds the server-rendered invoice form and preview.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds the stylesheet shared by screen and print.
//
//go:embed static/*
var StaticFS embed.FS
