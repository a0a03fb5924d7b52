package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/preview/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	StylesheetName = "reportforms.css"
	ScriptName     = "reportforms.js"
)

// AssetsPrefix is where the server mounts AssetsFS below the base path.
const AssetsPrefix = "/assets/"

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the stylesheet and script so callers can serve them over
// HTTP or copy them into their own asset pipeline.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

// AssetPath is the URL of an embedded asset below basePath.
func AssetPath(basePath, name string) string {
	return joinPath(basePath, AssetsPrefix+name)
}

func defaultStylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}
