package storyframe

import "embed"

// EmbeddedAssets contains the client script and stylesheet shipped with the
// server: storyframe.js drives the carousel, scroll effects, sharing and the
// in-place contact form; storyframe.css holds the rules those need.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
