package showcase

import "embed"

// migrations holds the goose SQL migrations for the post store.
//
//go:embed migrations/*.sql
var migrations embed.FS

// assets holds the client files every page loads: hx.js and styles.css.
//
//go:embed embedded/*
var assets embed.FS
