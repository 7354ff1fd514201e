package config

import "embed"

const profileSchemaFile = "schema/profile.schema.json"

//go:embed schema/*.json
var profileSchemaFS embed.FS
