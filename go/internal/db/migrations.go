package db

import "embed"

// Migrations holds the schema files applied by `rosterdesk migrate`, in name order.
//
//go:embed migrations/*.sql
var Migrations embed.FS
