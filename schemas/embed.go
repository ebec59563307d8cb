// Package schemas содержит JSON-схемы контрактов сервиса.
package schemas

import "embed"

//go:embed contracts
var SchemasFS embed.FS
