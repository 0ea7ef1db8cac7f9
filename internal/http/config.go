package http

import (
	"openshelf/internal/database"
)

// RouterConfig contains all dependencies needed to create the HTTP router.
// This replaces a long parameter list in NewRouter and keeps controllers
// testable against narrow interfaces.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database

	// Stores backing the CRUD surfaces
	Catalog    CatalogStore
	Membership MembershipStore

	// The circulation engine and its reporting queries
	Circulation CirculationEngine
	Reports     TransactionReporter

	// Application info
	Version string
}
