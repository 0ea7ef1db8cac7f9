package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./openshelf.db"

	// DefaultDailyFineRate is charged per calendar day a book is returned late
	DefaultDailyFineRate = 1.00

	// DefaultLoanPeriodDays is the loan length used when an issue request
	// carries no due date
	DefaultLoanPeriodDays = 14
)
