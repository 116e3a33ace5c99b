package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAccountNotFound indicates that no positions or trade history exist
	// for the given account ID.
	ErrAccountNotFound = errors.New("account not found")

	// ErrSymbolNotFound indicates that a symbol lookup returned no results.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrPriceNotFound indicates no price data for a specific ticker and date combination.
	ErrPriceNotFound = errors.New("price not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidAccountID indicates that the account ID parameter is missing
	// or not a positive integer.
	ErrInvalidAccountID = errors.New("invalid account ID")

	// ErrInvalidPercentage indicates that a percentage parameter is not a
	// parseable number.
	ErrInvalidPercentage = errors.New("invalid percentage value")

	// ErrInvalidDate indicates that a date parameter is missing or not in a
	// recognized format.
	ErrInvalidDate = errors.New("invalid date")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrMissingFile indicates that a file upload request did not include a file.
	ErrMissingFile = errors.New("no file provided")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These errors indicate that an operation failed, but not due
// to missing entities or validation issues.
var (
	// Position and history operation errors
	ErrFailedToRetrieveTrades       = errors.New("failed to retrieve trades")
	ErrFailedToRetrieveTradeHistory = errors.New("failed to retrieve trade history")
	ErrFailedToRetrieveAccounts     = errors.New("failed to retrieve accounts")

	// Analysis operation errors
	ErrFailedToComputeExposure = errors.New("failed to compute exposure")
	ErrFailedToComputePremiums = errors.New("failed to compute options premiums")
	ErrFailedToRecalculateATH  = errors.New("failed to recalculate all-time high")

	// Submission operation errors
	ErrFailedToStoreSubmission     = errors.New("failed to store ath submission")
	ErrFailedToRetrieveSubmissions = errors.New("failed to retrieve ath submissions")

	// Import operation errors
	ErrFailedToImportPositions    = errors.New("failed to import positions")
	ErrFailedToImportTradeHistory = errors.New("failed to import trade history")
	ErrInvalidCSVFormat           = errors.New("invalid CSV format")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)
