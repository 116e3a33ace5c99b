package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ATHSubmission is a user-submitted portfolio all-time-high snapshot:
// the claimed high-water mark, the date it was recorded, and the account's
// net asset value as of submission. Submissions are periodically re-verified
// against current holdings priced at the snapshot date.
type ATHSubmission struct {
	ID                string          `json:"id"`
	AccountID         int64           `json:"accountId"`
	PortfolioATHValue decimal.Decimal `json:"portfolioAthValue"`
	PortfolioATHDate  time.Time       `json:"portfolioAthDate"`
	CurrentNAVValue   decimal.Decimal `json:"currentNavValue"`
	CreatedAt         time.Time       `json:"createdAt,omitempty"`
	UpdatedAt         time.Time       `json:"updatedAt,omitempty"`
}
