package model

// Backup is the full export payload for one tenant. Importing a backup is
// strictly additive: entities whose id already exists in the target store
// are skipped, never overwritten.
type Backup struct {
	ExportedAt       string            `json:"exportedAt"` // RFC3339
	Portfolios       []Portfolio       `json:"portfolios"`
	Wallets          []Wallet          `json:"wallets"`
	DailySnapshots   []DailySnapshot   `json:"dailySnapshots"`
	MonthlySnapshots []MonthlySnapshot `json:"monthlySnapshots"`
	Goals            []Goal            `json:"goals"`
	JournalEntries   []JournalEntry    `json:"journalEntries"`
	MarketEvents     []MarketEvent     `json:"marketEvents"`
}

// ImportCounts reports how many entities of each kind an import created.
type ImportCounts struct {
	Portfolios       int `json:"portfolios"`
	Wallets          int `json:"wallets"`
	DailySnapshots   int `json:"dailySnapshots"`
	MonthlySnapshots int `json:"monthlySnapshots"`
	Goals            int `json:"goals"`
	JournalEntries   int `json:"journalEntries"`
	MarketEvents     int `json:"marketEvents"`
}
