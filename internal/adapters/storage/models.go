package storage

import "time"

// LedgerEntryModel is the GORM model for the ledger_entries table
type LedgerEntryModel struct {
	CreatedAt time.Time
	Name      string `gorm:"primaryKey"`
	UpdatedAt time.Time
	Value     string `gorm:"not null;default:''"`
}

// TableName specifies the table name for GORM
func (LedgerEntryModel) TableName() string { return "ledger_entries" }
