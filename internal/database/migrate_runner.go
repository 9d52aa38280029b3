package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lumen/internal/middleware"

	"gorm.io/gorm"
)

// MigrationLog is one row of the migration ledger.
type MigrationLog struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:255"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

func (MigrationLog) TableName() string {
	return "migration_logs"
}

const ensureLedgerSQL = `
CREATE TABLE IF NOT EXISTS migration_logs (
	version BIGINT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_migration_logs_applied_at ON migration_logs (applied_at);`

// appliedVersions reads the ledger in version order. A missing ledger table
// means a fresh database, not an error.
func appliedVersions(ctx context.Context, db *gorm.DB) ([]int, error) {
	if !db.Migrator().HasTable(&MigrationLog{}) {
		return nil, nil
	}
	var versions []int
	if err := db.WithContext(ctx).Model(&MigrationLog{}).Order("version").Pluck("version", &versions).Error; err != nil {
		return nil, fmt.Errorf("read migration ledger: %w", err)
	}
	return versions, nil
}

// RunMigrations applies every pending migration in version order. Each
// script runs in one transaction with its ledger row, so a failed script
// leaves no half-recorded state behind.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).Exec(ensureLedgerSQL).Error; err != nil {
		return fmt.Errorf("ensure migration ledger: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}
	if err := checkLedgerKnown(applied); err != nil {
		return err
	}

	appliedSet := make(map[int]bool, len(applied))
	for _, version := range applied {
		appliedSet[version] = true
	}

	for i := range migrations {
		m := &migrations[i]
		if appliedSet[m.Version] {
			continue
		}
		middleware.Logger.Info("Applying migration", slog.String("migration", m.String()))
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(m.UpScript).Error; err != nil {
				return fmt.Errorf("apply %s: %w", m.String(), err)
			}
			if err := tx.Create(&MigrationLog{Version: m.Version, Name: m.Name}).Error; err != nil {
				return fmt.Errorf("record %s: %w", m.String(), err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// checkLedgerKnown rejects a ledger that lists versions this build has no
// script for, which usually means the binary is older than the database.
func checkLedgerKnown(applied []int) error {
	known := make(map[int]bool, len(migrations))
	for _, m := range migrations {
		known[m.Version] = true
	}
	var unknown []string
	for _, version := range applied {
		if !known[version] {
			unknown = append(unknown, fmt.Sprintf("%06d", version))
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	return fmt.Errorf("migration_logs lists versions with no matching script: %s", strings.Join(unknown, ", "))
}

// RollbackMigration runs the down script for one applied version and drops
// its ledger row, both in the same transaction.
func RollbackMigration(ctx context.Context, db *gorm.DB, version int) error {
	var target *Migration
	for i := range migrations {
		if migrations[i].Version == version {
			target = &migrations[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("no migration with version %d", version)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}
	isApplied := false
	for _, v := range applied {
		if v == version {
			isApplied = true
			break
		}
	}
	if !isApplied {
		return fmt.Errorf("migration %s has not been applied", target.String())
	}

	middleware.Logger.Info("Rolling back migration", slog.String("migration", target.String()))
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(target.DownScript).Error; err != nil {
			return fmt.Errorf("roll back %s: %w", target.String(), err)
		}
		if err := tx.Where("version = ?", version).Delete(&MigrationLog{}).Error; err != nil {
			return fmt.Errorf("drop ledger row %s: %w", target.String(), err)
		}
		return nil
	})
}
