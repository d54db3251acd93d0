package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrationFilesExist(t *testing.T) {
	migrationsDir := "../../migrations"

	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		t.Fatal("Migrations directory does not exist")
	}

	expectedMigrations := []string{
		"00001_create_medicines_table.sql",
		"00002_create_customers_table.sql",
		"00003_create_sales_tables.sql",
		"00004_create_notifications_table.sql",
		"00005_create_settings_table.sql",
	}

	for _, migration := range expectedMigrations {
		path := filepath.Join(migrationsDir, migration)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("Migration file %s does not exist", migration)
		}
	}
}

func TestMigrationFilesHaveUpAndDown(t *testing.T) {
	migrationsDir := "../../migrations"

	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("Failed to read migrations directory: %v", err)
	}

	sqlFileCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		sqlFileCount++
		content, err := os.ReadFile(filepath.Join(migrationsDir, file.Name()))
		if err != nil {
			t.Errorf("Failed to read migration file %s: %v", file.Name(), err)
			continue
		}

		contentStr := string(content)

		if !strings.Contains(contentStr, "-- +goose Up") {
			t.Errorf("Migration file %s missing '-- +goose Up' directive", file.Name())
		}
		if !strings.Contains(contentStr, "-- +goose Down") {
			t.Errorf("Migration file %s missing '-- +goose Down' directive", file.Name())
		}
	}

	if sqlFileCount == 0 {
		t.Error("No SQL migration files found")
	}
}

func TestMigrationFilesCreateExpectedTables(t *testing.T) {
	migrationsDir := "../../migrations"

	expectedTables := map[string]string{
		"medicines":     "00001_create_medicines_table.sql",
		"customers":     "00002_create_customers_table.sql",
		"sales":         "00003_create_sales_tables.sql",
		"sale_items":    "00003_create_sales_tables.sql",
		"notifications": "00004_create_notifications_table.sql",
		"settings":      "00005_create_settings_table.sql",
	}

	for tableName, migrationFile := range expectedTables {
		path := filepath.Join(migrationsDir, migrationFile)
		content, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("Failed to read migration file %s: %v", migrationFile, err)
			continue
		}

		contentStr := string(content)

		createTableStmt := "CREATE TABLE IF NOT EXISTS " + tableName
		if !strings.Contains(contentStr, createTableStmt) {
			t.Errorf("Migration file %s does not create table %s", migrationFile, tableName)
		}

		dropTableStmt := "DROP TABLE IF EXISTS " + tableName
		if !strings.Contains(contentStr, dropTableStmt) {
			t.Errorf("Migration file %s does not drop table %s in down section", migrationFile, tableName)
		}
	}
}

func TestMedicinesTableGuardsStock(t *testing.T) {
	migrationsDir := "../../migrations"
	path := filepath.Join(migrationsDir, "00001_create_medicines_table.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read medicines migration: %v", err)
	}

	// The non-negative stock invariant is enforced at the schema level too.
	if !strings.Contains(string(content), "CHECK (quantity >= 0)") {
		t.Error("Medicines table missing non-negative quantity check")
	}
}

func TestNotificationsTableHasAlertKeyIndex(t *testing.T) {
	migrationsDir := "../../migrations"
	path := filepath.Join(migrationsDir, "00004_create_notifications_table.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read notifications migration: %v", err)
	}

	contentStr := string(content)

	// One reconciliation alert per (kind, medicine) pair.
	if !strings.Contains(contentStr, "CREATE UNIQUE INDEX idx_notifications_kind_medicine") {
		t.Error("Notifications table missing unique alert key index")
	}
	if !strings.Contains(contentStr, "WHERE kind <> ''") {
		t.Error("Alert key index should only cover reconciliation alerts")
	}
}

func TestSalesTablesHaveSnapshotColumns(t *testing.T) {
	migrationsDir := "../../migrations"
	path := filepath.Join(migrationsDir, "00003_create_sales_tables.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read sales migration: %v", err)
	}

	contentStr := string(content)
	requiredColumns := []string{
		"customer_name VARCHAR",
		"medicine_name VARCHAR",
		"consultation_charge NUMERIC",
		"total_amount NUMERIC",
	}

	for _, column := range requiredColumns {
		if !strings.Contains(contentStr, column) {
			t.Errorf("Sales tables missing snapshot column definition: %s", column)
		}
	}
}
