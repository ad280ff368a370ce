package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	embeddedmigrations "github.com/terraincognita07/emerald/migrations"
	"gorm.io/gorm"
)

var migrationFilePattern = regexp.MustCompile(`^(\d+)_.*\.sql$`)

// schemaMigration records one applied migration file.
type schemaMigration struct {
	Version   string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

type migrationFile struct {
	version string
	order   int
	name    string
	sql     string
}

func applyEmbeddedMigrations(database *gorm.DB) error {
	return applyMigrations(database, embeddedmigrations.Files)
}

// applyMigrations runs, in numeric order, every NNNN_*.sql file of files that
// has not been recorded yet. Other files are ignored.
func applyMigrations(database *gorm.DB, files fs.FS) error {
	if err := database.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	pending, err := readMigrationFiles(files)
	if err != nil {
		return err
	}
	applied, err := appliedVersions(database)
	if err != nil {
		return err
	}

	for _, file := range pending {
		if applied[file.version] {
			continue
		}
		if err := runMigration(database, file); err != nil {
			return err
		}
	}
	return nil
}

func readMigrationFiles(files fs.FS) ([]migrationFile, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	result := make([]migrationFile, 0, len(entries))
	owners := make(map[string]string, len(entries))
	for _, entry := range entries {
		matches := migrationFilePattern.FindStringSubmatch(entry.Name())
		if entry.IsDir() || matches == nil {
			continue
		}

		name, version := entry.Name(), matches[1]
		if owner, taken := owners[version]; taken {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, owner, name)
		}
		owners[version] = name

		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("migration %s: bad version: %w", name, err)
		}
		content, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		result = append(result, migrationFile{version: version, order: order, name: name, sql: string(content)})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].order < result[j].order })
	return result, nil
}

func appliedVersions(database *gorm.DB) (map[string]bool, error) {
	var versions []string
	if err := database.Model(&schemaMigration{}).Pluck("version", &versions).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}
	applied := make(map[string]bool, len(versions))
	for _, version := range versions {
		applied[version] = true
	}
	return applied, nil
}

// runMigration executes one file and records it in the same transaction, so a
// failed file leaves no partial schema behind.
func runMigration(database *gorm.DB, file migrationFile) error {
	statements := splitSQLStatements(file.sql)
	if len(statements) == 0 {
		return fmt.Errorf("migration %s: %w", file.name, errEmptyMigration)
	}
	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s: %w", file.name, err)
			}
		}
		record := schemaMigration{Version: file.version, Name: file.name, AppliedAt: time.Now().UTC()}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", file.name, err)
		}
		return nil
	})
}

var errEmptyMigration = errors.New("no SQL statements")

func splitSQLStatements(sqlText string) []string {
	var statements []string
	for _, part := range strings.Split(sqlText, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
