package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
)

// ApplyMigrations накатывает все *.up.sql из каталога по порядку имён, в одной транзакции
func ApplyMigrations(ctx context.Context, db *sqlx.DB, dir string) error {
	files, err := migrationFiles(dir, upSuffix)
	if err != nil {
		return err
	}
	return execInTx(ctx, db, dir, files)
}

// RollbackMigrations откатывает схему: *.down.sql в обратном порядке
func RollbackMigrations(ctx context.Context, db *sqlx.DB, dir string) error {
	files, err := migrationFiles(dir, downSuffix)
	if err != nil {
		return err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	return execInTx(ctx, db, dir, files)
}

func migrationFiles(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), suffix) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("no %s migrations in %s", suffix, dir)
	}
	return files, nil
}

func execInTx(ctx context.Context, db *sqlx.DB, dir string, files []string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}

	return tx.Commit()
}
