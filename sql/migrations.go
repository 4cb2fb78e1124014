package sql

import (
	"bufio"
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var embedded embed.FS

type migration struct {
	order   int
	name    string
	content []byte
}

// Migrations is interface for migrations provider.
type Migrations func(Executor) error

func loadMigrations() ([]migration, error) {
	var migrations []migration
	err := fs.WalkDir(embedded, "migrations", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walkdir %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		parts := strings.Split(d.Name(), "_")
		order, err := strconv.Atoi(parts[0])
		if err != nil {
			return fmt.Errorf("invalid migration %s: %w", d.Name(), err)
		}
		content, err := embedded.ReadFile(path)
		if err != nil {
			return fmt.Errorf("readfile %s: %w", path, err)
		}
		migrations = append(migrations, migration{
			order:   order,
			name:    d.Name(),
			content: content,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].order < migrations[j].order
	})
	return migrations, nil
}

func statements(content []byte) *bufio.Scanner {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Split(func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if i := bytes.Index(data, []byte(";")); i >= 0 {
			return i + 1, data[0 : i+1], nil
		}
		return 0, nil, nil
	})
	return scanner
}

func embeddedMigrations(db Executor) error {
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}
	current, err := version(db)
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if m.order <= current {
			continue
		}
		scanner := statements(m.content)
		for scanner.Scan() {
			if _, err := db.Exec(scanner.Text(), nil, nil); err != nil {
				return fmt.Errorf("exec %s: %w", scanner.Text(), err)
			}
		}
		// binding values in pragma statement is not allowed
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d;", m.order), nil, nil); err != nil {
			return fmt.Errorf("update user_version to %d: %w", m.order, err)
		}
	}
	return nil
}

func version(db Executor) (int, error) {
	var current int
	if _, err := db.Exec("PRAGMA user_version;", nil, func(stmt *Statement) bool {
		current = stmt.ColumnInt(0)
		return true
	}); err != nil {
		return 0, fmt.Errorf("read user_version %w", err)
	}
	return current, nil
}

func migrate(db *Database, migrations Migrations) (before, after int, err error) {
	tx, err := db.TxImmediate(context.Background())
	if err != nil {
		return 0, 0, err
	}
	defer tx.Release()
	if before, err = version(tx); err != nil {
		return 0, 0, err
	}
	if err := migrations(tx); err != nil {
		return 0, 0, fmt.Errorf("migrate: %w", err)
	}
	if after, err = version(tx); err != nil {
		return 0, 0, err
	}
	return before, after, tx.Commit()
}
