// JSONL loading for Attach. Mirrors written by Persist are read back into
// the fresh SQLite schema so the ledger resumes exactly where it left off.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// jsonlTables maps tables to their column lists, in foreign-key dependency
// order.
var jsonlTables = []struct {
	table   string
	columns []string
}{
	{"profiles", []string{"profile_id", "owner", "handle", "uri", "next_note_id", "created_at"}},
	{"linklists", []string{"linklist_id", "profile_id", "created_at"}},
	{"linklist_items", []string{"linklist_id", "category", "position", "item_key", "item", "created_at"}},
	{"notes", []string{"profile_id", "note_id", "link_item_type", "linklist_id", "link_key", "content_uri", "link_module", "link_module_data", "mint_module", "mint_module_data", "mint_nft", "deleted", "created_at", "updated_at"}},
	{"mint_nfts", []string{"address", "profile_id", "note_id", "next_token_id", "created_at"}},
	{"mint_tokens", []string{"address", "token_id", "owner", "created_at"}},
	{"events", []string{"seq", "name", "caller", "profile_id", "note_id", "linklist_id", "category", "link_key", "nft", "token_id", "recipient", "created_at"}},
	{"counters", []string{"name", "value"}},
}

// loadAllJSONL reads each table's JSONL mirror from dataDir and inserts its
// records. Loading is transactional: all tables load or the database stays
// empty. Malformed lines and constraint-violating records are skipped;
// unknown fields are ignored for forward compatibility.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("PRAGMA foreign_keys = OFF"); err != nil {
		return fmt.Errorf("disabling foreign keys for load: %w", err)
	}

	for _, mapping := range jsonlTables {
		records, err := readJSONL(filepath.Join(dataDir, mapping.table+".jsonl"))
		if err != nil {
			return fmt.Errorf("reading %s.jsonl: %w", mapping.table, err)
		}
		if len(records) == 0 {
			continue
		}
		if err := insertRecords(tx, mapping.table, mapping.columns, records); err != nil {
			return fmt.Errorf("loading %s: %w", mapping.table, err)
		}
	}

	if _, err := tx.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("re-enabling foreign keys: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// insertRecords inserts parsed JSONL records into a SQLite table. Only
// columns listed in the mapping are extracted.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) error {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}

		args := make([]any, len(columns))
		for i, col := range columns {
			val, ok := obj[col]
			if !ok {
				args[i] = nil
				continue
			}
			switch v := val.(type) {
			case map[string]any, []any:
				b, err := json.Marshal(v)
				if err != nil {
					args[i] = nil
					continue
				}
				args[i] = string(b)
			default:
				args[i] = val
			}
		}

		if _, err := stmt.Exec(args...); err != nil {
			// Skip records that violate constraints.
			continue
		}
	}
	return nil
}
