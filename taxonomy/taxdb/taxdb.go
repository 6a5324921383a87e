// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package taxdb provides a local cache
// of genus level taxonomy assignments,
// backed by an SQLite database.
//
// The cache is filled by external taxonomy services
// (for example a GBIF or NCBI taxonomy download),
// and queried by genus
// to assign groups to tree terminals
// without any remote call.
package taxdb

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/js-arias/phylosphere/taxonomy"

	// sqlite driver
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotInDB is the error produced
// when a genus is not stored in the database.
var ErrNotInDB = errors.New("genus not in database")

// A DB is a connection
// to a taxonomy cache database.
type DB struct {
	db *sql.DB
}

const createTable = `
CREATE TABLE IF NOT EXISTS species (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	genus TEXT NOT NULL,
	order_name TEXT,
	family_name TEXT,
	UNIQUE(genus)
);
`

// Open opens a taxonomy cache database,
// creating it
// (and its species table)
// if it does not exist.
// Use ":memory:" for a transient database.
func Open(name string) (*DB, error) {
	db, err := sql.Open("sqlite3", name)
	if err != nil {
		return nil, fmt.Errorf("unable to open database %q: %v", name, err)
	}
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to create species table on %q: %v", name, err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Genus returns the group
// (the taxonomic order)
// and sub-group
// (the family)
// stored for a genus.
// If the genus is not in the database
// the error is ErrNotInDB.
func (d *DB) Genus(genus string) (group, subGroup string, err error) {
	genus = taxonomy.Canon(genus)
	if genus == "" {
		return "", "", fmt.Errorf("empty genus name")
	}

	row := d.db.QueryRow("SELECT order_name, family_name FROM species WHERE genus = ?", genus)
	if err := row.Scan(&group, &subGroup); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", fmt.Errorf("genus %q: %w", genus, ErrNotInDB)
		}
		return "", "", fmt.Errorf("genus %q: %v", genus, err)
	}
	return group, subGroup, nil
}

// Add stores the group and sub-group of a genus.
// A genus already in the database is left untouched.
func (d *DB) Add(genus, group, subGroup string) error {
	genus = taxonomy.Canon(genus)
	if genus == "" {
		return fmt.Errorf("empty genus name")
	}
	group = taxonomy.Canon(group)
	subGroup = taxonomy.Canon(subGroup)

	_, err := d.db.Exec("INSERT OR IGNORE INTO species (genus, order_name, family_name) VALUES (?, ?, ?)",
		genus, group, subGroup)
	if err != nil {
		return fmt.Errorf("unable to add genus %q: %v", genus, err)
	}
	return nil
}

// Remove deletes a genus from the database.
func (d *DB) Remove(genus string) error {
	genus = taxonomy.Canon(genus)
	if genus == "" {
		return fmt.Errorf("empty genus name")
	}

	if _, err := d.db.Exec("DELETE FROM species WHERE genus = ?", genus); err != nil {
		return fmt.Errorf("unable to remove genus %q: %v", genus, err)
	}
	return nil
}
