package tips

import (
	"bytes"
	"crypto/sha1"
	"database/sql"
	"errors"
	"fmt"

	// Registers the sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/bodgit/tips/codec"
	"github.com/bodgit/tips/format"
)

var (
	// ErrNotFound is returned when no image matches the requested ID.
	ErrNotFound = errors.New("tips: image not found")

	// ErrTruncated is returned when adding a TIPS file whose length does
	// not match its header.
	ErrTruncated = errors.New("tips: image data does not match header")
)

// Entry describes an image stored in the catalog.
type Entry struct {
	ID     int64
	SHA1   string
	Name   string
	Header codec.Header
}

// Catalog is an SQLite database of TIPS encoded images.
type Catalog struct {
	db *sql.DB
}

// NewCatalog opens, and if necessary creates, the catalog database in file.
func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	// SQLite only supports a single writer
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, name TEXT NOT NULL, format INTEGER NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, data BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Add stores the TIPS file in data under name and returns its ID. If an
// identical file is already stored, the ID of that is returned instead and
// the name is left unchanged.
func (c *Catalog) Add(name string, data []byte) (int64, error) {
	h, err := codec.ReadHeader(bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	if len(data) != codec.HeaderSize+h.Size() {
		return 0, ErrTruncated
	}

	sha := fmt.Sprintf("%X", sha1.Sum(data))

	if _, err := c.db.Exec("INSERT OR IGNORE INTO image (sha1, name, format, width, height, data) VALUES (?, ?, ?, ?, ?, ?)", sha, name, int(h.Format), h.Width, h.Height, data); err != nil {
		return 0, err
	}

	var id int64
	if err := c.db.QueryRow("SELECT id FROM image WHERE sha1 = ?", sha).Scan(&id); err != nil {
		return 0, err
	}

	return id, nil
}

type scanner interface {
	Scan(...interface{}) error
}

func scanEntry(s scanner, e *Entry) error {
	var f int
	if err := s.Scan(&e.ID, &e.SHA1, &e.Name, &f, &e.Header.Width, &e.Header.Height); err != nil {
		return err
	}
	e.Header.Format = format.Format(f)
	return nil
}

// Get returns the entry and TIPS file with the given ID.
func (c *Catalog) Get(id int64) (Entry, []byte, error) {
	var (
		e    Entry
		data []byte
	)

	row := c.db.QueryRow("SELECT id, sha1, name, format, width, height, data FROM image WHERE id = ?", id)
	switch err := scanEntry(rowWithData{row, &data}, &e); err {
	case sql.ErrNoRows:
		return Entry{}, nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	case nil:
		return e, data, nil
	default:
		return Entry{}, nil, err
	}
}

// rowWithData appends the data column to whatever scanEntry asks for.
type rowWithData struct {
	row  *sql.Row
	data *[]byte
}

func (r rowWithData) Scan(dest ...interface{}) error {
	return r.row.Scan(append(dest, r.data)...)
}

// List returns every entry in the catalog ordered by ID.
func (c *Catalog) List() ([]Entry, error) {
	rows, err := c.db.Query("SELECT id, sha1, name, format, width, height FROM image ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := scanEntry(rows, &e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
