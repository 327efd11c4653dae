package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mzagar/vitrina/internal/model"
)

// Content is a repository over one content collection. Products and
// services use the same code bound to different tables.
type Content struct {
	db    *sql.DB
	table string
}

// NewProducts creates the repository for the products collection.
func NewProducts(db *sql.DB) *Content {
	return &Content{db: db, table: "products"}
}

// NewServices creates the repository for the services collection.
func NewServices(db *sql.DB) *Content {
	return &Content{db: db, table: "services"}
}

// Fields are the caller-supplied fields of a new record.
type Fields struct {
	Title       string
	Description string
	ImageURL    string
}

// Partial carries an update: nil fields are left unchanged.
type Partial struct {
	Title       *string
	Description *string
	ImageURL    *string
}

// Empty reports whether the update supplies no fields at all.
func (p Partial) Empty() bool {
	return p.Title == nil && p.Description == nil && p.ImageURL == nil
}

// List returns all records, newest first.
func (c *Content) List(ctx context.Context) ([]model.Content, error) {
	rows, err := c.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT id, title, description, image_url, created_at
		 FROM %s ORDER BY created_at DESC`, c.table,
	))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", c.table, err)
	}
	defer rows.Close()

	var items []model.Content
	for rows.Next() {
		var item model.Content
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.ImageURL, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", c.table, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Get returns a record by id, or ErrNotFound.
func (c *Content) Get(ctx context.Context, id string) (*model.Content, error) {
	item := &model.Content{}
	err := c.db.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT id, title, description, image_url, created_at
		 FROM %s WHERE id = ?`, c.table), id,
	).Scan(&item.ID, &item.Title, &item.Description, &item.ImageURL, &item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s record: %w", c.table, err)
	}
	return item, nil
}

// Create inserts a new record, assigning its id and creation time.
// All fields are required.
func (c *Content) Create(ctx context.Context, f Fields) (*model.Content, error) {
	switch {
	case f.Title == "":
		return nil, &ValidationError{Field: "title"}
	case f.Description == "":
		return nil, &ValidationError{Field: "description"}
	case f.ImageURL == "":
		return nil, &ValidationError{Field: "image"}
	}

	id := uuid.New().String()
	createdAt := time.Now().UTC()

	_, err := c.db.ExecContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (id, title, description, image_url, created_at)
		 VALUES (?, ?, ?, ?, ?)`, c.table),
		id, f.Title, f.Description, f.ImageURL, createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s record: %w", c.table, err)
	}

	return c.Get(ctx, id)
}

// Update merges the supplied fields into an existing record. Supplying
// an empty title or description is rejected; an update with no fields is
// a no-op that returns the record re-read. Concurrent updates follow
// last-writer-wins, there is no concurrency token.
func (c *Content) Update(ctx context.Context, id string, p Partial) (*model.Content, error) {
	if p.Title != nil && *p.Title == "" {
		return nil, &ValidationError{Field: "title"}
	}
	if p.Description != nil && *p.Description == "" {
		return nil, &ValidationError{Field: "description"}
	}

	if p.Empty() {
		return c.Get(ctx, id)
	}

	var sets []string
	var args []any
	if p.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *p.Description)
	}
	if p.ImageURL != nil {
		sets = append(sets, "image_url = ?")
		args = append(args, *p.ImageURL)
	}
	args = append(args, id)

	result, err := c.db.ExecContext(ctx, fmt.Sprintf(
		`UPDATE %s SET %s WHERE id = ?`, c.table, strings.Join(sets, ", ")), args...,
	)
	if err != nil {
		return nil, fmt.Errorf("updating %s record: %w", c.table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("updating %s record: %w", c.table, err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return c.Get(ctx, id)
}

// Delete removes a record. Returns false when it did not exist. The
// record's image is NOT removed from object storage; callers that want
// that must do it explicitly.
func (c *Content) Delete(ctx context.Context, id string) (bool, error) {
	result, err := c.db.ExecContext(ctx, fmt.Sprintf(
		`DELETE FROM %s WHERE id = ?`, c.table), id,
	)
	if err != nil {
		return false, fmt.Errorf("deleting %s record: %w", c.table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting %s record: %w", c.table, err)
	}
	return affected > 0, nil
}
