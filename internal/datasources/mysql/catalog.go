package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/newsdeck/newsdeck/internal/datasources"
	"github.com/newsdeck/newsdeck/internal/domain"
)

var _ datasources.SourceCatalog = (*Repository)(nil)

func (r *Repository) GetSourceBySlug(ctx context.Context, slug string) (domain.Source, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, slug, base_url, category_mapping, is_active, last_synced_at
		 FROM sources WHERE slug = ?`, slug)

	source, err := scanSource(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Source{}, fmt.Errorf("%w: %s", domain.ErrUnknownSource, slug)
	}
	if err != nil {
		return domain.Source{}, fmt.Errorf("fetching source [%s]: %w", slug, err)
	}
	return source, nil
}

func (r *Repository) ListActiveSources(ctx context.Context) ([]domain.Source, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug, base_url, category_mapping, is_active, last_synced_at
		 FROM sources WHERE is_active = 1 ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("listing active sources: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sources []domain.Source
	for rows.Next() {
		source, err := scanSource(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		sources = append(sources, source)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}

	return sources, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSource(row rowScanner) (domain.Source, error) {
	var source domain.Source
	var mapping sql.NullString
	var lastSynced sql.NullTime
	if err := row.Scan(
		&source.ID,
		&source.Name,
		&source.Slug,
		&source.BaseURL,
		&mapping,
		&source.Active,
		&lastSynced,
	); err != nil {
		return domain.Source{}, err
	}
	if lastSynced.Valid {
		source.LastSyncedAt = lastSynced.Time
	}

	if mapping.Valid && mapping.String != "" {
		if err := json.Unmarshal([]byte(mapping.String), &source.CategoryMapping); err != nil {
			return domain.Source{}, fmt.Errorf("decoding category mapping: %w", err)
		}
	}
	return source, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, slug FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return categories, nil
}

func (r *Repository) categoryIDBySlug(ctx context.Context, slug string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM categories WHERE slug = ?`, slug).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownCategory, slug)
	}
	if err != nil {
		return 0, fmt.Errorf("fetching category [%s]: %w", slug, err)
	}
	return id, nil
}
