package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/newsdeck/newsdeck/internal/datasources"
	"github.com/newsdeck/newsdeck/internal/domain"
)

var _ datasources.PreferenceSetGetter = (*Repository)(nil)
var _ datasources.PreferenceGetter = (*Repository)(nil)
var _ datasources.PreferenceReplacer = (*Repository)(nil)

func (r *Repository) GetPreferenceSet(ctx context.Context, userID string) (domain.PreferenceSet, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT COALESCE(source_id, 0), COALESCE(category_id, 0), COALESCE(author_name, '')
		 FROM user_preferences WHERE user_id = ?`, userID)
	if err != nil {
		return domain.PreferenceSet{}, fmt.Errorf("loading preference set: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var set domain.PreferenceSet
	for rows.Next() {
		var sourceID, categoryID int64
		var author string
		if err := rows.Scan(&sourceID, &categoryID, &author); err != nil {
			return domain.PreferenceSet{}, fmt.Errorf("scanning preference: %w", err)
		}

		switch {
		case sourceID != 0:
			set.SourceIDs = append(set.SourceIDs, sourceID)
		case categoryID != 0:
			set.CategoryIDs = append(set.CategoryIDs, categoryID)
		case author != "":
			set.Authors = append(set.Authors, author)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.PreferenceSet{}, fmt.Errorf("iterating preferences: %w", err)
	}

	return set, nil
}

func (r *Repository) GetPreferences(ctx context.Context, userID string) (domain.PreferenceInput, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT COALESCE(s.slug, ''), COALESCE(c.slug, ''), COALESCE(p.author_name, '')
		 FROM user_preferences p
		 LEFT JOIN sources s ON s.id = p.source_id
		 LEFT JOIN categories c ON c.id = p.category_id
		 WHERE p.user_id = ?
		 ORDER BY p.id`, userID)
	if err != nil {
		return domain.PreferenceInput{}, fmt.Errorf("loading preferences: %w", err)
	}
	defer func() { _ = rows.Close() }()

	prefs := domain.PreferenceInput{
		Sources:    []string{},
		Categories: []string{},
		Authors:    []string{},
	}
	for rows.Next() {
		var source, category, author string
		if err := rows.Scan(&source, &category, &author); err != nil {
			return domain.PreferenceInput{}, fmt.Errorf("scanning preference: %w", err)
		}

		switch {
		case source != "":
			prefs.Sources = append(prefs.Sources, source)
		case category != "":
			prefs.Categories = append(prefs.Categories, category)
		case author != "":
			prefs.Authors = append(prefs.Authors, author)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.PreferenceInput{}, fmt.Errorf("iterating preferences: %w", err)
	}

	return prefs, nil
}

// ReplacePreferences swaps a user's saved preferences for the given set in
// one transaction. Unknown source or category slugs roll the whole call
// back, leaving the stored preferences untouched.
func (r *Repository) ReplacePreferences(
	ctx context.Context, userID string, prefs domain.PreferenceInput,
) (domain.PreferenceInput, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.PreferenceInput{}, fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM user_preferences WHERE user_id = ?`, userID,
	); err != nil {
		return domain.PreferenceInput{}, fmt.Errorf("clearing preferences: %w", err)
	}

	for _, slug := range prefs.Sources {
		var sourceID int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM sources WHERE slug = ?`, slug).Scan(&sourceID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PreferenceInput{}, fmt.Errorf("%w: %s", domain.ErrUnknownSource, slug)
		}
		if err != nil {
			return domain.PreferenceInput{}, fmt.Errorf("resolving source [%s]: %w", slug, err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_preferences (user_id, source_id) VALUES (?, ?)`,
			userID, sourceID,
		); err != nil {
			return domain.PreferenceInput{}, fmt.Errorf("inserting source preference: %w", err)
		}
	}

	for _, slug := range prefs.Categories {
		var categoryID int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM categories WHERE slug = ?`, slug).Scan(&categoryID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PreferenceInput{}, fmt.Errorf("%w: %s", domain.ErrUnknownCategory, slug)
		}
		if err != nil {
			return domain.PreferenceInput{}, fmt.Errorf("resolving category [%s]: %w", slug, err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_preferences (user_id, category_id) VALUES (?, ?)`,
			userID, categoryID,
		); err != nil {
			return domain.PreferenceInput{}, fmt.Errorf("inserting category preference: %w", err)
		}
	}

	for _, author := range prefs.Authors {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_preferences (user_id, author_name) VALUES (?, ?)`,
			userID, author,
		); err != nil {
			return domain.PreferenceInput{}, fmt.Errorf("inserting author preference: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.PreferenceInput{}, fmt.Errorf("committing transaction: %w", err)
	}

	return r.GetPreferences(ctx, userID)
}
