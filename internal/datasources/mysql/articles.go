package mysql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/huandu/go-sqlbuilder"

	"github.com/newsdeck/newsdeck/internal/datasources"
	"github.com/newsdeck/newsdeck/internal/domain"
)

var _ datasources.ArticleStorer = (*Repository)(nil)
var _ datasources.ArticleSearcher = (*Repository)(nil)
var _ datasources.LatestArticleLister = (*Repository)(nil)

// StoreArticles upserts a batch of fetched articles for a single source.
// Each article is stored in its own transaction so a bad row never takes
// the rest of the batch down with it.
func (r *Repository) StoreArticles(
	ctx context.Context,
	articles []domain.Article,
	sourceSlug string,
) (domain.IngestStats, error) {
	logger := domain.LoggerFromContext(ctx)

	source, err := r.GetSourceBySlug(ctx, sourceSlug)
	if err != nil {
		return domain.IngestStats{}, err
	}

	stats := domain.IngestStats{Total: len(articles)}
	categoryIDs := map[string]int64{}

	for _, article := range articles {
		categoryID, ok := categoryIDs[article.Category]
		if !ok {
			categoryID, err = r.categoryIDBySlug(ctx, article.Category)
			if err != nil {
				stats.Failed++
				logger.ErrorContext(ctx, "failed to store article",
					"source", sourceSlug,
					"external_id", article.ExternalID,
					"title", article.Title,
					"error", err)
				continue
			}
			categoryIDs[article.Category] = categoryID
		}

		created, err := r.upsertArticle(ctx, source.ID, categoryID, article)
		if err != nil {
			stats.Failed++
			logger.ErrorContext(ctx, "failed to store article",
				"source", sourceSlug,
				"external_id", article.ExternalID,
				"title", article.Title,
				"error", err)
			continue
		}

		if created {
			stats.Created++
		} else {
			stats.Updated++
		}
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE sources SET last_synced_at = ? WHERE id = ?`, time.Now(), source.ID,
	); err != nil {
		logger.WarnContext(ctx, "failed to update source sync time",
			"source", sourceSlug, "error", err)
	}

	logger.InfoContext(ctx, "article storage statistics",
		"source", sourceSlug,
		"created", stats.Created,
		"updated", stats.Updated,
		"failed", stats.Failed,
		"total", stats.Total)

	return stats, nil
}

// upsertArticle writes one article keyed on (source_id, external_id) and
// reports whether a new row was inserted. MySQL reports one affected row
// for an insert and two for an update of an existing row.
func (r *Repository) upsertArticle(
	ctx context.Context, sourceID, categoryID int64, article domain.Article,
) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO articles
			(source_id, category_id, external_id, title, description, content,
			 author, url, image_url, published_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
			category_id = VALUES(category_id),
			title = VALUES(title),
			description = VALUES(description),
			content = VALUES(content),
			author = VALUES(author),
			url = VALUES(url),
			image_url = VALUES(image_url),
			published_at = VALUES(published_at)`,
		sourceID, categoryID, article.ExternalID, article.Title,
		article.Description, article.Content, article.Author,
		article.URL, article.ImageURL, article.PublishedAt,
	)
	if err != nil {
		return false, fmt.Errorf("upserting article: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing transaction: %w", err)
	}

	return affected == 1, nil
}

const articleColumns = `articles.id, articles.external_id, articles.title,
	COALESCE(articles.description, ''), COALESCE(articles.content, ''),
	COALESCE(articles.author, ''), articles.url, COALESCE(articles.image_url, ''),
	articles.published_at, sources.name, categories.slug,
	articles.source_id, articles.category_id`

// SearchArticles returns one page of articles matching the filters. When a
// preference set is supplied, results are ranked by preference tier before
// recency; otherwise the explicit sort in options applies.
func (r *Repository) SearchArticles(
	ctx context.Context,
	filters domain.SearchFilters,
	prefs *domain.PreferenceSet,
	options domain.SearchOptions,
) (domain.ArticlePage, error) {
	total, err := r.countMatchingArticles(ctx, filters)
	if err != nil {
		return domain.ArticlePage{}, err
	}

	sb := sqlbuilder.Select(articleColumns)
	articlesFromJoins(sb)

	conds := buildSearchConditions(sb, filters)
	if len(conds) > 0 {
		sb.Where(conds...)
	}

	sb.OrderBy(buildSearchOrder(sb, prefs, options)...)
	sb.Offset((options.Page - 1) * options.PerPage)
	sb.Limit(options.PerPage)

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.ArticlePage{}, fmt.Errorf("running articles query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := []domain.Article{}
	for rows.Next() {
		var article domain.Article
		if err := rows.Scan(
			&article.ID,
			&article.ExternalID,
			&article.Title,
			&article.Description,
			&article.Content,
			&article.Author,
			&article.URL,
			&article.ImageURL,
			&article.PublishedAt,
			&article.Source,
			&article.Category,
			&article.SourceID,
			&article.CategoryID,
		); err != nil {
			return domain.ArticlePage{}, fmt.Errorf("scanning articles: %w", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return domain.ArticlePage{}, fmt.Errorf("iterating articles: %w", err)
	}

	return domain.ArticlePage{
		Data: articles,
		Meta: domain.NewPageMeta(options.Page, options.PerPage, total),
	}, nil
}

// ListLatestArticles returns the most recently published articles across
// all sources, used for feed generation.
func (r *Repository) ListLatestArticles(ctx context.Context, limit int) ([]domain.Article, error) {
	page, err := r.SearchArticles(ctx, domain.SearchFilters{}, nil, domain.SearchOptions{
		SortBy:  "-" + domain.SortFieldPublishedAt,
		Page:    1,
		PerPage: limit,
	})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

func (r *Repository) countMatchingArticles(
	ctx context.Context, filters domain.SearchFilters,
) (int64, error) {
	sb := sqlbuilder.Select("COUNT(*)")
	articlesFromJoins(sb)

	conds := buildSearchConditions(sb, filters)
	if len(conds) > 0 {
		sb.Where(conds...)
	}

	query, args := sb.Build()

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting matching articles: %w", err)
	}
	return count, nil
}

func articlesFromJoins(sb *sqlbuilder.SelectBuilder) {
	sb.From("articles")
	sb.Join("sources", "sources.id = articles.source_id")
	sb.Join("categories", "categories.id = articles.category_id")
}

func buildSearchConditions(sb *sqlbuilder.SelectBuilder, filters domain.SearchFilters) []string {
	var conds []string

	if filters.Keyword != "" {
		pattern := "%" + filters.Keyword + "%"
		conds = append(conds, sb.Or(
			sb.Like("articles.title", pattern),
			sb.Like("articles.description", pattern),
			sb.Like("articles.content", pattern),
		))
	}

	if filters.Source != "" {
		conds = append(conds, sb.Equal("sources.slug", filters.Source))
	}

	if filters.Category != "" {
		conds = append(conds, sb.Equal("categories.slug", filters.Category))
	}

	if filters.Author != "" {
		conds = append(conds, sb.Like("articles.author", "%"+filters.Author+"%"))
	}

	if filters.DateFrom != (time.Time{}) {
		conds = append(conds, sb.GreaterEqualThan("articles.published_at", filters.DateFrom))
	}

	if filters.DateTo != (time.Time{}) {
		conds = append(conds, sb.LessEqualThan("articles.published_at", filters.DateTo))
	}

	return conds
}

// buildSearchOrder builds the ORDER BY clauses. Preference ranking takes
// priority over the explicit sort; recency always breaks ties.
func buildSearchOrder(
	sb *sqlbuilder.SelectBuilder, prefs *domain.PreferenceSet, options domain.SearchOptions,
) []string {
	if prefs != nil {
		return []string{buildTierExpr(sb, *prefs), "articles.published_at DESC"}
	}

	field := options.SortBy
	desc := strings.HasPrefix(field, "-")
	field = strings.TrimPrefix(field, "-")

	var col string
	switch field {
	case domain.SortFieldTitle:
		col = "articles.title"
	case domain.SortFieldPublishedAt:
		col = "articles.published_at"
	default:
		// Unrecognised sorts fall back to newest-first.
		return []string{"articles.published_at DESC"}
	}

	if desc {
		col += " DESC"
	}
	return []string{col}
}

// buildTierExpr renders the four-tier preference ranking as a CASE
// expression: 1 = all three dimensions match, 2 = any two, 3 = any one,
// 4 = none. Empty dimensions compare against IN (NULL), which never
// matches anything.
func buildTierExpr(sb *sqlbuilder.SelectBuilder, prefs domain.PreferenceSet) string {
	src := preferenceIn(sb, "articles.source_id", int64Values(prefs.SourceIDs))
	cat := preferenceIn(sb, "articles.category_id", int64Values(prefs.CategoryIDs))
	auth := preferenceIn(sb, "articles.author", stringValues(prefs.Authors))

	return "CASE" +
		" WHEN " + src + " AND " + cat + " AND " + auth + " THEN 1" +
		" WHEN (" + src + " AND " + cat + ") OR (" + src + " AND " + auth + ") OR (" + cat + " AND " + auth + ") THEN 2" +
		" WHEN " + src + " OR " + cat + " OR " + auth + " THEN 3" +
		" ELSE 4 END"
}

func preferenceIn(sb *sqlbuilder.SelectBuilder, col string, values []interface{}) string {
	if len(values) == 0 {
		return col + " IN (NULL)"
	}
	return sb.In(col, values...)
}

func int64Values(ids []int64) []interface{} {
	values := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		values = append(values, id)
	}
	return values
}

func stringValues(strs []string) []interface{} {
	values := make([]interface{}, 0, len(strs))
	for _, s := range strs {
		values = append(values, s)
	}
	return values
}
