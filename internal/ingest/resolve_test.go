package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/newsdeck/newsdeck/internal/config"
	"github.com/newsdeck/newsdeck/internal/datasources/memcache"
	"github.com/newsdeck/newsdeck/internal/datasources/mocks"
	"github.com/newsdeck/newsdeck/internal/domain"
	"github.com/newsdeck/newsdeck/internal/sources"
)

func TestResolveSources(t *testing.T) {
	active := []domain.Source{
		{ID: 1, Slug: sources.SlugGuardian, Active: true},
		{ID: 2, Slug: sources.SlugNewsAPI, Active: true},
		{ID: 3, Slug: "some-new-provider", Active: true},
	}

	catalogue, err := config.LoadSources("")
	require.NoError(t, err)

	t.Run("all_sources_with_adapters", func(t *testing.T) {
		lister := &mocks.ActiveSourceLister{}
		lister.On("ListActiveSources", mock.Anything).Return(active, nil).Once()

		resolved, err := ResolveSources(context.Background(), lister, catalogue, memcache.New(), nil)
		require.NoError(t, err)

		// The provider without an adapter is skipped, not fatal.
		require.Len(t, resolved, 2)
		assert.Equal(t, sources.SlugGuardian, resolved[0].Identifier())
		assert.Equal(t, sources.SlugNewsAPI, resolved[1].Identifier())
	})

	t.Run("restricted_to_requested_slugs", func(t *testing.T) {
		lister := &mocks.ActiveSourceLister{}
		lister.On("ListActiveSources", mock.Anything).Return(active, nil).Once()

		resolved, err := ResolveSources(context.Background(), lister, catalogue, memcache.New(),
			[]string{sources.SlugNewsAPI})
		require.NoError(t, err)

		require.Len(t, resolved, 1)
		assert.Equal(t, sources.SlugNewsAPI, resolved[0].Identifier())
	})
}

func TestResolveCategories(t *testing.T) {
	lister := &mocks.CategoryLister{}
	lister.On("ListCategories", mock.Anything).Return([]domain.Category{
		{ID: 1, Slug: "technology"},
		{ID: 2, Slug: "science"},
		{ID: 3, Slug: "health"},
	}, nil).Times(2)

	all, err := ResolveCategories(context.Background(), lister, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"technology", "science", "health"}, all)

	some, err := ResolveCategories(context.Background(), lister, []string{"science"})
	require.NoError(t, err)
	assert.Equal(t, []string{"science"}, some)
}
