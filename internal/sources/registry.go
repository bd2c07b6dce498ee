package sources

import (
	"fmt"

	"github.com/newsdeck/newsdeck/internal/config"
	"github.com/newsdeck/newsdeck/internal/datasources"
	"github.com/newsdeck/newsdeck/internal/domain"
)

// Source slugs with a shipped adapter.
const (
	SlugGuardian = "the-guardian"
	SlugNewsAPI  = "newsapi"
	SlugNYT      = "new-york-times"
)

// ForSource builds the adapter for a source record, resolving its
// credentials from the catalogue. Sources without a catalogue entry still
// get an adapter; it reports itself unconfigured.
func ForSource(source domain.Source, catalogue *config.Sources, cache datasources.Cache) (NewsSource, error) {
	creds, _ := catalogue.Lookup(source.Slug)

	switch source.Slug {
	case SlugGuardian:
		return NewGuardian(source, creds, cache), nil
	case SlugNewsAPI:
		return NewNewsAPI(source, creds, cache), nil
	case SlugNYT:
		return NewNYT(source, creds, cache), nil
	default:
		return nil, fmt.Errorf("no adapter for source [%s]", source.Slug)
	}
}
