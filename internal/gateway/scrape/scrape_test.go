package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martin/listing-hunter/internal/types"
)

const indexPage = `<!DOCTYPE html>
<html><body>
<div class="listing">
  <h2 class="title">1+KK Studio, Malešická</h2>
  <span class="price">18 900 Kč</span>
  <span class="location">Malešická, Praha 3 - Žižkov</span>
  <span class="disposition">1+KK Studio</span>
  <span class="size">40 m2</span>
  <p class="description">Cozy studio near the park.</p>
  <a href="/detail/124">detail</a>
</div>
<div class="listing">
  <h2 class="title">2+1 Apartment, Vinohradská</h2>
  <span class="price">28 500 Kč</span>
  <span class="location">Vinohradská, Praha 2 - Vinohrady</span>
  <span class="disposition">2+1 Apartment</span>
  <span class="size">65 m2</span>
  <a href="https://other.example.com/detail/125">detail</a>
</div>
<div class="listing"></div>
</body></html>`

func TestNew_RequiresIndexURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestSearch_ExtractsCards(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(indexPage))
	}))
	defer server.Close()

	scraper, err := New(Config{IndexURL: server.URL})
	require.NoError(t, err)

	listings, err := scraper.Search(context.Background(), types.Criteria{Kind: types.KindProperty})

	require.NoError(t, err)
	require.Len(t, listings, 2, "empty cards are skipped")

	first := listings[0]
	assert.Equal(t, "1+KK Studio, Malešická", first.Title)
	assert.Equal(t, "Malešická, Praha 3 - Žižkov", first.Location)
	assert.Equal(t, server.URL+"/detail/124", first.Link, "relative links are resolved against the page host")
	assert.Equal(t, 18900.0, first.Price)
	assert.Equal(t, "18 900 Kč", first.PriceRaw)
	assert.Equal(t, 40.0, first.SizeM2)
	assert.Equal(t, 1, first.Bedrooms)
	assert.Equal(t, "Cozy studio near the park.", first.Description)

	second := listings[1]
	assert.Equal(t, "https://other.example.com/detail/125", second.Link, "absolute links pass through")
	assert.Equal(t, 2, second.Bedrooms)
}

func TestSearch_QueryPlaceholder(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte("<html><body></body></html>"))
	}))
	defer server.Close()

	scraper, err := New(Config{IndexURL: server.URL + "/search?q={query}"})
	require.NoError(t, err)

	_, err = scraper.Search(context.Background(), types.Criteria{
		Kind:  types.KindProperty,
		Query: "studio praha 3",
	})

	require.NoError(t, err)
	assert.Equal(t, "studio praha 3", gotQuery)
}

func TestSearch_NoCardsIsValid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html><body><p>no results</p></body></html>"))
	}))
	defer server.Close()

	scraper, err := New(Config{IndexURL: server.URL})
	require.NoError(t, err)

	listings, err := scraper.Search(context.Background(), types.Criteria{Kind: types.KindProperty})

	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestSearch_FetchFailure(t *testing.T) {
	scraper, err := New(Config{IndexURL: "http://127.0.0.1:1/unreachable"})
	require.NoError(t, err)

	_, err = scraper.Search(context.Background(), types.Criteria{Kind: types.KindProperty})
	assert.Error(t, err)
}

func TestCustomSelectors(t *testing.T) {
	page := `<html><body>
<article data-listing>
  <h3>3+1, Korunní</h3>
  <em>35 000</em>
</article>
</body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	scraper, err := New(Config{
		IndexURL: server.URL,
		Selectors: Selectors{
			Card:  "article[data-listing]",
			Title: "h3",
			Price: "em",
		},
	})
	require.NoError(t, err)

	listings, err := scraper.Search(context.Background(), types.Criteria{Kind: types.KindProperty})

	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "3+1, Korunní", listings[0].Title)
	assert.Equal(t, 35000.0, listings[0].Price)
}
