package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"market-research-be/internal/constant"
	"market-research-be/pkg/retrieval"
	"market-research-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// Retriever queries the MediaWiki Action API in two steps: a ranked
// title search, then a plain-text extract fetch for the matched pages.
type Retriever struct {
	BaseURL string
	Client  *http.Client
	cache   *cache.Cache
}

// Ensure Retriever implements retrieval.Provider
var _ retrieval.Provider = &Retriever{}

func NewRetriever(baseURL string) *Retriever {
	return &Retriever{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: cache.New(1*time.Hour, 10*time.Minute),
	}
}

// --- Response structs (internal to this package) ---

type searchResponse struct {
	Query struct {
		Search []struct {
			Title  string `json:"title"`
			PageID int    `json:"pageid"`
		} `json:"search"`
	} `json:"query"`
}

type extractResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
			FullURL string `json:"fullurl"`
		} `json:"pages"`
	} `json:"query"`
}

// Search returns up to topK documents in the API's relevance order.
func (r *Retriever) Search(ctx context.Context, query string, topK int) ([]store.Document, error) {
	cacheKey := fmt.Sprintf("search:%s:%d", query, topK)
	if x, found := r.cache.Get(cacheKey); found {
		return x.([]store.Document), nil
	}

	titles, err := r.searchTitles(ctx, query, topK)
	if err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		return []store.Document{}, nil
	}

	pages, err := r.fetchExtracts(ctx, titles)
	if err != nil {
		return nil, err
	}

	// Keep the search ranking: the extract endpoint returns pages as an
	// unordered map keyed by page id.
	docs := make([]store.Document, 0, len(titles))
	for _, title := range titles {
		page, ok := pages[title]
		if !ok {
			continue
		}
		sourceURL := page.url
		if sourceURL == "" {
			sourceURL = SynthesizeArticleURL(title)
		}
		docs = append(docs, store.Document{
			Title:     title,
			SourceURL: sourceURL,
			Content:   page.extract,
		})
	}

	r.cache.Set(cacheKey, docs, cache.DefaultExpiration)
	return docs, nil
}

// SynthesizeArticleURL builds a canonical article URL from a page title
// when the API response omits one.
func SynthesizeArticleURL(title string) string {
	return constant.WikipediaArticleBase + strings.ReplaceAll(title, " ", "_")
}

func (r *Retriever) searchTitles(ctx context.Context, query string, topK int) ([]string, error) {
	params := url.Values{}
	params.Add("action", "query")
	params.Add("list", "search")
	params.Add("srsearch", query)
	params.Add("srlimit", fmt.Sprintf("%d", topK))
	params.Add("format", "json")

	body, err := r.get(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("wikipedia search failed: %w", err)
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal search response: %w", err)
	}

	titles := make([]string, 0, len(result.Query.Search))
	for _, s := range result.Query.Search {
		titles = append(titles, s.Title)
	}
	return titles, nil
}

type pageData struct {
	extract string
	url     string
}

func (r *Retriever) fetchExtracts(ctx context.Context, titles []string) (map[string]pageData, error) {
	params := url.Values{}
	params.Add("action", "query")
	params.Add("prop", "extracts|info")
	params.Add("titles", strings.Join(titles, "|"))
	params.Add("explaintext", "1")
	params.Add("exlimit", "max")
	params.Add("inprop", "url")
	params.Add("format", "json")

	body, err := r.get(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("wikipedia extract fetch failed: %w", err)
	}

	var result extractResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal extract response: %w", err)
	}

	pages := make(map[string]pageData, len(result.Query.Pages))
	for _, p := range result.Query.Pages {
		pages[p.Title] = pageData{
			extract: p.Extract,
			url:     p.FullURL,
		}
	}
	return pages, nil
}

func (r *Retriever) get(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", r.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "market-research-be/1.0")

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
