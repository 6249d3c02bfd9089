package literature

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	commonerrors "medical-diagnosis/internal/common/errors"
	"medical-diagnosis/internal/common/logger"
)

// Client retrieves bibliographic records from the NCBI E-utilities service.
// Retrieval is two sequential calls: esearch resolves the query to an
// ordered PMID list, efetch resolves PMIDs to full records. The client is
// stateless and safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Logger
}

// Config holds the E-utilities endpoint settings. APIKey is optional and
// only raises NCBI rate limits.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout int // milliseconds
}

func NewClient(cfg Config, log logger.Logger) *Client {
	base := cfg.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &Client{
		baseURL: base,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Millisecond,
		},
		logger: log.With(map[string]interface{}{"stage": "literature"}),
	}
}

// Search submits the query and returns parsed records. An empty result set
// is a valid, non-error outcome; only transport-level problems fail.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Article, error) {
	ids, err := c.searchIDs(ctx, query, maxResults)
	if err != nil {
		return nil, commonerrors.NewLiteratureSearchFailedError(err)
	}

	if len(ids) == 0 {
		c.logger.Info("no matching literature", map[string]interface{}{"query": query})
		return nil, nil
	}

	raw, err := c.fetchRecords(ctx, ids)
	if err != nil {
		return nil, commonerrors.NewLiteratureSearchFailedError(err)
	}

	articles := parseArticles(raw)

	c.logger.Info("literature retrieved", map[string]interface{}{
		"idCount":      len(ids),
		"articleCount": len(articles),
	})

	return articles, nil
}

// searchIDs runs esearch.fcgi and returns the ordered PMID list.
func (c *Client) searchIDs(ctx context.Context, query string, maxResults int) ([]string, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", query)
	params.Set("retmax", strconv.Itoa(maxResults))
	params.Set("retmode", "json")
	params.Set("sort", "relevance")
	c.addAPIKey(params)

	body, err := c.get(ctx, "esearch.fcgi", params)
	if err != nil {
		return nil, err
	}

	var result struct {
		ESearchResult struct {
			IDList []string `json:"idlist"`
		} `json:"esearchresult"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode esearch response: %w", err)
	}

	return result.ESearchResult.IDList, nil
}

// fetchRecords runs efetch.fcgi for the comma-joined PMID list and returns
// the raw XML document.
func (c *Client) fetchRecords(ctx context.Context, ids []string) ([]byte, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "xml")
	params.Set("rettype", "abstract")
	c.addAPIKey(params)

	return c.get(ctx, "efetch.fcgi", params)
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", endpoint, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) addAPIKey(params url.Values) {
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
}
