package search

import (
	"context"
	"fmt"

	"gearshare-backend/internal/application/listings"

	"github.com/meilisearch/meilisearch-go"
)

const indexUID = "listings"

// Client wraps the Meilisearch index holding the derived listing documents.
type Client struct {
	client *meilisearch.Client
	index  string
}

func NewClient(host, apiKey string) *Client {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})
	return &Client{client: client, index: indexUID}
}

// InitIndex creates the index if needed and configures its attributes.
// name is searchable; owner_id and _geo are filterable so callers can scope
// results to an owner or a geo radius.
func (c *Client) InitIndex() error {
	_, err := c.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        c.index,
		PrimaryKey: "id",
	})
	if err != nil && err.Error() != "index already exists" {
		return err
	}

	_, err = c.client.Index(c.index).UpdateSearchableAttributes(&[]string{"name"})
	if err != nil {
		return err
	}
	_, err = c.client.Index(c.index).UpdateFilterableAttributes(&[]string{"owner_id", "_geo"})
	if err != nil {
		return err
	}
	_, err = c.client.Index(c.index).UpdateSortableAttributes(&[]string{"_geo"})
	return err
}

// Health checks the Meilisearch instance is reachable.
func (c *Client) Health() error {
	_, err := c.client.Health()
	return err
}

// Put upserts a listing document.
func (c *Client) Put(ctx context.Context, doc listings.SearchDocument) error {
	_, err := c.client.Index(c.index).AddDocuments([]listings.SearchDocument{doc})
	return err
}

// Delete removes the document for the given listing ID. Meilisearch treats a
// delete of an absent document as a no-op task, which matches the delete-first
// ordering the listing service relies on.
func (c *Client) Delete(ctx context.Context, docID string) error {
	_, err := c.client.Index(c.index).DeleteDocument(docID)
	return err
}

// Query runs a text search over listing documents, optionally constrained to a
// radius (meters) around a point.
func (c *Client) Query(ctx context.Context, q string, opts listings.SearchOptions) (*listings.SearchResult, error) {
	req := &meilisearch.SearchRequest{Limit: opts.Limit}
	if req.Limit == 0 {
		req.Limit = 20
	}
	if opts.RadiusMeters > 0 {
		req.Filter = fmt.Sprintf("_geoRadius(%f, %f, %d)", opts.Lat, opts.Lon, opts.RadiusMeters)
	}

	res, err := c.client.Index(c.index).Search(q, req)
	if err != nil {
		return nil, err
	}

	hits := make([]listings.SearchDocument, 0, len(res.Hits))
	for _, hit := range res.Hits {
		hits = append(hits, parseHit(hit))
	}
	return &listings.SearchResult{
		Hits:      hits,
		TotalHits: res.EstimatedTotalHits,
	}, nil
}

func parseHit(hit interface{}) listings.SearchDocument {
	m, ok := hit.(map[string]interface{})
	if !ok {
		return listings.SearchDocument{}
	}
	doc := listings.SearchDocument{
		ID:      getString(m, "id"),
		Name:    getString(m, "name"),
		OwnerID: getString(m, "owner_id"),
	}
	if geo, ok := m["_geo"].(map[string]interface{}); ok {
		if lat, ok := geo["lat"].(float64); ok {
			doc.Geo.Lat = lat
		}
		if lng, ok := geo["lng"].(float64); ok {
			doc.Geo.Lng = lng
		}
	}
	return doc
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
