package listings

// GeoPoint is a geographic point in the shape Meilisearch expects for _geo.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SearchDocument is the derived projection of a listing kept in the search
// index. The listing record is authoritative; this document may transiently
// diverge on partial failure.
type SearchDocument struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	OwnerID string   `json:"owner_id"`
	Geo     GeoPoint `json:"_geo"`
}

// SearchOptions constrain a text query. RadiusMeters > 0 adds a geo filter
// around (Lat, Lon).
type SearchOptions struct {
	Limit        int64
	Lat          float64
	Lon          float64
	RadiusMeters int64
}

// SearchResult is a page of search hits.
type SearchResult struct {
	Hits      []SearchDocument `json:"hits"`
	TotalHits int64            `json:"total"`
}
