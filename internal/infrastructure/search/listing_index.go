package search

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"
)

const (
	KindService = "service"
	KindVenue   = "venue"
)

// ListingDoc is the flattened search document for a published listing.
// Both listing kinds share one index so customers search the whole
// catalog at once.
type ListingDoc struct {
	ID          string   `json:"id"`
	Kind        string   `json:"kind"`
	OwnerID     string   `json:"owner_id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	City        string   `json:"city,omitempty"`
	Areas       []string `json:"areas,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	PublishedAt string   `json:"published_at"`
}

// ListingIndex wraps the Elasticsearch client for the published-listings
// index. A nil client turns every method into a no-op so the API keeps
// working when search is not configured.
type ListingIndex struct {
	es    *elasticsearch.Client
	index string
	log   *logrus.Logger
}

func NewListingIndex(es *elasticsearch.Client, index string, log *logrus.Logger) *ListingIndex {
	return &ListingIndex{es: es, index: index, log: log}
}

func (x *ListingIndex) enabled() bool {
	return x != nil && x.es != nil && x.index != ""
}

func (x *ListingIndex) Index(ctx context.Context, doc ListingDoc) error {
	if !x.enabled() {
		return nil
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: x.index, DocumentID: doc.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		x.log.WithError(err).WithField("listing_id", doc.ID).Warn("es index failed")
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		x.log.WithField("status", res.Status()).WithField("listing_id", doc.ID).Warn("es index response error")
	}
	return nil
}

func (x *ListingIndex) Remove(ctx context.Context, id string) error {
	if !x.enabled() {
		return nil
	}
	req := esapi.DeleteRequest{Index: x.index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		x.log.WithError(err).WithField("listing_id", id).Warn("es delete failed")
		return err
	}
	defer func() { _ = res.Body.Close() }()
	// 404 just means the listing was never indexed
	if res.IsError() && res.StatusCode != 404 {
		x.log.WithField("status", res.Status()).WithField("listing_id", id).Warn("es delete response error")
	}
	return nil
}

// Search runs a multi_match over the text fields, optionally filtered by
// kind, and returns hits plus the total match count.
func (x *ListingIndex) Search(ctx context.Context, q, kind string, from, size int) ([]ListingDoc, int64, error) {
	if !x.enabled() {
		return []ListingDoc{}, 0, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}

	must := []map[string]any{}
	if q != "" {
		must = append(must, map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^3", "category^2", "tags^2", "description", "city", "areas"},
			},
		})
	} else {
		must = append(must, map[string]any{"match_all": map[string]any{}})
	}

	query := map[string]any{
		"query": map[string]any{"bool": map[string]any{"must": must}},
		"from":  from,
		"size":  size,
		"sort":  []map[string]any{{"published_at": map[string]any{"order": "desc", "unmapped_type": "date"}}},
	}
	if kind != "" {
		query["query"].(map[string]any)["bool"].(map[string]any)["filter"] = []map[string]any{
			{"term": map[string]any{"kind": kind}},
		}
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := x.es.Search(
		x.es.Search.WithContext(c),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(strings.NewReader(string(b))),
		x.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source ListingDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, err
	}

	out := make([]ListingDoc, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, parsed.Hits.Total.Value, nil
}
