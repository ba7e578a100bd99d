package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate-api/domain"
	"estate-api/query"
)

// SolrRepository sirve los listados desde un core de Solr y lo mantiene
// sincronizado con MongoDB.
type SolrRepository interface {
	PropertyStore
	Index(ctx context.Context, property domain.Property) error
	Delete(ctx context.Context, propertyID string) error
}

type solrRepository struct {
	solrURL    string
	httpClient *http.Client
}

// NewSolrRepository crea un repositorio para el core en solrURL
func NewSolrRepository(solrURL string) SolrRepository {
	return &solrRepository{
		solrURL:    strings.TrimSuffix(solrURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type solrSearchResponse struct {
	Response struct {
		NumFound int64                    `json:"numFound"`
		Docs     []map[string]interface{} `json:"docs"`
	} `json:"response"`
}

type solrUpdateResponse struct {
	ResponseHeader struct {
		Status int `json:"status"`
	} `json:"responseHeader"`
}

func (r *solrRepository) Find(ctx context.Context, plan query.Plan) ([]domain.PropertySummary, error) {
	fq, err := solrFilterQueries(plan.Filter)
	if err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("q", "*:*")
	params["fq"] = fq
	params.Set("sort", solrSort(plan.Sort))
	params.Set("start", strconv.FormatInt(plan.Pagination.Skip(), 10))
	params.Set("rows", strconv.Itoa(plan.Pagination.Limit))
	params.Set("wt", "json")

	resp, err := r.selectDocs(ctx, params)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.PropertySummary, 0, len(resp.Response.Docs))
	for _, doc := range resp.Response.Docs {
		rows = append(rows, mapDocToSummary(doc))
	}
	return rows, nil
}

func (r *solrRepository) Count(ctx context.Context, filter query.Filter) (int64, error) {
	fq, err := solrFilterQueries(filter)
	if err != nil {
		return 0, err
	}
	params := url.Values{}
	params.Set("q", "*:*")
	params["fq"] = fq
	params.Set("rows", "0")
	params.Set("wt", "json")

	resp, err := r.selectDocs(ctx, params)
	if err != nil {
		return 0, err
	}
	return resp.Response.NumFound, nil
}

func (r *solrRepository) selectDocs(ctx context.Context, params url.Values) (*solrSearchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.solrURL+"/select?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	body, err := r.do(req)
	if err != nil {
		return nil, err
	}
	var out solrSearchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}
	return &out, nil
}

// Index agrega o reemplaza el documento de la propiedad y hace commit
func (r *solrRepository) Index(ctx context.Context, property domain.Property) error {
	if err := r.update(ctx, "/update/json/docs", propertyToDoc(property)); err != nil {
		return fmt.Errorf("error indexing property %s: %w", property.ID.Hex(), err)
	}
	return r.commit(ctx)
}

// Delete elimina el documento de propertyID y hace commit
func (r *solrRepository) Delete(ctx context.Context, propertyID string) error {
	cmd := map[string]interface{}{"delete": map[string]string{"id": propertyID}}
	if err := r.update(ctx, "/update", cmd); err != nil {
		return fmt.Errorf("error deleting property %s: %w", propertyID, err)
	}
	return r.commit(ctx)
}

func (r *solrRepository) commit(ctx context.Context) error {
	if err := r.update(ctx, "/update", map[string]interface{}{"commit": map[string]interface{}{}}); err != nil {
		return fmt.Errorf("error committing: %w", err)
	}
	return nil
}

func (r *solrRepository) update(ctx context.Context, path string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.solrURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := r.do(req)
	if err != nil {
		return err
	}
	var out solrUpdateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return fmt.Errorf("error parsing response: %w", err)
	}
	if out.ResponseHeader.Status != 0 {
		return fmt.Errorf("solr update failed with status %d", out.ResponseHeader.Status)
	}
	return nil
}

func (r *solrRepository) do(req *http.Request) ([]byte, error) {
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("solr returned status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// solrField traduce un campo de la query al schema del core
func solrField(f query.Field) string {
	if f == query.FieldID {
		return "id"
	}
	return f.String()
}

// solrFilterQueries convierte cada predicado en una o más cláusulas fq. El
// texto y los valores exactos se indexan en minúscula.
func solrFilterQueries(filter query.Filter) ([]string, error) {
	var fq []string
	for _, p := range filter.Predicates() {
		switch pred := p.(type) {
		case query.ExactMatch:
			fq = append(fq, fmt.Sprintf("%s:\"%s\"", solrField(pred.Field()), escapeSolrQuery(strings.ToLower(pred.Value()))))

		case query.Range:
			lo, hi := "*", "*"
			if v, ok := pred.Min(); ok {
				lo = strconv.FormatFloat(v, 'f', -1, 64)
			}
			if v, ok := pred.Max(); ok {
				hi = strconv.FormatFloat(v, 'f', -1, 64)
			}
			fq = append(fq, fmt.Sprintf("%s:[%s TO %s]", solrField(pred.Field()), lo, hi))

		case query.SetContainsAll:
			for _, v := range pred.Values() {
				fq = append(fq, fmt.Sprintf("%s:\"%s\"", solrField(pred.Field()), escapeSolrQuery(v)))
			}

		case query.TextOr:
			term := escapeSolrQuery(strings.ToLower(pred.Term()))
			parts := make([]string, 0, len(pred.Fields()))
			for _, f := range pred.Fields() {
				parts = append(parts, fmt.Sprintf("%s:*%s*", solrField(f), term))
			}
			fq = append(fq, "("+strings.Join(parts, " OR ")+")")

		case query.Flag:
			fq = append(fq, fmt.Sprintf("%s:%t", solrField(pred.Field()), pred.Value()))

		case query.Reference:
			if _, err := primitive.ObjectIDFromHex(pred.ID()); err != nil {
				return nil, fmt.Errorf("invalid reference id %q: %w", pred.ID(), err)
			}
			fq = append(fq, fmt.Sprintf("%s:\"%s\"", solrField(pred.Field()), pred.ID()))

		default:
			return nil, fmt.Errorf("unsupported predicate %T", p)
		}
	}
	return fq, nil
}

func solrSort(spec query.SortSpec) string {
	keys := spec.Keys()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, solrField(k.Field)+" "+k.Direction.String())
	}
	return strings.Join(parts, ",")
}

func propertyToDoc(p domain.Property) map[string]interface{} {
	doc := map[string]interface{}{
		"id":          p.ID.Hex(),
		"name":        p.Name,
		"description": p.Description,
		"address":     p.Address,
		"city":        p.City,
		"projectName": p.ProjectName,
		"category":    p.Category,
		"type":        p.Type,
		"status":      p.Status,
		"price":       p.Price,
		"size":        p.Size,
		"bedrooms":    p.Bedrooms,
		"bathrooms":   p.Bathrooms,
		"amenities":   p.Amenities,
		"highROI":     p.HighROI,
		"verified":    p.Verified,
		"images":      p.Images,
		"createdAt":   p.CreatedAt.UTC().Format(time.RFC3339),
		"updatedAt":   p.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if !p.AgentID.IsZero() {
		doc["agentId"] = p.AgentID.Hex()
	}
	return doc
}

func mapDocToSummary(doc map[string]interface{}) domain.PropertySummary {
	s := domain.PropertySummary{
		Name:        docString(doc, "name"),
		Address:     docString(doc, "address"),
		City:        docString(doc, "city"),
		ProjectName: docString(doc, "projectName"),
		Category:    docString(doc, "category"),
		Type:        docString(doc, "type"),
		Status:      docString(doc, "status"),
		Price:       docFloat(doc, "price"),
		Size:        docFloat(doc, "size"),
		Bedrooms:    int(docFloat(doc, "bedrooms")),
		Bathrooms:   int(docFloat(doc, "bathrooms")),
		Amenities:   docStrings(doc, "amenities"),
		Images:      docStrings(doc, "images"),
	}
	if id, err := primitive.ObjectIDFromHex(docString(doc, "id")); err == nil {
		s.ID = id
	}
	if id, err := primitive.ObjectIDFromHex(docString(doc, "agentId")); err == nil {
		s.AgentID = id
	}
	if b, ok := doc["highROI"].(bool); ok {
		s.HighROI = b
	}
	if b, ok := doc["verified"].(bool); ok {
		s.Verified = b
	}
	if t, err := time.Parse(time.RFC3339, docString(doc, "createdAt")); err == nil {
		s.CreatedAt = t
	}
	s.SetCover()
	return s
}

// docString lee un campo string y desarma los multivaluados de un elemento
func docString(doc map[string]interface{}, key string) string {
	switch v := doc[key].(type) {
	case string:
		return v
	case []interface{}:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

func docFloat(doc map[string]interface{}, key string) float64 {
	switch v := doc[key].(type) {
	case float64:
		return v
	case []interface{}:
		if len(v) > 0 {
			if f, ok := v[0].(float64); ok {
				return f
			}
		}
	}
	return 0
}

func docStrings(doc map[string]interface{}, key string) []string {
	raw, ok := doc[key].([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// escapeSolrQuery escapa los caracteres especiales de la sintaxis de Lucene
func escapeSolrQuery(q string) string {
	var b strings.Builder
	for _, r := range q {
		if strings.ContainsRune(`\+-&|!(){}[]^"~*?:/ `, r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
