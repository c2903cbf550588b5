package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// DistrictEndpoint is the NCES EDGE district layer.
	DistrictEndpoint = "https://nces.ed.gov/opengis/rest/services/K12_School_Locations/EDGE_GEOCODE_PUBLICLEA_1516/MapServer/0/query"

	// PrivateSchoolEndpoint and PublicSchoolEndpoint are the two school
	// layers; every school search hits both.
	PrivateSchoolEndpoint = "https://services1.arcgis.com/Ua5sjt3LWTPigjyD/arcgis/rest/services/Private_School_Locations_Current/FeatureServer/0/query"
	PublicSchoolEndpoint  = "https://services1.arcgis.com/Ua5sjt3LWTPigjyD/arcgis/rest/services/Public_School_Location_201819/FeatureServer/0/query"
)

// Client is an HTTP client for the NCES directory feature servers.
type Client struct {
	districtURL string
	privateURL  string
	publicURL   string
	httpClient  *http.Client
}

// NewClient creates a client against the production endpoints.
func NewClient() *Client {
	return NewClientWithEndpoints(DistrictEndpoint, PrivateSchoolEndpoint, PublicSchoolEndpoint, 30*time.Second)
}

// NewClientWithEndpoints creates a client with overridden endpoints, for
// config-driven deployments.
func NewClientWithEndpoints(district, private, public string, timeout time.Duration) *Client {
	return &Client{
		districtURL: district,
		privateURL:  private,
		publicURL:   public,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type districtResponse struct {
	Features []districtFeature `json:"features"`
}

type districtFeature struct {
	Attributes DistrictRecord `json:"attributes"`
}

type schoolResponse struct {
	Features []schoolFeature `json:"features"`
}

type schoolFeature struct {
	Attributes SchoolRecord `json:"attributes"`
}

// SearchDistricts queries the district layer. The name term is always a
// case-insensitive substring match (an empty name matches everything); state
// is an exact case-insensitive match and city another substring match, both
// optional.
func (c *Client) SearchDistricts(ctx context.Context, name, state, city string) ([]DistrictRecord, error) {
	preds := []predicate{{field: "NAME", op: opSubstring, value: name}}
	if state != "" {
		preds = append(preds, predicate{field: "LSTATE", op: opExactFold, value: state})
	}
	if city != "" {
		preds = append(preds, predicate{field: "LCITY", op: opSubstring, value: city})
	}

	start := time.Now()
	var resp districtResponse
	if err := c.query(ctx, "districts", c.districtURL, preds, &resp); err != nil {
		return nil, err
	}

	out := make([]DistrictRecord, 0, len(resp.Features))
	for _, f := range resp.Features {
		out = append(out, f.Attributes)
	}
	LogResponse("nces/districts", http.StatusOK, time.Since(start), len(out))
	return out, nil
}

// SearchSchools queries both school layers concurrently and concatenates the
// results, private schools first. The upstream layers overlap, so the same
// school can legitimately appear twice; no deduplication is done. If either
// layer fails the whole call fails.
func (c *Client) SearchSchools(ctx context.Context, name, districtID, city string) ([]SchoolRecord, error) {
	preds := []predicate{{field: "NAME", op: opSubstring, value: name}}
	if districtID != "" {
		preds = append(preds, predicate{field: "LEAID", op: opExact, value: districtID})
	}
	if city != "" {
		preds = append(preds, predicate{field: "CITY", op: opSubstring, value: city})
	}

	start := time.Now()
	var private, public schoolResponse
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.query(gctx, "schools/private", c.privateURL, preds, &private)
	})
	g.Go(func() error {
		return c.query(gctx, "schools/public", c.publicURL, preds, &public)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]SchoolRecord, 0, len(private.Features)+len(public.Features))
	for _, f := range private.Features {
		out = append(out, f.Attributes)
	}
	for _, f := range public.Features {
		out = append(out, f.Attributes)
	}
	LogResponse("nces/schools", http.StatusOK, time.Since(start), len(out))
	return out, nil
}

func (c *Client) query(ctx context.Context, label, endpoint string, preds []predicate, dst any) error {
	where := whereClause(preds)

	params := url.Values{}
	params.Set("where", where)
	params.Set("outFields", "*")
	params.Set("outSR", "4326")
	params.Set("f", "json")

	fullURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	LogRequest("nces", http.MethodGet, endpoint, map[string]interface{}{"where": where})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create %s request: %w", label, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		LogError("nces", label, err)
		return fmt.Errorf("%s request: %w", label, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%s request: status %d", label, resp.StatusCode)
		LogError("nces", label, err)
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		LogError("nces", label, err)
		return fmt.Errorf("decode %s response: %w", label, err)
	}
	return nil
}
