// internal/clients/plantapi_client.go
package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"greengrove/internal/plant"
)

var (
	// ErrFetch marks a network failure or non-success response.
	ErrFetch = errors.New("plant api: fetch failed")
	// ErrMalformed marks a response that parsed but carried no usable payload.
	ErrMalformed = errors.New("plant api: malformed response")
)

// PlantAPI is the HTTP client for the remote plant catalog. Responses are
// normalized here: callers only ever see canonical plant.Category and
// plant.Plant records, never the raw wire shape.
type PlantAPI struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	tracer  trace.Tracer
}

// NewPlantAPI creates a client rooted at baseURL, e.g.
// "https://openapi.programming-hero.com/api".
func NewPlantAPI(baseURL string) *PlantAPI {
	return &PlantAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(10), 20),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "plant-api",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
		tracer: otel.Tracer("greengrove/plantapi"),
	}
}

// envelope covers the wrapper field names the API uses interchangeably.
type envelope struct {
	Plants     json.RawMessage `json:"plants"`
	Categories json.RawMessage `json:"categories"`
	Plant      json.RawMessage `json:"plant"`
	Data       json.RawMessage `json:"data"`
}

// payload picks the first populated wrapper field.
func (e envelope) payload() json.RawMessage {
	for _, raw := range []json.RawMessage{e.Plants, e.Categories, e.Plant, e.Data} {
		if len(raw) > 0 && string(raw) != "null" {
			return raw
		}
	}
	return nil
}

// ListCategories fetches the category list.
func (c *PlantAPI) ListCategories(ctx context.Context) ([]plant.Category, error) {
	body, err := c.get(ctx, "plantapi.list_categories", c.baseURL+"/categories")
	if err != nil {
		return nil, err
	}

	payload, err := unwrap(body)
	if err != nil {
		return nil, err
	}

	var categories []plant.Category
	if err := json.Unmarshal(payload, &categories); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return categories, nil
}

// ListPlants fetches the whole catalog.
func (c *PlantAPI) ListPlants(ctx context.Context) ([]plant.Plant, error) {
	return c.listPlantsFrom(ctx, "plantapi.list_plants", c.baseURL+"/plants")
}

// ListPlantsByCategory fetches the listing for one category.
func (c *PlantAPI) ListPlantsByCategory(ctx context.Context, id plant.ID) ([]plant.Plant, error) {
	return c.listPlantsFrom(ctx, "plantapi.list_plants_by_category", fmt.Sprintf("%s/category/%s", c.baseURL, id))
}

func (c *PlantAPI) listPlantsFrom(ctx context.Context, op, url string) ([]plant.Plant, error) {
	body, err := c.get(ctx, op, url)
	if err != nil {
		return nil, err
	}

	payload, err := unwrap(body)
	if err != nil {
		return nil, err
	}

	var plants []plant.Plant
	if err := json.Unmarshal(payload, &plants); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return plants, nil
}

// GetPlant fetches one plant's full detail. The detail endpoint wraps the
// record under `plant`, `plants`, or `data`, and has been seen returning it
// bare at the top level.
func (c *PlantAPI) GetPlant(ctx context.Context, id plant.ID) (*plant.Plant, error) {
	body, err := c.get(ctx, "plantapi.get_plant", fmt.Sprintf("%s/plant/%s", c.baseURL, id))
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	payload := env.payload()
	if payload == nil {
		payload = body
	}

	if len(payload) > 0 && payload[0] == '[' {
		var plants []plant.Plant
		if err := json.Unmarshal(payload, &plants); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if len(plants) == 0 {
			return nil, fmt.Errorf("%w: empty detail payload", ErrMalformed)
		}
		return &plants[0], nil
	}

	var p plant.Plant
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &p, nil
}

func unwrap(body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	payload := env.payload()
	if payload == nil {
		return nil, fmt.Errorf("%w: no recognized payload field", ErrMalformed)
	}
	return payload, nil
}

func (c *PlantAPI) get(ctx context.Context, op, url string) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, op,
		trace.WithAttributes(attribute.String("http.url", url)),
	)
	defer span.End()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	return body.([]byte), nil
}
