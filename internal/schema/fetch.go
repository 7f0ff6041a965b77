package schema

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/sdsheeks/gqlscout/internal/config"
)

// Fetcher obtains the current SDL text from the configured remote source.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// maxResponseBytes caps how much of an introspection response is read.
const maxResponseBytes = 32 << 20

// HTTPFetcher issues the standard introspection query against a GraphQL
// endpoint and converts the response to SDL text. Every call is bounded by
// the client timeout and throttled by a token-bucket limiter so repeated
// refreshes cannot hammer the remote endpoint.
type HTTPFetcher struct {
	endpoint   string
	authHeader string
	authToken  string
	client     *http.Client
	limiter    *rate.Limiter
}

// NewHTTPFetcher creates a fetcher from the validated configuration.
func NewHTTPFetcher(cfg *config.Config) *HTTPFetcher {
	perMinute := cfg.FetchRatePerMinute
	if perMinute <= 0 {
		perMinute = config.DefaultFetchRatePerMinute
	}
	return &HTTPFetcher{
		endpoint:   cfg.Endpoint,
		authHeader: cfg.AuthHeader,
		authToken:  cfg.AuthToken,
		client: &http.Client{
			Timeout: time.Duration(cfg.FetchTimeoutSeconds) * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 1),
	}
}

// graphqlRequest is the POST body for an introspection call.
type graphqlRequest struct {
	Query string `json:"query"`
}

// graphqlError is one entry of a GraphQL "errors" array.
type graphqlError struct {
	Message string `json:"message"`
}

// Fetch performs a single introspection round-trip. Any non-success status,
// transport failure, or malformed payload is a hard failure for this call;
// the caller decides whether a stale local copy can still be served.
func (f *HTTPFetcher) Fetch(ctx context.Context) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(graphqlRequest{Query: introspectionQuery})
	if err != nil {
		return "", fmt.Errorf("encoding introspection query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building introspection request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if f.authToken != "" {
		header := f.authHeader
		if header == "" {
			header = config.DefaultAuthHeader
		}
		req.Header.Set(header, f.authToken)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("introspection request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("reading introspection response: %w", err)
	}

	var parsed introspectionResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("parsing introspection response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return "", fmt.Errorf("introspection rejected: %s", parsed.Errors[0].Message)
	}
	if parsed.Data == nil || parsed.Data.Schema == nil {
		return "", fmt.Errorf("introspection response has no __schema payload")
	}

	content := RenderSDL(parsed.Data.Schema)
	if content == "" {
		return "", fmt.Errorf("introspection response produced an empty schema")
	}
	return content, nil
}

// introspectionQuery is the standard introspection document, trimmed to the
// pieces the SDL renderer consumes.
const introspectionQuery = `query IntrospectionQuery {
  __schema {
    queryType { name }
    mutationType { name }
    subscriptionType { name }
    types {
      kind
      name
      description
      fields(includeDeprecated: true) {
        name
        description
        args {
          name
          description
          defaultValue
          type { ...TypeRef }
        }
        type { ...TypeRef }
        isDeprecated
        deprecationReason
      }
      inputFields {
        name
        description
        defaultValue
        type { ...TypeRef }
      }
      interfaces { ...TypeRef }
      enumValues(includeDeprecated: true) {
        name
        description
        isDeprecated
        deprecationReason
      }
      possibleTypes { ...TypeRef }
    }
  }
}

fragment TypeRef on __Type {
  kind
  name
  ofType {
    kind
    name
    ofType {
      kind
      name
      ofType {
        kind
        name
        ofType {
          kind
          name
          ofType {
            kind
            name
            ofType {
              kind
              name
              ofType { kind name }
            }
          }
        }
      }
    }
  }
}`
