// Package pokeapi provides a PokeAPI implementation of the upstream data client.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/infrastructure/config"
)

// Client implements the PokeAPI interface over the REST API. It is
// stateless apart from the shared http.Client and safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new PokeAPI client.
func NewClient(cfg config.PokeAPIConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("pokeapi base URL is required")
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout()},
	}, nil
}

// GetPokemon fetches the primary record for a pokemon by name or ID.
func (c *Client) GetPokemon(ctx context.Context, nameOrID string) (json.RawMessage, error) {
	return c.get(ctx, "pokemon/"+entities.NormalizeName(nameOrID))
}

// GetSpecies fetches the species record for a pokemon by name or ID.
func (c *Client) GetSpecies(ctx context.Context, nameOrID string) (json.RawMessage, error) {
	return c.get(ctx, "pokemon-species/"+entities.NormalizeName(nameOrID))
}

// GetEvolutionChain fetches an evolution chain by its numeric ID.
func (c *Client) GetEvolutionChain(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "evolution-chain/"+strconv.Itoa(id))
}

// get performs one GET against the API and translates failures into
// domain errors. No retries: failures propagate to the caller.
func (c *Client) get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	url := c.baseURL + "/" + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &entities.UpstreamError{Detail: err.Error(), Unavailable: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &entities.NotFoundError{Name: endpoint[strings.LastIndex(endpoint, "/")+1:]}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &entities.UpstreamError{Detail: fmt.Sprintf("%s returned status %d", endpoint, resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &entities.UpstreamError{Detail: err.Error(), Unavailable: true}
	}
	if !json.Valid(body) {
		return nil, &entities.UpstreamError{Detail: "malformed response"}
	}
	return body, nil
}
