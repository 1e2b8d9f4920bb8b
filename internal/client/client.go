// Package client is a typed Go client for the proxy's own HTTP API, used by
// emmactl and by integration suites.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	api "github.com/emma-community/emma-portal-proxy/api/v1alpha1"
	"github.com/emma-community/emma-portal-proxy/pkg/requestid"
)

// Config holds the information needed to connect to the proxy API server.
type Config struct {
	Service Service `json:"service"`
}

// Service contains information on how to reach the proxy API server.
type Service struct {
	// Server is the URL of the proxy (the part before /api/v1/...).
	Server string `json:"server"`
}

func NewDefault() *Config {
	return &Config{Service: Service{Server: "http://localhost:8080"}}
}

// NewHTTPClientFromConfig returns a new HTTP client from the given config.
func NewHTTPClientFromConfig(config *Config) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
		Timeout: 60 * time.Second,
	}
}

type Client struct {
	server string
	http   *http.Client
}

// NewFromConfig returns a new proxy API client from the given config.
func NewFromConfig(config *Config) *Client {
	return &Client{
		server: config.Service.Server,
		http:   NewHTTPClientFromConfig(config),
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	u := c.server + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("x-request-id", requestid.Generate())

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<14))
		return fmt.Errorf("%s %s failed: %s: %s", method, path, resp.Status, bytes.TrimSpace(message))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) ListDataCenters(ctx context.Context, fence *api.GeoFence) ([]api.DataCenter, error) {
	query := url.Values{}
	if fence != nil {
		query.Set("latMax", strconv.FormatFloat(fence.TopRight.Latitude, 'f', -1, 64))
		query.Set("lonMax", strconv.FormatFloat(fence.TopRight.Longitude, 'f', -1, 64))
		query.Set("latMin", strconv.FormatFloat(fence.BottomLeft.Latitude, 'f', -1, 64))
		query.Set("lonMin", strconv.FormatFloat(fence.BottomLeft.Longitude, 'f', -1, 64))
	}
	var dataCenters []api.DataCenter
	if err := c.do(ctx, http.MethodGet, "/api/v1/datacenters", query, nil, &dataCenters); err != nil {
		return nil, err
	}
	return dataCenters, nil
}

func (c *Client) ListProviders(ctx context.Context, name string) ([]api.Provider, error) {
	query := url.Values{}
	if name != "" {
		query.Set("providerName", name)
	}
	var providers []api.Provider
	if err := c.do(ctx, http.MethodGet, "/api/v1/providers", query, nil, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

func (c *Client) ListLocations(ctx context.Context, name string) ([]api.Location, error) {
	query := url.Values{}
	if name != "" {
		query.Set("locationName", name)
	}
	var locations []api.Location
	if err := c.do(ctx, http.MethodGet, "/api/v1/locations", query, nil, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

func (c *Client) ListOperatingSystems(ctx context.Context, osType, architecture, version string) ([]api.OperatingSystem, error) {
	query := url.Values{}
	if osType != "" {
		query.Set("type", osType)
	}
	if architecture != "" {
		query.Set("architecture", architecture)
	}
	if version != "" {
		query.Set("version", version)
	}
	var systems []api.OperatingSystem
	if err := c.do(ctx, http.MethodGet, "/api/v1/operating-systems", query, nil, &systems); err != nil {
		return nil, err
	}
	return systems, nil
}

func (c *Client) ListComputeConfigs(ctx context.Context, computeTypes ...api.ComputeType) ([]api.VmConfiguration, error) {
	query := url.Values{}
	for _, computeType := range computeTypes {
		query.Add("computeType", string(computeType))
	}
	var configs []api.VmConfiguration
	if err := c.do(ctx, http.MethodGet, "/api/v1/compute/configs", query, nil, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

func (c *Client) ListComputeEntities(ctx context.Context, computeTypes ...api.ComputeType) ([]api.Vm, error) {
	query := url.Values{}
	for _, computeType := range computeTypes {
		query.Add("computeType", string(computeType))
	}
	var entities []api.Vm
	if err := c.do(ctx, http.MethodGet, "/api/v1/compute/entities", query, nil, &entities); err != nil {
		return nil, err
	}
	return entities, nil
}

func (c *Client) ListSshKeys(ctx context.Context) ([]api.SshKey, error) {
	var keys []api.SshKey
	if err := c.do(ctx, http.MethodGet, "/api/v1/ssh-keys", nil, nil, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

func (c *Client) AddSshKey(ctx context.Context, name, keyOrKeyType string) (*api.SshKey, error) {
	var key api.SshKey
	body := api.SshKeyImport{KeyOrKeyType: keyOrKeyType}
	if err := c.do(ctx, http.MethodPost, "/api/v1/ssh-keys/"+url.PathEscape(name)+"/add", nil, body, &key); err != nil {
		return nil, err
	}
	return &key, nil
}

func (c *Client) AddComputeEntity(ctx context.Context, entity api.Vm) (int, error) {
	var reply struct {
		ID int `json:"id"`
	}
	path := "/api/v1/compute/entities/" + string(entity.Type) + "/add"
	if err := c.do(ctx, http.MethodPost, path, nil, entity, &reply); err != nil {
		return 0, err
	}
	return reply.ID, nil
}

func (c *Client) UpdateComputeEntity(ctx context.Context, entity api.Vm) error {
	path := fmt.Sprintf("/api/v1/compute/entities/%s/%d/update", entity.Type, entity.ID)
	return c.do(ctx, http.MethodPost, path, nil, entity, nil)
}

func (c *Client) DeleteComputeEntity(ctx context.Context, computeType api.ComputeType, id int) error {
	path := fmt.Sprintf("/api/v1/compute/entities/%s/%d/delete", computeType, id)
	return c.do(ctx, http.MethodGet, path, nil, nil, nil)
}
