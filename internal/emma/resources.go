package emma

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// AuthenticationClient exchanges client credentials for a bearer token. It is
// the one resource family that never attaches a token itself.
type AuthenticationClient struct {
	client *Client
}

func (a *AuthenticationClient) IssueToken(ctx context.Context, req TokenRequest) (*TokenResponse, error) {
	var token TokenResponse
	if err := a.client.do(ctx, "authentication", http.MethodPost, "/v1/issue-token", nil, req, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

type DataCentersClient struct {
	client *Client
}

func (d *DataCentersClient) GetDataCenters(ctx context.Context) ([]DataCenterDto, error) {
	var dataCenters []DataCenterDto
	if err := d.client.do(ctx, "data-centers", http.MethodGet, "/v1/data-centers", nil, nil, &dataCenters); err != nil {
		return nil, err
	}
	return dataCenters, nil
}

type LocationsClient struct {
	client *Client
}

func (l *LocationsClient) GetLocation(ctx context.Context, id int) (*LocationDto, error) {
	var location LocationDto
	if err := l.client.do(ctx, "locations", http.MethodGet, "/v1/locations/"+strconv.Itoa(id), nil, nil, &location); err != nil {
		return nil, err
	}
	return &location, nil
}

func (l *LocationsClient) GetLocations(ctx context.Context, name string) ([]LocationDto, error) {
	query := url.Values{}
	if name != "" {
		query.Set("locationName", name)
	}
	var locations []LocationDto
	if err := l.client.do(ctx, "locations", http.MethodGet, "/v1/locations", query, nil, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

type ProvidersClient struct {
	client *Client
}

func (p *ProvidersClient) GetProvider(ctx context.Context, id int) (*ProviderDto, error) {
	var provider ProviderDto
	if err := p.client.do(ctx, "providers", http.MethodGet, "/v1/providers/"+strconv.Itoa(id), nil, nil, &provider); err != nil {
		return nil, err
	}
	return &provider, nil
}

func (p *ProvidersClient) GetProviders(ctx context.Context, name string) ([]ProviderDto, error) {
	query := url.Values{}
	if name != "" {
		query.Set("providerName", name)
	}
	var providers []ProviderDto
	if err := p.client.do(ctx, "providers", http.MethodGet, "/v1/providers", query, nil, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

// ComputeConfigsClient serves the three per-kind sizing-template listings.
type ComputeConfigsClient struct {
	client *Client
}

func configQuery(providerID, locationID *int, dataCenterID *string) url.Values {
	query := url.Values{}
	if providerID != nil {
		query.Set("providerId", strconv.Itoa(*providerID))
	}
	if locationID != nil {
		query.Set("locationId", strconv.Itoa(*locationID))
	}
	if dataCenterID != nil {
		query.Set("dataCenterId", *dataCenterID)
	}
	return query
}

func (c *ComputeConfigsClient) GetVmConfigs(ctx context.Context, providerID, locationID *int, dataCenterID *string) ([]VmConfigurationDto, error) {
	return getPaged[VmConfigurationDto](ctx, c.client, "vms-configs", "/v1/vms-configs", configQuery(providerID, locationID, dataCenterID))
}

func (c *ComputeConfigsClient) GetSpotConfigs(ctx context.Context, providerID, locationID *int, dataCenterID *string) ([]VmConfigurationDto, error) {
	return getPaged[VmConfigurationDto](ctx, c.client, "spots-configs", "/v1/spots-configs", configQuery(providerID, locationID, dataCenterID))
}

func (c *ComputeConfigsClient) GetKubernetesNodeConfigs(ctx context.Context, providerID, locationID *int, dataCenterID *string) ([]VmConfigurationDto, error) {
	return getPaged[VmConfigurationDto](ctx, c.client, "kubernetes-configs", "/v1/kubernetes-configs", configQuery(providerID, locationID, dataCenterID))
}

type VirtualMachinesClient struct {
	client *Client
}

func (v *VirtualMachinesClient) GetVm(ctx context.Context, id int) (*VmDto, error) {
	var vm VmDto
	if err := v.client.do(ctx, "vms", http.MethodGet, "/v1/vms/"+strconv.Itoa(id), nil, nil, &vm); err != nil {
		return nil, err
	}
	return &vm, nil
}

func (v *VirtualMachinesClient) GetVms(ctx context.Context) ([]VmDto, error) {
	var vms []VmDto
	if err := v.client.do(ctx, "vms", http.MethodGet, "/v1/vms", nil, nil, &vms); err != nil {
		return nil, err
	}
	return vms, nil
}

func (v *VirtualMachinesClient) VmCreate(ctx context.Context, req VmCreateRequest) (*VmDto, error) {
	var vm VmDto
	if err := v.client.do(ctx, "vms", http.MethodPost, "/v1/vms", nil, req, &vm); err != nil {
		return nil, err
	}
	return &vm, nil
}

func (v *VirtualMachinesClient) VmDelete(ctx context.Context, id int) error {
	return v.client.do(ctx, "vms", http.MethodDelete, "/v1/vms/"+strconv.Itoa(id), nil, nil, nil)
}

type SpotInstancesClient struct {
	client *Client
}

func (s *SpotInstancesClient) GetSpot(ctx context.Context, id int) (*VmDto, error) {
	var spot VmDto
	if err := s.client.do(ctx, "spot-instances", http.MethodGet, "/v1/spot-instances/"+strconv.Itoa(id), nil, nil, &spot); err != nil {
		return nil, err
	}
	return &spot, nil
}

func (s *SpotInstancesClient) GetSpots(ctx context.Context) ([]VmDto, error) {
	var spots []VmDto
	if err := s.client.do(ctx, "spot-instances", http.MethodGet, "/v1/spot-instances", nil, nil, &spots); err != nil {
		return nil, err
	}
	return spots, nil
}

func (s *SpotInstancesClient) SpotCreate(ctx context.Context, req SpotCreateRequest) (*VmDto, error) {
	var spot VmDto
	if err := s.client.do(ctx, "spot-instances", http.MethodPost, "/v1/spot-instances", nil, req, &spot); err != nil {
		return nil, err
	}
	return &spot, nil
}

func (s *SpotInstancesClient) SpotDelete(ctx context.Context, id int) error {
	return s.client.do(ctx, "spot-instances", http.MethodDelete, "/v1/spot-instances/"+strconv.Itoa(id), nil, nil, nil)
}

type KubernetesClustersClient struct {
	client *Client
}

func (k *KubernetesClustersClient) GetKubernetesCluster(ctx context.Context, id int) (*KubernetesClusterDto, error) {
	var cluster KubernetesClusterDto
	if err := k.client.do(ctx, "kubernetes-clusters", http.MethodGet, "/v1/kubernetes-clusters/"+strconv.Itoa(id), nil, nil, &cluster); err != nil {
		return nil, err
	}
	return &cluster, nil
}

func (k *KubernetesClustersClient) GetKubernetesClusters(ctx context.Context) ([]KubernetesClusterDto, error) {
	var clusters []KubernetesClusterDto
	if err := k.client.do(ctx, "kubernetes-clusters", http.MethodGet, "/v1/kubernetes-clusters", nil, nil, &clusters); err != nil {
		return nil, err
	}
	return clusters, nil
}

func (k *KubernetesClustersClient) CreateKubernetesCluster(ctx context.Context, req KubernetesClusterCreateRequest) (*KubernetesClusterDto, error) {
	var cluster KubernetesClusterDto
	if err := k.client.do(ctx, "kubernetes-clusters", http.MethodPost, "/v1/kubernetes-clusters", nil, req, &cluster); err != nil {
		return nil, err
	}
	return &cluster, nil
}

func (k *KubernetesClustersClient) EditKubernetesCluster(ctx context.Context, id int, req KubernetesClusterEditRequest) (*KubernetesClusterDto, error) {
	var cluster KubernetesClusterDto
	if err := k.client.do(ctx, "kubernetes-clusters", http.MethodPut, "/v1/kubernetes-clusters/"+strconv.Itoa(id), nil, req, &cluster); err != nil {
		return nil, err
	}
	return &cluster, nil
}

func (k *KubernetesClustersClient) DeleteKubernetesCluster(ctx context.Context, id int) error {
	return k.client.do(ctx, "kubernetes-clusters", http.MethodDelete, "/v1/kubernetes-clusters/"+strconv.Itoa(id), nil, nil, nil)
}

type SshKeysClient struct {
	client *Client
}

func (s *SshKeysClient) GetSshKey(ctx context.Context, id int) (*SshKeyDto, error) {
	var key SshKeyDto
	if err := s.client.do(ctx, "ssh-keys", http.MethodGet, "/v1/ssh-keys/"+strconv.Itoa(id), nil, nil, &key); err != nil {
		return nil, err
	}
	return &key, nil
}

func (s *SshKeysClient) GetSshKeys(ctx context.Context) ([]SshKeyDto, error) {
	var keys []SshKeyDto
	if err := s.client.do(ctx, "ssh-keys", http.MethodGet, "/v1/ssh-keys", nil, nil, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *SshKeysClient) CreateSshKey(ctx context.Context, req SshKeyCreateRequest) (*SshKeyDto, error) {
	if req.Key == "" && req.KeyType == "" {
		return nil, fmt.Errorf("emma: creating ssh key %q: either key material or a key type is required", req.Name)
	}
	var key SshKeyDto
	if err := s.client.do(ctx, "ssh-keys", http.MethodPost, "/v1/ssh-keys", nil, req, &key); err != nil {
		return nil, err
	}
	return &key, nil
}

type OperatingSystemsClient struct {
	client *Client
}

func (o *OperatingSystemsClient) GetOperatingSystems(ctx context.Context, osType, architecture, version string) ([]OperatingSystemDto, error) {
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
	var systems []OperatingSystemDto
	if err := o.client.do(ctx, "operating-systems", http.MethodGet, "/v1/operating-systems", query, nil, &systems); err != nil {
		return nil, err
	}
	return systems, nil
}
