package emma

// ClientFactory hands out per-resource-family clients sharing one transport
// and one token source. Instances are stateless wrappers, so every call
// constructs a fresh one.
type ClientFactory struct {
	authenticated   *Client
	unauthenticated *Client
	tokens          TokenSource
}

// NewClientFactory binds the vendor endpoint and the shared token source.
func NewClientFactory(baseURL string, tokens TokenSource) *ClientFactory {
	return &ClientFactory{
		authenticated:   NewClient(baseURL, tokens),
		unauthenticated: NewClient(baseURL, nil),
		tokens:          tokens,
	}
}

// TokenSource returns the shared token source so the token manager can keep
// the bearer value fresh for every client the factory produces.
func (f *ClientFactory) TokenSource() TokenSource {
	return f.tokens
}

// Authentication is the only family served without a token.
func (f *ClientFactory) Authentication() *AuthenticationClient {
	return &AuthenticationClient{client: f.unauthenticated}
}

func (f *ClientFactory) DataCenters() *DataCentersClient {
	return &DataCentersClient{client: f.authenticated}
}

func (f *ClientFactory) Locations() *LocationsClient {
	return &LocationsClient{client: f.authenticated}
}

func (f *ClientFactory) Providers() *ProvidersClient {
	return &ProvidersClient{client: f.authenticated}
}

func (f *ClientFactory) ComputeConfigs() *ComputeConfigsClient {
	return &ComputeConfigsClient{client: f.authenticated}
}

func (f *ClientFactory) VirtualMachines() *VirtualMachinesClient {
	return &VirtualMachinesClient{client: f.authenticated}
}

func (f *ClientFactory) SpotInstances() *SpotInstancesClient {
	return &SpotInstancesClient{client: f.authenticated}
}

func (f *ClientFactory) KubernetesClusters() *KubernetesClustersClient {
	return &KubernetesClustersClient{client: f.authenticated}
}

func (f *ClientFactory) SshKeys() *SshKeysClient {
	return &SshKeysClient{client: f.authenticated}
}

func (f *ClientFactory) OperatingSystems() *OperatingSystemsClient {
	return &OperatingSystemsClient{client: f.authenticated}
}
