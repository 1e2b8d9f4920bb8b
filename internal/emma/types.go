package emma

// Wire shapes of the vendor API. Field names follow the vendor's JSON; the
// service layer maps them onto the public model and never leaks them.

type TokenRequest struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int `json:"expiresIn"`
}

type DataCenterDto struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ProviderName string `json:"providerName"`
	LocationID   int    `json:"locationId"`
	LocationName string `json:"locationName"`
}

type LocationDto struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	RegionCode string `json:"regionCode,omitempty"`
	// Coordinates are optional on the vendor side; nil means the vendor
	// does not know where the location is.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type ProviderDto struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type OperatingSystemDto struct {
	ID           int    `json:"id"`
	Family       string `json:"family"`
	Type         string `json:"type"`
	Architecture string `json:"architecture"`
	Version      string `json:"version"`
}

type SshKeyDto struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	KeyType     string `json:"keyType"`
	Fingerprint string `json:"fingerprint"`
	Key         string `json:"key,omitempty"`
	PrivateKey  string `json:"privateKey,omitempty"`
}

type CostDto struct {
	Unit     string  `json:"unit"`
	Currency string  `json:"currency"`
	Price    float64 `json:"price"`
}

type VmConfigurationDto struct {
	ID                int      `json:"id"`
	ProviderID        int      `json:"providerId"`
	ProviderName      string   `json:"providerName"`
	LocationID        int      `json:"locationId"`
	LocationName      string   `json:"locationName"`
	DataCenterID      string   `json:"dataCenterId"`
	VCpu              int      `json:"vCpu"`
	VCpuType          string   `json:"vCpuType"`
	RamGb             int      `json:"ramGb"`
	VolumeGb          int      `json:"volumeGb"`
	VolumeType        string   `json:"volumeType"`
	CloudNetworkTypes []string `json:"cloudNetworkTypes"`
	Cost              *CostDto `json:"cost"`
}

type DiskDto struct {
	ID     int    `json:"id"`
	Type   string `json:"type"`
	SizeGb int    `json:"sizeGb"`
}

type NetworkDto struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
	IP   string `json:"ip"`
}

type VmDto struct {
	ID               int                 `json:"id"`
	Label            string              `json:"label,omitempty"`
	Name             string              `json:"name"`
	Status           string              `json:"status"`
	Provider         *ProviderDto        `json:"provider,omitempty"`
	Location         *LocationDto        `json:"location,omitempty"`
	DataCenter       *DataCenterDto      `json:"dataCenter,omitempty"`
	Os               *OperatingSystemDto `json:"os,omitempty"`
	VCpu             int                 `json:"vCpu"`
	VCpuType         string              `json:"vCpuType"`
	CloudNetworkType string              `json:"cloudNetworkType"`
	RamGb            int                 `json:"ramGb"`
	Disks            []DiskDto           `json:"disks,omitempty"`
	Networks         []NetworkDto        `json:"networks,omitempty"`
	SecurityGroup    string              `json:"securityGroup,omitempty"`
	Cost             *CostDto            `json:"cost,omitempty"`
	SshKeyID         int                 `json:"sshKeyId,omitempty"`
}

type NodeGroupDto struct {
	Name  string  `json:"name"`
	Nodes []VmDto `json:"nodes"`
}

type KubernetesClusterDto struct {
	ID                 int            `json:"id"`
	Name               string         `json:"name"`
	Status             string         `json:"status"`
	DeploymentLocation string         `json:"deploymentLocation"`
	NodeGroups         []NodeGroupDto `json:"nodeGroups,omitempty"`
}

type VmCreateRequest struct {
	Name             string `json:"name"`
	CloudNetworkType string `json:"cloudNetworkType"`
	DataCenterID     string `json:"dataCenterId"`
	OsID             int    `json:"osId"`
	RamGb            int    `json:"ramGb"`
	VCpu             int    `json:"vCpu"`
	VCpuType         string `json:"vCpuType"`
	VolumeGb         int    `json:"volumeGb"`
	VolumeType       string `json:"volumeType"`
	SshKeyID         int    `json:"sshKeyId,omitempty"`
}

type SpotCreateRequest struct {
	VmCreateRequest
	// Price is the spot bid.
	Price float64 `json:"price"`
}

type WorkerNodeSpec struct {
	Name         string `json:"name"`
	DataCenterID string `json:"dataCenterId"`
	RamGb        int    `json:"ramGb"`
	VCpu         int    `json:"vCpu"`
	VCpuType     string `json:"vCpuType"`
	VolumeGb     int    `json:"volumeGb"`
	VolumeType   string `json:"volumeType"`
}

type KubernetesClusterCreateRequest struct {
	Name               string           `json:"name"`
	DeploymentLocation string           `json:"deploymentLocation"`
	WorkerNodes        []WorkerNodeSpec `json:"workerNodes"`
}

type KubernetesClusterEditRequest struct {
	WorkerNodes []WorkerNodeSpec `json:"workerNodes"`
}

type SshKeyCreateRequest struct {
	Name    string `json:"name"`
	Key     string `json:"key,omitempty"`
	KeyType string `json:"keyType,omitempty"`
}
