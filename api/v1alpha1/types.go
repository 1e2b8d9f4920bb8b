// Package v1alpha1 holds the public model served by the emma portal proxy.
package v1alpha1

// ComputeType identifies the kind of a compute entity or configuration.
type ComputeType string

const (
	ComputeTypeVirtualMachine ComputeType = "VirtualMachine"
	ComputeTypeSpotInstance   ComputeType = "SpotInstance"
	ComputeTypeKubernetesNode ComputeType = "KubernetesNode"
)

// ComputeTypes lists every compute kind in the order listings are concatenated.
func ComputeTypes() []ComputeType {
	return []ComputeType{ComputeTypeVirtualMachine, ComputeTypeSpotInstance, ComputeTypeKubernetesNode}
}

// ParseComputeType reports whether s names a known compute kind.
func ParseComputeType(s string) (ComputeType, bool) {
	switch ComputeType(s) {
	case ComputeTypeVirtualMachine, ComputeTypeSpotInstance, ComputeTypeKubernetesNode:
		return ComputeType(s), true
	default:
		return "", false
	}
}

// VCpuType is the virtual CPU class of a configuration or entity.
type VCpuType string

const (
	VCpuTypeShared   VCpuType = "shared"
	VCpuTypeStandard VCpuType = "standard"
	VCpuTypeHpc      VCpuType = "hpc"
)

func ParseVCpuType(s string) (VCpuType, bool) {
	switch VCpuType(s) {
	case VCpuTypeShared, VCpuTypeStandard, VCpuTypeHpc:
		return VCpuType(s), true
	default:
		return "", false
	}
}

// CloudNetworkType is the network placement of a compute entity.
type CloudNetworkType string

const (
	CloudNetworkTypeIsolated   CloudNetworkType = "isolated"
	CloudNetworkTypeMultiCloud CloudNetworkType = "multi-cloud"
	CloudNetworkTypeDefault    CloudNetworkType = "default"
)

func ParseCloudNetworkType(s string) (CloudNetworkType, bool) {
	switch CloudNetworkType(s) {
	case CloudNetworkTypeIsolated, CloudNetworkTypeMultiCloud, CloudNetworkTypeDefault:
		return CloudNetworkType(s), true
	default:
		return "", false
	}
}

// DiskType is the volume class backing a disk.
type DiskType string

const (
	DiskTypeSsd     DiskType = "ssd"
	DiskTypeSsdPlus DiskType = "ssd-plus"
)

func ParseDiskType(s string) (DiskType, bool) {
	switch DiskType(s) {
	case DiskTypeSsd, DiskTypeSsdPlus:
		return DiskType(s), true
	default:
		return "", false
	}
}

// SshKeyType is the algorithm of an imported or generated SSH key.
type SshKeyType string

const (
	SshKeyTypeRsa     SshKeyType = "RSA"
	SshKeyTypeEd25519 SshKeyType = "ED25519"
)

func ParseSshKeyType(s string) (SshKeyType, bool) {
	switch SshKeyType(s) {
	case SshKeyTypeRsa, SshKeyTypeEd25519:
		return SshKeyType(s), true
	default:
		return "", false
	}
}

// GeoLocation is a WGS84 coordinate pair.
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeoFence is an axis-aligned bounding rectangle. A location is inside the
// fence when both coordinates fall within the inclusive bounds.
type GeoFence struct {
	TopRight   GeoLocation `json:"topRight"`
	BottomLeft GeoLocation `json:"bottomLeft"`
}

// DataCenter is a vendor data center with its resolved coordinates.
// Location is nil when neither the locations join nor the static geo table
// could resolve it.
type DataCenter struct {
	ID         string       `json:"id"`
	Name       string       `json:"name,omitempty"`
	RegionCode string       `json:"regionCode,omitempty"`
	Provider   string       `json:"provider,omitempty"`
	LocationID int          `json:"locationId,omitempty"`
	Location   *GeoLocation `json:"location,omitempty"`
}

type Provider struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Location struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	RegionCode string `json:"regionCode,omitempty"`
}

type OperatingSystem struct {
	ID           int    `json:"id"`
	Family       string `json:"family,omitempty"`
	Type         string `json:"type,omitempty"`
	Architecture string `json:"architecture,omitempty"`
	Version      string `json:"version,omitempty"`
}

type SshKey struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	KeyType     SshKeyType `json:"keyType,omitempty"`
	Fingerprint string     `json:"fingerprint,omitempty"`
	// Key carries public key material on listings and, for generated keys,
	// the private key exactly once in the import response.
	Key        string `json:"key,omitempty"`
	PrivateKey string `json:"privateKey,omitempty"`
}

// SshKeyImport is the request body for importing or generating an SSH key.
// KeyOrKeyType is either raw public key material or the bare key type, in
// which case the vendor generates the pair.
type SshKeyImport struct {
	KeyOrKeyType string `json:"keyOrKeyType" validate:"required,key_or_key_type"`
}

type Disk struct {
	Type   DiskType `json:"type" validate:"omitempty,disk_type"`
	SizeGb int      `json:"sizeGb" validate:"gte=0"`
}

type Network struct {
	ID   int    `json:"id,omitempty"`
	Type string `json:"type,omitempty"`
	IP   string `json:"ip,omitempty"`
}

type Cost struct {
	Unit     string  `json:"unit,omitempty"`
	Currency string  `json:"currency,omitempty"`
	Price    float64 `json:"price,omitempty"`
}

// VmConfiguration is a vendor sizing template (SKU) tagged with the compute
// kind whose endpoint returned it.
type VmConfiguration struct {
	ID                int                `json:"id"`
	Type              ComputeType        `json:"type"`
	ProviderID        int                `json:"providerId,omitempty"`
	ProviderName      string             `json:"providerName,omitempty"`
	LocationID        int                `json:"locationId,omitempty"`
	LocationName      string             `json:"locationName,omitempty"`
	DataCenterID      string             `json:"dataCenterId,omitempty"`
	VCpu              int                `json:"vCpu,omitempty"`
	VCpuType          VCpuType           `json:"vCpuType,omitempty"`
	RamGb             int                `json:"ramGb,omitempty"`
	VolumeGb          int                `json:"volumeGb,omitempty"`
	VolumeType        DiskType           `json:"volumeType,omitempty"`
	CloudNetworkTypes []CloudNetworkType `json:"cloudNetworkTypes,omitempty"`
	Cost              *Cost              `json:"cost,omitempty"`
}

// Vm is the unified compute entity: a virtual machine, a spot instance or a
// single Kubernetes worker node.
type Vm struct {
	ID               int              `json:"id"`
	Type             ComputeType      `json:"type" validate:"compute_type"`
	Label            string           `json:"label,omitempty" validate:"entity_name"`
	Name             string           `json:"name,omitempty" validate:"entity_name"`
	Status           string           `json:"status,omitempty"`
	Provider         *Provider        `json:"provider,omitempty"`
	Location         *Location        `json:"location,omitempty"`
	DataCenter       *DataCenter      `json:"dataCenter,omitempty"`
	Os               *OperatingSystem `json:"os,omitempty"`
	VCpu             int              `json:"vCpu,omitempty" validate:"gte=0"`
	VCpuType         VCpuType         `json:"vCpuType,omitempty" validate:"omitempty,vcpu_type"`
	CloudNetworkType CloudNetworkType `json:"cloudNetworkType,omitempty" validate:"omitempty,network_type"`
	RamGb            int              `json:"ramGb,omitempty" validate:"gte=0"`
	Disks            []Disk           `json:"disks,omitempty" validate:"omitempty,dive"`
	Networks         []Network        `json:"networks,omitempty"`
	SecurityGroup    string           `json:"securityGroup,omitempty"`
	Cost             *Cost            `json:"cost,omitempty"`
	SshKeyID         int              `json:"sshKeyId,omitempty"`
	// Kubernetes node members only.
	ClusterID     int    `json:"clusterId,omitempty"`
	ClusterStatus string `json:"clusterStatus,omitempty"`
}
