package mappers

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	api "github.com/emma-community/emma-portal-proxy/api/v1alpha1"
	"github.com/emma-community/emma-portal-proxy/internal/emma"
)

var vCpuTypeToVendor = map[api.VCpuType]string{
	api.VCpuTypeShared:   "SHARED",
	api.VCpuTypeStandard: "STANDARD",
	api.VCpuTypeHpc:      "HPC",
}

var cloudNetworkTypeToVendor = map[api.CloudNetworkType]string{
	api.CloudNetworkTypeIsolated:   "ISOLATED",
	api.CloudNetworkTypeMultiCloud: "MULTI_CLOUD",
	api.CloudNetworkTypeDefault:    "DEFAULT",
}

var diskTypeToVendor = map[api.DiskType]string{
	api.DiskTypeSsd:     "SSD",
	api.DiskTypeSsdPlus: "SSD_PLUS",
}

var sshKeyTypeToVendor = map[api.SshKeyType]string{
	api.SshKeyTypeRsa:     "RSA",
	api.SshKeyTypeEd25519: "ED25519",
}

// SshKeyTypeToVendor resolves the vendor string for an internal key type.
func SshKeyTypeToVendor(t api.SshKeyType) string {
	return sshKeyTypeToVendor[t]
}

// EntityName applies the documented default policy: name wins, then label,
// then a generated placeholder.
func EntityName(vm api.Vm) string {
	if vm.Name != "" {
		return vm.Name
	}
	if vm.Label != "" {
		return vm.Label
	}
	return fmt.Sprintf("emma-%s-%s", strings.ToLower(string(vm.Type)), uuid.NewString()[:8])
}

// volumeSpec validates and extracts the entity's primary disk. Only disks[0]
// is sent to the vendor.
func volumeSpec(vm api.Vm) (emma.DiskDto, error) {
	if len(vm.Disks) == 0 {
		return emma.DiskDto{}, fmt.Errorf("at least one disk is required")
	}
	disk := vm.Disks[0]
	vendorType, ok := diskTypeToVendor[disk.Type]
	if !ok {
		return emma.DiskDto{}, fmt.Errorf("unknown disk type %q", disk.Type)
	}
	return emma.DiskDto{Type: vendorType, SizeGb: disk.SizeGb}, nil
}

// VmCreateFromApi builds the vendor create payload for a virtual machine.
func VmCreateFromApi(vm api.Vm) (emma.VmCreateRequest, error) {
	if vm.DataCenter == nil || vm.DataCenter.ID == "" {
		return emma.VmCreateRequest{}, fmt.Errorf("a data center is required")
	}
	if vm.Os == nil || vm.Os.ID == 0 {
		return emma.VmCreateRequest{}, fmt.Errorf("an operating system is required")
	}
	volume, err := volumeSpec(vm)
	if err != nil {
		return emma.VmCreateRequest{}, err
	}
	networkType, ok := cloudNetworkTypeToVendor[vm.CloudNetworkType]
	if !ok {
		return emma.VmCreateRequest{}, fmt.Errorf("unknown cloud network type %q", vm.CloudNetworkType)
	}
	vCpuType, ok := vCpuTypeToVendor[vm.VCpuType]
	if !ok {
		return emma.VmCreateRequest{}, fmt.Errorf("unknown vCPU type %q", vm.VCpuType)
	}

	return emma.VmCreateRequest{
		Name:             EntityName(vm),
		CloudNetworkType: networkType,
		DataCenterID:     vm.DataCenter.ID,
		OsID:             vm.Os.ID,
		RamGb:            vm.RamGb,
		VCpu:             vm.VCpu,
		VCpuType:         vCpuType,
		VolumeGb:         volume.SizeGb,
		VolumeType:       volume.Type,
		SshKeyID:         vm.SshKeyID,
	}, nil
}

// SpotCreateFromApi builds the vendor create payload for a spot instance,
// carrying the price bid.
func SpotCreateFromApi(vm api.Vm) (emma.SpotCreateRequest, error) {
	base, err := VmCreateFromApi(vm)
	if err != nil {
		return emma.SpotCreateRequest{}, err
	}
	if vm.Cost == nil {
		return emma.SpotCreateRequest{}, fmt.Errorf("a price bid is required for a spot instance")
	}
	return emma.SpotCreateRequest{VmCreateRequest: base, Price: vm.Cost.Price}, nil
}

// WorkerNodeFromApi builds the single worker-node spec carried by cluster
// create and edit calls.
func WorkerNodeFromApi(vm api.Vm) (emma.WorkerNodeSpec, error) {
	if vm.DataCenter == nil || vm.DataCenter.ID == "" {
		return emma.WorkerNodeSpec{}, fmt.Errorf("a data center is required")
	}
	volume, err := volumeSpec(vm)
	if err != nil {
		return emma.WorkerNodeSpec{}, err
	}
	vCpuType, ok := vCpuTypeToVendor[vm.VCpuType]
	if !ok {
		return emma.WorkerNodeSpec{}, fmt.Errorf("unknown vCPU type %q", vm.VCpuType)
	}

	return emma.WorkerNodeSpec{
		Name:         EntityName(vm),
		DataCenterID: vm.DataCenter.ID,
		RamGb:        vm.RamGb,
		VCpu:         vm.VCpu,
		VCpuType:     vCpuType,
		VolumeGb:     volume.SizeGb,
		VolumeType:   volume.Type,
	}, nil
}

// ClusterCreateFromApi builds a cluster-create payload with exactly one
// worker node derived from the entity.
func ClusterCreateFromApi(vm api.Vm) (emma.KubernetesClusterCreateRequest, error) {
	node, err := WorkerNodeFromApi(vm)
	if err != nil {
		return emma.KubernetesClusterCreateRequest{}, err
	}
	return emma.KubernetesClusterCreateRequest{
		Name:               EntityName(vm),
		DeploymentLocation: vm.DataCenter.ID,
		WorkerNodes:        []emma.WorkerNodeSpec{node},
	}, nil
}
