package mappers

import (
	api "github.com/emma-community/emma-portal-proxy/api/v1alpha1"
	"github.com/emma-community/emma-portal-proxy/internal/emma"
)

// Explicit bidirectional enum tables between the internal model and the
// vendor's wire strings. Unrecognized vendor values map to the zero value
// rather than being coerced silently into a wrong member.

var vCpuTypeFromVendor = map[string]api.VCpuType{
	"SHARED":   api.VCpuTypeShared,
	"STANDARD": api.VCpuTypeStandard,
	"HPC":      api.VCpuTypeHpc,
}

var cloudNetworkTypeFromVendor = map[string]api.CloudNetworkType{
	"ISOLATED":    api.CloudNetworkTypeIsolated,
	"MULTI_CLOUD": api.CloudNetworkTypeMultiCloud,
	"DEFAULT":     api.CloudNetworkTypeDefault,
}

var diskTypeFromVendor = map[string]api.DiskType{
	"SSD":      api.DiskTypeSsd,
	"SSD_PLUS": api.DiskTypeSsdPlus,
}

var sshKeyTypeFromVendor = map[string]api.SshKeyType{
	"RSA":     api.SshKeyTypeRsa,
	"ED25519": api.SshKeyTypeEd25519,
}

func DataCenterToApi(dc emma.DataCenterDto, location *api.GeoLocation) api.DataCenter {
	return api.DataCenter{
		ID:         dc.ID,
		Name:       dc.Name,
		Provider:   dc.ProviderName,
		RegionCode: dc.LocationName,
		LocationID: dc.LocationID,
		Location:   location,
	}
}

func LocationToApi(l emma.LocationDto) api.Location {
	return api.Location{
		ID:         l.ID,
		Name:       l.Name,
		RegionCode: l.RegionCode,
	}
}

// LocationGeo extracts the coordinates of a vendor location, nil when the
// vendor does not carry them.
func LocationGeo(l emma.LocationDto) *api.GeoLocation {
	if l.Latitude == nil || l.Longitude == nil {
		return nil
	}
	return &api.GeoLocation{Latitude: *l.Latitude, Longitude: *l.Longitude}
}

func ProviderToApi(p emma.ProviderDto) api.Provider {
	return api.Provider{ID: p.ID, Name: p.Name}
}

func OperatingSystemToApi(os emma.OperatingSystemDto) api.OperatingSystem {
	return api.OperatingSystem{
		ID:           os.ID,
		Family:       os.Family,
		Type:         os.Type,
		Architecture: os.Architecture,
		Version:      os.Version,
	}
}

func SshKeyToApi(k emma.SshKeyDto) api.SshKey {
	return api.SshKey{
		ID:          k.ID,
		Name:        k.Name,
		KeyType:     sshKeyTypeFromVendor[k.KeyType],
		Fingerprint: k.Fingerprint,
		Key:         k.Key,
		PrivateKey:  k.PrivateKey,
	}
}

func costToApi(c *emma.CostDto) *api.Cost {
	if c == nil {
		return nil
	}
	return &api.Cost{Unit: c.Unit, Currency: c.Currency, Price: c.Price}
}

// VmConfigurationToApi tags a vendor sizing template with the compute kind
// whose endpoint returned it.
func VmConfigurationToApi(cfg emma.VmConfigurationDto, computeType api.ComputeType) api.VmConfiguration {
	networkTypes := make([]api.CloudNetworkType, 0, len(cfg.CloudNetworkTypes))
	for _, t := range cfg.CloudNetworkTypes {
		if mapped, ok := cloudNetworkTypeFromVendor[t]; ok {
			networkTypes = append(networkTypes, mapped)
		}
	}

	return api.VmConfiguration{
		ID:                cfg.ID,
		Type:              computeType,
		ProviderID:        cfg.ProviderID,
		ProviderName:      cfg.ProviderName,
		LocationID:        cfg.LocationID,
		LocationName:      cfg.LocationName,
		DataCenterID:      cfg.DataCenterID,
		VCpu:              cfg.VCpu,
		VCpuType:          vCpuTypeFromVendor[cfg.VCpuType],
		RamGb:             cfg.RamGb,
		VolumeGb:          cfg.VolumeGb,
		VolumeType:        diskTypeFromVendor[cfg.VolumeType],
		CloudNetworkTypes: networkTypes,
		Cost:              costToApi(cfg.Cost),
	}
}

// VmToApi maps a vendor machine onto the unified compute entity. geo resolves
// the nested data center's coordinates, nil for unresolved.
func VmToApi(vm emma.VmDto, computeType api.ComputeType, geo func(locationID int) *api.GeoLocation) api.Vm {
	out := api.Vm{
		ID:               vm.ID,
		Type:             computeType,
		Label:            vm.Label,
		Name:             vm.Name,
		Status:           vm.Status,
		VCpu:             vm.VCpu,
		VCpuType:         vCpuTypeFromVendor[vm.VCpuType],
		CloudNetworkType: cloudNetworkTypeFromVendor[vm.CloudNetworkType],
		RamGb:            vm.RamGb,
		SecurityGroup:    vm.SecurityGroup,
		Cost:             costToApi(vm.Cost),
		SshKeyID:         vm.SshKeyID,
	}

	if vm.Provider != nil {
		provider := ProviderToApi(*vm.Provider)
		out.Provider = &provider
	}
	if vm.Location != nil {
		location := LocationToApi(*vm.Location)
		out.Location = &location
	}
	if vm.Os != nil {
		os := OperatingSystemToApi(*vm.Os)
		out.Os = &os
	}
	if vm.DataCenter != nil {
		var location *api.GeoLocation
		if geo != nil {
			location = geo(vm.DataCenter.LocationID)
		}
		dataCenter := DataCenterToApi(*vm.DataCenter, location)
		out.DataCenter = &dataCenter
	}

	for _, d := range vm.Disks {
		out.Disks = append(out.Disks, api.Disk{Type: diskTypeFromVendor[d.Type], SizeGb: d.SizeGb})
	}
	for _, n := range vm.Networks {
		out.Networks = append(out.Networks, api.Network{ID: n.ID, Type: n.Type, IP: n.IP})
	}

	return out
}
