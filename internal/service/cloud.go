package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	api "github.com/emma-community/emma-portal-proxy/api/v1alpha1"
	"github.com/emma-community/emma-portal-proxy/internal/emma"
	"github.com/emma-community/emma-portal-proxy/internal/service/mappers"
)

// Narrow views over the vendor clients so suites can fake the vendor.

type DataCentersApi interface {
	GetDataCenters(ctx context.Context) ([]emma.DataCenterDto, error)
}

type LocationsApi interface {
	GetLocation(ctx context.Context, id int) (*emma.LocationDto, error)
	GetLocations(ctx context.Context, name string) ([]emma.LocationDto, error)
}

type ProvidersApi interface {
	GetProvider(ctx context.Context, id int) (*emma.ProviderDto, error)
	GetProviders(ctx context.Context, name string) ([]emma.ProviderDto, error)
}

type ComputeConfigsApi interface {
	GetVmConfigs(ctx context.Context, providerID, locationID *int, dataCenterID *string) ([]emma.VmConfigurationDto, error)
	GetSpotConfigs(ctx context.Context, providerID, locationID *int, dataCenterID *string) ([]emma.VmConfigurationDto, error)
	GetKubernetesNodeConfigs(ctx context.Context, providerID, locationID *int, dataCenterID *string) ([]emma.VmConfigurationDto, error)
}

type VirtualMachinesApi interface {
	GetVm(ctx context.Context, id int) (*emma.VmDto, error)
	GetVms(ctx context.Context) ([]emma.VmDto, error)
	VmCreate(ctx context.Context, req emma.VmCreateRequest) (*emma.VmDto, error)
	VmDelete(ctx context.Context, id int) error
}

type SpotInstancesApi interface {
	GetSpot(ctx context.Context, id int) (*emma.VmDto, error)
	GetSpots(ctx context.Context) ([]emma.VmDto, error)
	SpotCreate(ctx context.Context, req emma.SpotCreateRequest) (*emma.VmDto, error)
	SpotDelete(ctx context.Context, id int) error
}

type KubernetesClustersApi interface {
	GetKubernetesCluster(ctx context.Context, id int) (*emma.KubernetesClusterDto, error)
	GetKubernetesClusters(ctx context.Context) ([]emma.KubernetesClusterDto, error)
	CreateKubernetesCluster(ctx context.Context, req emma.KubernetesClusterCreateRequest) (*emma.KubernetesClusterDto, error)
	EditKubernetesCluster(ctx context.Context, id int, req emma.KubernetesClusterEditRequest) (*emma.KubernetesClusterDto, error)
	DeleteKubernetesCluster(ctx context.Context, id int) error
}

type SshKeysApi interface {
	GetSshKey(ctx context.Context, id int) (*emma.SshKeyDto, error)
	GetSshKeys(ctx context.Context) ([]emma.SshKeyDto, error)
	CreateSshKey(ctx context.Context, req emma.SshKeyCreateRequest) (*emma.SshKeyDto, error)
}

type OperatingSystemsApi interface {
	GetOperatingSystems(ctx context.Context, osType, architecture, version string) ([]emma.OperatingSystemDto, error)
}

// Clients bundles every vendor resource family the service calls.
type Clients struct {
	DataCenters        DataCentersApi
	Locations          LocationsApi
	Providers          ProvidersApi
	ComputeConfigs     ComputeConfigsApi
	VirtualMachines    VirtualMachinesApi
	SpotInstances      SpotInstancesApi
	KubernetesClusters KubernetesClustersApi
	SshKeys            SshKeysApi
	OperatingSystems   OperatingSystemsApi
}

// ClientsFromFactory wires the real vendor clients.
func ClientsFromFactory(factory *emma.ClientFactory) Clients {
	return Clients{
		DataCenters:        factory.DataCenters(),
		Locations:          factory.Locations(),
		Providers:          factory.Providers(),
		ComputeConfigs:     factory.ComputeConfigs(),
		VirtualMachines:    factory.VirtualMachines(),
		SpotInstances:      factory.SpotInstances(),
		KubernetesClusters: factory.KubernetesClusters(),
		SshKeys:            factory.SshKeys(),
		OperatingSystems:   factory.OperatingSystems(),
	}
}

// CloudService is the normalization facade the route handlers call. It owns
// all vendor-response reshaping and holds no state beyond the static geo
// table; every operation is called per-request.
type CloudService struct {
	clients  Clients
	geoTable []knownGeoLocation
	logger   *zap.SugaredLogger
}

func NewCloudService(clients Clients) *CloudService {
	return &CloudService{
		clients:  clients,
		geoTable: loadKnownGeoLocations(),
		logger:   zap.S().Named("cloud_service"),
	}
}

// locationGeoIndex fetches the vendor's locations and indexes their
// coordinates by location id for the join against data centers.
func (s *CloudService) locationGeoIndex(ctx context.Context) (map[int]*api.GeoLocation, error) {
	locations, err := s.clients.Locations.GetLocations(ctx, "")
	if err != nil {
		return nil, err
	}
	index := make(map[int]*api.GeoLocation, len(locations))
	for _, l := range locations {
		if geo := mappers.LocationGeo(l); geo != nil {
			index[l.ID] = geo
		}
	}
	return index, nil
}

// ListDataCenters returns the vendor's data centers with resolved
// coordinates, optionally filtered by fence. The locations join is
// authoritative; the static region-code table backfills data centers the
// join misses; anything else stays unresolved (nil), never {0,0}.
func (s *CloudService) ListDataCenters(ctx context.Context, fence *api.GeoFence) ([]api.DataCenter, error) {
	s.logger.Info("fetching data centers")

	dtos, err := s.clients.DataCenters.GetDataCenters(ctx)
	if err != nil {
		return nil, err
	}

	geoIndex, err := s.locationGeoIndex(ctx)
	if err != nil {
		return nil, err
	}

	dataCenters := make([]api.DataCenter, 0, len(dtos))
	for _, dto := range dtos {
		location := geoIndex[dto.LocationID]
		if location == nil {
			location = lookupKnownGeoLocation(s.geoTable, dto.ID)
		}
		dataCenters = append(dataCenters, mappers.DataCenterToApi(dto, location))
	}

	if fence != nil {
		s.logger.Infow("filtering data centers by fence", "topRight", fence.TopRight, "bottomLeft", fence.BottomLeft)
		filtered := make([]api.DataCenter, 0, len(dataCenters))
		for _, dc := range dataCenters {
			if dc.Location != nil && IsWithinBounds(*dc.Location, *fence) {
				filtered = append(filtered, dc)
			}
		}
		dataCenters = filtered
	}

	return dataCenters, nil
}

// ListProviders fetches by id, by name, or everything. Results are
// concatenated, not deduplicated; an id that also matches the name filter
// appears twice.
func (s *CloudService) ListProviders(ctx context.Context, id *int, name string) ([]api.Provider, error) {
	s.logger.Info("fetching providers")

	providers := []api.Provider{}

	if id != nil {
		provider, err := s.clients.Providers.GetProvider(ctx, *id)
		if err != nil {
			return nil, err
		}
		providers = append(providers, mappers.ProviderToApi(*provider))
	}

	if name != "" || id == nil {
		dtos, err := s.clients.Providers.GetProviders(ctx, name)
		if err != nil {
			return nil, err
		}
		for _, dto := range dtos {
			providers = append(providers, mappers.ProviderToApi(dto))
		}
	}

	return providers, nil
}

// ListLocations mirrors the id/name semantics of ListProviders.
func (s *CloudService) ListLocations(ctx context.Context, id *int, name string) ([]api.Location, error) {
	s.logger.Info("fetching locations")

	locations := []api.Location{}

	if id != nil {
		location, err := s.clients.Locations.GetLocation(ctx, *id)
		if err != nil {
			return nil, err
		}
		locations = append(locations, mappers.LocationToApi(*location))
	}

	if name != "" || id == nil {
		dtos, err := s.clients.Locations.GetLocations(ctx, name)
		if err != nil {
			return nil, err
		}
		for _, dto := range dtos {
			locations = append(locations, mappers.LocationToApi(dto))
		}
	}

	return locations, nil
}

func requested(computeTypes []api.ComputeType, t api.ComputeType) bool {
	if len(computeTypes) == 0 {
		return true
	}
	for _, ct := range computeTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// ListComputeConfigs returns the vendor's sizing templates for the requested
// kinds (all three when none given), tagged per kind and concatenated in
// VirtualMachine, SpotInstance, KubernetesNode order.
func (s *CloudService) ListComputeConfigs(ctx context.Context, providerID, locationID *int, dataCenterID *string, computeTypes ...api.ComputeType) ([]api.VmConfiguration, error) {
	s.logger.Info("fetching compute configs")

	configs := []api.VmConfiguration{}

	if requested(computeTypes, api.ComputeTypeVirtualMachine) {
		dtos, err := s.clients.ComputeConfigs.GetVmConfigs(ctx, providerID, locationID, dataCenterID)
		if err != nil {
			return nil, err
		}
		for _, dto := range dtos {
			configs = append(configs, mappers.VmConfigurationToApi(dto, api.ComputeTypeVirtualMachine))
		}
	}

	if requested(computeTypes, api.ComputeTypeSpotInstance) {
		dtos, err := s.clients.ComputeConfigs.GetSpotConfigs(ctx, providerID, locationID, dataCenterID)
		if err != nil {
			return nil, err
		}
		for _, dto := range dtos {
			configs = append(configs, mappers.VmConfigurationToApi(dto, api.ComputeTypeSpotInstance))
		}
	}

	if requested(computeTypes, api.ComputeTypeKubernetesNode) {
		dtos, err := s.clients.ComputeConfigs.GetKubernetesNodeConfigs(ctx, providerID, locationID, dataCenterID)
		if err != nil {
			return nil, err
		}
		for _, dto := range dtos {
			configs = append(configs, mappers.VmConfigurationToApi(dto, api.ComputeTypeKubernetesNode))
		}
	}

	return configs, nil
}

// ListComputeEntities returns the unified compute entities for the requested
// kinds, Kubernetes clusters flattened into one entity per worker node
// carrying the owning cluster's id as its label.
func (s *CloudService) ListComputeEntities(ctx context.Context, entityID *int, computeTypes ...api.ComputeType) ([]api.Vm, error) {
	s.logger.Info("fetching compute entities")

	geoIndex, err := s.locationGeoIndex(ctx)
	if err != nil {
		return nil, err
	}
	geo := func(locationID int) *api.GeoLocation { return geoIndex[locationID] }

	vms := []api.Vm{}

	if requested(computeTypes, api.ComputeTypeVirtualMachine) {
		var dtos []emma.VmDto
		if entityID != nil {
			vm, err := s.clients.VirtualMachines.GetVm(ctx, *entityID)
			if err != nil {
				return nil, err
			}
			dtos = []emma.VmDto{*vm}
		} else {
			if dtos, err = s.clients.VirtualMachines.GetVms(ctx); err != nil {
				return nil, err
			}
		}
		for _, dto := range dtos {
			vms = append(vms, mappers.VmToApi(dto, api.ComputeTypeVirtualMachine, geo))
		}
	}

	if requested(computeTypes, api.ComputeTypeSpotInstance) {
		var dtos []emma.VmDto
		if entityID != nil {
			spot, err := s.clients.SpotInstances.GetSpot(ctx, *entityID)
			if err != nil {
				return nil, err
			}
			dtos = []emma.VmDto{*spot}
		} else {
			if dtos, err = s.clients.SpotInstances.GetSpots(ctx); err != nil {
				return nil, err
			}
		}
		for _, dto := range dtos {
			vms = append(vms, mappers.VmToApi(dto, api.ComputeTypeSpotInstance, geo))
		}
	}

	if requested(computeTypes, api.ComputeTypeKubernetesNode) {
		var clusters []emma.KubernetesClusterDto
		if entityID != nil {
			cluster, err := s.clients.KubernetesClusters.GetKubernetesCluster(ctx, *entityID)
			if err != nil {
				return nil, err
			}
			clusters = []emma.KubernetesClusterDto{*cluster}
		} else {
			if clusters, err = s.clients.KubernetesClusters.GetKubernetesClusters(ctx); err != nil {
				return nil, err
			}
		}
		for _, cluster := range clusters {
			for _, nodeGroup := range cluster.NodeGroups {
				for _, node := range nodeGroup.Nodes {
					vm := mappers.VmToApi(node, api.ComputeTypeKubernetesNode, geo)
					vm.Label = strconv.Itoa(cluster.ID)
					vm.ClusterID = cluster.ID
					vm.ClusterStatus = cluster.Status
					vms = append(vms, vm)
				}
			}
		}
	}

	return vms, nil
}

// AddComputeEntity provisions a new entity of the given kind and returns the
// vendor-assigned id. Kubernetes nodes are created implicitly through a
// cluster create carrying exactly one worker-node spec; adding a node to an
// existing cluster is not supported.
func (s *CloudService) AddComputeEntity(ctx context.Context, vm api.Vm) (int, error) {
	s.logger.Infow("adding compute entity", "type", vm.Type)

	switch vm.Type {
	case api.ComputeTypeVirtualMachine:
		req, err := mappers.VmCreateFromApi(vm)
		if err != nil {
			return 0, NewErrInvalidEntity(err.Error())
		}
		created, err := s.clients.VirtualMachines.VmCreate(ctx, req)
		if err != nil {
			return 0, err
		}
		return created.ID, nil
	case api.ComputeTypeSpotInstance:
		req, err := mappers.SpotCreateFromApi(vm)
		if err != nil {
			return 0, NewErrInvalidEntity(err.Error())
		}
		created, err := s.clients.SpotInstances.SpotCreate(ctx, req)
		if err != nil {
			return 0, err
		}
		return created.ID, nil
	case api.ComputeTypeKubernetesNode:
		req, err := mappers.ClusterCreateFromApi(vm)
		if err != nil {
			return 0, NewErrInvalidEntity(err.Error())
		}
		created, err := s.clients.KubernetesClusters.CreateKubernetesCluster(ctx, req)
		if err != nil {
			return 0, err
		}
		return created.ID, nil
	default:
		return 0, NewErrUnsupportedComputeType(vm.Type)
	}
}

// UpdateComputeEntity edits the owning cluster of a Kubernetes node,
// replacing its single worker-node spec. Virtual machines and spot instances
// have no vendor-side resize and are always rejected.
func (s *CloudService) UpdateComputeEntity(ctx context.Context, vm api.Vm) error {
	s.logger.Infow("updating compute entity", "id", vm.ID, "type", vm.Type)

	switch vm.Type {
	case api.ComputeTypeKubernetesNode:
		clusterID, err := strconv.Atoi(vm.Label)
		if err != nil {
			return NewErrInvalidEntity("label does not carry the owning cluster id")
		}
		node, err := mappers.WorkerNodeFromApi(vm)
		if err != nil {
			return NewErrInvalidEntity(err.Error())
		}
		_, err = s.clients.KubernetesClusters.EditKubernetesCluster(ctx, clusterID, emma.KubernetesClusterEditRequest{
			WorkerNodes: []emma.WorkerNodeSpec{node},
		})
		return err
	default:
		return NewErrUnsupportedComputeType(vm.Type)
	}
}

// DeleteComputeEntity dispatches the type-specific vendor delete call.
func (s *CloudService) DeleteComputeEntity(ctx context.Context, entityID int, computeType api.ComputeType) error {
	s.logger.Infow("deleting compute entity", "id", entityID, "type", computeType)

	switch computeType {
	case api.ComputeTypeVirtualMachine:
		return s.clients.VirtualMachines.VmDelete(ctx, entityID)
	case api.ComputeTypeSpotInstance:
		return s.clients.SpotInstances.SpotDelete(ctx, entityID)
	case api.ComputeTypeKubernetesNode:
		return s.clients.KubernetesClusters.DeleteKubernetesCluster(ctx, entityID)
	default:
		return NewErrUnsupportedComputeType(computeType)
	}
}

// ListSshKeys returns all keys or the single requested one.
func (s *CloudService) ListSshKeys(ctx context.Context, id *int) ([]api.SshKey, error) {
	s.logger.Info("fetching ssh keys")

	if id != nil {
		key, err := s.clients.SshKeys.GetSshKey(ctx, *id)
		if err != nil {
			return nil, err
		}
		return []api.SshKey{mappers.SshKeyToApi(*key)}, nil
	}

	dtos, err := s.clients.SshKeys.GetSshKeys(ctx)
	if err != nil {
		return nil, err
	}
	keys := make([]api.SshKey, 0, len(dtos))
	for _, dto := range dtos {
		keys = append(keys, mappers.SshKeyToApi(dto))
	}
	return keys, nil
}

// AddSshKey imports raw key material, or asks the vendor to generate a pair
// when keyOrKeyType names a bare key type. Generated private key material is
// returned exactly once.
func (s *CloudService) AddSshKey(ctx context.Context, name, keyOrKeyType string) (*api.SshKey, error) {
	s.logger.Infow("importing ssh key", "name", name)

	req := emma.SshKeyCreateRequest{Name: name}
	if keyType, ok := api.ParseSshKeyType(keyOrKeyType); ok {
		req.KeyType = mappers.SshKeyTypeToVendor(keyType)
	} else {
		req.Key = keyOrKeyType
	}

	created, err := s.clients.SshKeys.CreateSshKey(ctx, req)
	if err != nil {
		return nil, err
	}
	key := mappers.SshKeyToApi(*created)
	return &key, nil
}

// ListOperatingSystems is a filtered passthrough of the vendor listing.
func (s *CloudService) ListOperatingSystems(ctx context.Context, osType, architecture, version string) ([]api.OperatingSystem, error) {
	s.logger.Info("fetching operating systems")

	dtos, err := s.clients.OperatingSystems.GetOperatingSystems(ctx, osType, architecture, version)
	if err != nil {
		return nil, err
	}
	systems := make([]api.OperatingSystem, 0, len(dtos))
	for _, dto := range dtos {
		systems = append(systems, mappers.OperatingSystemToApi(dto))
	}
	return systems, nil
}
