package service_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	api "github.com/emma-community/emma-portal-proxy/api/v1alpha1"
	"github.com/emma-community/emma-portal-proxy/internal/emma"
	"github.com/emma-community/emma-portal-proxy/internal/service"
)

func TestService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Cloud Service Suite")
}

func floatPtr(f float64) *float64 { return &f }

type fakeDataCenters struct {
	dataCenters []emma.DataCenterDto
}

func (f *fakeDataCenters) GetDataCenters(ctx context.Context) ([]emma.DataCenterDto, error) {
	return f.dataCenters, nil
}

type fakeLocations struct {
	locations []emma.LocationDto
	byID      map[int]emma.LocationDto
}

func (f *fakeLocations) GetLocation(ctx context.Context, id int) (*emma.LocationDto, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, &emma.APIError{Resource: "locations", StatusCode: 404}
	}
	return &l, nil
}

func (f *fakeLocations) GetLocations(ctx context.Context, name string) ([]emma.LocationDto, error) {
	if name == "" {
		return f.locations, nil
	}
	var out []emma.LocationDto
	for _, l := range f.locations {
		if l.Name == name {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeProviders struct {
	providers []emma.ProviderDto
	byID      map[int]emma.ProviderDto
}

func (f *fakeProviders) GetProvider(ctx context.Context, id int) (*emma.ProviderDto, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, &emma.APIError{Resource: "providers", StatusCode: 404}
	}
	return &p, nil
}

func (f *fakeProviders) GetProviders(ctx context.Context, name string) ([]emma.ProviderDto, error) {
	if name == "" {
		return f.providers, nil
	}
	var out []emma.ProviderDto
	for _, p := range f.providers {
		if p.Name == name {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeComputeConfigs struct {
	called []string
}

func (f *fakeComputeConfigs) GetVmConfigs(ctx context.Context, providerID, locationID *int, dataCenterID *string) ([]emma.VmConfigurationDto, error) {
	f.called = append(f.called, "vms")
	return []emma.VmConfigurationDto{{ID: 1, VCpuType: "SHARED", VolumeType: "SSD"}}, nil
}

func (f *fakeComputeConfigs) GetSpotConfigs(ctx context.Context, providerID, locationID *int, dataCenterID *string) ([]emma.VmConfigurationDto, error) {
	f.called = append(f.called, "spots")
	return []emma.VmConfigurationDto{{ID: 2, VCpuType: "HPC", VolumeType: "SSD_PLUS"}}, nil
}

func (f *fakeComputeConfigs) GetKubernetesNodeConfigs(ctx context.Context, providerID, locationID *int, dataCenterID *string) ([]emma.VmConfigurationDto, error) {
	f.called = append(f.called, "kubernetes")
	return []emma.VmConfigurationDto{{ID: 3, VCpuType: "STANDARD", VolumeType: "SSD"}}, nil
}

type fakeVirtualMachines struct {
	vms     []emma.VmDto
	created []emma.VmCreateRequest
	deleted []int
}

func (f *fakeVirtualMachines) GetVm(ctx context.Context, id int) (*emma.VmDto, error) {
	for _, vm := range f.vms {
		if vm.ID == id {
			return &vm, nil
		}
	}
	return nil, &emma.APIError{Resource: "vms", StatusCode: 404}
}

func (f *fakeVirtualMachines) GetVms(ctx context.Context) ([]emma.VmDto, error) {
	return f.vms, nil
}

func (f *fakeVirtualMachines) VmCreate(ctx context.Context, req emma.VmCreateRequest) (*emma.VmDto, error) {
	f.created = append(f.created, req)
	return &emma.VmDto{ID: 100, Name: req.Name}, nil
}

func (f *fakeVirtualMachines) VmDelete(ctx context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeSpotInstances struct {
	spots   []emma.VmDto
	created []emma.SpotCreateRequest
	deleted []int
}

func (f *fakeSpotInstances) GetSpot(ctx context.Context, id int) (*emma.VmDto, error) {
	for _, spot := range f.spots {
		if spot.ID == id {
			return &spot, nil
		}
	}
	return nil, &emma.APIError{Resource: "spot-instances", StatusCode: 404}
}

func (f *fakeSpotInstances) GetSpots(ctx context.Context) ([]emma.VmDto, error) {
	return f.spots, nil
}

func (f *fakeSpotInstances) SpotCreate(ctx context.Context, req emma.SpotCreateRequest) (*emma.VmDto, error) {
	f.created = append(f.created, req)
	return &emma.VmDto{ID: 200, Name: req.Name}, nil
}

func (f *fakeSpotInstances) SpotDelete(ctx context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeKubernetesClusters struct {
	clusters []emma.KubernetesClusterDto
	created  []emma.KubernetesClusterCreateRequest
	edited   map[int]emma.KubernetesClusterEditRequest
	deleted  []int
}

func (f *fakeKubernetesClusters) GetKubernetesCluster(ctx context.Context, id int) (*emma.KubernetesClusterDto, error) {
	for _, c := range f.clusters {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, &emma.APIError{Resource: "kubernetes-clusters", StatusCode: 404}
}

func (f *fakeKubernetesClusters) GetKubernetesClusters(ctx context.Context) ([]emma.KubernetesClusterDto, error) {
	return f.clusters, nil
}

func (f *fakeKubernetesClusters) CreateKubernetesCluster(ctx context.Context, req emma.KubernetesClusterCreateRequest) (*emma.KubernetesClusterDto, error) {
	f.created = append(f.created, req)
	return &emma.KubernetesClusterDto{ID: 300, Name: req.Name}, nil
}

func (f *fakeKubernetesClusters) EditKubernetesCluster(ctx context.Context, id int, req emma.KubernetesClusterEditRequest) (*emma.KubernetesClusterDto, error) {
	if f.edited == nil {
		f.edited = make(map[int]emma.KubernetesClusterEditRequest)
	}
	f.edited[id] = req
	return &emma.KubernetesClusterDto{ID: id}, nil
}

func (f *fakeKubernetesClusters) DeleteKubernetesCluster(ctx context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeSshKeys struct {
	keys    []emma.SshKeyDto
	created []emma.SshKeyCreateRequest
}

func (f *fakeSshKeys) GetSshKey(ctx context.Context, id int) (*emma.SshKeyDto, error) {
	for _, k := range f.keys {
		if k.ID == id {
			return &k, nil
		}
	}
	return nil, &emma.APIError{Resource: "ssh-keys", StatusCode: 404}
}

func (f *fakeSshKeys) GetSshKeys(ctx context.Context) ([]emma.SshKeyDto, error) {
	return f.keys, nil
}

func (f *fakeSshKeys) CreateSshKey(ctx context.Context, req emma.SshKeyCreateRequest) (*emma.SshKeyDto, error) {
	f.created = append(f.created, req)
	return &emma.SshKeyDto{ID: 5, Name: req.Name, KeyType: req.KeyType}, nil
}

type fakeOperatingSystems struct {
	systems []emma.OperatingSystemDto
}

func (f *fakeOperatingSystems) GetOperatingSystems(ctx context.Context, osType, architecture, version string) ([]emma.OperatingSystemDto, error) {
	return f.systems, nil
}

var _ = Describe("cloud service", func() {
	var (
		ctx                context.Context
		dataCenters        *fakeDataCenters
		locations          *fakeLocations
		providers          *fakeProviders
		computeConfigs     *fakeComputeConfigs
		virtualMachines    *fakeVirtualMachines
		spotInstances      *fakeSpotInstances
		kubernetesClusters *fakeKubernetesClusters
		sshKeys            *fakeSshKeys
		operatingSystems   *fakeOperatingSystems
		srv                *service.CloudService
	)

	BeforeEach(func() {
		ctx = context.Background()
		dataCenters = &fakeDataCenters{}
		locations = &fakeLocations{byID: map[int]emma.LocationDto{}}
		providers = &fakeProviders{byID: map[int]emma.ProviderDto{}}
		computeConfigs = &fakeComputeConfigs{}
		virtualMachines = &fakeVirtualMachines{}
		spotInstances = &fakeSpotInstances{}
		kubernetesClusters = &fakeKubernetesClusters{}
		sshKeys = &fakeSshKeys{}
		operatingSystems = &fakeOperatingSystems{}

		srv = service.NewCloudService(service.Clients{
			DataCenters:        dataCenters,
			Locations:          locations,
			Providers:          providers,
			ComputeConfigs:     computeConfigs,
			VirtualMachines:    virtualMachines,
			SpotInstances:      spotInstances,
			KubernetesClusters: kubernetesClusters,
			SshKeys:            sshKeys,
			OperatingSystems:   operatingSystems,
		})
	})

	Context("data centers", func() {
		BeforeEach(func() {
			locations.locations = []emma.LocationDto{
				{ID: 1, Name: "Ashburn", Latitude: floatPtr(38.9519), Longitude: floatPtr(-77.448)},
				{ID: 2, Name: "Nowhere"},
			}
			dataCenters.dataCenters = []emma.DataCenterDto{
				{ID: "aws-dc-virginia", Name: "virginia", ProviderName: "AWS", LocationID: 1},
				{ID: "gcp-us-west-1-dc1", Name: "california", ProviderName: "GCP", LocationID: 2},
				{ID: "mystery-dc", Name: "mystery", ProviderName: "ACME", LocationID: 99},
			}
		})

		It("resolves coordinates from the locations join first", func() {
			out, err := srv.ListDataCenters(ctx, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(HaveLen(3))
			Expect(out[0].Location).ToNot(BeNil())
			Expect(out[0].Location.Latitude).To(Equal(38.9519))
			Expect(out[0].Location.Longitude).To(Equal(-77.448))
		})

		It("falls back to the static region table when the join carries no coordinates", func() {
			out, err := srv.ListDataCenters(ctx, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(out[1].Location).ToNot(BeNil())
			Expect(out[1].Location.Latitude).To(Equal(37.3382))
		})

		It("leaves unresolvable data centers without a location", func() {
			out, err := srv.ListDataCenters(ctx, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(out[2].Location).To(BeNil())
		})

		It("filters by fence with inclusive bounds and drops unresolved locations", func() {
			fence := &api.GeoFence{
				TopRight:   api.GeoLocation{Latitude: 40, Longitude: -70},
				BottomLeft: api.GeoLocation{Latitude: 38.9519, Longitude: -77.448},
			}
			out, err := srv.ListDataCenters(ctx, fence)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(HaveLen(1))
			Expect(out[0].ID).To(Equal("aws-dc-virginia"))
		})

		It("excludes points outside the fence", func() {
			fence := &api.GeoFence{
				TopRight:   api.GeoLocation{Latitude: 40, Longitude: -70},
				BottomLeft: api.GeoLocation{Latitude: 38, Longitude: -76},
			}
			out, err := srv.ListDataCenters(ctx, fence)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(BeEmpty())
		})
	})

	Context("providers and locations", func() {
		BeforeEach(func() {
			providers.providers = []emma.ProviderDto{{ID: 1, Name: "AWS"}, {ID: 2, Name: "GCP"}}
			providers.byID = map[int]emma.ProviderDto{1: {ID: 1, Name: "AWS"}, 2: {ID: 2, Name: "GCP"}}
			locations.locations = []emma.LocationDto{{ID: 10, Name: "Ashburn"}}
			locations.byID = map[int]emma.LocationDto{10: {ID: 10, Name: "Ashburn"}}
		})

		It("lists everything when no filter is given", func() {
			out, err := srv.ListProviders(ctx, nil, "")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(HaveLen(2))
		})

		It("returns only the id match when filtering by id alone", func() {
			id := 2
			out, err := srv.ListProviders(ctx, &id, "")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal([]api.Provider{{ID: 2, Name: "GCP"}}))
		})

		It("concatenates id and name matches without deduplication", func() {
			id := 1
			out, err := srv.ListProviders(ctx, &id, "AWS")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal([]api.Provider{{ID: 1, Name: "AWS"}, {ID: 1, Name: "AWS"}}))
		})

		It("mirrors the same semantics for locations", func() {
			id := 10
			out, err := srv.ListLocations(ctx, &id, "Ashburn")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(HaveLen(2))
			Expect(out[0].ID).To(Equal(10))
		})
	})

	Context("compute configs", func() {
		It("queries all three kinds in order when none is requested", func() {
			out, err := srv.ListComputeConfigs(ctx, nil, nil, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(computeConfigs.called).To(Equal([]string{"vms", "spots", "kubernetes"}))
			Expect(out).To(HaveLen(3))
			Expect(out[0].Type).To(Equal(api.ComputeTypeVirtualMachine))
			Expect(out[1].Type).To(Equal(api.ComputeTypeSpotInstance))
			Expect(out[2].Type).To(Equal(api.ComputeTypeKubernetesNode))
		})

		It("queries only the requested kind", func() {
			out, err := srv.ListComputeConfigs(ctx, nil, nil, nil, api.ComputeTypeSpotInstance)
			Expect(err).ToNot(HaveOccurred())
			Expect(computeConfigs.called).To(Equal([]string{"spots"}))
			Expect(out).To(HaveLen(1))
			Expect(out[0].VCpuType).To(Equal(api.VCpuTypeHpc))
			Expect(out[0].VolumeType).To(Equal(api.DiskTypeSsdPlus))
		})
	})

	Context("compute entities", func() {
		BeforeEach(func() {
			virtualMachines.vms = []emma.VmDto{{ID: 1, Name: "vm-1", Status: "ACTIVE"}}
			spotInstances.spots = []emma.VmDto{{ID: 2, Name: "spot-1", Status: "ACTIVE"}}
			kubernetesClusters.clusters = []emma.KubernetesClusterDto{{
				ID:     33,
				Name:   "cluster-1",
				Status: "DEPLOYING",
				NodeGroups: []emma.NodeGroupDto{{
					Name:  "workers",
					Nodes: []emma.VmDto{{ID: 3, Name: "node-a"}, {ID: 4, Name: "node-b"}},
				}},
			}}
		})

		It("concatenates kinds in a fixed order", func() {
			out, err := srv.ListComputeEntities(ctx, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(HaveLen(4))
			Expect(out[0].Type).To(Equal(api.ComputeTypeVirtualMachine))
			Expect(out[1].Type).To(Equal(api.ComputeTypeSpotInstance))
			Expect(out[2].Type).To(Equal(api.ComputeTypeKubernetesNode))
			Expect(out[3].Type).To(Equal(api.ComputeTypeKubernetesNode))
		})

		It("flattens cluster nodes carrying the owning cluster id as label", func() {
			out, err := srv.ListComputeEntities(ctx, nil, api.ComputeTypeKubernetesNode)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(HaveLen(2))
			for _, node := range out {
				Expect(node.Label).To(Equal("33"))
				Expect(node.ClusterID).To(Equal(33))
				Expect(node.ClusterStatus).To(Equal("DEPLOYING"))
			}
			Expect(out[0].Name).To(Equal("node-a"))
			Expect(out[1].Name).To(Equal("node-b"))
		})

		It("fetches a single entity when an id is given", func() {
			id := 2
			out, err := srv.ListComputeEntities(ctx, &id, api.ComputeTypeSpotInstance)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(HaveLen(1))
			Expect(out[0].Name).To(Equal("spot-1"))
		})
	})

	Context("adding compute entities", func() {
		var entity api.Vm

		BeforeEach(func() {
			entity = api.Vm{
				Name:             "worker",
				VCpu:             4,
				VCpuType:         api.VCpuTypeStandard,
				CloudNetworkType: api.CloudNetworkTypeMultiCloud,
				RamGb:            16,
				Disks:            []api.Disk{{Type: api.DiskTypeSsd, SizeGb: 100}},
				DataCenter:       &api.DataCenter{ID: "aws-dc-virginia"},
				Os:               &api.OperatingSystem{ID: 7},
			}
		})

		It("creates a virtual machine and returns the vendor id", func() {
			entity.Type = api.ComputeTypeVirtualMachine
			id, err := srv.AddComputeEntity(ctx, entity)
			Expect(err).ToNot(HaveOccurred())
			Expect(id).To(Equal(100))
			Expect(virtualMachines.created).To(HaveLen(1))
			Expect(virtualMachines.created[0].Name).To(Equal("worker"))
			Expect(virtualMachines.created[0].VCpuType).To(Equal("STANDARD"))
			Expect(virtualMachines.created[0].CloudNetworkType).To(Equal("MULTI_CLOUD"))
			Expect(virtualMachines.created[0].VolumeType).To(Equal("SSD"))
		})

		It("creates a spot instance carrying the price bid", func() {
			entity.Type = api.ComputeTypeSpotInstance
			entity.Cost = &api.Cost{Price: 0.42}
			id, err := srv.AddComputeEntity(ctx, entity)
			Expect(err).ToNot(HaveOccurred())
			Expect(id).To(Equal(200))
			Expect(spotInstances.created).To(HaveLen(1))
			Expect(spotInstances.created[0].Price).To(Equal(0.42))
		})

		It("rejects a spot instance without a price bid", func() {
			entity.Type = api.ComputeTypeSpotInstance
			_, err := srv.AddComputeEntity(ctx, entity)
			Expect(err).To(HaveOccurred())
			Expect(spotInstances.created).To(BeEmpty())
		})

		It("creates a kubernetes node through a single-node cluster create", func() {
			entity.Type = api.ComputeTypeKubernetesNode
			id, err := srv.AddComputeEntity(ctx, entity)
			Expect(err).ToNot(HaveOccurred())
			Expect(id).To(Equal(300))
			Expect(kubernetesClusters.created).To(HaveLen(1))
			Expect(kubernetesClusters.created[0].WorkerNodes).To(HaveLen(1))
			Expect(kubernetesClusters.created[0].WorkerNodes[0].Name).To(Equal("worker"))
			Expect(kubernetesClusters.created[0].DeploymentLocation).To(Equal("aws-dc-virginia"))
		})

		It("rejects an unknown compute type before any vendor call", func() {
			entity.Type = api.ComputeType("Bogus")
			_, err := srv.AddComputeEntity(ctx, entity)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(Equal("Unsupported compute type: Bogus"))
			Expect(virtualMachines.created).To(BeEmpty())
			Expect(spotInstances.created).To(BeEmpty())
			Expect(kubernetesClusters.created).To(BeEmpty())
		})
	})

	Context("updating compute entities", func() {
		It("edits the owning cluster of a kubernetes node", func() {
			err := srv.UpdateComputeEntity(ctx, api.Vm{
				ID:         4,
				Type:       api.ComputeTypeKubernetesNode,
				Label:      "33",
				Name:       "node-b",
				VCpu:       8,
				VCpuType:   api.VCpuTypeStandard,
				RamGb:      32,
				Disks:      []api.Disk{{Type: api.DiskTypeSsd, SizeGb: 200}},
				DataCenter: &api.DataCenter{ID: "aws-dc-virginia"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(kubernetesClusters.edited).To(HaveKey(33))
			Expect(kubernetesClusters.edited[33].WorkerNodes).To(HaveLen(1))
			Expect(kubernetesClusters.edited[33].WorkerNodes[0].VCpu).To(Equal(8))
		})

		It("rejects a node whose label is not a cluster id", func() {
			err := srv.UpdateComputeEntity(ctx, api.Vm{Type: api.ComputeTypeKubernetesNode, Label: "not-a-number"})
			Expect(err).To(HaveOccurred())
			Expect(kubernetesClusters.edited).To(BeEmpty())
		})

		It("always rejects virtual machines and spot instances", func() {
			err := srv.UpdateComputeEntity(ctx, api.Vm{ID: 1, Type: api.ComputeTypeVirtualMachine})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(Equal("Unsupported compute type: VirtualMachine"))

			err = srv.UpdateComputeEntity(ctx, api.Vm{ID: 2, Type: api.ComputeTypeSpotInstance})
			Expect(err).To(HaveOccurred())
		})
	})

	Context("deleting compute entities", func() {
		It("dispatches to the type-specific vendor delete", func() {
			Expect(srv.DeleteComputeEntity(ctx, 1, api.ComputeTypeVirtualMachine)).To(Succeed())
			Expect(virtualMachines.deleted).To(Equal([]int{1}))

			Expect(srv.DeleteComputeEntity(ctx, 2, api.ComputeTypeSpotInstance)).To(Succeed())
			Expect(spotInstances.deleted).To(Equal([]int{2}))

			Expect(srv.DeleteComputeEntity(ctx, 33, api.ComputeTypeKubernetesNode)).To(Succeed())
			Expect(kubernetesClusters.deleted).To(Equal([]int{33}))
		})

		It("rejects an unknown compute type", func() {
			err := srv.DeleteComputeEntity(ctx, 1, api.ComputeType("Bogus"))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(Equal("Unsupported compute type: Bogus"))
		})
	})

	Context("ssh keys", func() {
		It("imports raw key material", func() {
			_, err := srv.AddSshKey(ctx, "laptop", "ssh-rsa AAAAB3NzaC1yc2EAAA test@test")
			Expect(err).ToNot(HaveOccurred())
			Expect(sshKeys.created).To(HaveLen(1))
			Expect(sshKeys.created[0].Key).To(ContainSubstring("ssh-rsa"))
			Expect(sshKeys.created[0].KeyType).To(BeEmpty())
		})

		It("asks the vendor to generate a pair when given a bare key type", func() {
			key, err := srv.AddSshKey(ctx, "generated", "ED25519")
			Expect(err).ToNot(HaveOccurred())
			Expect(sshKeys.created).To(HaveLen(1))
			Expect(sshKeys.created[0].Key).To(BeEmpty())
			Expect(sshKeys.created[0].KeyType).To(Equal("ED25519"))
			Expect(key.KeyType).To(Equal(api.SshKeyTypeEd25519))
		})
	})
})
