package emma_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/emma-community/emma-portal-proxy/internal/emma"
)

type staticTokens string

func (s staticTokens) Token() (string, error) { return string(s), nil }

type configPage struct {
	Content    []emma.VmConfigurationDto `json:"content"`
	Number     int                       `json:"number"`
	TotalPages int                       `json:"totalPages"`
	Last       bool                      `json:"last"`
}

var _ = Describe("vendor client", func() {
	var (
		vendor  *httptest.Server
		handler http.HandlerFunc
		factory *emma.ClientFactory
	)

	BeforeEach(func() {
		handler = nil
		vendor = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handler(w, r)
		}))
		factory = emma.NewClientFactory(vendor.URL, staticTokens("bearer-token"))
	})

	AfterEach(func() {
		vendor.Close()
	})

	It("attaches the bearer token to resource calls", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			Expect(r.Header.Get("Authorization")).To(Equal("Bearer bearer-token"))
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode([]emma.DataCenterDto{})
		}

		_, err := factory.DataCenters().GetDataCenters(context.Background())
		Expect(err).ToNot(HaveOccurred())
	})

	It("follows vendor pages until the last one", func() {
		var pagesServed []string
		handler = func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Path).To(Equal("/v1/vms-configs"))
			Expect(r.URL.Query().Get("size")).To(Equal("100"))

			page, err := strconv.Atoi(r.URL.Query().Get("page"))
			Expect(err).ToNot(HaveOccurred())
			pagesServed = append(pagesServed, r.URL.Query().Get("page"))

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(configPage{
				Content:    []emma.VmConfigurationDto{{ID: page*10 + 1}, {ID: page*10 + 2}},
				Number:     page,
				TotalPages: 3,
				Last:       page == 2,
			})
		}

		configs, err := factory.ComputeConfigs().GetVmConfigs(context.Background(), nil, nil, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(pagesServed).To(Equal([]string{"0", "1", "2"}))
		Expect(configs).To(HaveLen(6))
		Expect(configs[0].ID).To(Equal(1))
		Expect(configs[5].ID).To(Equal(22))
	})

	It("bounds the pagination loop against a vendor that never reports last", func() {
		requests := 0
		handler = func(w http.ResponseWriter, r *http.Request) {
			requests++
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(configPage{
				Content: []emma.VmConfigurationDto{{ID: requests}},
				Last:    false,
			})
		}

		configs, err := factory.ComputeConfigs().GetSpotConfigs(context.Background(), nil, nil, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(requests).To(Equal(32))
		Expect(configs).To(HaveLen(32))
	})

	It("forwards config filters to the vendor", func() {
		providerID, locationID, dataCenterID := 7, 12, "aws-us-east-1-dc2"
		handler = func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Query().Get("providerId")).To(Equal("7"))
			Expect(r.URL.Query().Get("locationId")).To(Equal("12"))
			Expect(r.URL.Query().Get("dataCenterId")).To(Equal("aws-us-east-1-dc2"))
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(configPage{Last: true})
		}

		_, err := factory.ComputeConfigs().GetKubernetesNodeConfigs(context.Background(), &providerID, &locationID, &dataCenterID)
		Expect(err).ToNot(HaveOccurred())
	})

	It("carries the vendor's status and message on failures", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"code":"NOT_FOUND","message":"vm 42 does not exist"}`)
		}

		_, err := factory.VirtualMachines().GetVm(context.Background(), 42)
		Expect(err).To(HaveOccurred())

		apiErr, ok := err.(*emma.APIError)
		Expect(ok).To(BeTrue())
		Expect(apiErr.StatusCode).To(Equal(http.StatusNotFound))
		Expect(apiErr.Code).To(Equal("NOT_FOUND"))
		Expect(apiErr.Message).To(Equal("vm 42 does not exist"))
		Expect(apiErr.Error()).To(ContainSubstring("vm 42 does not exist"))
	})

	It("rejects ssh key creation without material or type", func() {
		_, err := factory.SshKeys().CreateSshKey(context.Background(), emma.SshKeyCreateRequest{Name: "nope"})
		Expect(err).To(HaveOccurred())
	})
})
