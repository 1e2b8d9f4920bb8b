package cli

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DataCenterKind      = "datacenter"
	ProviderKind        = "provider"
	LocationKind        = "location"
	OperatingSystemKind = "os"
	SshKeyKind          = "sshkey"
	ConfigKind          = "config"
	EntityKind          = "entity"
)

var (
	pluralKinds = map[string]string{
		DataCenterKind:      "datacenters",
		ProviderKind:        "providers",
		LocationKind:        "locations",
		OperatingSystemKind: "oses",
		SshKeyKind:          "sshkeys",
		ConfigKind:          "configs",
		EntityKind:          "entities",
	}
)

func parseAndValidateKindId(arg string) (string, *int, error) {
	kind, rawId, _ := strings.Cut(arg, "/")
	kind = singular(kind)
	if _, ok := pluralKinds[kind]; !ok {
		return "", nil, fmt.Errorf("invalid resource kind: %s", kind)
	}
	if rawId == "" {
		return kind, nil, nil
	}
	id, err := strconv.Atoi(rawId)
	if err != nil {
		return "", nil, fmt.Errorf("invalid %s id %q: must be numeric", kind, rawId)
	}
	return kind, &id, nil
}

func splitKindName(arg string) (string, string, bool) {
	kind, name, _ := strings.Cut(arg, "/")
	kind = singular(kind)
	_, ok := pluralKinds[kind]
	return kind, name, ok
}

func singular(kind string) string {
	for singular, plural := range pluralKinds {
		if kind == plural {
			return singular
		}
	}
	return kind
}

func plural(kind string) string {
	return pluralKinds[kind]
}
