package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"

	api "github.com/emma-community/emma-portal-proxy/api/v1alpha1"
)

const (
	jsonFormat = "json"
	yamlFormat = "yaml"
)

var (
	legalOutputTypes = []string{jsonFormat, yamlFormat}
)

type GetOptions struct {
	GlobalOptions

	Output       string
	ComputeTypes []string
}

func DefaultGetOptions() *GetOptions {
	return &GetOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdGet() *cobra.Command {
	o := DefaultGetOptions()
	cmd := &cobra.Command{
		Use:   "get (TYPE | TYPE/ID)",
		Short: "Display one or many resources.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *GetOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	fs.StringSliceVarP(&o.ComputeTypes, "compute-type", "t", o.ComputeTypes, "Compute types to include for configs and entities.")
}

func (o *GetOptions) Complete(cmd *cobra.Command, args []string) error {
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *GetOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}

	kind, id, err := parseAndValidateKindId(args[0])
	if err != nil {
		return err
	}
	if id != nil && kind != EntityKind {
		return fmt.Errorf("get by id is not supported for kind %s", kind)
	}

	if len(o.Output) > 0 && !slices.Contains(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	for _, raw := range o.ComputeTypes {
		if _, ok := api.ParseComputeType(raw); !ok {
			return fmt.Errorf("invalid compute type: %s", raw)
		}
	}

	return nil
}

func (o *GetOptions) computeTypes() []api.ComputeType {
	types := make([]api.ComputeType, 0, len(o.ComputeTypes))
	for _, raw := range o.ComputeTypes {
		computeType, _ := api.ParseComputeType(raw)
		types = append(types, computeType)
	}
	return types
}

func (o *GetOptions) Run(ctx context.Context, args []string) error {
	c := o.Client()

	kind, id, err := parseAndValidateKindId(args[0])
	if err != nil {
		return err
	}

	var response interface{}
	switch kind {
	case DataCenterKind:
		response, err = c.ListDataCenters(ctx, nil)
	case ProviderKind:
		response, err = c.ListProviders(ctx, "")
	case LocationKind:
		response, err = c.ListLocations(ctx, "")
	case OperatingSystemKind:
		response, err = c.ListOperatingSystems(ctx, "", "", "")
	case SshKeyKind:
		response, err = c.ListSshKeys(ctx)
	case ConfigKind:
		response, err = c.ListComputeConfigs(ctx, o.computeTypes()...)
	case EntityKind:
		var entities []api.Vm
		entities, err = c.ListComputeEntities(ctx, o.computeTypes()...)
		if err == nil && id != nil {
			entities = slices.DeleteFunc(entities, func(vm api.Vm) bool { return vm.ID != *id })
		}
		response = entities
	default:
		return fmt.Errorf("unsupported resource kind: %s", kind)
	}
	if err != nil {
		return fmt.Errorf("listing %s: %w", plural(kind), err)
	}

	switch o.Output {
	case jsonFormat:
		marshalled, err := json.Marshal(response)
		if err != nil {
			return fmt.Errorf("marshalling resource: %w", err)
		}
		fmt.Printf("%s\n", string(marshalled))
		return nil
	case yamlFormat:
		marshalled, err := yaml.Marshal(response)
		if err != nil {
			return fmt.Errorf("marshalling resource: %w", err)
		}
		fmt.Printf("%s\n", string(marshalled))
		return nil
	default:
		return printTable(response, kind)
	}
}

func printTable(response interface{}, kind string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
	switch kind {
	case DataCenterKind:
		printDataCentersTable(w, response.([]api.DataCenter)...)
	case ProviderKind:
		printProvidersTable(w, response.([]api.Provider)...)
	case LocationKind:
		printLocationsTable(w, response.([]api.Location)...)
	case OperatingSystemKind:
		printOperatingSystemsTable(w, response.([]api.OperatingSystem)...)
	case SshKeyKind:
		printSshKeysTable(w, response.([]api.SshKey)...)
	case ConfigKind:
		printConfigsTable(w, response.([]api.VmConfiguration)...)
	case EntityKind:
		printEntitiesTable(w, response.([]api.Vm)...)
	default:
		return fmt.Errorf("unknown resource type %s", kind)
	}
	w.Flush()
	return nil
}

func printDataCentersTable(w *tabwriter.Writer, dataCenters ...api.DataCenter) {
	fmt.Fprintln(w, "ID\tNAME\tPROVIDER\tREGION")
	for _, d := range dataCenters {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.ID, d.Name, d.Provider, d.RegionCode)
	}
}

func printProvidersTable(w *tabwriter.Writer, providers ...api.Provider) {
	fmt.Fprintln(w, "ID\tNAME")
	for _, p := range providers {
		fmt.Fprintf(w, "%d\t%s\n", p.ID, p.Name)
	}
}

func printLocationsTable(w *tabwriter.Writer, locations ...api.Location) {
	fmt.Fprintln(w, "ID\tNAME")
	for _, l := range locations {
		fmt.Fprintf(w, "%d\t%s\n", l.ID, l.Name)
	}
}

func printOperatingSystemsTable(w *tabwriter.Writer, systems ...api.OperatingSystem) {
	fmt.Fprintln(w, "ID\tFAMILY\tTYPE\tARCH\tVERSION")
	for _, s := range systems {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.Family, s.Type, s.Architecture, s.Version)
	}
}

func printSshKeysTable(w *tabwriter.Writer, keys ...api.SshKey) {
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tFINGERPRINT")
	for _, k := range keys {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", k.ID, k.Name, k.KeyType, k.Fingerprint)
	}
}

func printConfigsTable(w *tabwriter.Writer, configs ...api.VmConfiguration) {
	fmt.Fprintln(w, "ID\tTYPE\tVCPU\tRAM_GB\tDISK_GB\tPROVIDER")
	for _, c := range configs {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%s\n", c.ID, c.Type, c.VCpu, c.RamGb, c.VolumeGb, c.ProviderName)
	}
}

func printEntitiesTable(w *tabwriter.Writer, entities ...api.Vm) {
	fmt.Fprintln(w, "ID\tTYPE\tNAME\tLABEL\tSTATUS")
	for _, e := range entities {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.Type, e.Name, e.Label, e.Status)
	}
}
