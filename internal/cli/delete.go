package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	api "github.com/emma-community/emma-portal-proxy/api/v1alpha1"
)

type DeleteOptions struct {
	GlobalOptions

	ComputeType string
}

func DefaultDeleteOptions() *DeleteOptions {
	return &DeleteOptions{
		GlobalOptions: DefaultGlobalOptions(),
		ComputeType:   string(api.ComputeTypeVirtualMachine),
	}
}

func NewCmdDelete() *cobra.Command {
	o := DefaultDeleteOptions()
	cmd := &cobra.Command{
		Use:   "delete TYPE/ID",
		Short: "Delete a compute entity.",
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

func (o *DeleteOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.ComputeType, "compute-type", "t", o.ComputeType, "Compute type of the entity to delete.")
}

func (o *DeleteOptions) Complete(cmd *cobra.Command, args []string) error {
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *DeleteOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}

	kind, id, err := parseAndValidateKindId(args[0])
	if err != nil {
		return err
	}
	if kind != EntityKind {
		return fmt.Errorf("unsupported resource kind: %s", kind)
	}
	if id == nil {
		return fmt.Errorf("deleting an entity requires an id: entity/ID")
	}
	if _, ok := api.ParseComputeType(o.ComputeType); !ok {
		return fmt.Errorf("invalid compute type: %s", o.ComputeType)
	}
	return nil
}

func (o *DeleteOptions) Run(ctx context.Context, args []string) error {
	c := o.Client()

	_, id, err := parseAndValidateKindId(args[0])
	if err != nil {
		return err
	}
	computeType, _ := api.ParseComputeType(o.ComputeType)
	if err := c.DeleteComputeEntity(ctx, computeType, *id); err != nil {
		return fmt.Errorf("deleting entity: %w", err)
	}
	fmt.Printf("entity/%d deleted\n", *id)
	return nil
}
