package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"

	api "github.com/emma-community/emma-portal-proxy/api/v1alpha1"
)

type CreateOptions struct {
	GlobalOptions

	Filename     string
	KeyOrKeyType string
}

func DefaultCreateOptions() *CreateOptions {
	return &CreateOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdCreate() *cobra.Command {
	o := DefaultCreateOptions()
	cmd := &cobra.Command{
		Use:   "create (entity -f FILE | sshkey/NAME -k KEY)",
		Short: "Create a compute entity or import an SSH key.",
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

func (o *CreateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Filename, "filename", "f", o.Filename, "Path to a JSON or YAML entity manifest.")
	fs.StringVarP(&o.KeyOrKeyType, "key", "k", o.KeyOrKeyType, "Public key material, or a key type (RSA, ED25519) to generate a pair.")
}

func (o *CreateOptions) Complete(cmd *cobra.Command, args []string) error {
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *CreateOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}

	kind, name, _ := splitKindName(args[0])
	switch kind {
	case EntityKind:
		if o.Filename == "" {
			return fmt.Errorf("creating an entity requires --filename")
		}
	case SshKeyKind:
		if name == "" {
			return fmt.Errorf("creating an SSH key requires a name: sshkey/NAME")
		}
		if o.KeyOrKeyType == "" {
			return fmt.Errorf("creating an SSH key requires --key")
		}
	default:
		return fmt.Errorf("unsupported resource kind: %s", kind)
	}
	return nil
}

func (o *CreateOptions) Run(ctx context.Context, args []string) error {
	c := o.Client()

	kind, name, _ := splitKindName(args[0])
	switch kind {
	case EntityKind:
		manifest, err := os.ReadFile(o.Filename)
		if err != nil {
			return fmt.Errorf("reading manifest: %w", err)
		}
		var entity api.Vm
		if err := yaml.Unmarshal(manifest, &entity); err != nil {
			return fmt.Errorf("parsing manifest: %w", err)
		}
		id, err := c.AddComputeEntity(ctx, entity)
		if err != nil {
			return fmt.Errorf("creating entity: %w", err)
		}
		fmt.Printf("%s/%d created\n", entity.Type, id)
		return nil
	case SshKeyKind:
		key, err := c.AddSshKey(ctx, name, o.KeyOrKeyType)
		if err != nil {
			return fmt.Errorf("creating ssh key: %w", err)
		}
		fmt.Printf("sshkey/%d created\n", key.ID)
		if key.PrivateKey != "" {
			// A generated private key is returned exactly once.
			fmt.Println(key.PrivateKey)
		}
		return nil
	default:
		return fmt.Errorf("unsupported resource kind: %s", kind)
	}
}
