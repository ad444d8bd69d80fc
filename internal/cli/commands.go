package cli

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-clayconfig/internal/config"
	"github.com/goliatone/go-clayconfig/pkg/export"
	"github.com/goliatone/go-clayconfig/pkg/presets"
	"github.com/goliatone/go-clayconfig/pkg/settings"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available configuration pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.catalog()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTITLE\tKEYS\tSOURCE")
			for _, name := range store.Names() {
				d := store.MustGet(name)
				source, _ := store.Source(name)
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", name, d.Title(), len(d.MessageKeys()), source)
			}
			return w.Flush()
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export NAME",
		Short: "Write a configuration page in the host's format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(a.v.GetString(config.KeyExportFormat))
			if err != nil {
				return err
			}
			d, err := a.descriptor(args[0])
			if err != nil {
				return err
			}
			data, err := export.Marshal(d, format)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			a.log.Info().Str("descriptor", d.Name).Str("format", string(format)).Str("file", output).Msg("exported")
			return nil
		},
	}
	cmd.Flags().String("format", "", "output format: json, yaml or js")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	bindFlag(a.v, config.KeyExportFormat, cmd.Flags().Lookup("format"))
	return cmd
}

func newDefaultsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "defaults NAME",
		Short: "Print the settings mapping saved when nothing is changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.descriptor(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), settings.Defaults(d))
		},
	}
}

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema NAME",
		Short: "Print the JSON Schema of the settings mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.descriptor(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), settings.JSONSchema(d))
		},
	}
}

func newDecodeCmd(a *app) *cobra.Command {
	var (
		pack   bool
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "decode NAME PAYLOAD",
		Short: "Normalise a settings payload sent by the host (use - for stdin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.descriptor(args[0])
			if err != nil {
				return err
			}
			raw, err := readPayload(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}

			var payload map[string]any
			if err := json.Unmarshal(raw, &payload); err != nil {
				return fmt.Errorf("decode payload: %w", err)
			}
			if unknown := settings.Unknown(d, payload); len(unknown) > 0 {
				if strict {
					return fmt.Errorf("%w: %s", settings.ErrUnknownKey, strings.Join(unknown, ", "))
				}
				a.log.Warn().Strs("keys", unknown).Msg("ignoring undeclared keys")
			}

			values, err := settings.Apply(d, payload)
			if err != nil {
				return err
			}
			if !pack {
				return writeJSON(cmd.OutOrStdout(), values)
			}

			layout, ok := presets.Layout(d.Name)
			if !ok {
				layout = d.MessageKeys()
				a.log.Debug().Str("descriptor", d.Name).Msg("no persisted layout; packing in page order")
			}
			record, err := settings.Pack(d, values, layout)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(record))
			return err
		},
	}
	cmd.Flags().BoolVar(&pack, "pack", false, "print the persisted record as hex instead of JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject keys the page does not declare")
	return cmd
}

func readPayload(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("read payload: file is empty")
	}
	return data, nil
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
