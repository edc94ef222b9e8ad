package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/KevinKickass/SunSpecBridge/internal/auth"
	"github.com/KevinKickass/SunSpecBridge/internal/sunspec"
	"github.com/KevinKickass/SunSpecBridge/internal/types"
	"github.com/spf13/cobra"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func portText(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p)
}

type probeResult struct {
	Controller string             `json:"controller"`
	Deployment sunspec.Deployment `json:"deployment"`
	Devices    []sunspec.Device   `json:"devices"`
	Inventory  types.Inventory    `json:"inventory"`
}

func newProbeCommand(c *cli) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Discover the model chain and print the deployment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, session, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Shutdown()

			inv, err := m.Inventory()
			if err != nil {
				return err
			}
			dep := session.Deployment()
			res := probeResult{
				Controller: dep.ControllerName(),
				Deployment: dep,
				Devices:    session.Devices(),
				Inventory:  inv,
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			return printProbe(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printProbe(out io.Writer, res probeResult) error {
	fmt.Fprintf(out, "Controller:  %s\n", res.Controller)
	fmt.Fprintf(out, "Serial:      %s\n", res.Inventory.SerialID)
	fmt.Fprintf(out, "Add-on:      %t\n", res.Deployment.HasAddon)
	fmt.Fprintf(out, "Obfuscated:  %t\n\n", res.Deployment.Obfuscated)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tMODEL\tNAME\tBASE\tLENGTH\tPORT\tROLE")
	for _, d := range res.Devices {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%d\t%s\t%s\n",
			d.Index, d.Model, d.Model, d.BaseAddress, d.Length, portText(d.Port), d.Role())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NODE\tNAME\tKIND\tWATCHED\tCOMMANDS")
	for _, n := range res.Inventory.All() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", n.Address, n.Name, n.Kind, len(n.Registers), len(n.Commands))
	}
	return tw.Flush()
}

func newDumpCommand(c *cli) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "dump <model>",
		Short: "Decode every field of one model block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 16)
			if err != nil {
				return fmt.Errorf("invalid model id %q", args[0])
			}
			opts, err := portOptions(cmd)
			if err != nil {
				return err
			}

			m, session, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Shutdown()

			readings, err := session.GetAll(cmd.Context(), sunspec.ModelID(id), opts...)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), readings)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", sunspec.ModelID(id))
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ADDRESS\tNAME\tVALUE\tUNITS")
			for _, r := range readings {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.Address, r.Name, r.Text, r.Units)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Int("on-port", 0, "select the device on this hardware port")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newGetCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <register>...",
		Short: "Read registers by logical name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := portOptions(cmd)
			if err != nil {
				return err
			}

			m, session, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Shutdown()

			for _, name := range args {
				v, err := session.GetOne(cmd.Context(), name, opts...)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", name, v)
			}
			return nil
		},
	}
	cmd.Flags().Int("on-port", 0, "select the device on this hardware port")
	return cmd
}

func newSetCommand(c *cli) *cobra.Command {
	var uom int
	cmd := &cobra.Command{
		Use:   "set <register> <value>",
		Short: "Scale a value by its unit of measure and write it",
		Long: `Writes one register. --uom selects the scaling: 1 (amperes) and 72 (volts)
multiply by 10, 30 (kilowatts) multiplies by 10 and truncates, 25 (index)
truncates. Any other unit writes the value unchanged.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q", args[1])
			}
			opts, err := portOptions(cmd)
			if err != nil {
				return err
			}

			m, session, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Shutdown()

			if err := session.SetOne(cmd.Context(), args[0], value, sunspec.UOM(uom), opts...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s written\n", args[0])
			return nil
		},
	}
	cmd.Flags().Int("on-port", 0, "select the device on this hardware port")
	cmd.Flags().IntVar(&uom, "uom", 0, "unit of measure of value")
	return cmd
}

func newHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print an argon2id hash for auth.users[].password_hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.NewPasswordHasher().HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
