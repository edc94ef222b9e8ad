package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KevinKickass/SunSpecBridge/internal/sunspec/sunspectest"
	"github.com/spf13/cobra"
	"github.com/tbrandon/mbserver"
)

var chains = map[string]func() sunspectest.Chain{
	"fx-split": sunspectest.FXSplit,
}

// startSimulator serves chain on addr as a Modbus-TCP holding register map.
func startSimulator(addr string, chain sunspectest.Chain) (*mbserver.Server, error) {
	regs, err := chain.Registers()
	if err != nil {
		return nil, err
	}

	serv := mbserver.NewServer()
	for address, word := range regs {
		serv.HoldingRegisters[address] = word
	}
	if err := serv.ListenTCP(addr); err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return serv, nil
}

func newSimulateCommand(c *cli) *cobra.Command {
	var (
		listen string
		name   string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Serve a canned AXS Port model chain over Modbus-TCP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			build, ok := chains[name]
			if !ok {
				return fmt.Errorf("unknown chain %q", name)
			}
			serv, err := startSimulator(listen, build())
			if err != nil {
				return err
			}
			defer serv.Close()

			c.logger().Info("Simulator listening")
			fmt.Fprintf(cmd.OutOrStdout(), "serving %s on %s\n", name, listen)

			ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:1502", "address to serve on")
	cmd.Flags().StringVar(&name, "chain", "fx-split", "model chain to serve")
	return cmd
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
