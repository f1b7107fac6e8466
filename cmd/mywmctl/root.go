package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hibrid/mywm/internal/ipc"
)

var rootCmd = &cobra.Command{
	Use:   "mywmctl",
	Short: "Control a running mywm daemon over its control socket",
}

var socketFlag string

func init() {
	rootCmd.PersistentFlags().StringVar(&socketFlag, "socket", "", "control socket path (default $XDG_RUNTIME_DIR/mywm.sock)")
}

// Execute runs the CLI, exiting with status 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func socketPath() string {
	if socketFlag != "" {
		return socketFlag
	}
	return ipc.SocketPath()
}

// sendLine dials the socket, sends one request line, prints the reply, and
// returns a non-nil error for an ERR reply (so cobra exits non-zero).
func sendLine(line string) error {
	client, err := ipc.Dial(socketPath())
	if err != nil {
		return fmt.Errorf("connect to mywm: %w", err)
	}
	defer client.Close()

	reply, err := client.Send(line)
	if err != nil {
		return fmt.Errorf("send %q: %w", line, err)
	}
	fmt.Println(reply)
	if reply != "OK" {
		return fmt.Errorf("%s", reply)
	}
	return nil
}
