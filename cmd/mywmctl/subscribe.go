package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hibrid/mywm/internal/ipc"
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Stream the daemon's JSON event feed (workspace, focus, bar-toggle) to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := ipc.Dial(socketPath())
		if err != nil {
			return fmt.Errorf("connect to mywm: %w", err)
		}
		defer client.Close()

		return client.Subscribe(func(line string) {
			fmt.Println(line)
		})
	},
}

func init() {
	rootCmd.AddCommand(subscribeCmd)
}
