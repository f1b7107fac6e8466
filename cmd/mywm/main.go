// Package main is the mywm daemon entrypoint: connects to the X display,
// wires the state engine to the display gateway, the IPC socket, the bar
// publisher, the input manager and the configuration pipeline, and runs
// the reactor until quit or connection loss.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibrid/mywm/internal/bar"
	"github.com/hibrid/mywm/internal/command"
	"github.com/hibrid/mywm/internal/config"
	"github.com/hibrid/mywm/internal/daemonconfig"
	"github.com/hibrid/mywm/internal/input"
	"github.com/hibrid/mywm/internal/ipc"
	"github.com/hibrid/mywm/internal/wm"
	"github.com/hibrid/mywm/internal/x11"
)

func main() {
	configFlag := flag.String("config", "", "path to daemon.yaml (default $XDG_CONFIG_HOME/mywm/daemon.yaml)")
	flag.Parse()

	settings, err := daemonconfig.Load(daemonconfig.Path(*configFlag))
	if err != nil {
		slog.Error("couldn't load daemon settings", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: settings.SlogLevel()})))

	conn, err := x11.Connect()
	if err != nil {
		slog.Error("couldn't connect to X display", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := conn.BecomeWM(); err != nil {
		slog.Error("couldn't become window manager", "error", err)
		os.Exit(1)
	}
	conn.SetEWMHName("mywm")

	commands := make(chan wm.CommandRequest, 32)

	server := ipc.NewServer(commands, slog.Default())
	socketPath := settings.SocketPath
	if socketPath == "" {
		socketPath = ipc.SocketPath()
	}
	if err := server.Listen(socketPath); err != nil {
		slog.Error("couldn't listen on control socket", "path", socketPath, "error", err)
		os.Exit(1)
	}
	defer server.Close()

	publisher := bar.New(server)
	engine := wm.New(conn, publisher)
	if err := engine.DiscoverMonitors(); err != nil {
		slog.Error("couldn't discover monitors", "error", err)
		os.Exit(1)
	}

	preexisting, err := conn.QueryTree()
	if err != nil {
		slog.Error("couldn't query existing top-level windows", "error", err)
		os.Exit(1)
	}
	for _, win := range preexisting {
		if viewable, err := conn.IsViewable(win); err != nil || !viewable {
			continue
		}
		if err := engine.HandleMapRequest(win); err != nil {
			slog.Warn("couldn't adopt pre-existing window", "window", win, "error", err)
		}
	}

	inputMgr := input.New(conn)
	dispatcher := command.New(engine, inputMgr, nil)

	pipeline := config.New(settings.ConfigScript, dispatcher, engine, inputMgr, slog.Default())
	dispatcher.SetReloader(pipeline)
	defer pipeline.Close()

	if err := pipeline.RunOnce(); err != nil {
		slog.Warn("initial configuration run failed", "error", err)
	}
	if err := pipeline.Watch(commands); err != nil {
		slog.Warn("couldn't watch configuration script for changes", "error", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("received shutdown signal")
		commands <- wm.CommandRequest{Line: "quit"}
	}()

	reactor := wm.NewReactor(engine, conn, inputMgr, dispatcher.Dispatch, commands, slog.Default())
	if err := reactor.Run(); err != nil {
		slog.Error("reactor exited with error", "error", err)
		os.Exit(1)
	}
	if err := engine.Shutdown(); err != nil {
		slog.Warn("couldn't release managed windows on shutdown", "error", err)
	}
}
