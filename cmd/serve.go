package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/vizprofile-cli/internal/profile"
	"github.com/KaramelBytes/vizprofile-cli/internal/server"
	"github.com/KaramelBytes/vizprofile-cli/internal/snapshot"
)

var (
	serveAddr       string
	serveNoSnapshot bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the profiling API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		addr := c.ServerAddr
		if serveAddr != "" {
			addr = serveAddr
		}
		var store *snapshot.Store
		if !serveNoSnapshot {
			s, err := snapshotStore()
			if err != nil {
				return err
			}
			store = s
		}
		h := server.NewHandler(profile.New(), store, server.Options{
			Palette:      c.Palette,
			DefaultBins:  c.HistogramBins,
			MaxBodyBytes: c.MaxBodyBytes,
			MaxRows:      c.MaxRows,
		})
		ctx, stop := signal.NotifyContext(contextOr(cmd.Context()), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.ListenAndServe(ctx, addr, server.NewRouter(h, c.CORSOrigins))
	},
}

func contextOr(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config server_addr)")
	serveCmd.Flags().BoolVar(&serveNoSnapshot, "no-snapshots", false, "disable the snapshot endpoints")
}
