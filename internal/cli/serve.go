package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/workoutlog/internal/web"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the workout log as a web page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := opts.openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			if addr == "" {
				addr = sess.settings.Addr
			}

			srv, err := web.New(sess.store, appClock, sess.settings.PageSize)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from WORKOUTLOG_ADDR or :8080)")
	return cmd
}
