// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/ahmedeladl00/aliascraft/internal/sshserver"

	"github.com/spf13/cobra"
)

func newServeCommand(app *App) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve aliases over SSH",
		Long: `Start an SSH server that runs registered aliases for remote clients.

Clients authenticate with the printed access token as password and run
"list" or "run <alias> [args...]" as the session command. The server stops
on interrupt.`,
		Example: `  aliascraft serve --port 2222
  ssh -p 2222 aliascraft@127.0.0.1 run greet World`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := openOrFail(cmd, app)
			if err != nil {
				return err
			}

			srvCfg := sshserver.DefaultConfig()
			srvCfg.Host = sess.cfg.SSH.Host
			srvCfg.Port = sess.cfg.SSH.Port
			if cmd.Flags().Changed("host") {
				srvCfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				srvCfg.Port = port
			}
			srvCfg.Logger = sess.logger

			srv, err := sshserver.New(srvCfg, sess.registry)
			if err != nil {
				return fail(cmd, app.stderr, err, sess.verbose, issueStyle(sess.cfg))
			}

			ctx := cmd.Context()
			if err := srv.Start(ctx); err != nil {
				return fail(cmd, app.stderr, err, sess.verbose, issueStyle(sess.cfg))
			}

			info, err := srv.ConnectionInfo()
			if err != nil {
				_ = srv.Stop()
				return fail(cmd, app.stderr, err, sess.verbose, issueStyle(sess.cfg))
			}

			fmt.Fprintln(app.stdout, TitleStyle.Render("aliascraft SSH server"))
			fmt.Fprintf(app.stdout, "  %s %s\n", nameColumnStyle.Render("address"), srv.Address())
			fmt.Fprintf(app.stdout, "  %s %s\n", nameColumnStyle.Render("user"), info.User)
			fmt.Fprintf(app.stdout, "  %s %s\n", nameColumnStyle.Render("token"), info.Token)
			fmt.Fprintf(app.stdout, "  %s %s\n", nameColumnStyle.Render("expires"), info.ExpireAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(app.stdout, "  %s %d\n", nameColumnStyle.Render("aliases"), sess.registry.Count())

			select {
			case <-ctx.Done():
			case err := <-srv.Err():
				if err != nil {
					_ = srv.Stop()
					return fail(cmd, app.stderr, err, sess.verbose, issueStyle(sess.cfg))
				}
			}

			if err := srv.Stop(); err != nil {
				return fail(cmd, app.stderr, err, sess.verbose, issueStyle(sess.cfg))
			}
			fmt.Fprintln(app.stdout, SubtitleStyle.Render("Server stopped."))
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "address to bind (overrides ssh.host)")
	cmd.Flags().IntVar(&port, "port", 0, "port to bind, 0 picks a free port (overrides ssh.port)")
	return cmd
}
