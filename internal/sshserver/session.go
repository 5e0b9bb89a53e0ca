// SPDX-License-Identifier: MPL-2.0

package sshserver

import (
	"fmt"
	"io"
	"strings"

	"github.com/ahmedeladl00/aliascraft/pkg/alias"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
)

const usage = `usage:
  list                 list registered aliases
  run <alias> [args]   run an alias
`

// commandMiddleware dispatches the session command.
func (s *Server) commandMiddleware() wish.Middleware {
	return func(_ ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			_ = sess.Exit(s.handle(sess, sess.Command()))
		}
	}
}

// handle runs one session command and returns its exit status.
func (s *Server) handle(sess ssh.Session, args []string) int {
	if len(args) == 0 {
		_, _ = io.WriteString(sess.Stderr(), usage)
		return 1
	}

	s.logger.Debug("session command", "user", sess.User(), "command", strings.Join(args, " "))

	switch args[0] {
	case "list":
		writeList(sess, s.registry.Aliases())
		return 0
	case "run":
		if len(args) < 2 {
			_, _ = io.WriteString(sess.Stderr(), "run: alias name required\n")
			return 1
		}
		return s.run(sess, args[1], args[2:])
	default:
		_, _ = fmt.Fprintf(sess.Stderr(), "unknown command %q\n%s", args[0], usage)
		return 1
	}
}

func (s *Server) run(sess ssh.Session, name string, args []string) int {
	values := make([]any, len(args))
	for i, a := range args {
		values[i] = a
	}

	result, err := s.registry.Run(sess.Context(), name, values...)
	if err != nil {
		s.logger.Info("alias failed", "alias", name, "error", err)
		_, _ = fmt.Fprintf(sess.Stderr(), "Error: %v\n", err)
		return 1
	}

	s.logger.Info("alias executed", "alias", name)
	if result != nil {
		_, _ = fmt.Fprintln(sess, result)
	}
	return 0
}

func writeList(w io.Writer, defs []alias.Definition) {
	if len(defs) == 0 {
		_, _ = io.WriteString(w, "No aliases registered.\n")
		return
	}
	for _, d := range defs {
		line := d.Name
		if d.HasGroup() {
			line += "\t[" + d.Group + "]"
		}
		if len(d.ExpectedArgs) > 0 {
			line += "\t" + strings.Join(d.ExpectedArgs, " ")
		}
		_, _ = fmt.Fprintln(w, line)
	}
}
