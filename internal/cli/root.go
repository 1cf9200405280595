// Package cli comandos de b2bctl sobre el cliente de sesión.
package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/jhoicas/b2b-portal-api/internal/client/session"
)

// Options dependencias de los comandos.
type Options struct {
	// Session construye la sesión; se restaura antes de cada comando.
	Session func() (*session.Session, error)
	// Prompt pide la contraseña cuando no llega por flag. Por defecto usa huh.
	Prompt func(title string) (string, error)
}

type app struct {
	opts Options
	sess *session.Session
}

// NewRootCmd construye el comando raíz con todos los subcomandos.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Prompt == nil {
		opts.Prompt = promptPassword
	}
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:           "b2bctl",
		Short:         "Cliente de línea de comandos del portal B2B",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.opts.Session()
			if err != nil {
				return err
			}
			if _, err := sess.Restore(); err != nil {
				return fmt.Errorf("restaurar sesión: %w", err)
			}
			a.sess = sess
			return nil
		},
	}
	root.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.statsCmd(),
		a.usersCmd(),
	)
	return root
}

// password devuelve el flag o, si viene vacío, lo pide de forma interactiva.
func (a *app) password(cmd *cobra.Command) (string, error) {
	pw, _ := cmd.Flags().GetString("password")
	if pw != "" {
		return pw, nil
	}
	return a.opts.Prompt("Contraseña")
}

func promptPassword(title string) (string, error) {
	var value string
	input := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value)
	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	return value, nil
}
