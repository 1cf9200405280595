package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/b2b-portal-api/internal/application/dto"
)

func (a *app) registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Registra una cuenta y deja la sesión iniciada",
		Example: `  b2bctl register --email alice@acme.com --mobile 5551234567 --name Alice --role Admin --company Acme
  b2bctl register --email bob@acme.com --mobile 5559876543 --name Bob --role Buyer --company Acme`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := a.password(cmd)
			if err != nil {
				return err
			}
			in := dto.RegisterRequest{Password: pw}
			in.Email, _ = cmd.Flags().GetString("email")
			in.Mobile, _ = cmd.Flags().GetString("mobile")
			in.Name, _ = cmd.Flags().GetString("name")
			in.Role, _ = cmd.Flags().GetString("role")
			in.CompanyName, _ = cmd.Flags().GetString("company")

			user, err := a.sess.Register(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registrado como %s (%s) en %s\n", user.Email, user.Role, user.CompanyName)
			return nil
		},
	}
	cmd.Flags().String("email", "", "email de la cuenta")
	cmd.Flags().String("mobile", "", "móvil, 10 a 15 dígitos")
	cmd.Flags().String("name", "", "nombre visible")
	cmd.Flags().String("role", "", "Admin, Sales o Buyer")
	cmd.Flags().String("company", "", "empresa; por defecto la empresa genérica")
	cmd.Flags().String("password", "", "contraseña; si se omite se pide por terminal")
	for _, f := range []string{"email", "mobile", "name", "role"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <email|móvil>",
		Short: "Inicia sesión con email o móvil",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := a.password(cmd)
			if err != nil {
				return err
			}
			user, err := a.sess.Login(cmd.Context(), args[0], pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sesión iniciada como %s (%s)\n", user.Email, user.Role)
			return nil
		},
	}
	cmd.Flags().String("password", "", "contraseña; si se omite se pide por terminal")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión local",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.sess.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sesión cerrada")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Muestra el perfil según el servidor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			me, err := a.sess.Me(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:       %s\n", me.ID)
			fmt.Fprintf(out, "Email:    %s\n", me.Email)
			fmt.Fprintf(out, "Móvil:    %s\n", me.Mobile)
			fmt.Fprintf(out, "Nombre:   %s\n", me.Name)
			fmt.Fprintf(out, "Rol:      %s\n", me.Role)
			fmt.Fprintf(out, "Empresa:  %s (%s)\n", me.CompanyName, me.CompanyID)
			fmt.Fprintf(out, "Activo:   %t\n", me.IsActive)
			return nil
		},
	}
}
