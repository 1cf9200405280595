package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/b2b-portal-api/internal/application/dto"
)

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Contadores del dashboard de la empresa",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.sess.Stats(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Pedidos\t%d\n", st.TotalOrders)
			fmt.Fprintf(w, "Pedidos pendientes\t%d\n", st.PendingOrders)
			fmt.Fprintf(w, "Pedidos completados\t%d\n", st.CompletedOrders)
			fmt.Fprintf(w, "Productos\t%d\n", st.TotalProducts)
			fmt.Fprintf(w, "Productos con stock bajo\t%d\n", st.LowStockProducts)
			fmt.Fprintf(w, "Proveedores\t%d\n", st.TotalVendors)
			fmt.Fprintf(w, "Pagos pendientes\t%d\n", st.PendingPayments)
			fmt.Fprintf(w, "Ingresos\t%.2f\n", st.TotalRevenue)
			return w.Flush()
		},
	}
}

func (a *app) usersCmd() *cobra.Command {
	var page dto.PageRequest
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Lista los usuarios de la empresa (solo Admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.sess.Users(cmd.Context(), page)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "EMAIL\tMÓVIL\tNOMBRE\tROL\tACTIVO")
			for _, u := range list.Items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", u.Email, u.Mobile, u.Name, u.Role, u.IsActive)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&page.Limit, "limit", 20, "máximo de usuarios")
	cmd.Flags().IntVar(&page.Offset, "offset", 0, "desplazamiento")
	return cmd
}
