package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"vet-clinic-admin/internal/app"
	"vet-clinic-admin/internal/domain/clinic"
	"vet-clinic-admin/internal/domain/console"
	"vet-clinic-admin/internal/domain/session"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión como administrador",
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				password = os.Getenv("VETADMIN_PASSWORD")
			}

			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			s, err := a.Sessions.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bienvenido, %s (%s)\n", s.Name, s.Email)
			return nil
		},
	}
	cmd.Flags().String("email", "", "Correo del administrador")
	cmd.Flags().String("password", "", "Contraseña (o VETADMIN_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión guardada",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Sessions.Logout(cmd.Context())
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Muestra el administrador con sesión",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			s, err := requireSession(cmd, a)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\tdesde %s\n",
				s.Profile.ID, s.Name, s.Email, s.StartedAt.Format("02/01/2006 15:04"))
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <entity>",
		Short: "Lista una vista (pets, owners, vets, consultations, medications, prescriptions, histories, admins)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := parseEntity(args[0])
			if err != nil {
				return err
			}
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			if _, err := requireSession(cmd, a); err != nil {
				return err
			}

			if _, err := a.Workspace.Mount(cmd.Context(), e); err != nil {
				return err
			}
			rows, err := a.Workspace.Rows(cmd.Context(), e)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			headers := make([]string, 0, len(console.Columns(e)))
			for _, c := range console.Columns(e) {
				headers = append(headers, c.Header)
			}
			fmt.Fprintln(tw, strings.Join(headers, "\t"))
			for _, r := range rows {
				fmt.Fprintln(tw, strings.Join(r.Cells(), "\t"))
			}
			return tw.Flush()
		},
	}
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <entity>",
		Short: "Exporta una vista, o un registro con --id, a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetInt64("id")
			out, _ := cmd.Flags().GetString("out")

			e, err := parseEntity(args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = string(e) + ".pdf"
				if id > 0 {
					out = fmt.Sprintf("%s-%d.pdf", e, id)
				}
			}

			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			if _, err := requireSession(cmd, a); err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			var pages int
			if id > 0 {
				pages, err = a.Workspace.ExportSingle(cmd.Context(), f, e, id)
			} else {
				if _, err = a.Workspace.Mount(cmd.Context(), e); err == nil {
					pages, err = a.Workspace.ExportList(cmd.Context(), f, e)
				}
			}
			if err != nil {
				_ = os.Remove(out)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d página(s)\n", out, pages)
			return nil
		},
	}
	cmd.Flags().Int64("id", 0, "Exportar un solo registro")
	cmd.Flags().String("out", "", "Archivo de salida (default <entity>.pdf)")
	return cmd
}

func requireSession(cmd *cobra.Command, a *app.App) (session.Session, error) {
	s, err := a.Sessions.Current(cmd.Context())
	if errors.Is(err, session.ErrNoSession) {
		return s, errors.New("no hay sesión: ejecute 'vetadmin login --email <correo>'")
	}
	return s, err
}

func parseEntity(s string) (clinic.Entity, error) {
	e, ok := clinic.ParseEntity(s)
	if !ok {
		return "", fmt.Errorf("entidad desconocida %q", s)
	}
	return e, nil
}
