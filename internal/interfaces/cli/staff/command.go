package staff

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	staffUsecases "f3manager/internal/application/staff/usecases"
	"f3manager/internal/interfaces/cli/bootstrap"
)

var (
	opts     bootstrap.Options
	username string
	email    string
	fullName string
	role     string
	password string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Manage staff accounts",
	}

	opts.AddFlags(cmd)
	cmd.AddCommand(newCreateCommand())

	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a staff account",
		Long: `Create a staff account without an authenticated admin. This is how the first
admin is bootstrapped. The password is prompted for when --password is not given.`,
		Example: `  f3manager staff create --username admin --email admin@f3.local --full-name "Administrador"`,
		RunE:    runCreate,
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Login name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&fullName, "full-name", "", "Full name (required)")
	cmd.Flags().StringVar(&role, "role", "admin", "Role: admin or operator")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when empty)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("full-name")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	secret := password
	if secret == "" {
		var err error
		secret, err = promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
	}

	rt, err := bootstrap.Init(opts)
	if err != nil {
		return err
	}
	if err := rt.OpenDatabase(); err != nil {
		return err
	}
	defer rt.Close()

	container, err := rt.Container()
	if err != nil {
		return err
	}
	defer container.Shutdown()

	created, err := container.RegisterStaffUseCase().Bootstrap(cmd.Context(), staffUsecases.RegisterStaffCommand{
		Username: username,
		Email:    email,
		FullName: fullName,
		Role:     role,
		Password: secret,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "staff %q created with id %d and role %s\n", created.Username, created.ID, created.Role)
	return nil
}

// promptPassword reads the password twice without echo on a terminal, or a
// single line when stdin is piped.
func promptPassword(in io.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, "Password: ")
		first, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprint(out, "Repeat password: ")
		second, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		if string(first) != string(second) {
			return "", fmt.Errorf("passwords do not match")
		}
		return string(first), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	secret := strings.TrimRight(line, "\r\n")
	if secret == "" {
		return "", fmt.Errorf("password is required")
	}
	return secret, nil
}
