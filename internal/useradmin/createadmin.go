package useradmin

import (
	"bufio"
	"database/sql"
	"fmt"
	"net/mail"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dkolesnikov/tasklist/internal/server/models"
	"github.com/dkolesnikov/tasklist/internal/server/repositories/repomanager"
	"github.com/dkolesnikov/tasklist/internal/server/security"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	RunE:  runCreateAdmin,
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("Enter username")
	username, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username must not be blank")
	}

	fmt.Println("Enter email")
	email, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}

	fmt.Println("Enter password")
	password, err := readPassword(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	hasher := security.NewPasswordHasher(security.DefaultBcryptCost)
	hash, err := hasher.Hash(string(password))
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	user := models.NewUser(username, email)
	user.PasswordHash = hash
	user.SetRoles([]string{models.RoleUser, models.RoleAdmin})

	rm := repomanager.NewPostgresRepositoryManager()
	created, err := rm.Users(db).Create(cmd.Context(), user)
	if err != nil {
		return err
	}

	fmt.Printf("created admin %q (id %d)\n", created.Username, created.ID)
	return nil
}
