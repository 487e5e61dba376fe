// Operator CLI: bootstrap admin users without going through the HTTP API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"github.com/fatih/color"
	"github.com/pocketfin/pocketfin/infra"
	infrarepository "github.com/pocketfin/pocketfin/infra/repository"
	"github.com/pocketfin/pocketfin/pkg/config"
	"github.com/pocketfin/pocketfin/pkg/domain"
	adminsvc "github.com/pocketfin/pocketfin/pkg/service/admin"
	"github.com/pocketfin/pocketfin/pkg/utils"
	"golang.org/x/term"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	cfg, err := config.Load(".env")
	if err != nil {
		fail("failed to load configuration: %v", err)
	}
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		fail("failed to connect to database: %v", err)
	}
	defer infra.CloseDB(db)
	if err := infra.AutoMigrate(db); err != nil {
		fail("failed to migrate schema: %v", err)
	}

	svc := adminsvc.New(infrarepository.NewUoW(db), slog.Default())
	ctx := context.Background()

	switch os.Args[1] {
	case "create-admin":
		createAdmin(ctx, svc, domain.RoleAdmin)
	case "create-super-admin":
		createAdmin(ctx, svc, domain.RoleSuperAdmin)
	case "list-admins":
		listAdmins(ctx, svc)
	default:
		usage()
	}
}

func createAdmin(ctx context.Context, svc *adminsvc.Service, role domain.Role) {
	if len(os.Args) < 3 {
		fail("usage: cli %s <email> [nickname]", os.Args[1])
	}
	email := os.Args[2]
	if !utils.IsEmail(email) {
		fail("not a valid email address: %s", email)
	}
	nickname := ""
	if len(os.Args) > 3 {
		nickname = os.Args[3]
	}

	fmt.Print("Password (min 8 chars, letters and digits): ")
	raw, err := term.ReadPassword(syscall.Stdin)
	fmt.Println()
	if err != nil {
		fail("failed to read password: %v", err)
	}

	u, err := svc.GrantRole(ctx, email, string(raw), nickname, role)
	if err != nil {
		fail("failed to grant %s: %v", role, err)
	}
	color.Green("✔ %s granted to %s (id=%d)", role, u.Email, u.ID)
}

func listAdmins(ctx context.Context, svc *adminsvc.Service) {
	admins, err := svc.ListAdmins(ctx)
	if err != nil {
		fail("failed to list admins: %v", err)
	}
	if len(admins) == 0 {
		color.Yellow("no admins configured")
		return
	}
	for _, u := range admins {
		fmt.Printf("%-6d %-30s %s\n", u.ID, u.Email, color.CyanString(string(u.Role)))
	}
}

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  create-admin <email> [nickname]        grant the admin role")
	fmt.Println("  create-super-admin <email> [nickname]  grant the super_admin role")
	fmt.Println("  list-admins                            list elevated users")
}

func fail(format string, args ...any) {
	color.Red("✘ "+format, args...)
	os.Exit(1)
}
