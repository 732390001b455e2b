package main

import (
	"bufio"
	"fmt"
	"strings"

	"faculty_api/internal/app/service"
	"faculty_api/internal/common/security"
	"faculty_api/internal/domain/repository"
	"faculty_api/internal/platform/database"

	"github.com/urfave/cli/v2"
)

func userCmd() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Administer user accounts",
		Subcommands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create a user; the password is read from stdin",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "location"},
				},
				Action: registerUser,
			},
		},
	}
}

func registerUser(appCtx *cli.Context) error {
	password, err := readPassword(appCtx)
	if err != nil {
		return err
	}

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	db, err := database.Connect(appCtx.Context, cfg.DBConnStr())
	if err != nil {
		return err
	}
	defer db.Close()

	tokens, err := security.NewTokenManager(cfg.JWTKey(), cfg.JWTExp())
	if err != nil {
		return err
	}
	authService := service.NewAuthService(
		repository.NewPgUserRepository(db),
		repository.NewPgAuthEventRepository(db),
		security.NewPasswordHasher(cfg.BcryptCost),
		tokens,
		nil,
	)

	id, err := authService.Register(appCtx.Context, service.RegisterRequest{
		Username: appCtx.String("username"),
		Name:     appCtx.String("name"),
		Password: password,
		Location: appCtx.String("location"),
	})
	if err != nil {
		return err
	}
	logger.Info().Int64("id", id).Str("username", appCtx.String("username")).Msg("User registered")
	fmt.Fprintf(appCtx.App.Writer, "Created new user with ID %d\n", id)
	return nil
}

// readPassword takes the first line of stdin.
func readPassword(appCtx *cli.Context) (string, error) {
	line, err := bufio.NewReader(appCtx.App.Reader).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password from stdin: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	return password, nil
}
