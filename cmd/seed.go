package cmd

import (
	"context"
	"errors"

	"github.com/go-pkgz/lgr"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "teamops.com/teamops/internal/configs"
	apperrors "teamops.com/teamops/internal/errors"
	model "teamops.com/teamops/internal/models"
	repository "teamops.com/teamops/internal/repositories"
)

var teamMembers = []model.User{
	{Username: "nishanth", FullName: "Nishanth Dhinakar", Role: model.RoleCEO, Email: "nishanth@example.com"},
	{Username: "alexandru", FullName: "Alexandru Barza", Role: model.RoleCTO, Email: "alexandru@example.com"},
	{Username: "akshanan", FullName: "Akshanan Mayuran", Role: model.RoleCFO, Email: "akshanan@example.com"},
	{Username: "caleb", FullName: "Caleb Grobler", Role: model.RoleCOO, Email: "caleb@example.com"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the team members",
	Long:  "Creates the default team member accounts, skipping any that already exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			lgr.Printf("[INFO] .env file not found, using environment variables")
		}

		cfg := config.Load()
		db := config.New(cfg.DatabaseDSN)
		userRepo := repository.NewUserRepository(db)

		ctx := context.Background()
		for i := range teamMembers {
			member := teamMembers[i]
			_, err := userRepo.FindByUsername(ctx, member.Username)
			if err == nil {
				lgr.Printf("[INFO] user %s already exists, skipping", member.Username)
				continue
			}
			if !errors.Is(err, apperrors.ErrUserNotFound) {
				return err
			}
			if err := userRepo.Create(ctx, &member); err != nil {
				return err
			}
			lgr.Printf("[INFO] created user %s (%s)", member.Username, member.Role)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
