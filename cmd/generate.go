package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Shivanand-hulikatti/ignite-quest/internal/config"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/logger"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/model"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/profilegen"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/quest"
)

var (
	genName    string
	genEmail   string
	genPassion string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one quest profile and print it as JSON",
	Long:  `Runs the registration flow once against the configured model, without a database.`,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genName, "name", "", "registrant name")
	generateCmd.Flags().StringVar(&genEmail, "email", "", "registrant email")
	generateCmd.Flags().StringVar(&genPassion, "passion", "", "what drives the registrant")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	gen, err := profilegen.NewClient(profilegen.Config{
		BaseURL: cfg.GenAI.BaseURL,
		APIKey:  cfg.GenAI.APIKey,
		Model:   cfg.GenAI.Model,
		Timeout: cfg.GenAI.Timeout,
	}, log)
	if err != nil {
		return err
	}

	ctrl := quest.NewController(gen, nil, log)
	if _, err := ctrl.Submit(cmd.Context(), model.RegistrationInput{
		Name:    genName,
		Email:   genEmail,
		Passion: genPassion,
	}); err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(ctrl.View())
}
