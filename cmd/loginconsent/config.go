package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dropDatabas3/loginconsent/internal/config"
)

func newConfigCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Config helpers",
	}

	var show bool
	check := &cobra.Command{
		Use:   "check",
		Short: "Load and validate the effective config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cfg.GrantsAdminRole() {
				fmt.Fprintln(out, "warning: consent.id_token_roles grants \"admin\" to every consented user")
			}
			if show {
				cfg.Rate.Redis.Password = redact(cfg.Rate.Redis.Password)
				b, err := yaml.Marshal(cfg)
				if err != nil {
					return err
				}
				_, _ = out.Write(b)
			}
			fmt.Fprintln(out, "config OK")
			return nil
		},
	}
	check.Flags().BoolVar(&show, "show", false, "print the effective config (secrets redacted)")

	cmd.AddCommand(check)
	return cmd
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}
