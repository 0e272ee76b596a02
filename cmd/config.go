package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/strokestat-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set strokestat configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "data_path: %s\n", cfg.DataPath)
		fmt.Fprintf(out, "output_dir: %s\n", cfg.OutputDir)
		fmt.Fprintf(out, "export_format: %s\n", cfg.ExportFormat)
		fmt.Fprintf(out, "export_enabled: %t\n", cfg.ExportEnabled)
		fmt.Fprintf(out, "render_format: %s\n", cfg.RenderFormat)
		fmt.Fprintf(out, "diagnostics: %t\n", cfg.Diagnostics)
		fmt.Fprintf(out, "default_feature: %s\n", cfg.DefaultFeature)
		fmt.Fprintf(out, "parallelism: %d\n", cfg.Parallelism)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		// start from the file and env only, so one-off flags are not persisted
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		switch key {
		case "data_path":
			c.DataPath = val
		case "output_dir":
			c.OutputDir = val
		case "export_format":
			c.ExportFormat = strings.ToLower(val)
		case "export_enabled", "diagnostics":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for %s: %v", key, val)
			}
			if key == "diagnostics" {
				c.Diagnostics = b
			} else {
				c.ExportEnabled = b
			}
		case "render_format":
			c.RenderFormat = strings.ToLower(val)
		case "default_feature":
			c.DefaultFeature = val
		case "parallelism":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for parallelism: %w", err)
			}
			c.Parallelism = i
		default:
			return fmt.Errorf("unknown key: %s (valid: %s)", key, strings.Join(cfgpkg.Keys, ", "))
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		cfg = c
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
