package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/ssargent/bitspect/pkg/config"
)

const serviceName = "bitspect.service"

var unitPath = "/etc/systemd/system/" + serviceName

// serviceCmd represents the service command
var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage the decode API as a systemd service",
	Long: `Manage the bitspect decode API as a systemd service. The unit runs
"bitspect serve" with the given configuration file and restarts on failure.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip the root command's config loading; install may create the file
		return nil
	},
}

// installServiceCmd represents the service install command
var installServiceCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the decode API as a systemd service",
	Long: `Install the decode API as a systemd service.

This will:
- Write a default configuration if none exists
- Generate the systemd unit file
- Enable and optionally start the service

Examples:
  bitspect service install
  bitspect service install --config /etc/bitspect/config.yaml --user bitspect`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		user, _ := cmd.Flags().GetString("user")
		binary, _ := cmd.Flags().GetString("binary")
		startNow, _ := cmd.Flags().GetBool("start")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		if os.Geteuid() != 0 {
			return fmt.Errorf("service install requires root privileges, run with: sudo bitspect service install")
		}

		if !config.ConfigExists(configPath) {
			if err := config.SaveConfig(config.DefaultConfig(), configPath); err != nil {
				return err
			}
			cmd.Printf("Created configuration at %s\n", configPath)
		} else if _, err := config.LoadConfig(configPath); err != nil {
			return err
		}

		if err := writeSystemdUnit(unitPath, configPath, user, binary); err != nil {
			return fmt.Errorf("failed to write systemd unit: %w", err)
		}
		if err := runSystemctlCommand("daemon-reload"); err != nil {
			return fmt.Errorf("failed to reload systemd: %w", err)
		}
		if err := runSystemctlCommand("enable", serviceName); err != nil {
			return fmt.Errorf("failed to enable service: %w", err)
		}
		if startNow {
			if err := runSystemctlCommand("start", serviceName); err != nil {
				return fmt.Errorf("failed to start service: %w", err)
			}
		}

		cmd.Printf("Service %s installed (config %s)\n", serviceName, configPath)
		cmd.Printf("To view logs: sudo journalctl -u %s -f\n", serviceName)
		return nil
	},
}

// uninstallServiceCmd represents the service uninstall command
var uninstallServiceCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the decode API systemd service",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Geteuid() != 0 {
			return fmt.Errorf("service uninstall requires root privileges, run with: sudo bitspect service uninstall")
		}

		_ = runSystemctlCommand("stop", serviceName)
		if err := runSystemctlCommand("disable", serviceName); err != nil {
			cmd.Printf("Warning: could not disable service: %v\n", err)
		}
		if err := os.Remove(unitPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove unit file: %w", err)
		}
		if err := runSystemctlCommand("daemon-reload"); err != nil {
			return fmt.Errorf("failed to reload systemd: %w", err)
		}

		cmd.Printf("Service %s uninstalled; configuration was kept\n", serviceName)
		return nil
	},
}

func systemctlCmd(action string) *cobra.Command {
	return &cobra.Command{
		Use:   action,
		Short: fmt.Sprintf("Run systemctl %s on the decode API service", action),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSystemctlCommand(action, serviceName)
		},
	}
}

func init() {
	rootCmd.AddCommand(serviceCmd)

	serviceCmd.AddCommand(installServiceCmd)
	serviceCmd.AddCommand(uninstallServiceCmd)
	for _, action := range []string{"start", "stop", "restart", "status"} {
		serviceCmd.AddCommand(systemctlCmd(action))
	}

	installServiceCmd.Flags().String("user", "bitspect", "User to run the service as")
	installServiceCmd.Flags().String("binary", "/usr/local/bin/bitspect", "Path of the installed bitspect binary")
	installServiceCmd.Flags().Bool("start", true, "Start the service after installation")
}

// systemdUnit renders the unit file for the decode API
func systemdUnit(configPath, user, binary string) string {
	return fmt.Sprintf(`[Unit]
Description=bitspect decode API
After=network-online.target
Wants=network-online.target

[Service]
User=%s
Group=%s
ExecStart=%s serve --config %s
Restart=on-failure
NoNewPrivileges=true
ProtectSystem=strict
UMask=0077

[Install]
WantedBy=multi-user.target
`, user, user, binary, configPath)
}

func writeSystemdUnit(path, configPath, user, binary string) error {
	return os.WriteFile(path, []byte(systemdUnit(configPath, user, binary)), 0600)
}

// runSystemctlCommand runs a systemctl command
func runSystemctlCommand(args ...string) error {
	cmd := exec.Command("systemctl", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
