package cmd

import (
	"fmt"

	"github.com/kete-vault/kete/internal/configs"
	"github.com/kete-vault/kete/internal/ui"

	"github.com/spf13/cobra"
)

var initForce bool

// readNewPassword is a variable so tests can supply a password without a
// terminal.
var readNewPassword = promptNewPassword

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up the master password and encryption key",
	Long: `Creates the master config for this machine: your master password and a
freshly generated 32-byte encryption key.

The config is written with owner-only permissions to your user config
directory. Re-running init on an existing vault requires --force and
makes previously stored secrets unreadable, because a new key is
generated.

Examples:
  # First-time setup
  kete init

  # Throw away the old key and start over
  kete init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := RunInit(initForce)
		return err
	},
}

// RunInit runs the setup wizard and returns whether setup was performed.
// Exported so the session can auto-run it when no config exists yet.
func RunInit(force bool) (bool, error) {
	exists, err := configs.MasterConfigExists()
	if err != nil {
		return false, Logger.ErrorfAndReturn("failed to check for existing config: %v", err)
	}

	if exists && !force {
		fmt.Println(ui.Warning.Sprint("!") + " A master config already exists at " + configs.KeteSettings.ConfigPath)
		fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("kete init --force") + " to replace it")
		fmt.Println(ui.Muted.Sprint("replacing the config generates a new key; existing secrets become unreadable"))
		return false, nil
	}

	fmt.Println(ui.Info.Sprint("Welcome to Kete!") + " Let's set up your vault.")
	fmt.Println()

	password, err := readNewPassword()
	if err != nil {
		return false, Logger.ErrorfAndReturn("failed to read master password: %v", err)
	}

	s, cleanup := startSpinner("Creating vault config...", verbose)
	defer cleanup()

	config, err := configs.NewMasterConfig(password)
	if err != nil {
		return false, Logger.ErrorfAndReturn("failed to create master config: %v", err)
	}

	if err := configs.SaveMasterConfig(config); err != nil {
		return false, Logger.ErrorfAndReturn("failed to save master config: %v", err)
	}

	s.FinalMSG = ui.Success.Sprint("✓") + " Vault config created at " + configs.KeteSettings.ConfigPath + "\n" +
		ui.Warning.Sprint("!") + " The master password is stored in plaintext in this file, protected only by its 0600 permissions"

	return true, nil
}
