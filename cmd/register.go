package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a web account from the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, mgr, err := setup()
		if err != nil {
			return err
		}

		sc := bufio.NewScanner(os.Stdin)
		fmt.Print("Username: ")
		if !sc.Scan() {
			return fmt.Errorf("no input")
		}
		username := strings.TrimSpace(sc.Text())

		password, err := readPassword(fmt.Sprintf("Password for %s: ", username))
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		confirm, err := readPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		session, err := mgr.Users().Register(username, password, confirm)
		if err != nil {
			return err
		}
		fmt.Printf("Registered '%s' with an empty library.\n", session.Username)
		return nil
	},
}

// readPassword reads a password with terminal echo disabled.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(raw)), nil
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
