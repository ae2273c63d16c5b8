package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/vidqueue/vidqueue/auth"
	"github.com/vidqueue/vidqueue/color"
	"github.com/vidqueue/vidqueue/icon"
	"github.com/vidqueue/vidqueue/style"
)

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetCmd, authDeleteCmd, authStatusCmd)
	authCmd.SetOut(os.Stdout)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Cookie header sent with every request",
	Long: `Manage the Cookie header sent with every request.
The value is stored in the system keyring, never in the config file.`,
}

var authSetCmd = &cobra.Command{
	Use:   "set [cookie]",
	Short: "Store the Cookie header",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var cookie string
		if len(args) > 0 {
			cookie = args[0]
		} else {
			handleErr(survey.AskOne(&survey.Password{Message: "Cookie header:"}, &cookie, survey.WithValidator(survey.Required)))
		}

		handleErr(auth.SetCookie(cookie))
		cmd.Printf("%s cookie stored\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

var authDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the stored Cookie header",
	Aliases: []string{"remove"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := auth.DeleteCookie()
		if auth.IsNotFound(err) {
			cmd.Println("no cookie stored")
			return
		}
		handleErr(err)
		cmd.Printf("%s cookie deleted\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Tell whether a Cookie header is stored",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cookie, err := auth.GetCookie()
		if auth.IsNotFound(err) {
			cmd.Println("no cookie stored")
			return
		}
		handleErr(err)

		names := make([]string, 0)
		for _, part := range strings.Split(cookie, ";") {
			if name, _, ok := strings.Cut(strings.TrimSpace(part), "="); ok {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			handleErr(errors.New("stored cookie has no name=value pairs"))
		}
		cmd.Printf("%s cookie stored with %s\n", icon.Get(icon.Success), style.Fg(color.Purple)(strings.Join(names, ", ")))
	},
}
