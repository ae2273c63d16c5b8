package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/muesli/reflow/truncate"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidqueue/vidqueue/catalog"
	"github.com/vidqueue/vidqueue/color"
	"github.com/vidqueue/vidqueue/filesystem"
	"github.com/vidqueue/vidqueue/icon"
	"github.com/vidqueue/vidqueue/key"
	"github.com/vidqueue/vidqueue/style"
	"github.com/vidqueue/vidqueue/util"
	"github.com/vidqueue/vidqueue/where"
)

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.SetOut(os.Stdout)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and edit the catalog of presentations",
}

func loadCatalog() (catalog.Catalog, error) {
	return catalog.LoadOrEmpty(filesystem.API(), where.Catalog(), viper.GetBool(key.CatalogDecodeEscapes))
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogListCmd.Flags().StringP("filter", "f", "", "Only show entries whose name fuzzily matches")
	catalogListCmd.Flags().BoolP("json", "j", false, "Print entries as JSON")
}

var catalogListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List catalog entries with their positions",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := loadCatalog()
		handleErr(err)

		type positioned struct {
			Position int `json:"position"`
			catalog.Entry
		}

		filter := lo.Must(cmd.Flags().GetString("filter"))
		var entries []positioned
		for i, e := range c.Entries() {
			if filter != "" && !fuzzy.MatchNormalizedFold(filter, e.Name) {
				continue
			}
			entries = append(entries, positioned{Position: i + 1, Entry: e})
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(entries))
			return
		}

		if len(entries) == 0 {
			cmd.Println("no entries")
			return
		}

		width, _, err := util.TerminalSize()
		if err != nil || width <= 0 {
			width = 100
		}

		for _, e := range entries {
			prefix := fmt.Sprintf("%3d. ", e.Position)
			cmd.Printf("%s%s\n", style.Faint(prefix), style.Bold(e.Name))
			url := truncate.StringWithTail(e.URL, uint(util.Max(width-len(prefix), 10)), "…")
			cmd.Printf("%s%s\n", strings.Repeat(" ", len(prefix)), style.Faint(url))
		}
	},
}

func init() {
	catalogCmd.AddCommand(catalogAddCmd)
}

var catalogAddCmd = &cobra.Command{
	Use:   "add [name] [manifest-url]",
	Short: "Append an entry to the catalog",
	Long:  "Append an entry to the catalog. Missing arguments are prompted for.",
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var entry catalog.Entry
		if len(args) > 0 {
			entry.Name = args[0]
		}
		if len(args) > 1 {
			entry.URL = args[1]
		}

		var questions []*survey.Question
		if entry.Name == "" {
			questions = append(questions, &survey.Question{
				Name:     "name",
				Prompt:   &survey.Input{Message: "Name:"},
				Validate: survey.Required,
			})
		}
		if entry.URL == "" {
			questions = append(questions, &survey.Question{
				Name:     "url",
				Prompt:   &survey.Input{Message: "Manifest URL:", Help: "The URL of the master.json manifest"},
				Validate: survey.Required,
			})
		}
		if len(questions) > 0 {
			handleErr(survey.Ask(questions, &entry))
		}

		entry.Name = strings.TrimSpace(entry.Name)
		entry.URL = strings.TrimSpace(entry.URL)
		if entry.IsSentinel() {
			handleErr(errors.New("name and url cannot both be empty"))
		}

		c, err := loadCatalog()
		handleErr(err)

		c = c.Append(entry)
		handleErr(catalog.Save(filesystem.API(), where.Catalog(), c))

		cmd.Printf("%s added %s at position %d\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(entry.Name),
			c.Len(),
		)
	},
}

func init() {
	catalogCmd.AddCommand(catalogSchemaCmd)
}

var catalogSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the catalog file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(catalog.Schema()))
	},
}
