package cli

import (
	"fmt"
	"strings"

	"github.com/joakimwinum/weatherforecast/gazetteer"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newScopesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scopes",
		Short: "List search scopes and the columns they search",
		Long:  "Display every search scope with its dataset file and the columns searched for each language",
		RunE:  runScopes,
	}
}

func runScopes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Search scopes:")

	for _, dataset := range gazetteer.Datasets() {
		file, err := gazetteer.FileName(dataset)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %-8s %s\n", dataset, file)

		for _, language := range gazetteer.Languages() {
			keys, err := gazetteer.SelectKeys(dataset, language)
			if err != nil {
				return err
			}
			searched := lo.Map(keys[:len(keys)-1], func(k gazetteer.Key, _ int) string {
				return fmt.Sprintf("%s (%s)", k.Name, k.Column)
			})
			fmt.Fprintf(out, "    %-9s %s\n", language, strings.Join(searched, ", "))
		}
	}
	return nil
}
