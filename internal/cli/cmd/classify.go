package cmd

import (
	"encoding/json"
	"fmt"

	domainurl "github.com/bnema/gamedesk/internal/domain/url"
	"github.com/spf13/cobra"
)

var (
	classifyDomain string
	classifyJSON   bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify <url>...",
	Short: "Show how URLs map onto in-app resources",
	Long: `Classify storefront URLs the way in-app navigation does.

Examples:
  gamedesk classify https://itch.io/c/123/jams
  gamedesk classify --json https://someone.itch.io/game/download/abc`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().StringVar(&classifyDomain, "domain", domainurl.DefaultPrimaryDomain, "primary storefront domain")
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "print results as JSON lines")
}

type classifyResult struct {
	Input    string `json:"input"`
	URL      string `json:"url,omitempty"`
	Resource string `json:"resource,omitempty"`
	Match    bool   `json:"match"`
	Error    string `json:"error,omitempty"`
}

func classify(c *domainurl.Classifier, input string) classifyResult {
	res := classifyResult{Input: input}
	wk, err := c.Classify(input)
	switch {
	case err != nil:
		res.Error = err.Error()
	case wk != nil:
		res.Match = true
		res.URL = wk.URL
		res.Resource = wk.Resource
	}
	return res
}

func runClassify(cmd *cobra.Command, args []string) error {
	c := domainurl.NewClassifier(classifyDomain)
	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)

	for _, arg := range args {
		res := classify(c, arg)
		if classifyJSON {
			if err := enc.Encode(res); err != nil {
				return err
			}
			continue
		}

		switch {
		case res.Error != "":
			fmt.Fprintf(out, "%s\n  error: %s\n", res.Input, res.Error)
		case !res.Match:
			fmt.Fprintf(out, "%s\n  no match\n", res.Input)
		case res.Resource == "":
			fmt.Fprintf(out, "%s\n  url: %s\n", res.Input, res.URL)
		default:
			fmt.Fprintf(out, "%s\n  url: %s\n  resource: %s\n", res.Input, res.URL, res.Resource)
		}
	}
	return nil
}
