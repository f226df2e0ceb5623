package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rules that lint runs",
	Long: `List every rule in run order. Use --rules to list a custom catalog and
--deep to include the LLM review rule when an API key is configured.`,
	Args:         cobra.NoArgs,
	RunE:         runRules,
	SilenceUsage: true,
}

func init() {
	rulesCmd.Flags().StringVar(&rulesFile, "rules", "", "Rule catalog file replacing the builtin rules")
	rulesCmd.Flags().BoolVar(&deep, "deep", false, "Include the LLM review rule")
	RootCmd.AddCommand(rulesCmd)
}

type ruleInfo struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	RequiresAI  bool   `json:"requiresAI,omitempty"`
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, err := lintConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	u := GetUI()
	registry, _, err := buildRegistry(cfg, deep, newLogger(u.ErrWriter))
	if err != nil {
		return err
	}

	var infos []ruleInfo
	for _, rule := range registry.Rules(true) {
		infos = append(infos, ruleInfo{
			Name:        rule.Name(),
			Category:    rule.Config().Category,
			Description: rule.Description(),
			RequiresAI:  rule.Config().RequiresAI,
		})
	}

	if u.IsJSON() {
		enc := json.NewEncoder(u.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	tw := tabwriter.NewWriter(u.Writer, 0, 4, 2, ' ', 0)
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", u.Styles.Header.Render(info.Name), u.Styles.Muted.Render(info.Category), info.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(u.Writer, "\n%d rules\n", len(infos))
	return nil
}
