package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/benedict-erwin/manufacture-online/config"
	"github.com/benedict-erwin/manufacture-online/pkg/auth"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var tokenClaims []string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue or inspect access tokens",
}

var (
	tokenIssueCmd = &cobra.Command{
		Use:   "issue",
		Short: "Issue an access token",
		Long:  `Issue an access token from --claim key=value pairs, e.g. --claim email=user@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			claim, err := parseClaims(tokenClaims)
			if err != nil {
				return err
			}
			tokens, err := newTokenService(config.Get())
			if err != nil {
				return err
			}
			signed, err := tokens.Issue(claim)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}

	tokenInspectCmd = &cobra.Command{
		Use:   "inspect [token]",
		Short: "Verify a token and print its claims",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := newTokenService(config.Get())
			if err != nil {
				return err
			}
			claim, err := tokens.Verify(args[0])
			if err != nil {
				return fmt.Errorf("token rejected (%s): %w", auth.Cause(err), err)
			}

			keys := make([]string, 0, len(claim))
			for k := range claim {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			table := tablewriter.NewWriter(os.Stdout)
			table.Header([]string{"Claim", "Value"})
			for _, k := range keys {
				table.Append([]string{k, fmt.Sprint(claim[k])})
			}
			table.Render()
			return nil
		},
	}
)

func init() {
	tokenIssueCmd.Flags().StringArrayVar(&tokenClaims, "claim", nil, "claim as key=value (repeatable)")
	tokenCmd.AddCommand(tokenIssueCmd)
	tokenCmd.AddCommand(tokenInspectCmd)
}

// parseClaims turns key=value pairs into a claim map
func parseClaims(pairs []string) (map[string]any, error) {
	claim := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid claim %q, expected key=value", pair)
		}
		claim[key] = value
	}
	return claim, nil
}
