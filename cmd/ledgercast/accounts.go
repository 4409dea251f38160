package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgercast/ledgercast/internal/cli"
)

func accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List the chart of accounts of the book",
		Long: `Print every account of the book with its full colon-separated path, its
type, and its guid. The guids are what the checkings-parent and
liabilities-parent settings expect.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			book, cfg, err := openBook()
			if err != nil {
				return err
			}
			defer func() { _ = book.Close() }()

			accounts, err := book.Accounts(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}

			fmt.Println(cli.TitleStyle.Render(cli.ChartIcon + " Chart of accounts"))
			fmt.Println(cli.SubtitleStyle.Render(fmt.Sprintf("%d accounts in %s", len(accounts), cfg.BookPath)))
			cli.RenderAccounts(os.Stdout, accounts)
			return nil
		},
	}
}
