package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/asanasync/internal/google"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to Google Tasks",
		Long: `Run the Google OAuth flow and cache the resulting token.

Visit the printed URL in a browser, grant access, then paste the
authorization code back here. The token is stored in the user cache
directory and reused by every subsequent sync.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if google.HasToken() {
				fmt.Println("A Google token is already cached; re-authorizing replaces it.")
			}

			url, err := google.GetAuthURL()
			if err != nil {
				return fmt.Errorf("failed to build auth URL: %w", err)
			}

			fmt.Printf("Visit this URL to authorize access to Google Tasks:\n\n%s\n\n", url)
			fmt.Print("Enter the authorization code: ")

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("no authorization code entered")
			}

			if err := google.SaveToken(cmd.Context(), code); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Println("Token saved. You can now run 'asanasync sync'.")
			return nil
		},
	}

	return cmd
}
