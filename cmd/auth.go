package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	callbackURL string
	mobileAuth  bool
)

// authCmd groups the OAuth commands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize bookarr against your Goodreads account",
}

// loginCmd runs the three-legged OAuth handshake
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Obtain an access token for your account",
	Long: `Request a token, open the printed URL in a browser and authorize the
application, then press Enter. The resulting access token pair goes into
goodreads.access_token and goodreads.access_secret (or the BOOKARR_GOODREADS_ACCESS_TOKEN
and BOOKARR_GOODREADS_ACCESS_SECRET environment variables).`,
	RunE: runLogin,
}

// whoamiCmd shows the user behind the configured session
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the user the configured access token belongs to",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd, whoamiCmd)

	loginCmd.Flags().StringVar(&callbackURL, "callback", "", "OAuth callback URL")
	loginCmd.Flags().BoolVar(&mobileAuth, "mobile", false, "use the mobile authorization page")
}

func runLogin(cmd *cobra.Command, args []string) error {
	token, secret, err := client.RequestToken()
	if err != nil {
		return err
	}

	authURL, err := client.AuthorizeURL(token, callbackURL, mobileAuth)
	if err != nil {
		return err
	}

	fmt.Printf("Open this URL in your browser and authorize bookarr:\n\n  %s\n\n", authURL)
	fmt.Printf("Press Enter once you have authorized the application [Ctrl+D to cancel]: ")

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		fmt.Println("\nAuthorization cancelled.")
		return nil
	}

	session, err := client.GetSession(token, secret)
	if err != nil {
		return err
	}

	user, err := client.AuthUser(cmd.Context(), session)
	if err != nil {
		logger.Warn().Err(err).Msg("Access token obtained but the user lookup failed")
	} else {
		fmt.Printf("\n✓ Authorized as %s (id %s)\n", user.Field("name"), user.Field("@id"))
	}

	fmt.Println("\nAdd these to your config:")
	fmt.Println("goodreads:")
	fmt.Printf("  access_token: %s\n", session.AccessToken)
	fmt.Printf("  access_secret: %s\n", session.AccessSecret)

	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	session, err := userSession()
	if err != nil {
		return err
	}

	user, err := client.AuthUser(cmd.Context(), session)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(user)
	}

	fmt.Printf("%s (id %s)\n", user.Field("name"), user.Field("@id"))
	if link := user.Field("link"); link != "" {
		fmt.Println(link)
	}
	return nil
}
