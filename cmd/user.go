package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/bookarr/goodreads"
)

var (
	username      string
	statusBook    string
	statusPage    int
	statusPercent int
	statusBody    string
)

// userCmd groups the member commands
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Member profiles, status updates and friend requests",
}

var userShowCmd = &cobra.Command{
	Use:   "show [user-id]",
	Short: "Show a member's profile by id or --username",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id string
		if len(args) == 1 {
			id = args[0]
		}
		user, err := client.UserShow(cmd.Context(), id, username)
		if err != nil {
			return err
		}
		return printJSON(user)
	},
}

var userStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Post a reading status update",
	Long: `Post a status update for the authorized user. A body is required unless
--page or --percent is given.

  bookarr user status --book 50 --page 120 --body "Getting good"`,
	RunE: runUserStatus,
}

var friendRequestsCmd = &cobra.Command{
	Use:   "friend-requests",
	Short: "List your pending friend requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := userSession()
		if err != nil {
			return err
		}
		requests, err := client.FriendRequests(cmd.Context(), session, page)
		if err != nil {
			return err
		}
		return printJSON(requests)
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userShowCmd, userStatusCmd, friendRequestsCmd)

	userShowCmd.Flags().StringVar(&username, "username", "", "look the member up by username")

	userStatusCmd.Flags().StringVar(&statusBook, "book", "", "book id the update is about")
	userStatusCmd.Flags().IntVar(&statusPage, "page", 0, "page reached")
	userStatusCmd.Flags().IntVar(&statusPercent, "percent", 0, "percent of the book read")
	userStatusCmd.Flags().StringVar(&statusBody, "body", "", "status text")

	friendRequestsCmd.Flags().IntVar(&page, "page", 0, "result page")
}

func runUserStatus(cmd *cobra.Command, args []string) error {
	session, err := userSession()
	if err != nil {
		return err
	}

	status, err := client.CreateUserStatus(cmd.Context(), session, goodreads.UserStatus{
		BookID:  statusBook,
		Page:    statusPage,
		Percent: statusPercent,
		Body:    statusBody,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(status)
	}
	fmt.Printf("✓ Status update %s posted\n", status.Field("id"))
	return nil
}
