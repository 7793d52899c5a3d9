package main

import (
	"bufio"
	"fmt"
	"os"

	"usermgmt/internal/domain"
	"usermgmt/internal/validation"

	"github.com/spf13/cobra"
)

var (
	flagPage  int
	flagName  string
	flagEmail string
	flagYes   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of users",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := client.ListUsers(cmd.Context(), domain.PaginationParams{Page: flagPage, Size: flagPageSize})
		if err != nil {
			return outputError(err)
		}
		return outputResult(res)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := client.GetUser(cmd.Context(), args[0])
		if err != nil {
			return outputError(err)
		}
		return outputResult(user)
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, fieldErrs := validation.ValidateCreate(domain.UserCreate{Name: flagName, Email: flagEmail})
		if fieldErrs != nil {
			return outputError(fieldErrs)
		}

		user, err := client.CreateUser(cmd.Context(), data)
		if err != nil {
			return outputError(err)
		}
		return outputResult(user)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user's name and/or email",
	Long:  "Only the flags that are given are sent; omitted fields keep their stored value.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in domain.UserUpdate
		if cmd.Flags().Changed("name") {
			in.Name = &flagName
		}
		if cmd.Flags().Changed("email") {
			in.Email = &flagEmail
		}

		data, fieldErrs := validation.ValidateUpdate(in)
		if fieldErrs != nil {
			return outputError(fieldErrs)
		}

		user, err := client.UpdateUser(cmd.Context(), args[0], data)
		if err != nil {
			return outputError(err)
		}
		return outputResult(user)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !flagYes && !promptConfirm(bufio.NewReader(os.Stdin), os.Stderr, "Are you sure you want to delete this user?") {
			fmt.Fprintln(os.Stderr, "Aborted.")
			return nil
		}

		if err := client.DeleteUser(cmd.Context(), args[0]); err != nil {
			return outputError(err)
		}
		return outputResult(map[string]string{"deleted": args[0]})
	},
}

func init() {
	listCmd.Flags().IntVar(&flagPage, "page", domain.DefaultPage, "page number, starting at 1")

	createCmd.Flags().StringVar(&flagName, "name", "", "full name")
	createCmd.Flags().StringVar(&flagEmail, "email", "", "email address")

	updateCmd.Flags().StringVar(&flagName, "name", "", "new full name")
	updateCmd.Flags().StringVar(&flagEmail, "email", "", "new email address")

	deleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "skip the confirmation prompt")
}
