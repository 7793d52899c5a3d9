package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"usermgmt/internal/domain"
	"usermgmt/internal/errfmt"
	"usermgmt/internal/validation"
)

var validFormats = []string{"json", "text"}

func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}

// cliError is the JSON envelope for a failed command.
type cliError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func outputResult(v any) error {
	if flagFormat == "text" {
		return outputResultText(os.Stdout, v)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func outputResultText(w io.Writer, v any) error {
	switch v := v.(type) {
	case *domain.UserListResponse:
		formatUserListText(w, v)
	case *domain.User:
		formatUserText(w, *v)
	case map[string]string:
		for k, val := range v {
			fmt.Fprintf(w, "%s: %s\n", k, val)
		}
	default:
		return fmt.Errorf("no text format for %T", v)
	}
	return nil
}

// outputError writes an error in the selected format and returns it so RunE
// can propagate it to Cobra.
func outputError(err error) error {
	errorHandled = true

	msg := errfmt.Format(err)
	fieldErrs, isFieldErrs := err.(validation.FieldErrors)

	if flagFormat == "text" {
		if isFieldErrs {
			formatFieldErrorsText(os.Stderr, fieldErrs)
			return err
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
		return err
	}

	out := cliError{Error: msg}
	if isFieldErrs {
		out.Fields = fieldErrs
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
	return err
}

func formatUserText(w io.Writer, u domain.User) {
	fmt.Fprintf(w, "ID:    %s\n", u.ID)
	fmt.Fprintf(w, "Name:  %s\n", u.Name)
	fmt.Fprintf(w, "Email: %s\n", u.Email)
}

// formatUsersTable prints users as aligned columns with a 1-based row number.
func formatUsersTable(w io.Writer, users []domain.User, deleting func(id string) bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tNAME\tEMAIL\t")
	for i, u := range users {
		status := ""
		if deleting != nil && deleting(u.ID) {
			status = "deleting..."
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, u.ID, u.Name, u.Email, status)
	}
	tw.Flush()
}

func formatUserListText(w io.Writer, res *domain.UserListResponse) {
	if len(res.Users) == 0 {
		fmt.Fprintln(w, "No users found.")
	} else {
		formatUsersTable(w, res.Users, nil)
	}

	pages := domain.TotalPages(res.Total, res.Size)
	if pages > 1 {
		fmt.Fprintf(w, "\nPage %d of %d (%d users)\n", res.Page, pages, res.Total)
	}
}

func formatFieldErrorsText(w io.Writer, errs validation.FieldErrors) {
	for _, field := range []string{validation.FieldName, validation.FieldEmail} {
		if msg, ok := errs[field]; ok {
			fmt.Fprintf(w, "%s: %s\n", field, msg)
		}
	}
}

// promptConfirm asks a yes/no question. Anything but y or yes declines.
func promptConfirm(r *bufio.Reader, w io.Writer, prompt string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", prompt)

	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
