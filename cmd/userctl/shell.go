package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"usermgmt/internal/domain"
	"usermgmt/internal/ui"

	"github.com/spf13/cobra"
)

const cancelInput = ":back"

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Browse and edit users interactively",
	Long:  "Starts an interactive session with a paginated user list and create/edit forms. Type 'help' in the list view for commands.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := ui.New(client, ui.WithPageSize(flagPageSize), ui.WithLogger(log))
		return newShell(ctrl, os.Stdin, os.Stdout).run(cmd.Context())
	},
}

type shell struct {
	ctrl *ui.Controller
	in   *bufio.Reader
	out  io.Writer
}

func newShell(ctrl *ui.Controller, in io.Reader, out io.Writer) *shell {
	return &shell{ctrl: ctrl, in: bufio.NewReader(in), out: out}
}

// run drives the controller until the user quits or input ends.
func (s *shell) run(ctx context.Context) error {
	_ = s.ctrl.Load(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		var (
			quit bool
			err  error
		)
		switch s.ctrl.State().CurrentView {
		case ui.ViewList:
			quit, err = s.listStep(ctx)
		default:
			quit, err = s.formStep(ctx)
		}

		if errors.Is(err, io.EOF) || quit {
			fmt.Fprintln(s.out, "Bye.")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *shell) listStep(ctx context.Context) (bool, error) {
	s.renderList()

	line, err := s.prompt("> ")
	if err != nil {
		return false, err
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	cmd, arg := strings.ToLower(fields[0]), ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch cmd {
	case "q", "quit", "exit":
		return true, nil
	case "h", "help", "?":
		s.renderHelp()
	case "n", "next":
		_ = s.ctrl.ChangePage(ctx, s.ctrl.State().CurrentPage+1)
	case "p", "prev":
		_ = s.ctrl.ChangePage(ctx, s.ctrl.State().CurrentPage-1)
	case "page":
		n, convErr := strconv.Atoi(arg)
		if convErr != nil {
			fmt.Fprintln(s.out, "usage: page <number>")
			return false, nil
		}
		_ = s.ctrl.ChangePage(ctx, n)
	case "r", "retry", "refresh":
		_ = s.ctrl.Retry(ctx)
	case "new", "add":
		s.ctrl.CreateNew()
	case "e", "edit":
		user, ok := s.pickUser(arg)
		if !ok {
			return false, nil
		}
		s.ctrl.Edit(user)
	case "d", "delete":
		user, ok := s.pickUser(arg)
		if !ok {
			return false, nil
		}
		err := s.ctrl.Delete(ctx, user, func(prompt string) bool {
			return promptConfirm(s.in, s.out, prompt)
		})
		if errors.Is(err, ui.ErrDeleteInProgress) {
			fmt.Fprintln(s.out, "That user is already being deleted.")
		}
	default:
		fmt.Fprintf(s.out, "unknown command %q, type 'help'\n", cmd)
	}

	return false, nil
}

func (s *shell) formStep(ctx context.Context) (bool, error) {
	s.renderFormHeader()

	current := s.ctrl.Form().Values

	name, err := s.promptField("Name", current.Name)
	if err != nil || name == cancelInput {
		return s.cancelForm(err)
	}

	email, err := s.promptField("Email", current.Email)
	if err != nil || email == cancelInput {
		return s.cancelForm(err)
	}

	fieldErrs, err := s.ctrl.Submit(ctx, ui.FormInput{Name: name, Email: email})
	switch {
	case fieldErrs != nil:
		formatFieldErrorsText(s.out, fieldErrs)
	case errors.Is(err, ui.ErrSubmitInProgress):
		fmt.Fprintln(s.out, "Saving...")
	}

	return false, nil
}

func (s *shell) cancelForm(err error) (bool, error) {
	if err != nil {
		return false, err
	}
	s.ctrl.Back()
	return false, nil
}

// pickUser resolves a 1-based row number on the current page or a user id.
func (s *shell) pickUser(arg string) (domain.User, bool) {
	users := s.ctrl.Users()

	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(users) {
		return users[n-1], true
	}
	for _, u := range users {
		if arg != "" && u.ID == arg {
			return u, true
		}
	}

	fmt.Fprintf(s.out, "no user %q on this page\n", arg)
	return domain.User{}, false
}

func (s *shell) renderList() {
	state := s.ctrl.State()

	fmt.Fprintf(s.out, "\nUsers (%d total)\n", s.ctrl.Total())
	if state.ErrorMessage != "" {
		fmt.Fprintf(s.out, "! %s\n", state.ErrorMessage)
	}

	if msg := s.ctrl.ListError(); msg != "" {
		fmt.Fprintf(s.out, "Error loading users: %s (type 'retry' to try again)\n", msg)
		return
	}

	users := s.ctrl.Users()
	if len(users) == 0 {
		fmt.Fprintln(s.out, "No users found. Type 'new' to create the first user.")
		return
	}

	formatUsersTable(s.out, users, s.ctrl.IsDeleting)

	if s.ctrl.ShowPagination() {
		nav := []string{}
		if s.ctrl.HasPrev() {
			nav = append(nav, "[prev]")
		}
		if s.ctrl.HasNext() {
			nav = append(nav, "[next]")
		}
		fmt.Fprintf(s.out, "Page %d of %d  %s\n", state.CurrentPage, s.ctrl.TotalPages(), strings.Join(nav, " "))
	}
}

func (s *shell) renderFormHeader() {
	state := s.ctrl.State()

	if state.CurrentView == ui.ViewEdit && state.SelectedUser != nil {
		fmt.Fprintf(s.out, "\nEdit user %s\n", state.SelectedUser.ID)
	} else {
		fmt.Fprintln(s.out, "\nCreate user")
	}
	if state.ErrorMessage != "" {
		fmt.Fprintf(s.out, "! %s\n", state.ErrorMessage)
	}
	fmt.Fprintf(s.out, "Press enter to keep a value, %s to return to the list.\n", cancelInput)
}

func (s *shell) renderHelp() {
	fmt.Fprint(s.out, `Commands:
  new              create a user
  edit <row|id>    edit a user
  delete <row|id>  delete a user (asks for confirmation)
  next, prev       change page
  page <n>         go to page n
  retry            reload the current page
  quit             leave the shell
`)
}

func (s *shell) promptField(label, current string) (string, error) {
	prompt := label + ": "
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, current)
	}

	line, err := s.prompt(prompt)
	if err != nil {
		return "", err
	}
	if line == "" {
		return current, nil
	}
	return line, nil
}

func (s *shell) prompt(p string) (string, error) {
	fmt.Fprint(s.out, p)

	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
