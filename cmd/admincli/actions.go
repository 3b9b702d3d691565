package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"portfolio-pulse/internal/services/auth"

	"golang.org/x/term"
)

// readPassword is a seam for term.ReadPassword so tests can stub the terminal.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

var stdin = bufio.NewReader(os.Stdin)

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password twice without echo and insists they match.
func promptPassword() (string, error) {
	fmt.Print("Password: ")
	pw, err := readPassword()
	fmt.Println()
	if err != nil {
		return "", err
	}

	fmt.Print("Confirm password: ")
	confirm, err := readPassword()
	fmt.Println()
	if err != nil {
		return "", err
	}

	if string(pw) != string(confirm) {
		return "", errors.New("passwords do not match")
	}
	return string(pw), nil
}

func promptEmail(email string) (string, error) {
	if email != "" {
		return email, nil
	}
	email, err := promptLine("Email: ")
	if err != nil {
		return "", err
	}
	if email == "" {
		return "", errors.New("email is required")
	}
	return email, nil
}

func runCreate(ctx context.Context, svc *auth.Service, email string) error {
	email, err := promptEmail(email)
	if err != nil {
		return err
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	user, err := svc.CreateAdmin(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicate) {
			return fmt.Errorf("an account with email %s already exists", email)
		}
		return err
	}

	fmt.Printf("Created admin %s (id %s)\n", user.Email, user.ID.Hex())
	return nil
}

func runList(ctx context.Context, svc *auth.Service) error {
	users, err := svc.ListAdmins(ctx)
	if err != nil {
		return err
	}

	if len(users) == 0 {
		fmt.Println("No admin accounts yet. Run 'admincli create' to add one.")
		return nil
	}

	fmt.Printf("%-40s %-8s %s\n", "EMAIL", "ROLE", "CREATED")
	for _, u := range users {
		fmt.Printf("%-40s %-8s %s\n", u.Email, u.Role, u.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runPasswd(ctx context.Context, svc *auth.Service, email string) error {
	email, err := promptEmail(email)
	if err != nil {
		return err
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	if err := svc.ChangePassword(ctx, email, password); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return fmt.Errorf("no account with email %s", email)
		}
		return err
	}

	fmt.Printf("Password updated for %s\n", email)
	return nil
}

func runDelete(ctx context.Context, svc *auth.Service, email string) error {
	email, err := promptEmail(email)
	if err != nil {
		return err
	}

	answer, err := promptLine(fmt.Sprintf("Delete admin %s? Type 'yes' to confirm: ", email))
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Println("Aborted.")
		return nil
	}

	if err := svc.DeleteAdmin(ctx, email); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return fmt.Errorf("no account with email %s", email)
		}
		return err
	}

	fmt.Printf("Deleted admin %s\n", email)
	return nil
}

// runMenu loops a numbered menu until the operator quits.
func runMenu(ctx context.Context, svc *auth.Service) error {
	for {
		fmt.Println()
		fmt.Println("PortfolioPulse admin accounts")
		fmt.Println("  1) Create admin")
		fmt.Println("  2) List admins")
		fmt.Println("  3) Change password")
		fmt.Println("  4) Delete admin")
		fmt.Println("  5) Quit")

		choice, err := promptLine("> ")
		if err != nil {
			return err
		}

		var actionErr error
		switch choice {
		case "1":
			actionErr = runCreate(ctx, svc, "")
		case "2":
			actionErr = runList(ctx, svc)
		case "3":
			actionErr = runPasswd(ctx, svc, "")
		case "4":
			actionErr = runDelete(ctx, svc, "")
		case "5", "q", "quit", "exit":
			return nil
		default:
			fmt.Println("Pick 1-5.")
			continue
		}

		if actionErr != nil {
			fmt.Fprintln(os.Stderr, "Error:", actionErr)
		}
	}
}
