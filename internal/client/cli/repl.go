package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	ListCards(ctx context.Context) error
	AddCard(ctx context.Context) error
	EditCard(ctx context.Context) error
	DeleteCard(ctx context.Context) error
	Review(ctx context.Context) error
	Save(ctx context.Context) error
	Pay(ctx context.Context) error
	Tiers(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Logout(ctx context.Context) error
	AdminList(ctx context.Context) error
	AdminAnalytics(ctx context.Context) error
	AdminFilter(ctx context.Context) error
	AdminSetStatus(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the SlabVault CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - forgot         — request a password reset
//	  - reset          — reset the password with a token
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - (l)ist | cards — list the cards in the working submission
//	  - add            — add a card
//	  - edit           — edit a card
//	  - delete         — soft-delete a card
//	  - review         — review the submission and lock it in
//	  - save           — save progress locally and keep going
//	  - pay            — pay for the submission
//	  - tiers          — show the service tier pricing
//	  - dashboard      — show the vault overview
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
//	Admins additionally:
//	  - subs           — load a page of all submissions
//	  - analytics      — show the aggregate summary
//	  - filter         — refine the loaded page
//	  - setstatus      — change a submission's pipeline status
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sv> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			switch {
			case a.isLoggedIn() && a.isAdmin():
				printlnFn("Available commands: (l)ist, add, edit, delete, review, save, pay, tiers, dashboard, subs, analytics, filter, setstatus, logout, exit")
			case a.isLoggedIn():
				printlnFn("Available commands: (l)ist, add, edit, delete, review, save, pay, tiers, dashboard, logout, exit")
			default:
				printlnFn("Available commands: register, login, forgot, reset, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "forgot":
			_ = a.ForgotPassword(ctx)

		case "reset":
			_ = a.ResetPassword(ctx)

		case "l", "list", "cards":
			_ = a.ListCards(ctx)

		case "add":
			_ = a.AddCard(ctx)

		case "edit":
			_ = a.EditCard(ctx)

		case "delete":
			_ = a.DeleteCard(ctx)

		case "review":
			_ = a.Review(ctx)

		case "save":
			_ = a.Save(ctx)

		case "pay":
			_ = a.Pay(ctx)

		case "tiers":
			_ = a.Tiers(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "subs":
			_ = a.AdminList(ctx)

		case "analytics":
			_ = a.AdminAnalytics(ctx)

		case "filter":
			_ = a.AdminFilter(ctx)

		case "setstatus":
			_ = a.AdminSetStatus(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
