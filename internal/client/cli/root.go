package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	u := a.session.User()
	if u == nil {
		return "(anonymous)"
	}
	if u.IsAdmin() {
		return fmt.Sprintf("(%s, admin)", u.Name)
	}
	return fmt.Sprintf("(%s)", u.Name)
}

// Root restores the cached session and runs the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to SlabVault CLI (type 'help' for commands)")

	a.session.Restore(ctx)
	if u := a.session.User(); u != nil {
		fmt.Printf("Welcome back, %s!\n", u.Name)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
