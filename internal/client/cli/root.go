package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

// Root prints the greeting and runs the REPL against os.Stdin.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to BiteCart CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
