package workbench

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"ReservoirBench/internal/session"
)

// RunShell reads commands from in until EOF, quit, or ctx cancellation.
func (w *Workbench) RunShell(ctx context.Context, in io.Reader, out io.Writer) {
	fmt.Fprintln(out, w.banner())

	scanner := bufio.NewScanner(in)
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "shutting down")
			return
		default:
		}

		fmt.Fprintf(out, "%s> ", w.Session.Tool())
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				log.Printf("[ERROR] read command: %v", err)
			}
			fmt.Fprintln(out)
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if isQuit(line) {
			fmt.Fprintln(out, "bye")
			return
		}
		if reply := w.HandleCommand(line); reply != "" {
			fmt.Fprintln(out, reply)
		}
	}
}

func (w *Workbench) banner() string {
	if w.Session.Tool() == session.ToolMaterialBalance {
		return "ReservoirBench material balance (p/Z) workbench\ntype help for commands"
	}
	return "ReservoirBench decline curve workbench\ntype help for commands"
}

func isQuit(line string) bool {
	switch line {
	case "quit", "exit", "q":
		return true
	}
	return false
}
