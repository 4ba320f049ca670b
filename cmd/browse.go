package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"photo-gallery/pkg/browser"
)

// newBrowseCmd creates a new command for paging through photobooks in the terminal
func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [date/id]",
		Short: "Page through photobooks interactively",
		Long: `Open a photobook in an interactive prompt and move through its spreads and pages
with next, prev, goto and toggle. Use 'help' for the list of commands.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "photobook> ",
				HistoryFile:     historyFile(),
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize readline: %w", err)
			}
			defer rl.Close()

			b := browser.New(a.service.LoadPhotobook, rl.Stdout(), a.logger)
			defer b.Close()

			fmt.Fprintln(rl.Stdout(), "Use 'help' for the list of commands.")
			if len(args) == 1 {
				if err := b.Execute(cmd.Context(), "open "+args[0]); err != nil {
					fmt.Fprintln(rl.Stdout(), "Error:", err)
				}
				rl.SetPrompt(b.Prompt())
			}

			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) {
					fmt.Fprintln(rl.Stdout(), "Use 'exit' or 'quit' to exit.")
					continue
				}
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}

				err = b.Execute(cmd.Context(), line)
				if errors.Is(err, browser.ErrQuit) {
					return nil
				}
				if err != nil {
					fmt.Fprintln(rl.Stdout(), "Error:", err)
				}

				// Update the prompt after each command
				rl.SetPrompt(b.Prompt())
			}
		},
	}
}

// historyFile keeps the prompt history next to the user's other dotfiles
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".photo-gallery_history")
}
