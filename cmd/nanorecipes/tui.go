package main

import (
	"github.com/arthur-debert/nanorecipes/internal/tui"
	"github.com/arthur-debert/nanorecipes/nanorecipes/storage"
	"github.com/arthur-debert/nanorecipes/types"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func (cli *CLI) newTUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive recipe browser",
		Long: `Open the interactive recipe browser.

With --watch, changes written by other nanorecipes processes (for example a
CLI command run in another terminal) are picked up while the browser is open.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.runTUI(cli.viperInst.GetBool("watch"))
		},
	}

	cmd.Flags().BoolP("watch", "w", false, "reload when the recipe file changes on disk")
	_ = cli.viperInst.BindPFlag("watch", cmd.Flags().Lookup("watch"))
	return cmd
}

func (cli *CLI) runTUI(watch bool) error {
	s, err := cli.openSession("open recipe browser", false)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := []tui.Option{tui.WithClock(cli.now)}

	if watch && s.watchPath != "" {
		w, err := storage.Watch(s.watchPath, storage.WithWatchLogger(cli.logger))
		if err != nil {
			return NewStoreError("watch recipe file", err)
		}
		defer w.Close()
		opts = append(opts, tui.WithReload(w.Events(), s.reload))
	}

	model := tui.New(s.ctrl, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithInput(cli.in), tea.WithOutput(cli.out))
	if _, err := p.Run(); err != nil {
		return WrapError("run recipe browser", err)
	}
	return nil
}

// reload reads the stored collection without reseeding it
func (s *session) reload() ([]types.Recipe, error) {
	recipes, found, err := s.store.Read()
	if err != nil {
		return nil, err
	}
	if !found {
		return []types.Recipe{}, nil
	}
	return recipes, nil
}
