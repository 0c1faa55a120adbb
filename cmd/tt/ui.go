package main

import (
	"fmt"
	"os"

	"github.com/MatheusDosSantosR/tasktracker/internal/boardtui"
	"github.com/MatheusDosSantosR/tasktracker/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive card and board interface",
	Args:  cobra.NoArgs,
	RunE:  runUI,
}

var uiView string

func init() {
	rootCmd.AddCommand(uiCmd)
	uiCmd.Flags().StringVar(&uiView, "view", "", "Opening view (cards or board)")
}

func runUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tt ui requires a terminal")
	}

	gw, cfg, err := newGateway()
	if err != nil {
		return err
	}

	view := cfg.UI.DefaultView
	if uiView != "" {
		view = uiView
	}
	switch view {
	case "", config.ViewCards, config.ViewBoard:
	default:
		return fmt.Errorf("unknown view %q: expected %q or %q", view, config.ViewCards, config.ViewBoard)
	}

	return boardtui.Run(cmd.Context(), gw, boardtui.Options{DefaultView: view})
}
