package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/jsvensson/accentsync/internal/color"
	"github.com/jsvensson/accentsync/internal/config"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
)

var (
	labelStyle = lipgloss.NewStyle().Width(7).Bold(true)
	hexStyle   = lipgloss.NewStyle().Width(9)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

func runPalette(cmd *cobra.Command, args []string) error {
	accent, err := color.ParseHex(args[0])
	if err != nil {
		return err
	}

	amount := flagAmount
	if !cmd.Flags().Changed("amount") {
		amount, err = projectAmount()
		if err != nil {
			return err
		}
	} else if amount <= 0 || amount > 1 {
		return fmt.Errorf("amount %v out of range (0, 1]", amount)
	}

	renderPalette(cmd.OutOrStdout(), color.NewPalette(accent, amount))
	return nil
}

// projectAmount is the lightness shift configured for the project.
func projectAmount() (float64, error) {
	dir, err := projectDir()
	if err != nil {
		return 0, err
	}
	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if err != nil {
		return 0, err
	}
	return cfg.Amount, nil
}

// renderPalette prints one line per member: a swatch, the hex value, HSL
// and CIE L* so the lightness ordering is visible at a glance.
func renderPalette(w io.Writer, p color.Palette) {
	for _, m := range color.Members {
		c := p.Get(m)
		hsl := c.HSL()
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("    ")

		fmt.Fprintf(w, "%s %s %s %s %s\n",
			labelStyle.Render(string(m)),
			swatch,
			hexStyle.Render(c.Hex()),
			fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", hsl.H, hsl.S, hsl.L),
			dimStyle.Render(fmt.Sprintf("L* %.1f", lightness(c))),
		)
	}
}

// lightness returns CIE L* in [0, 100].
func lightness(c color.Color) float64 {
	l, _, _ := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Lab()
	return l * 100
}
