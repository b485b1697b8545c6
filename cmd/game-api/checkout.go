package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/merev/ds-darts-engine/internal/checkout"
)

var (
	scoreStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	dartStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	noneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

type CheckoutCmd struct {
	Score int    `arg:"" help:"Remaining score"`
	Mode  string `short:"m" enum:"simple,double" default:"double" help:"Finish mode (simple or double)"`
}

func (c *CheckoutCmd) Run() error {
	fmt.Println(renderCheckout(c.Score, checkout.Mode(c.Mode)))
	return nil
}

func renderCheckout(score int, mode checkout.Mode) string {
	header := scoreStyle.Render(fmt.Sprintf("%d (%s out)", score, mode))
	route, ok := checkout.Suggest(score, mode)
	if !ok {
		return header + "  " + noneStyle.Render("no checkout")
	}

	darts := make([]string, len(route))
	for i, t := range route {
		darts[i] = dartStyle.Render(t.Label)
	}
	return header + "  " + strings.Join(darts, " ")
}
