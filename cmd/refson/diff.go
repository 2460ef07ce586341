package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/refson/go-refson/refdiff"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: diff takes exactly two files", cli.ErrUsage)
	}
	a, err := readInput(args[0])
	if err != nil {
		return err
	}
	b, err := readInput(args[1])
	if err != nil {
		return err
	}
	changes, err := refdiff.Diff(a, b)
	if err != nil {
		return err
	}
	w := ccOut(cc)
	if !cfg.useColor(w) {
		fmt.Fprint(w, refdiff.Format(changes))
		return nil
	}
	add := color.New(color.FgGreen).SprintfFunc()
	del := color.New(color.FgRed).SprintfFunc()
	chg := color.New(color.FgYellow).SprintfFunc()
	for _, c := range changes {
		line := refdiff.Format([]refdiff.Change{c})
		switch {
		case c.From == nil && c.To != nil:
			fmt.Fprint(w, add("%s", line))
		case c.To == nil && c.From != nil:
			fmt.Fprint(w, del("%s", line))
		default:
			fmt.Fprint(w, chg("%s", line))
		}
	}
	return nil
}
