package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	refson "github.com/refson/go-refson"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: patch takes a document and a patch file", cli.ErrUsage)
	}
	doc, err := readInput(args[0])
	if err != nil {
		return err
	}
	p, err := readInput(args[1])
	if err != nil {
		return err
	}
	out, err := refson.Patch(doc, p)
	if err != nil {
		return err
	}
	w := ccOut(cc)
	if _, err := w.Write(out); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}
