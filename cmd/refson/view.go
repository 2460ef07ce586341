package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/segmentio/encoding/json"
)

type viewColors struct {
	id     func(format string, a ...any) string
	marker func(format string, a ...any) string
	field  func(format string, a ...any) string
	value  func(format string, a ...any) string
}

func newViewColors(enabled bool) *viewColors {
	if !enabled {
		plain := fmt.Sprintf
		return &viewColors{id: plain, marker: plain, field: plain, value: plain}
	}
	return &viewColors{
		id:     color.New(color.FgHiYellow).SprintfFunc(),
		marker: color.New(color.FgMagenta).SprintfFunc(),
		field:  color.RGB(128, 168, 196).SprintfFunc(),
		value:  color.RGB(8, 196, 16).SprintfFunc(),
	}
}

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: view takes at most one file", cli.ErrUsage)
	}
	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	data, err := readInput(arg)
	if err != nil {
		return err
	}
	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return err
	}
	w := ccOut(cc)
	colors := newViewColors(cfg.useColor(w))
	table, ok := top.([]any)
	if !ok {
		fmt.Fprintf(w, "%s\n", renderChild(top, cfg.markerPrefix(), colors))
		return nil
	}
	for i, entry := range table {
		printEntry(w, i, entry, cfg.markerPrefix(), colors)
	}
	return nil
}

func printEntry(w io.Writer, id int, entry any, prefix string, colors *viewColors) {
	switch entry := entry.(type) {
	case map[string]any:
		head := "object"
		if name, ok := entry[prefix+"type"].(string); ok {
			head = "object " + name
		}
		fmt.Fprintf(w, "%s %s\n", colors.id("[%d]", id), head)
		keys := make([]string, 0, len(entry))
		for k := range entry {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if k == prefix+"type" {
				continue
			}
			fmt.Fprintf(w, "    %s: %s\n", colors.field("%s", k), renderChild(entry[k], prefix, colors))
		}
	case []any:
		fmt.Fprintf(w, "%s array\n", colors.id("[%d]", id))
		for i, v := range entry {
			fmt.Fprintf(w, "    %s: %s\n", colors.field("%d", i), renderChild(v, prefix, colors))
		}
	default:
		fmt.Fprintf(w, "%s %s\n", colors.id("[%d]", id), renderChild(entry, prefix, colors))
	}
}

func renderChild(v any, prefix string, colors *viewColors) string {
	if m, ok := v.(map[string]any); ok {
		if id, ok := m[prefix+"ref"].(float64); ok {
			if int(id) == -1 {
				return colors.marker("undefined")
			}
			return colors.marker("→%d", int(id))
		}
		if name, ok := m[prefix+"build"].(string); ok {
			args, _ := json.Marshal(m[prefix+"args"])
			return colors.marker("%s(%s)", name, args)
		}
	}
	d, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return colors.value("%s", d)
}
