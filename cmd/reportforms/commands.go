package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/goliatone/go-reportforms/pkg/editor"
	"github.com/goliatone/go-reportforms/pkg/orchestrator"
	"github.com/goliatone/go-reportforms/pkg/palette"
	"github.com/goliatone/go-reportforms/pkg/render"
	"github.com/goliatone/go-reportforms/pkg/renderers/tui"
	"github.com/goliatone/go-reportforms/pkg/renderers/vanilla"
	"github.com/goliatone/go-reportforms/pkg/schema"
	"github.com/goliatone/go-reportforms/pkg/server"
	"github.com/goliatone/go-reportforms/pkg/uischema"
)

type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"kinds":     cmdKinds,
	"show":      cmdShow,
	"defaults":  cmdDefaults,
	"normalize": cmdNormalize,
	"set":       cmdSet,
	"reset":     cmdReset,
	"edit":      cmdEdit,
	"preview":   cmdPreview,
	"load":      cmdLoad,
	"save":      cmdSave,
	"serve":     cmdServe,
}

func wantArgs(args []string, min, max int, shape string) error {
	if len(args) < min || len(args) > max {
		return fmt.Errorf("%w: expected %s", errUsage, shape)
	}
	return nil
}

func cmdKinds(_ context.Context, a *app, args []string) error {
	if err := wantArgs(args, 0, 0, "no arguments"); err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.env.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTORAGE KEY\tFAMILY")
	for _, desc := range schema.Kinds() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", desc.Kind, desc.Name, desc.StorageKey, desc.Family)
	}
	return w.Flush()
}

func cmdShow(ctx context.Context, a *app, args []string) error {
	if err := wantArgs(args, 1, 1, "<kind>"); err != nil {
		return err
	}
	ed, _, err := a.selected(ctx, args[0])
	if err != nil {
		return err
	}
	return a.printJSON(ed.State().Active())
}

func cmdDefaults(_ context.Context, a *app, args []string) error {
	if err := wantArgs(args, 1, 1, "<kind>"); err != nil {
		return err
	}
	kind, err := schema.ParseKind(args[0])
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	def, err := schema.Default(kind)
	if err != nil {
		return err
	}
	return a.printJSON(def)
}

func cmdNormalize(_ context.Context, a *app, args []string) error {
	if err := wantArgs(args, 1, 2, "<kind> [file|-]"); err != nil {
		return err
	}
	kind, err := schema.ParseKind(args[0])
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	var in io.Reader = a.env.stdin
	if len(args) == 2 && args[1] != "-" {
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}

	// Unparseable input normalizes to the defaults, like a corrupt local
	// value does.
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		a.log.Debug("input is not JSON, using defaults")
		raw = nil
	}
	tpl, err := schema.Normalize(kind, raw)
	if err != nil {
		return err
	}
	return a.printJSON(tpl)
}

func cmdSet(ctx context.Context, a *app, args []string) error {
	if err := wantArgs(args, 3, 3, "<kind> <path> <value>"); err != nil {
		return err
	}
	ed, kind, err := a.selected(ctx, args[0])
	if err != nil {
		return err
	}
	field, err := schema.FieldByPath(kind, args[1])
	if err != nil {
		return err
	}
	value, err := schema.ParseValue(field, args[2])
	if err != nil {
		return err
	}
	if err := ed.Edit(ctx, field.Path, value); err != nil {
		return err
	}
	return a.printJSON(ed.State().Active())
}

func cmdReset(ctx context.Context, a *app, args []string) error {
	if err := wantArgs(args, 1, 1, "<kind>"); err != nil {
		return err
	}
	ed, _, err := a.selected(ctx, args[0])
	if err != nil {
		return err
	}
	ed.Reset(ctx)
	a.println(ed.State().StatusText())
	return nil
}

// cmdEdit prompts every field of one template. Without a kind argument the
// kind is picked from a list first.
func cmdEdit(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(a.env.stderr)
	saveRemote := fs.Bool("save", false, "write the result to the backend as well")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if err := wantArgs(fs.Args(), 0, 1, "[kind]"); err != nil {
		return err
	}

	driver := a.env.prompts
	if driver == nil {
		driver = tui.NewSurveyDriver()
	}

	raw := ""
	if fs.NArg() == 1 {
		raw = fs.Arg(0)
	} else {
		kinds := schema.Kinds()
		names := make([]string, len(kinds))
		for i, desc := range kinds {
			names[i] = desc.Name + " (" + desc.Kind.String() + ")"
		}
		idx, err := driver.Select(ctx, tui.SelectConfig{Message: "編集する帳票", Options: names})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(kinds) {
			return fmt.Errorf("%w: no kind selected", errUsage)
		}
		raw = kinds[idx].Kind.String()
	}

	ed, kind, err := a.selected(ctx, raw)
	if err != nil {
		return err
	}

	prompts, err := tui.New(tui.WithPromptDriver(driver))
	if err != nil {
		return err
	}
	registry := render.NewRegistry()
	registry.MustRegister(prompts)
	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(prompts.Name()),
		orchestrator.WithLogger(a.log),
	)

	out, err := orch.Generate(ctx, orchestrator.Request{Kind: kind, Template: ed.State().Active()})
	if errors.Is(err, tui.ErrAborted) {
		a.println("aborted, nothing changed")
		return nil
	}
	if err != nil {
		return err
	}

	var edited any
	if err := json.Unmarshal(out, &edited); err != nil {
		return fmt.Errorf("decode answers: %w", err)
	}
	if err := ed.Replace(ctx, kind, edited); err != nil {
		return err
	}
	a.println(editor.MsgIdle)

	if *saveRemote {
		ed.Save(ctx)
		status := ed.State().StatusText()
		a.println(status)
		if editor.Failed(status) {
			return errors.New(status)
		}
	}
	return nil
}

func cmdPreview(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(a.env.stderr)
	var (
		output  = fs.String("o", "", "output file (stdout if empty)")
		name    = fs.String("palette", a.cfg.Palette, "colour palette id")
		variant = fs.String("variant", a.cfg.PaletteVariant, "palette variant: light or dark")
		live    = fs.Bool("live", false, "look up the latest invoice and delivery note first")
	)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if err := wantArgs(fs.Args(), 1, 1, "<kind>"); err != nil {
		return err
	}

	ed, kind, err := a.selected(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	if *live && kind.IsAccountsReceivable() {
		ed.RefreshDocuments(ctx)
	}
	p, err := ed.Preview()
	if err != nil {
		return err
	}

	html, err := vanilla.New(vanilla.WithInlineStyles())
	if err != nil {
		return err
	}
	registry := render.NewRegistry()
	registry.MustRegister(html)
	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithLogger(a.log),
		orchestrator.WithDefaultTheme(palette.DefaultID, palette.VariantLight),
	)

	overlays, err := uischema.LoadDefault()
	if err != nil {
		return err
	}
	state := ed.State()
	out, err := orch.Generate(ctx, orchestrator.Request{
		Kind:         kind,
		Template:     state.Active(),
		ThemeName:    *name,
		ThemeVariant: *variant,
		RenderOptions: render.RenderOptions{
			Page: server.Page(overlays.Page(), state, ed.Helper(), p, a.cfg.PagePath),
		},
	})
	if err != nil {
		return err
	}

	if *output == "" {
		_, err := a.env.stdout.Write(out)
		return err
	}
	if err := os.WriteFile(*output, out, 0o644); err != nil {
		return err
	}
	a.println("preview written to", *output)
	return nil
}

func cmdLoad(ctx context.Context, a *app, args []string) error {
	return remoteCommand(ctx, a, args, func(ctx context.Context, ed *editor.Editor) { ed.Load(ctx) })
}

func cmdSave(ctx context.Context, a *app, args []string) error {
	return remoteCommand(ctx, a, args, func(ctx context.Context, ed *editor.Editor) { ed.Save(ctx) })
}

// remoteCommand runs a load or save and reports the status line. Failures
// exit non-zero.
func remoteCommand(ctx context.Context, a *app, args []string, run func(context.Context, *editor.Editor)) error {
	if err := wantArgs(args, 1, 1, "<kind>"); err != nil {
		return err
	}
	ed, _, err := a.selected(ctx, args[0])
	if err != nil {
		return err
	}
	run(ctx, ed)
	status := ed.State().StatusText()
	if editor.Failed(status) {
		return errors.New(status)
	}
	a.println(status)
	return nil
}
