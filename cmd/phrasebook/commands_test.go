package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/five82/phrasebook/internal/app"
	"github.com/five82/phrasebook/internal/browser/browsertest"
)

func testDeps(rec *browsertest.Recorder) deps {
	return deps{
		Opener:    rec,
		Clipboard: rec,
		Browse:    func(context.Context, app.Options) error { return nil },
	}
}

func TestOpenCommand(t *testing.T) {
	rec := &browsertest.Recorder{}
	root := newRootCmd(testDeps(rec))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"open", "2:255"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	want := "https://quran.com/2/255?translations=20,158,122"
	if len(rec.Opened) != 1 || rec.Opened[0] != want {
		t.Fatalf("opened = %v, want [%s]", rec.Opened, want)
	}
	if strings.TrimSpace(out.String()) != want {
		t.Fatalf("output = %q", out.String())
	}
}

func TestOpenCommand_RejectsInvalidReference(t *testing.T) {
	for _, arg := range []string{"115:1", "abc", "2"} {
		rec := &browsertest.Recorder{}
		root := newRootCmd(testDeps(rec))
		root.SetOut(&bytes.Buffer{})
		root.SetArgs([]string{"open", arg})

		if err := root.Execute(); err == nil {
			t.Errorf("open %q: expected error", arg)
		}
		if len(rec.Opened) != 0 {
			t.Errorf("open %q: opened %v", arg, rec.Opened)
		}
	}
}

func TestSubcommands(t *testing.T) {
	root := newRootCmd(testDeps(&browsertest.Recorder{}))
	for _, name := range []string{"browse", "serve", "check", "log", "open"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if f := root.Flags().Lookup("page"); f == nil {
		t.Errorf("root is missing --page")
	}
	if f := root.PersistentFlags().Lookup("config"); f == nil {
		t.Errorf("root is missing --config")
	}
}

func TestBrowseUsesInjectedDesktop(t *testing.T) {
	for _, args := range [][]string{{"--page", "/praises"}, {"browse", "--page", "/praises"}} {
		rec := &browsertest.Recorder{}
		d := testDeps(rec)
		var got app.Options
		d.Browse = func(_ context.Context, opts app.Options) error {
			got = opts
			return nil
		}
		root := newRootCmd(d)
		root.SetArgs(args)

		if err := root.Execute(); err != nil {
			t.Fatalf("%v: Execute returned error: %v", args, err)
		}
		if got.Opener != rec || got.Clipboard != rec {
			t.Fatalf("%v: browse got opener %v clipboard %v, want the injected recorder", args, got.Opener, got.Clipboard)
		}
		if got.StartPage != "/praises" {
			t.Fatalf("%v: StartPage = %q, want /praises", args, got.StartPage)
		}
	}
}
