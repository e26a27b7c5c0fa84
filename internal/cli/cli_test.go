// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
)

func TestParse_NoArgsStartsTUI(t *testing.T) {
	cmd, _ := parse(nil)
	if cmd != CmdTUI {
		t.Errorf("cmd = %v, want CmdTUI", cmd)
	}
}

func TestParse_AskJoinsQuery(t *testing.T) {
	cmd, args := parse([]string{"ask", "what", "is", "the", "refund", "policy"})
	if cmd != CmdAsk {
		t.Fatalf("cmd = %v, want CmdAsk", cmd)
	}
	if args.Query != "what is the refund policy" {
		t.Errorf("query = %q", args.Query)
	}
}

func TestParse_ImplicitQuestion(t *testing.T) {
	cmd, args := parse([]string{"what", "does", "the", "handbook", "say"})
	if cmd != CmdAsk {
		t.Fatalf("cmd = %v, want CmdAsk for bare words", cmd)
	}
	if args.Query != "what does the handbook say" {
		t.Errorf("query = %q", args.Query)
	}
}

func TestParse_UploadFilesAndReset(t *testing.T) {
	cmd, args := parse([]string{"upload", "--reset", "a.pdf", "b.txt"})
	if cmd != CmdUpload {
		t.Fatalf("cmd = %v, want CmdUpload", cmd)
	}
	if !args.Reset {
		t.Error("reset flag not parsed")
	}
	if len(args.Files) != 2 || args.Files[0] != "a.pdf" || args.Files[1] != "b.txt" {
		t.Errorf("files = %v", args.Files)
	}
}

func TestParse_GlobalFlags(t *testing.T) {
	cmd, args := parse([]string{"--json", "-q", "--backend", "http://10.0.0.5:8000", "status"})
	if cmd != CmdStatus {
		t.Fatalf("cmd = %v, want CmdStatus", cmd)
	}
	if !args.JSON || !args.Quiet {
		t.Errorf("flags = %+v", args)
	}
	if args.BackendURL != "http://10.0.0.5:8000" {
		t.Errorf("backend = %q", args.BackendURL)
	}
}

func TestParse_ConfigForms(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		wantKey string
		wantVal string
	}{
		{"get", []string{"config", "get", "backend.url"}, "backend.url", ""},
		{"set", []string{"config", "set", "ui.theme", "dark"}, "ui.theme", "dark"},
		{"list", []string{"config", "list"}, "list", ""},
		{"bare", []string{"config"}, "list", ""},
		{"bare key", []string{"config", "ui.theme"}, "ui.theme", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := parse(tt.argv)
			if cmd != CmdConfig {
				t.Fatalf("cmd = %v, want CmdConfig", cmd)
			}
			if args.ConfigKey != tt.wantKey || args.ConfigVal != tt.wantVal {
				t.Errorf("key=%q val=%q, want key=%q val=%q",
					args.ConfigKey, args.ConfigVal, tt.wantKey, tt.wantVal)
			}
		})
	}
}

func TestParse_VersionAndHelp(t *testing.T) {
	for _, argv := range [][]string{{"version"}, {"-V"}, {"--version"}} {
		if cmd, _ := parse(argv); cmd != CmdVersion {
			t.Errorf("parse(%v) = %v, want CmdVersion", argv, cmd)
		}
	}
	for _, argv := range [][]string{{"help"}, {"-h"}, {"--help"}, {"--bogus"}} {
		if cmd, _ := parse(argv); cmd != CmdHelp {
			t.Errorf("parse(%v) = %v, want CmdHelp", argv, cmd)
		}
	}
}

func TestRenderMarkdown_FallsBackToPlainText(t *testing.T) {
	saved := markdownRenderer
	markdownRenderer = nil
	defer func() { markdownRenderer = saved }()

	if got := renderMarkdown("# heading"); got != "# heading" {
		t.Errorf("got %q, want unmodified text", got)
	}
}
