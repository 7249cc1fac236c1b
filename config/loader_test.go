/*
 * Copyright 2019 The Kythe Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", name, err)
	}
}

func TestLoadBasicSections(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.cfg", `
[ABBREVIATIONS]
Mr
Dr

[RULES]
FOO=foo

[RULE-ORDER]
FOO WORD-TOKEN

[QUOTES]
< >

[EOSMARKERS]
\U00000021

[FILTER]
  " "
`)

	cfg, err := Load("main.cfg", dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.EOSMarkers != "!" {
		t.Errorf("EOSMarkers = %q, want %q", cfg.EOSMarkers, "!")
	}
	if close, ok := cfg.Registry.LookupOpen('<'); !ok || close != ">" {
		t.Errorf("LookupOpen('<') = (%q, %v), want (\">\", true)", close, ok)
	}
	rules := cfg.Rules.Rules()
	if len(rules) == 0 {
		t.Fatalf("expected at least one rule")
	}
	found := false
	for _, r := range rules {
		if r.ID == "FOO" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected user rule FOO to be present, got %+v", rules)
	}
}

func TestLoadDefaultsApplied(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.cfg", "# nothing here\n")

	cfg, err := Load("empty.cfg", dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.EOSMarkers != "!?" {
		t.Errorf("EOSMarkers = %q, want default %q", cfg.EOSMarkers, "!?")
	}
	if len(cfg.Registry.Pairs()) == 0 {
		t.Errorf("expected default quote pairs to be applied")
	}
}

func TestLoadInvalidRuleEntry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.cfg", "[RULES]\nnoequalsign\n")

	if _, err := Load("bad.cfg", dir); err == nil {
		t.Fatalf("expected an error for malformed RULES entry")
	}
}

func TestLoadRulesInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "extra.rule", "BAR=bar\n")
	writeFile(t, dir, "main.cfg", "[RULES]\n%include extra\n")

	cfg, err := Load("main.cfg", dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	found := false
	for _, r := range cfg.Rules.Rules() {
		if r.ID == "BAR" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected included rule BAR to be present")
	}
}
