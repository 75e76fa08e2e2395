package cli

import (
	"os"
	"path/filepath"
	"testing"

	"file_endec/internal/config"
)

func TestParseKeySourcePass(t *testing.T) {
	source, err := ParseKeySource("pass:hunter2")
	if err != nil {
		t.Fatal(err)
	}
	k, err := source.ObtainKey()
	if err != nil {
		t.Fatal(err)
	}
	if string(k.Bytes()) != "hunter2" {
		t.Errorf("key = %q", k.Bytes())
	}
}

func TestParseKeySourceEnv(t *testing.T) {
	t.Setenv("FED_TEST_KEY", "  from-environment \n")
	source, err := ParseKeySource("env:FED_TEST_KEY")
	if err != nil {
		t.Fatal(err)
	}
	k, err := source.ObtainKey()
	if err != nil {
		t.Fatal(err)
	}
	if string(k.Bytes()) != "from-environment" {
		t.Errorf("key = %q; trimming failed?", k.Bytes())
	}
}

func TestParseKeySourceEnvMissing(t *testing.T) {
	source, err := ParseKeySource("env:FED_TEST_KEY_DOES_NOT_EXIST")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := source.ObtainKey(); err == nil {
		t.Error("missing env var should fail")
	}
}

func TestParseKeySourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyfile")
	if err := os.WriteFile(path, []byte("file-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	source, err := ParseKeySource("file:" + path)
	if err != nil {
		t.Fatal(err)
	}
	k, err := source.ObtainKey()
	if err != nil {
		t.Fatal(err)
	}
	if string(k.Bytes()) != "file-key" {
		t.Errorf("key = %q", k.Bytes())
	}
}

func TestParseKeySourceFileMissing(t *testing.T) {
	source, err := ParseKeySource("file:" + filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := source.ObtainKey(); err == nil {
		t.Error("missing key file should fail")
	}
}

func TestParseKeySourceVariants(t *testing.T) {
	for _, text := range []string{"ask", "ask-once", "askonce", "pipe"} {
		if _, err := ParseKeySource(text); err != nil {
			t.Errorf("ParseKeySource(%q) failed: %v", text, err)
		}
	}
}

func TestParseKeySourceUnknown(t *testing.T) {
	if _, err := ParseKeySource("telepathy:please"); err == nil {
		t.Error("unknown source should fail")
	}
}

func TestResolveVerbosity(t *testing.T) {
	if _, err := resolveVerbosity(true, true); err == nil {
		t.Error("debug+quiet should be rejected")
	}
	v, err := resolveVerbosity(true, false)
	if err != nil || v != config.VerbosityDebug {
		t.Errorf("debug: %v, %v", v, err)
	}
	v, err = resolveVerbosity(false, true)
	if err != nil || v != config.VerbosityQuiet {
		t.Errorf("quiet: %v, %v", v, err)
	}
	v, err = resolveVerbosity(false, false)
	if err != nil || v != config.VerbosityNormal {
		t.Errorf("normal: %v, %v", v, err)
	}
}

func TestEncryptCommandFlags(t *testing.T) {
	cmd := NewEncryptCommand("1.1.0")
	if err := cmd.ParseFlags([]string{"-q", "-d", "-f", "-s", "--hide-meta",
		"-o", "/tmp/hello", "--output-extension", "secret", "-k", "pass:abcdef123!"}); err != nil {
		t.Fatal(err)
	}
	if !encQuiet || !encDeleteInput || !encOverwrite || !encFast || !encHideMeta {
		t.Error("boolean flags not parsed")
	}
	if encOutputDir != "/tmp/hello" {
		t.Errorf("output dir = %q", encOutputDir)
	}
	if encOutputExt != "secret" {
		t.Errorf("output extension = %q", encOutputExt)
	}
	if encKeySource != "pass:abcdef123!" {
		t.Errorf("key source = %q", encKeySource)
	}
}

func TestDecryptCommandFlags(t *testing.T) {
	cmd := NewDecryptCommand("1.1.0")
	if err := cmd.ParseFlags([]string{"-q", "-d", "-f", "-o", "/tmp/hello"}); err != nil {
		t.Fatal(err)
	}
	if !decQuiet || !decDeleteInput || !decOverwrite {
		t.Error("boolean flags not parsed")
	}
	if decOutputDir != "/tmp/hello" {
		t.Errorf("output dir = %q", decOutputDir)
	}
}

func TestCommandsRequireFiles(t *testing.T) {
	enc := NewEncryptCommand("1.1.0")
	enc.SetArgs([]string{})
	if err := enc.Execute(); err == nil {
		t.Error("fileenc without files should fail")
	}
	dec := NewDecryptCommand("1.1.0")
	dec.SetArgs([]string{})
	if err := dec.Execute(); err == nil {
		t.Error("filedec without files should fail")
	}
}
