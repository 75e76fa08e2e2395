package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"file_endec/internal/key"
)

// KeySource describes where the passphrase comes from. The grammar is
// "pass:<password> | env:<var> | file:<path> | ask | ask-once | pipe".
type KeySource struct {
	kind  keySourceKind
	value string
}

type keySourceKind int

const (
	keySourceCliArg keySourceKind = iota
	keySourceEnvVar
	keySourceFile
	keySourceAskTwice
	keySourceAskOnce
	keySourcePipe
)

// ParseKeySource reads the key-source grammar.
func ParseKeySource(text string) (KeySource, error) {
	if password, ok := strings.CutPrefix(text, "pass:"); ok {
		return KeySource{kind: keySourceCliArg, value: password}, nil
	}
	if name, ok := strings.CutPrefix(text, "env:"); ok {
		return KeySource{kind: keySourceEnvVar, value: name}, nil
	}
	if path, ok := strings.CutPrefix(text, "file:"); ok {
		return KeySource{kind: keySourceFile, value: path}, nil
	}
	switch text {
	case "ask":
		return KeySource{kind: keySourceAskTwice}, nil
	case "ask-once", "askonce":
		return KeySource{kind: keySourceAskOnce}, nil
	case "pipe":
		return KeySource{kind: keySourcePipe}, nil
	}
	snip := text
	if len(snip) > 5 {
		snip = snip[:4] + "..."
	}
	return KeySource{}, fmt.Errorf("key string was not recognized; got '%s', should be one of "+
		"'pass:$password', 'env:$var_name', 'file:$path', 'ask', 'ask-once', 'pipe'", snip)
}

// ObtainKey acquires the passphrase, prompting or reading as the source
// demands.
func (s KeySource) ObtainKey() (*key.Key, error) {
	switch s.kind {
	case keySourceCliArg:
		return key.NewKey(s.value), nil
	case keySourceEnvVar:
		return keyFromEnv(s.value)
	case keySourceFile:
		return keyFromFile(s.value)
	case keySourceAskTwice:
		return keyFromPrompt(true)
	case keySourceAskOnce:
		return keyFromPrompt(false)
	case keySourcePipe:
		return keyFromPipe()
	default:
		panic("unreachable: unknown key source")
	}
}

func keyFromEnv(name string) (*key.Key, error) {
	value, found := os.LookupEnv(name)
	if !found {
		return nil, fmt.Errorf("could not find environment variable named '%s' "+
			"(which is expected to contain the encryption key)", name)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("environment variable named '%s' is empty "+
			"(it is expected to contain the encryption key)", name)
	}
	return key.NewKey(value), nil
}

func keyFromFile(path string) (*key.Key, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read encryption key from file '%s'; reason: %v", path, err)
	}
	return key.NewKey(strings.TrimSpace(string(content))), nil
}

func keyFromPrompt(askTwice bool) (*key.Key, error) {
	first, err := readPasswordSecure("key: ")
	if err != nil {
		return nil, err
	}
	if first == "" {
		return nil, fmt.Errorf("password from interactive console was empty")
	}
	if askTwice {
		second, err := readPasswordSecure("repeat key: ")
		if err != nil {
			return nil, err
		}
		if first != second {
			return nil, fmt.Errorf("passwords did not match")
		}
	}
	return key.NewKey(first), nil
}

func keyFromPipe() (*key.Key, error) {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("no key was piped into the program")
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, fmt.Errorf("no key was piped into the program")
	}
	return key.NewKey(line), nil
}
