// fileenc securely encrypts one or more files using the given key.
//
// The encrypted artifacts are self-describing: everything except the key
// that is needed to decrypt them again is stored in their headers, so
// future versions of filedec keep working on old files.
package main

import (
	"fmt"
	"os"

	"file_endec/internal/cli"
	"file_endec/internal/header"
)

func main() {
	cmd := cli.NewEncryptCommand(header.CurrentVersionString)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
