// filedec decrypts files that were encrypted with fileenc.
//
// The artifact headers carry the key-derivation chain, cipher cascade,
// compression and version, so only the key has to be provided.
package main

import (
	"fmt"
	"os"

	"file_endec/internal/cli"
	"file_endec/internal/header"
)

func main() {
	cmd := cli.NewDecryptCommand(header.CurrentVersionString)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
