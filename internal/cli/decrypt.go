package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"file_endec/internal/config"
	"file_endec/internal/orchestrate"
)

// Decrypt flags
var (
	decKeySource   string
	decDebug       bool
	decQuiet       bool
	decOverwrite   bool
	decDeleteInput bool
	decOutputDir   string
)

// NewDecryptCommand builds the root command of the filedec binary.
func NewDecryptCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filedec <files>...",
		Short: "Decrypt files that were encrypted with fileenc",
		Long: `Decrypt one or more files that were encrypted with fileenc.

Every parameter needed for decryption is read from the artifact itself;
only the key must be supplied.

Examples:
  # Decrypt, asking for the key
  filedec secret.txt.enc

  # Key from an environment variable, shred the encrypted input
  filedec -k env:MY_KEY -d secret.txt.enc

  # Decrypt a batch into a directory
  filedec -k ask-once -o /restored *.enc`,
		Args:    cobra.MinimumNArgs(1),
		Version: version,
		RunE:    runDecrypt,
	}
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.Flags().StringVarP(&decKeySource, "key", "k", "ask-once",
		"Where to get the key; one of 'pass:$password', 'env:$var_name', 'file:$path', 'ask', 'ask-once', 'pipe'")
	cmd.Flags().BoolVarP(&decDebug, "debug", "v", false, "Show debug information, especially on errors")
	cmd.Flags().BoolVarP(&decQuiet, "quiet", "q", false, "Do not show progress or other non-critical output")
	cmd.Flags().BoolVarP(&decOverwrite, "overwrite", "f", false, "Overwrite output files if they exist")
	cmd.Flags().BoolVarP(&decDeleteInput, "delete-input", "d", false,
		"Delete encrypted input files after successful decryption")
	cmd.Flags().StringVarP(&decOutputDir, "output-dir", "o", "",
		"Alternative output directory. If not given, output is saved alongside input")
	return cmd
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	verbosity, err := resolveVerbosity(decDebug, decQuiet)
	if err != nil {
		return err
	}
	setupLogging(verbosity)

	source, err := ParseKeySource(decKeySource)
	if err != nil {
		return err
	}
	rawKey, err := source.ObtainKey()
	if err != nil {
		return err
	}
	defer rawKey.Wipe()

	conf, err := config.NewDecryptConfig(args, rawKey, verbosity,
		decOverwrite, decDeleteInput, decOutputDir, ".enc")
	if err != nil {
		return err
	}
	if verbosity.Debug() {
		fmt.Println("arguments provided:")
		for _, file := range conf.Files() {
			fmt.Printf("  - %s\n", file)
		}
		fmt.Printf("* output dir: %q\n", conf.OutputDir())
		fmt.Printf("* overwrite: %v, shred input: %v\n", conf.Overwrite(), conf.DeleteInput())
	}

	sink := sinkFor(verbosity)
	_, err = orchestrate.Decrypt(conf, sink)
	return err
}
