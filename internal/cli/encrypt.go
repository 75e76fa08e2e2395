package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"file_endec/internal/config"
	"file_endec/internal/orchestrate"
)

// Encrypt flags
var (
	encKeySource     string
	encDebug         bool
	encQuiet         bool
	encOverwrite     bool
	encDeleteInput   bool
	encHideMeta      bool
	encHideSize      bool
	encFast          bool
	encOutputDir     string
	encOutputExt     string
	encDryRun        bool
	encAcceptWeakKey bool
)

// NewEncryptCommand builds the root command of the fileenc binary.
func NewEncryptCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fileenc <files>...",
		Short: "Securely encrypt one or more files using the given key",
		Long: `Securely encrypt one or more files using the given key.

Each input becomes a self-describing encrypted artifact (by default with
extension .enc) that filedec can later restore with the same key.

Examples:
  # Encrypt a file, asking for the key twice
  fileenc secret.txt

  # Fast mode, hide metadata, shred the plaintext afterwards
  fileenc -s --hide-meta -d secret.txt

  # Key from an environment variable, output into a directory
  fileenc -k env:MY_KEY -o /vault *.db`,
		Args:    cobra.MinimumNArgs(1),
		Version: version,
		RunE:    runEncrypt,
	}
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.Flags().StringVarP(&encKeySource, "key", "k", "ask",
		"Where to get the key; one of 'pass:$password', 'env:$var_name', 'file:$path', 'ask', 'ask-once', 'pipe'")
	cmd.Flags().BoolVarP(&encDebug, "debug", "v", false, "Show debug information, especially on errors")
	cmd.Flags().BoolVarP(&encQuiet, "quiet", "q", false, "Do not show progress or other non-critical output")
	cmd.Flags().BoolVarP(&encOverwrite, "overwrite", "f", false, "Overwrite output files if they exist")
	cmd.Flags().BoolVarP(&encDeleteInput, "delete-input", "d", false,
		"Delete unencrypted input files after successful encryption (overwrites garbage before delete)")
	cmd.Flags().BoolVar(&encHideMeta, "hide-meta", false, "Hide name, timestamp and permissions")
	cmd.Flags().BoolVar(&encHideSize, "hide-size", false,
		"Hide the exact compressed file size, by padding it to the next power of two")
	cmd.Flags().BoolVarP(&encFast, "fast", "s", false,
		"Use good instead of great encryption for a significant speedup")
	cmd.Flags().StringVarP(&encOutputDir, "output-dir", "o", "",
		"Alternative output directory. If not given, output is saved alongside input")
	cmd.Flags().StringVar(&encOutputExt, "output-extension", ".enc", "Extension added to encrypted files")
	cmd.Flags().BoolVar(&encDryRun, "dry-run", false,
		"Test encryption, but do not save encrypted files (nor delete input, if --delete-input)")
	cmd.Flags().BoolVar(&encAcceptWeakKey, "accept-weak-key", false,
		"Suppress warning if the encryption key is not strong")
	return cmd
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	verbosity, err := resolveVerbosity(encDebug, encQuiet)
	if err != nil {
		return err
	}
	setupLogging(verbosity)

	source, err := ParseKeySource(encKeySource)
	if err != nil {
		return err
	}
	rawKey, err := source.ObtainKey()
	if err != nil {
		return err
	}
	if verbosity.Debug() {
		fmt.Printf("approximate time to crack key: %s\n", rawKey.TimeToCrack())
	}
	if !encAcceptWeakKey && !rawKey.IsStrong() {
		fmt.Fprintf(os.Stderr, "warning: the encryption key is not strong (it might be cracked in %s)\n",
			rawKey.TimeToCrack())
	}

	var options []config.EncOption
	if encFast {
		options = append(options, config.OptionFast)
	}
	if encHideMeta {
		options = append(options, config.OptionHideMeta)
	}
	if encHideSize {
		options = append(options, config.OptionPadSize)
	}

	conf, err := config.NewEncryptConfig(args, rawKey, config.NewOptionSet(options...),
		verbosity, encOverwrite, encDeleteInput, encOutputDir, encOutputExt, encDryRun)
	if err != nil {
		return err
	}
	defer rawKey.Wipe()
	if verbosity.Debug() {
		fmt.Println("arguments provided:")
		for _, file := range conf.Files() {
			fmt.Printf("  - %s\n", file)
		}
		fmt.Printf("* options: %q\n", conf.Options().String())
		fmt.Printf("* output dir: %q, extension: %q\n", conf.OutputDir(), conf.Extension().Ext)
		fmt.Printf("* overwrite: %v, shred input: %v, dry run: %v\n",
			conf.Overwrite(), conf.DeleteInput(), conf.DryRun())
	}

	sink := sinkFor(verbosity)
	_, err = orchestrate.Encrypt(conf, sink)
	return err
}
