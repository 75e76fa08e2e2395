package cli

import (
	"fmt"
	"os"
	"strings"

	"file_endec/internal/compress"
	"file_endec/internal/fileops"
	"file_endec/internal/key"
	"file_endec/internal/symmetric"
)

// Reporter implements progress.Sink for terminal output: a single status
// line on stderr, overwritten as stages start. Quiet mode drops everything.
type Reporter struct {
	quiet    bool
	lastLine int
}

// NewReporter creates a terminal progress reporter.
func NewReporter(quiet bool) *Reporter {
	return &Reporter{quiet: quiet}
}

func (r *Reporter) show(text string) {
	if r.quiet {
		return
	}
	line := "\r" + text
	if len(line) < r.lastLine {
		line += strings.Repeat(" ", r.lastLine-len(line))
	}
	r.lastLine = len(line)
	fmt.Fprint(os.Stderr, line)
}

func fileName(file *fileops.FileInfo) string {
	if file == nil {
		return "all files"
	}
	return file.Name()
}

func (r *Reporter) StartStretchAlg(alg key.KeyHashAlg, file *fileops.FileInfo) {
	r.show(fmt.Sprintf("stretching key (%s) for %s", alg, fileName(file)))
}

func (r *Reporter) StartReadForFile(file *fileops.FileInfo) {
	r.show("reading " + fileName(file))
}

func (r *Reporter) StartChecksumForFile(file *fileops.FileInfo) {
	r.show("checksumming " + fileName(file))
}

func (r *Reporter) StartCompressAlgForFile(alg compress.CompressionAlg, file *fileops.FileInfo) {
	r.show(fmt.Sprintf("%s for %s", alg, fileName(file)))
}

func (r *Reporter) StartSymAlgForFile(alg symmetric.SymAlg, file *fileops.FileInfo) {
	r.show(fmt.Sprintf("%s for %s", alg, fileName(file)))
}

func (r *Reporter) StartPrivateHeaderForFile(file *fileops.FileInfo) {
	r.show("file metadata for " + fileName(file))
}

func (r *Reporter) StartWriteForFile(file *fileops.FileInfo) {
	r.show("writing " + fileName(file))
}

func (r *Reporter) StartShredInputForFile(file *fileops.FileInfo) {
	r.show("shredding " + fileName(file))
}

// Finish moves past the status line so later output starts clean.
func (r *Reporter) Finish() {
	if !r.quiet && r.lastLine > 0 {
		r.show("")
		fmt.Fprint(os.Stderr, "\r")
		r.lastLine = 0
	}
}
