// Package progress defines the sink the pipelines report through, plus the
// silent and logging implementations. The CLI adds a terminal reporter.
package progress

import (
	"file_endec/internal/compress"
	"file_endec/internal/fileops"
	"file_endec/internal/key"
	"file_endec/internal/log"
	"file_endec/internal/symmetric"
)

// Sink receives one callback at the start of each pipeline stage. All calls
// come synchronously from the pipeline goroutine.
//
// Stretching happens once per batch for encryption but pessimistically per
// file for decryption, so file is nil in the encryption case.
type Sink interface {
	StartStretchAlg(alg key.KeyHashAlg, file *fileops.FileInfo)
	StartReadForFile(file *fileops.FileInfo)
	StartChecksumForFile(file *fileops.FileInfo)
	StartCompressAlgForFile(alg compress.CompressionAlg, file *fileops.FileInfo)
	StartSymAlgForFile(alg symmetric.SymAlg, file *fileops.FileInfo)
	StartPrivateHeaderForFile(file *fileops.FileInfo)
	StartWriteForFile(file *fileops.FileInfo)
	StartShredInputForFile(file *fileops.FileInfo)
	Finish()
}

// Silent discards every event.
type Silent struct{}

func NewSilent() *Silent { return &Silent{} }

func (*Silent) StartStretchAlg(key.KeyHashAlg, *fileops.FileInfo)                  {}
func (*Silent) StartReadForFile(*fileops.FileInfo)                                 {}
func (*Silent) StartChecksumForFile(*fileops.FileInfo)                             {}
func (*Silent) StartCompressAlgForFile(compress.CompressionAlg, *fileops.FileInfo) {}
func (*Silent) StartSymAlgForFile(symmetric.SymAlg, *fileops.FileInfo)             {}
func (*Silent) StartPrivateHeaderForFile(*fileops.FileInfo)                        {}
func (*Silent) StartWriteForFile(*fileops.FileInfo)                                {}
func (*Silent) StartShredInputForFile(*fileops.FileInfo)                           {}
func (*Silent) Finish()                                                            {}

// Logging writes one structured log line per stage, for debug verbosity.
type Logging struct{}

func NewLogging() *Logging { return &Logging{} }

func fileField(file *fileops.FileInfo) log.Field {
	if file == nil {
		return log.String("file", "(batch)")
	}
	return log.String("file", file.Name())
}

func (*Logging) StartStretchAlg(alg key.KeyHashAlg, file *fileops.FileInfo) {
	log.Debug("stretching key", log.String("alg", alg.String()), fileField(file))
}

func (*Logging) StartReadForFile(file *fileops.FileInfo) {
	log.Debug("reading input", fileField(file))
}

func (*Logging) StartChecksumForFile(file *fileops.FileInfo) {
	log.Debug("computing checksum", fileField(file))
}

func (*Logging) StartCompressAlgForFile(alg compress.CompressionAlg, file *fileops.FileInfo) {
	log.Debug("compression stage", log.String("alg", alg.String()), fileField(file))
}

func (*Logging) StartSymAlgForFile(alg symmetric.SymAlg, file *fileops.FileInfo) {
	log.Debug("cipher stage", log.String("alg", alg.String()), fileField(file))
}

func (*Logging) StartPrivateHeaderForFile(file *fileops.FileInfo) {
	log.Debug("handling private header", fileField(file))
}

func (*Logging) StartWriteForFile(file *fileops.FileInfo) {
	log.Debug("writing output", fileField(file))
}

func (*Logging) StartShredInputForFile(file *fileops.FileInfo) {
	log.Debug("shredding input", fileField(file))
}

func (*Logging) Finish() {
	log.Debug("batch finished")
}
