package orchestrate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"file_endec/internal/checksum"
	"file_endec/internal/compress"
	"file_endec/internal/config"
	"file_endec/internal/fileops"
	"file_endec/internal/header"
	"file_endec/internal/key"
	"file_endec/internal/progress"
	"file_endec/internal/symmetric"
	"file_endec/internal/util"
)

// Decrypt runs the decryption pipeline over every file in the batch and
// returns the written output paths. Headers are parsed for all files
// before any is processed; stretched keys are cached per salt so a batch
// written in one run only pays the derivation cost once.
func Decrypt(conf *config.DecryptConfig, sink progress.Sink) ([]string, error) {
	infos, err := fileops.InspectFiles(conf.Files(), conf.Verbosity(), conf.Overwrite(),
		conf.Extension(), conf.OutputDir())
	if err != nil {
		return nil, err
	}
	strategies, err := readFileStrategies(infos)
	if err != nil {
		return nil, err
	}

	cache := key.NewCache()
	defer cache.Wipe()
	checksumFailures := 0
	outPaths := make([]string, 0, len(strategies))
	for i := range strategies {
		fs := &strategies[i]
		outPath, checksumOk, err := decryptFile(conf, fs, cache, sink)
		if err != nil {
			return nil, fmt.Errorf("in '%s': %w", fs.File.InPath, err)
		}
		if !checksumOk {
			checksumFailures++
		}
		outPaths = append(outPaths, outPath)
	}
	sink.Finish()
	if !conf.Verbosity().Quiet() {
		fmt.Printf("decrypted %d files\n", len(strategies))
	}
	if checksumFailures > 0 {
		return outPaths, &ChecksumMismatchError{Count: checksumFailures}
	}
	return outPaths, nil
}

func decryptFile(conf *config.DecryptConfig, fs *FileStrategy, cache *key.Cache,
	sink progress.Sink) (string, bool, error) {
	file := fs.File
	salt := fs.Header.Salt()

	stretched := cache.Get(salt)
	if stretched == nil {
		stretched = key.Stretch(conf.RawKey(), &salt, fs.Strategy.StretchCount, fs.Strategy.KeyHashAlgs,
			func(alg key.KeyHashAlg) { sink.StartStretchAlg(alg, file) })
		cache.Put(salt, stretched)
	}

	data, err := fileops.ReadFile(file, conf.Verbosity(), "", func() { sink.StartReadForFile(file) })
	if err != nil {
		return "", false, err
	}
	if fs.HeaderBytes > len(data) {
		return "", false, symmetric.ErrDecryptionFailed
	}
	body := data[fs.HeaderBytes:]

	outPath := file.OutPath
	var priv *header.PrivateHeader
	payloadCT := body
	if meta := fs.Header.PrivateMeta(); meta != nil {
		sink.StartPrivateHeaderForFile(file)
		priv, payloadCT, err = splitPrivateHeader(body, meta, stretched, salt, fs.Strategy)
		if err != nil {
			return "", false, err
		}
		if fs.Header.Options().Has(config.OptionHideMeta) && priv.Filename != "" {
			outPath = restoredPath(file, conf.OutputDir(), priv.Filename)
		}
	}

	compressed, err := symmetric.DecryptCascade(payloadCT, stretched, &salt, fs.Strategy.SymmetricAlgs,
		func(alg symmetric.SymAlg) { sink.StartSymAlgForFile(alg, file) })
	if err != nil {
		return "", false, err
	}
	plain, err := compress.Decompress(compressed, fs.Strategy.Compression,
		func(alg compress.CompressionAlg) { sink.StartCompressAlgForFile(alg, file) })
	if err != nil {
		return "", false, err
	}

	actual := checksum.Calculate(plain, func() { sink.StartChecksumForFile(file) })
	checksumOk := validateChecksum(actual, fs.Header.DataChecksum(), conf.Verbosity(), file.InPath)

	outFile := *file
	outFile.OutPath = outPath
	if err := fileops.WriteOutput(&outFile, [][]byte{plain}, conf.Overwrite(),
		func() { sink.StartWriteForFile(file) }); err != nil {
		return "", false, err
	}
	if priv != nil {
		fileops.RestoreMetadata(outPath, priv.Permissions, priv.ModifiedNs, priv.AccessedNs)
	}
	if conf.DeleteInput() {
		if err := fileops.DeleteInput(file, func() { sink.StartShredInputForFile(file) },
			conf.Verbosity().Debug()); err != nil {
			return "", false, err
		}
	}
	if !conf.Verbosity().Quiet() {
		fmt.Printf("successfully decrypted '%s' to '%s' (%s)\n",
			file.InPath, outPath, util.Sizeify(int64(len(plain))))
	}
	return outPath, checksumOk, nil
}

// splitPrivateHeader cuts the encrypted private header off the body,
// decrypts and verifies it, and truncates the rest to the payload length
// recorded inside (discarding any size-hiding padding).
func splitPrivateHeader(body []byte, meta *header.PrivateMeta, stretched *key.StretchKey,
	salt key.Salt, strat *header.Strategy) (*header.PrivateHeader, []byte, error) {
	if meta.EncryptedLength > uint64(len(body)) {
		return nil, nil, symmetric.ErrDecryptionFailed
	}
	privCT := body[:meta.EncryptedLength]
	rest := body[meta.EncryptedLength:]

	privBytes, err := symmetric.DecryptCascade(privCT, stretched, &salt, strat.SymmetricAlgs, nil)
	if err != nil {
		return nil, nil, err
	}
	if !checksum.Calculate(privBytes, nil).Equal(meta.Checksum) {
		return nil, nil, fmt.Errorf("%w: private header checksum mismatch", symmetric.ErrDecryptionFailed)
	}
	priv, err := header.ParsePrivateHeader(bytes.NewReader(privBytes))
	if err != nil {
		return nil, nil, err
	}
	if priv.PayloadSize > uint64(len(rest)) {
		return nil, nil, symmetric.ErrDecryptionFailed
	}
	return priv, rest[:priv.PayloadSize], nil
}

// restoredPath places a filename recovered from the private header either
// in the configured output directory or alongside the input.
func restoredPath(file *fileops.FileInfo, outputDir, filename string) string {
	// The stored name never contains a directory, but a hostile artifact
	// could try; keep only the base name.
	filename = filepath.Base(filename)
	if outputDir != "" {
		return filepath.Join(outputDir, filename)
	}
	return filepath.Join(filepath.Dir(file.InPath), filename)
}

func validateChecksum(actual, expected checksum.Checksum, verbosity config.Verbosity, name string) bool {
	if actual.Equal(expected) {
		return true
	}
	if verbosity.Quiet() {
		return false
	}
	detail := ""
	if verbosity.Debug() {
		detail = fmt.Sprintf(" (expected %s, actually %s)", expected, actual)
	}
	fmt.Fprintf(os.Stderr, "warning: checksum for '%s' did not match! the decrypted file may contain garbage%s\n",
		name, detail)
	return false
}
