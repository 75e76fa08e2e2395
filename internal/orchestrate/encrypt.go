package orchestrate

import (
	"bytes"
	"fmt"

	"file_endec/internal/checksum"
	"file_endec/internal/compress"
	"file_endec/internal/config"
	"file_endec/internal/fileops"
	"file_endec/internal/header"
	"file_endec/internal/key"
	"file_endec/internal/log"
	"file_endec/internal/progress"
	"file_endec/internal/symmetric"
	"file_endec/internal/util"
)

// Encrypt runs the encryption pipeline over every file in the batch and
// returns the written output paths. The key is stretched once; each file
// gets its own pepper but shares the batch's public salt and stretched key.
func Encrypt(conf *config.EncryptConfig, sink progress.Sink) ([]string, error) {
	strat := header.CurrentStrategy(conf.Options())
	infos, err := fileops.InspectFiles(conf.Files(), conf.Verbosity(), conf.Overwrite(),
		conf.Extension(), conf.OutputDir())
	if err != nil {
		return nil, err
	}

	salt, err := key.NewSalt()
	if err != nil {
		return nil, err
	}
	stretched := key.Stretch(conf.RawKey(), &salt, strat.StretchCount, strat.KeyHashAlgs,
		func(alg key.KeyHashAlg) { sink.StartStretchAlg(alg, nil) })
	defer stretched.Wipe()

	outPaths := make([]string, 0, len(infos))
	for i := range infos {
		file := &infos[i]
		if err := encryptFile(conf, file, strat, salt, stretched, sink); err != nil {
			return nil, err
		}
		outPaths = append(outPaths, file.OutPath)
	}
	sink.Finish()
	if !conf.Verbosity().Quiet() {
		fmt.Printf("encrypted %d files\n", len(infos))
	}
	return outPaths, nil
}

func encryptFile(conf *config.EncryptConfig, file *fileops.FileInfo, strat *header.Strategy,
	salt key.Salt, stretched *key.StretchKey, sink progress.Sink) error {
	data, err := fileops.ReadFile(file, conf.Verbosity(), header.PubMarker,
		func() { sink.StartReadForFile(file) })
	if err != nil {
		return err
	}

	dataChecksum := checksum.Calculate(data, func() { sink.StartChecksumForFile(file) })

	compressed, err := compress.Compress(data, strat.Compression,
		func(alg compress.CompressionAlg) { sink.StartCompressAlgForFile(alg, file) })
	if err != nil {
		return err
	}

	payloadCT := symmetric.EncryptCascade(compressed, stretched, &salt, strat.SymmetricAlgs,
		func(alg symmetric.SymAlg) { sink.StartSymAlgForFile(alg, file) })

	sink.StartPrivateHeaderForFile(file)
	pepper, err := key.NewSalt()
	if err != nil {
		return err
	}
	priv := buildPrivateHeader(conf, file, pepper, uint64(len(payloadCT)))
	var privBuf bytes.Buffer
	if err := header.WritePrivateHeader(&privBuf, priv, conf.Options()); err != nil {
		return err
	}
	privChecksum := checksum.Calculate(privBuf.Bytes(), nil)
	privCT := symmetric.EncryptCascade(privBuf.Bytes(), stretched, &salt, strat.SymmetricAlgs, nil)

	padding, err := trailingPadding(conf.Options(), uint64(len(privCT))+uint64(len(payloadCT)))
	if err != nil {
		return err
	}

	pub := header.NewPublicHeader(header.CurrentVersion(), salt, dataChecksum, conf.Options(),
		header.PrivateMeta{EncryptedLength: uint64(len(privCT)), Checksum: privChecksum})
	var pubBuf bytes.Buffer
	if err := header.WritePublicHeader(&pubBuf, pub); err != nil {
		return err
	}

	if conf.DryRun() {
		if !conf.Verbosity().Quiet() {
			fmt.Printf("successfully encrypted '%s' (%s); not saving to '%s' because of dry-run\n",
				file.InPath, util.Sizeify(int64(len(payloadCT))), file.OutPath)
		}
		return nil
	}

	sections := [][]byte{pubBuf.Bytes(), privCT, payloadCT, padding}
	if err := fileops.WriteOutput(file, sections, conf.Overwrite(),
		func() { sink.StartWriteForFile(file) }); err != nil {
		return err
	}
	if conf.DeleteInput() {
		if err := fileops.DeleteInput(file, func() { sink.StartShredInputForFile(file) },
			conf.Verbosity().Debug()); err != nil {
			return err
		}
	}
	if conf.Verbosity().Debug() {
		log.Debug("encrypted file", log.String("in", file.InPath), log.String("out", file.OutPath),
			log.Int("payload_bytes", len(payloadCT)), log.Int("padding_bytes", len(padding)))
	}
	return nil
}

// buildPrivateHeader fills the metadata that travels encrypted with the
// file. Permissions and timestamps are recorded only under HideMeta (they
// are also only serialized then, but keeping them out entirely avoids
// accidental leaks).
func buildPrivateHeader(conf *config.EncryptConfig, file *fileops.FileInfo, pepper key.Salt, payloadSize uint64) *header.PrivateHeader {
	priv := &header.PrivateHeader{
		Filename:      file.Name(),
		PayloadSize:   payloadSize,
		Pepper:        pepper,
		PaddingLength: header.PaddingLengthFor(pepper),
	}
	if conf.Options().Has(config.OptionHideMeta) {
		perm := uint32(file.Permission)
		priv.Permissions = &perm
		if file.CreatedNs != 0 {
			created := file.CreatedNs
			priv.CreatedNs = &created
		}
		if file.ModifiedNs != 0 {
			modified := file.ModifiedNs
			priv.ModifiedNs = &modified
		}
		if file.AccessedNs != 0 {
			accessed := file.AccessedNs
			priv.AccessedNs = &accessed
		}
	}
	return priv
}

// trailingPadding aligns the combined encrypted length to the next power of
// two when PadSize is requested; otherwise there is none.
func trailingPadding(options config.EncOptionSet, encryptedLen uint64) ([]byte, error) {
	if !options.Has(config.OptionPadSize) {
		return nil, nil
	}
	padding := make([]byte, util.RemainderToPowerOfTwo(encryptedLen))
	if err := key.SecureRandom(padding); err != nil {
		return nil, err
	}
	return padding, nil
}
