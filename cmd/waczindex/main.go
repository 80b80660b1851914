package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/archivebox/waczindex/indexer"
	"github.com/archivebox/waczindex/manifest"
	"github.com/archivebox/waczindex/wacz"
)

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("waczindex"),
		kong.Description("Packages a WARC file into a WACZ archive with a CDXJ index and pages manifest."),
	)

	if cli.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := run(cli); err != nil {
		logrus.Errorf("%s", err)
		os.Exit(1)
	}
}

func run(cli CLI) error {
	logrus.Debugf("indexing %s", cli.WarcPath)

	records, err := indexer.IndexFile(cli.WarcPath)
	if err != nil {
		return errors.Wrap(err, "index warc file")
	}
	logrus.Infof("retained %d of the file's records", len(records))

	cdxjText, err := indexer.CDXJ(records)
	if err != nil {
		return errors.Wrap(err, "render cdxj index")
	}

	pagesText, err := indexer.Pages(records)
	if err != nil {
		return errors.Wrap(err, "render pages manifest")
	}

	warcBytes, err := os.ReadFile(cli.WarcPath)
	if err != nil {
		return errors.Wrap(err, "read warc file")
	}

	warcName := filepath.Base(cli.WarcPath)
	m := manifest.Build(warcName, warcBytes, []byte(cdxjText), []byte(pagesText), time.Now())
	manifestBytes, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal manifest")
	}
	digestPath, digestHash, err := manifest.Digest(m)
	if err != nil {
		return errors.Wrap(err, "digest manifest")
	}
	logrus.Debugf("%s digest %s", digestPath, digestHash)

	outputPath := cli.Output
	if outputPath == "" {
		outputPath = defaultOutputPath(cli.WarcPath)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return errors.Wrap(err, "create output archive")
	}
	defer out.Close()

	if err := wacz.Write(out, warcName, warcBytes, []byte(cdxjText), []byte(pagesText), manifestBytes); err != nil {
		return errors.Wrap(err, "write wacz archive")
	}

	logrus.Infof("wrote %s", outputPath)
	return nil
}

// defaultOutputPath derives the .wacz output path from the input WARC
// path when --output was not given: strip a trailing .warc.gz or .warc
// and append .wacz.
func defaultOutputPath(warcPath string) string {
	base := filepath.Base(warcPath)
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, ".warc")
	return base + ".wacz"
}
