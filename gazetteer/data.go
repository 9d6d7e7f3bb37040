package gazetteer

import (
	"embed"
	"io"
	"os"
	"path/filepath"

	"github.com/joakimwinum/weatherforecast/log"
	"github.com/morikuni/failure/v2"
)

//go:embed data/*.csv
var bundled embed.FS

var datasetFiles = map[Dataset]string{
	DatasetNorway:    "noreg.csv",
	DatasetNorwayZip: "postnummer.csv",
	DatasetWorld:     "verda.csv",
}

// FileName returns the file name of the dataset, e.g. "noreg.csv"
func FileName(dataset Dataset) (string, error) {
	name, ok := datasetFiles[dataset]
	if !ok {
		return "", failure.New(ErrUnknownDataset,
			failure.Message("Unknown search scope"),
			failure.Context{"dataset": dataset.String()},
		)
	}
	return name, nil
}

// Open returns the dataset file. If dataDir is empty the copy embedded
// in the binary is opened instead of a file on disk.
func Open(dataset Dataset, dataDir string) (io.ReadCloser, error) {
	name, err := FileName(dataset)
	if err != nil {
		return nil, err
	}

	var f io.ReadCloser
	if dataDir != "" {
		f, err = os.Open(filepath.Join(dataDir, name))
	} else {
		f, err = bundled.Open("data/" + name)
	}
	if err != nil {
		return nil, failure.Translate(err, ErrDataLoad,
			failure.Message("Failed to open dataset "+name),
			failure.Context{"dataset": dataset.String(), "dir": dataDir},
		)
	}
	return f, nil
}

// LoadDataset opens and projects a dataset
func LoadDataset(dataset Dataset, dataDir string, keys KeySet) ([]Record, error) {
	f, err := Open(dataset, dataDir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := Load(f, keys, LoadOptions{})
	if err != nil {
		return nil, failure.Wrap(err, failure.Context{"dataset": dataset.String()})
	}

	log.Debug("Dataset loaded", "dataset", dataset, "dir", dataDir, "rows", len(records))
	return records, nil
}
