package chipqc

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"io/ioutil"
	"log"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// ReadTable reads a delimited table into memory as untyped cells. The
// delimiter is detected from the content. Rows may have differing widths;
// typing and shape checks belong to the consumer of the table.
func ReadTable(r io.Reader) ([][]string, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	delim := DetermineDelimiter(data)

	fileCSV := csv.NewReader(bytes.NewReader(data))
	fileCSV.Comma = delim
	fileCSV.LazyQuotes = true
	fileCSV.FieldsPerRecord = -1

	rows, err := fileCSV.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}

	return rows, nil
}

// ReadTableFromPath opens path with OpenInput and reads it with ReadTable.
func ReadTableFromPath(ctx context.Context, path string, client *storage.Client) ([][]string, error) {
	f, err := OpenInput(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := ReadTable(f)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
	}

	log.Println("Loaded", path, "with", len(rows), "rows")

	return rows, nil
}
