package export

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Marshal renders the document as UTF-8 JSON. Pretty output is indented
// with four spaces and ends with a newline, plain output is compact.
func (d *Document) Marshal(pretty bool) ([]byte, error) {
	if pretty {
		data, err := json.MarshalIndent(d, "", "    ")
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to marshal document")
		}
		return append(data, '\n'), nil
	}

	data, err := json.Marshal(d)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to marshal document")
	}
	return data, nil
}

// WriteFile marshals the whole document in memory first, so a failing
// export never leaves a partial file behind.
func (d *Document) WriteFile(path string, pretty bool) error {
	data, err := d.Marshal(pretty)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "Failed to write %q", path)
	}
	return nil
}
