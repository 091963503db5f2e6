// Package dicomdate reads dates from the DA elements of DICOM files, so candidates can be
// generated for a patient's birth date or a study date without typing them in.
package dicomdate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
	"golang.org/x/sync/errgroup"

	"github.com/mrsinham/dateomatic/internal/candidates"
	"github.com/mrsinham/dateomatic/internal/logger"
)

var (
	// ErrInvalidDA indicates a value that is not a full DICOM date.
	ErrInvalidDA = errors.New("dicomdate: value is not a YYYYMMDD date")
	// ErrUnknownTag indicates an unsupported tag name.
	ErrUnknownTag = errors.New("dicomdate: unsupported date tag")
	// ErrEmptyElement indicates the element exists but holds no value.
	ErrEmptyElement = errors.New("dicomdate: element has no value")
	// ErrNoFiles indicates the given paths hold no DICOM file.
	ErrNoFiles = errors.New("dicomdate: no DICOM files found")
)

// preambleLength is the DICOM Part 10 preamble; the "DICM" magic word follows it.
const preambleLength = 128

// supportedTags are the DA elements that make sense as a date source, in help order.
var supportedTags = []struct {
	name string
	tag  tag.Tag
}{
	{"PatientBirthDate", tag.PatientBirthDate},
	{"StudyDate", tag.StudyDate},
	{"SeriesDate", tag.SeriesDate},
	{"AcquisitionDate", tag.AcquisitionDate},
	{"ContentDate", tag.ContentDate},
}

// TagNames returns the names accepted by ParseTag.
func TagNames() []string {
	names := make([]string, len(supportedTags))
	for i, st := range supportedTags {
		names[i] = st.name
	}
	return names
}

// ParseTag parses a DA tag name, case-insensitively.
func ParseTag(name string) (tag.Tag, error) {
	for _, st := range supportedTags {
		if strings.EqualFold(st.name, name) {
			return st.tag, nil
		}
	}
	return tag.Tag{}, fmt.Errorf("%w %q (valid: %s)", ErrUnknownTag, name, strings.Join(TagNames(), ", "))
}

// ParseDA parses a DICOM DA value: "YYYYMMDD", or the pre-3.0 "YYYY.MM.DD" form.
// Partial dates such as "YYYY" or "YYYYMM" are rejected. The result is range-checked.
func ParseDA(value string) (candidates.Date, error) {
	v := strings.TrimSpace(value)
	if len(v) == 10 && v[4] == '.' && v[7] == '.' {
		v = v[:4] + v[5:7] + v[8:]
	}
	if len(v) != 8 || strings.Trim(v, "0123456789") != "" {
		return candidates.Date{}, fmt.Errorf("%w: %q", ErrInvalidDA, value)
	}
	d, err := candidates.ParseDate(v[6:8], v[4:6], v[0:4])
	if err != nil {
		return candidates.Date{}, fmt.Errorf("%w: %q", ErrInvalidDA, value)
	}
	if err := d.Validate(); err != nil {
		return candidates.Date{}, fmt.Errorf("%w: %q: %w", ErrInvalidDA, value, err)
	}
	return d, nil
}

// ReadFile parses path, skipping pixel data, and returns the date held by t.
func ReadFile(path string, t tag.Tag) (candidates.Date, error) {
	ds, err := dicom.ParseFile(path, nil, dicom.SkipPixelData())
	if err != nil {
		return candidates.Date{}, fmt.Errorf("parse %s: %w", path, err)
	}
	elem, err := ds.FindElementByTag(t)
	if err != nil {
		return candidates.Date{}, fmt.Errorf("%s: find %s: %w", path, t, err)
	}
	values, ok := elem.Value.GetValue().([]string)
	if !ok || len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		return candidates.Date{}, fmt.Errorf("%s: %s: %w", path, t, ErrEmptyElement)
	}
	d, err := ParseDA(values[0])
	if err != nil {
		return candidates.Date{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// hasPreamble reports whether path starts with the Part 10 preamble and magic word.
func hasPreamble(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	header := make([]byte, preambleLength+4)
	if _, err := io.ReadFull(f, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	return string(header[preambleLength:]) == "DICM", nil
}

// ExpandPaths replaces each directory in paths by the DICOM files below it, in lexical
// order. While walking, DICOMDIR index files, non-regular files and files without the
// DICOM preamble (READMEs, .DS_Store) are skipped and logged at debug level. Paths that
// are not directories are kept as given. A nil log discards the skip messages.
func ExpandPaths(paths []string, log *logger.Logger) ([]string, error) {
	if log == nil {
		log = logger.Nop()
	}
	var files []string
	for _, p := range paths {
		err := filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			switch {
			case d.IsDir():
				return nil
			case path == p:
				files = append(files, path)
				return nil
			case !d.Type().IsRegular() || d.Name() == "DICOMDIR":
				log.Debugw("skipping file", "path", path, "reason", "index or special file")
				return nil
			}
			ok, err := hasPreamble(path)
			if err != nil {
				return err
			}
			if !ok {
				log.Debugw("skipping file", "path", path, "reason", "no DICOM preamble")
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
	}
	return files, nil
}

// ReadAll expands paths and reads t from every file with at most workers files in flight.
// Dates are returned in file order. The first failure cancels the remaining reads, and
// paths holding no DICOM file at all fail with ErrNoFiles.
func ReadAll(ctx context.Context, paths []string, t tag.Tag, workers int, log *logger.Logger) ([]candidates.Date, error) {
	files, err := ExpandPaths(paths, log)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, strings.Join(paths, ", "))
	}
	if workers < 1 {
		workers = 1
	}

	dates := make([]candidates.Date, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := ReadFile(file, t)
			if err != nil {
				return err
			}
			dates[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dates, nil
}
