package cli

import (
	stderrors "errors"
	"io/fs"

	"github.com/AndreyAkinshin/tinytest/internal/errors"
	"github.com/AndreyAkinshin/tinytest/pkg/resultsfile"
)

// readDocuments loads every document from paths, in argument order.
func readDocuments(paths []string) ([]resultsfile.Document, error) {
	var docs []resultsfile.Document
	for _, path := range paths {
		found, err := resultsfile.ReadAll(path)
		if err != nil {
			return nil, documentError(err, path)
		}
		docs = append(docs, found...)
	}
	return docs, nil
}

// documentError classifies err: missing or unreadable files are environment
// errors, malformed content is a validation error.
func documentError(err error, path string) error {
	if stderrors.Is(err, fs.ErrNotExist) || stderrors.Is(err, fs.ErrPermission) {
		return errors.WrapKind(errors.KindEnvironment, err, "cannot read "+path)
	}
	return errors.Validation("invalid results file "+path, err)
}

// checkOutputPath rejects output paths whose extension has no encoding.
func checkOutputPath(path string) error {
	if _, err := resultsfile.FormatFor(path); err != nil {
		return errors.WrapKind(errors.KindConfig, err, "invalid output file")
	}
	return nil
}
