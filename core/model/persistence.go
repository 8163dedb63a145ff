package model

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/admetric/campaignml/pkg/errors"
)

// SaveModel persists a trained estimator to path using gob encoding. The
// file is created or truncated. Concrete estimator types reachable through
// interface fields must be registered with gob.Register beforehand.
func SaveModel(m interface{}, path string) (err error) {
	defer errors.Recover(&err, "model.SaveModel")

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create model file")
	}
	defer func() { _ = f.Close() }()

	return SaveModelToWriter(m, f)
}

// SaveModelToWriter persists a trained estimator to w using gob encoding.
func SaveModelToWriter(m interface{}, w io.Writer) (err error) {
	defer errors.Recover(&err, "model.SaveModelToWriter")

	if err := gob.NewEncoder(w).Encode(m); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

// LoadModel restores a persisted estimator from path into m, which must be
// a pointer to the same concrete type that was saved.
func LoadModel(m interface{}, path string) (err error) {
	defer errors.Recover(&err, "model.LoadModel")

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrFileNotFound, path)
		}
		return errors.Wrap(err, "failed to open model file")
	}
	defer func() { _ = f.Close() }()

	return LoadModelFromReader(m, f)
}

// LoadModelFromReader restores a persisted estimator from r into m.
func LoadModelFromReader(m interface{}, r io.Reader) (err error) {
	defer errors.Recover(&err, "model.LoadModelFromReader")

	if err := gob.NewDecoder(r).Decode(m); err != nil {
		return errors.Wrap(err, "failed to decode model")
	}
	return nil
}
