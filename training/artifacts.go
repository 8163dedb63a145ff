package training

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/admetric/campaignml/core/model"
	"github.com/admetric/campaignml/pipeline"
	"github.com/admetric/campaignml/pkg/errors"
	"github.com/admetric/campaignml/pkg/log"
)

// ArtifactStore persists trained pipelines under one directory. Each model
// is written twice per run: a versioned file that never collides with prior
// runs, and a "latest" file that overwrites the previous latest. Concurrent
// runs sharing a directory are unsafe by contract; no locking is provided.
type ArtifactStore struct {
	dir    string
	logger log.Logger
}

// NewArtifactStore creates the artifact directory if needed and returns a
// store rooted there.
func NewArtifactStore(dir string) (*ArtifactStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create artifacts directory")
	}
	return &ArtifactStore{
		dir:    dir,
		logger: log.GetLoggerWithName("training").With(log.ComponentKey, "artifacts"),
	}, nil
}

// VersionedPath returns the collision-free path for one run's artifact.
func (s *ArtifactStore) VersionedPath(name, version string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.gob", name, version))
}

// LatestPath returns the stable path the serving layer loads.
func (s *ArtifactStore) LatestPath(name string) string {
	return filepath.Join(s.dir, name+".gob")
}

// Save persists p to both the versioned and the latest path.
func (s *ArtifactStore) Save(name, version string, p *pipeline.Pipeline) error {
	versioned := s.VersionedPath(name, version)
	if err := model.SaveModel(p, versioned); err != nil {
		return errors.Wrapf(err, "failed to persist %s artifact", name)
	}
	if err := model.SaveModel(p, s.LatestPath(name)); err != nil {
		return errors.Wrapf(err, "failed to persist %s latest artifact", name)
	}
	s.logger.Debug("Artifact persisted",
		log.OperationKey, log.OperationPersist,
		log.ModelNameKey, name,
		log.VersionKey, version,
		log.PathKey, versioned,
	)
	return nil
}

// LoadLatest restores the latest artifact for name. The returned pipeline
// satisfies the serving layer's predict contract.
func (s *ArtifactStore) LoadLatest(name string) (*pipeline.Pipeline, error) {
	var p pipeline.Pipeline
	if err := model.LoadModel(&p, s.LatestPath(name)); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadVersion restores a specific run's artifact for name.
func (s *ArtifactStore) LoadVersion(name, version string) (*pipeline.Pipeline, error) {
	var p pipeline.Pipeline
	if err := model.LoadModel(&p, s.VersionedPath(name, version)); err != nil {
		return nil, err
	}
	return &p, nil
}
