package store

import (
	"path/filepath"
	"sync"

	"crowdfund/internal/domain"
)

const deploymentsFile = "deployments.json"

// DeploymentFileStore records the factory deployed to each RPC endpoint.
type DeploymentFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewDeploymentFileStore returns a DeploymentFileStore rooted at dir.
func NewDeploymentFileStore(dir string) *DeploymentFileStore {
	return &DeploymentFileStore{dir: dir}
}

// SaveDeployment stores d, replacing any earlier record for d.RPCURL.
func (s *DeploymentFileStore) SaveDeployment(d domain.Deployment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, deploymentsFile)
	all := make(map[string]domain.Deployment)
	if err := readJSON(path, &all); err != nil {
		return err
	}
	all[d.RPCURL] = d
	return writeJSON(path, all, 0o600)
}

// LoadDeployment returns the record for rpcURL.
func (s *DeploymentFileStore) LoadDeployment(rpcURL string) (domain.Deployment, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make(map[string]domain.Deployment)
	if err := readJSON(filepath.Join(s.dir, deploymentsFile), &all); err != nil {
		return domain.Deployment{}, false, err
	}
	d, ok := all[rpcURL]
	return d, ok, nil
}

var _ domain.DeploymentStore = (*DeploymentFileStore)(nil)
