package contracts

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

//go:embed build/*.json
var buildFS embed.FS

// Artifact is a compiled contract as produced by the build step.
type Artifact struct {
	ContractName string `json:"contractName"`
	ABI          ABI    `json:"abi"`
	EVM          struct {
		Bytecode struct {
			Object string `json:"object"`
		} `json:"bytecode"`
	} `json:"evm"`
}

// Bytecode returns the creation code (evm.bytecode.object).
func (a *Artifact) Bytecode() string { return a.EVM.Bytecode.Object }

// ParseArtifact decodes an artifact and checks the fields callers rely on.
func ParseArtifact(b []byte) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if a.ContractName == "" {
		return nil, fmt.Errorf("artifact has no contractName")
	}
	if a.Bytecode() == "" {
		return nil, fmt.Errorf("artifact %s has no evm.bytecode.object", a.ContractName)
	}
	if len(a.ABI) == 0 {
		return nil, fmt.Errorf("artifact %s has an empty abi", a.ContractName)
	}
	return &a, nil
}

// ReadArtifact loads an artifact from disk.
func ReadArtifact(path string) (*Artifact, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseArtifact(b)
}

var (
	loadOnce  sync.Once
	factory   *Artifact
	campaign  *Artifact
	errLoaded error
)

func loadBuiltins() {
	load := func(name string) *Artifact {
		if errLoaded != nil {
			return nil
		}
		b, err := buildFS.ReadFile("build/" + name + ".json")
		if err != nil {
			errLoaded = err
			return nil
		}
		a, err := ParseArtifact(b)
		if err != nil {
			errLoaded = err
			return nil
		}
		return a
	}
	factory = load("CampaignFactory")
	campaign = load("Campaign")
}

// FactoryArtifact returns the embedded CampaignFactory artifact.
func FactoryArtifact() *Artifact {
	loadOnce.Do(loadBuiltins)
	if errLoaded != nil {
		panic(fmt.Sprintf("contracts: embedded artifacts: %v", errLoaded))
	}
	return factory
}

// CampaignArtifact returns the embedded Campaign artifact.
func CampaignArtifact() *Artifact {
	loadOnce.Do(loadBuiltins)
	if errLoaded != nil {
		panic(fmt.Sprintf("contracts: embedded artifacts: %v", errLoaded))
	}
	return campaign
}
