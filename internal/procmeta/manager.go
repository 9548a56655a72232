package procmeta

import (
	"sort"
	"sync"
)

// Manager collects the metadata of one inspection run.
type Manager struct {
	mu             sync.RWMutex
	metadata       map[int]*ProcessMetadata // PID -> process metadata
	metadataErrors map[int]error            // PID -> metadata collection errors
	collectIssues  map[int][]string         // PID -> list of warnings/issues
}

// NewManager creates a new process metadata manager.
func NewManager() *Manager {
	return &Manager{
		metadata:       make(map[int]*ProcessMetadata),
		metadataErrors: make(map[int]error),
		collectIssues:  make(map[int][]string),
	}
}

// Get retrieves metadata for a PID (query).
// Returns nil if no metadata exists for this PID.
func (m *Manager) Get(pid int) *ProcessMetadata {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.metadata[pid]
}

// GetError retrieves the metadata collection error for a PID (query).
// Returns nil if no error exists for this PID.
func (m *Manager) GetError(pid int) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.metadataErrors[pid]
}

// GetIssues retrieves the collection issues for a PID (query).
// Returns nil if no issues exist for this PID.
func (m *Manager) GetIssues(pid int) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collectIssues[pid]
}

// PIDs returns every PID with metadata or an error, ascending (query).
func (m *Manager) PIDs() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[int]struct{}, len(m.metadata)+len(m.metadataErrors))
	for pid := range m.metadata {
		seen[pid] = struct{}{}
	}
	for pid := range m.metadataErrors {
		seen[pid] = struct{}{}
	}

	pids := make([]int, 0, len(seen))
	for pid := range seen {
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	return pids
}

// Set stores metadata for a PID (command).
// If metadata already exists, it is replaced.
func (m *Manager) Set(pid int, metadata *ProcessMetadata) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metadata[pid] = metadata
}

// SetError stores a metadata collection error for a PID (command).
func (m *Manager) SetError(pid int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metadataErrors[pid] = err
}

// AddIssues adds multiple collection issues for a PID (command).
func (m *Manager) AddIssues(pid int, issues []string) {
	if len(issues) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collectIssues[pid] = append(m.collectIssues[pid], issues...)
}
