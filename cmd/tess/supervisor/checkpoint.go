package supervisor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LoadCheckpoint reads a RunState back from a checkpoint file.
//
// The embedded graph is validated again; a checkpoint that cannot be
// supervised (hand-edited into a cycle, say) is rejected here, before
// anything is submitted.
func LoadCheckpoint(path string) (*RunState, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	state := RunState{}
	if err := json.Unmarshal(buf, &state); err != nil {
		return nil, fmt.Errorf("broken checkpoint %s: %w", path, err)
	}
	if state.RunId == "" {
		return nil, fmt.Errorf("broken checkpoint %s: no run id", path)
	}
	if err := validateGraph(state.Nodes); err != nil {
		return nil, fmt.Errorf("broken checkpoint %s: %w", path, err)
	}
	return &state, nil
}

// Save writes the RunState to path, atomically.
//
// The snapshot goes to a temporary file in the same directory first and
// is renamed over path, so a crash mid-write never leaves a truncated
// checkpoint behind.
func (s *RunState) Save(path string) error {
	s.UpdatedAt = time.Now().Truncate(time.Second)

	buf, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
