package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// snapshot is the on-disk form of the whole database.
type snapshot struct {
	Patients      []Patient      `yaml:"patients,omitempty"`
	Prescriptions []Prescription `yaml:"prescriptions,omitempty"`
	Medicines     []Medicine     `yaml:"medicines,omitempty"`
	Doctors       []Doctor       `yaml:"doctors,omitempty"`
}

// SaveToYAML writes the full database to a YAML file, creating parent
// directories as needed.
func (s *Store) SaveToYAML(path string) error {
	var snap snapshot

	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get("patient", "id")
	if err != nil {
		return failed("save", err)
	}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		snap.Patients = append(snap.Patients, *raw.(*Patient))
	}
	it, err = txn.Get("prescription", "id")
	if err != nil {
		return failed("save", err)
	}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		snap.Prescriptions = append(snap.Prescriptions, *raw.(*Prescription))
	}
	it, err = txn.Get("medicine", "id")
	if err != nil {
		return failed("save", err)
	}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		snap.Medicines = append(snap.Medicines, *raw.(*Medicine))
	}
	it, err = txn.Get("doctor", "id")
	if err != nil {
		return failed("save", err)
	}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		snap.Doctors = append(snap.Doctors, *raw.(*Doctor))
	}

	data, err := yaml.Marshal(&snap)
	if err != nil {
		return failed("save", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return failed("save", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return failed("save", err)
	}
	return nil
}

// LoadFromYAML opens a store from a YAML snapshot. A missing file yields an
// empty store, so first runs need no setup.
func LoadFromYAML(path string, opts ...Option) (*Store, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, failed("load", err)
	}

	var snap snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, failed("load", fmt.Errorf("parsing %s: %w", path, err))
	}

	txn := s.db.Txn(true)
	for i := range snap.Patients {
		if err := txn.Insert("patient", &snap.Patients[i]); err != nil {
			txn.Abort()
			return nil, failed("load", err)
		}
	}
	for i := range snap.Prescriptions {
		if err := txn.Insert("prescription", &snap.Prescriptions[i]); err != nil {
			txn.Abort()
			return nil, failed("load", err)
		}
	}
	for i := range snap.Medicines {
		if err := txn.Insert("medicine", &snap.Medicines[i]); err != nil {
			txn.Abort()
			return nil, failed("load", err)
		}
	}
	for i := range snap.Doctors {
		if err := txn.Insert("doctor", &snap.Doctors[i]); err != nil {
			txn.Abort()
			return nil, failed("load", err)
		}
	}
	txn.Commit()
	return s, nil
}
