// Package store keeps the application's records: patients, finalized
// prescriptions, the doctor profile and the imported medicine catalog.
// Every record carries an owner id and every read is scoped to one owner.
//
// Records live in an in-memory transactional database and can be
// snapshotted to a YAML file between runs.
package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-memdb"

	"github.com/mrsinham/rxforge/internal/prescription"
)

// PersistenceError reports a failed storage operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func failed(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// Patient is a demographic record created when a prescription is finalized.
type Patient struct {
	ID        string    `yaml:"id"`
	OwnerID   string    `yaml:"owner_id"`
	Name      string    `yaml:"name"`
	Age       int       `yaml:"age"`
	Gender    string    `yaml:"gender"`
	Contact   string    `yaml:"contact"`
	Address   string    `yaml:"address,omitempty"`
	CreatedAt time.Time `yaml:"created_at"`
}

// Prescription is a finalized prescription linked to its patient record.
type Prescription struct {
	ID        string             `yaml:"id"`
	OwnerID   string             `yaml:"owner_id"`
	PatientID string             `yaml:"patient_id"`
	Draft     prescription.Draft `yaml:"draft"`
	CreatedAt time.Time          `yaml:"created_at"`
}

// Medicine is one entry of the imported reference catalog.
type Medicine struct {
	ID           string `yaml:"id"`
	OwnerID      string `yaml:"owner_id"`
	Name         string `yaml:"name"`
	Manufacturer string `yaml:"manufacturer,omitempty"`
	Composition1 string `yaml:"composition1,omitempty"`
	Composition2 string `yaml:"composition2,omitempty"`
	Category     string `yaml:"category,omitempty"`
}

// Doctor is the owner's profile, keyed directly by owner id.
type Doctor struct {
	OwnerID        string                  `yaml:"owner_id"`
	Name           string                  `yaml:"name"`
	Specialization string                  `yaml:"specialization,omitempty"`
	LicenseNumber  string                  `yaml:"license_number,omitempty"`
	Clinic         prescription.ClinicInfo `yaml:"clinic"`
}

var schema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		"patient": {
			Name: "patient",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				"owner": {
					Name:    "owner",
					Indexer: &memdb.StringFieldIndex{Field: "OwnerID"},
				},
			},
		},
		"prescription": {
			Name: "prescription",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				"owner": {
					Name:    "owner",
					Indexer: &memdb.StringFieldIndex{Field: "OwnerID"},
				},
			},
		},
		"medicine": {
			Name: "medicine",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				"owner": {
					Name:    "owner",
					Indexer: &memdb.StringFieldIndex{Field: "OwnerID"},
				},
			},
		},
		"doctor": {
			Name: "doctor",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "OwnerID"},
				},
			},
		},
	},
}

// Store wraps the in-memory database. The zero value is not usable; call New.
type Store struct {
	db    *memdb.MemDB
	now   func() time.Time
	newID func() (string, error)
}

// Option adjusts a Store at construction time, used by tests to pin the
// clock and the id sequence.
type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDSource(newID func() (string, error)) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates an empty store.
func New(opts ...Option) (*Store, error) {
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, failed("init", err)
	}
	s := &Store{
		db:  db,
		now: time.Now,
		newID: func() (string, error) {
			id, err := uuid.NewV4()
			if err != nil {
				return "", err
			}
			return id.String(), nil
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CreatePatient inserts a new patient record and returns it with its
// generated id and creation time filled in.
func (s *Store) CreatePatient(ownerID string, info prescription.PatientInfo) (Patient, error) {
	id, err := s.newID()
	if err != nil {
		return Patient{}, failed("create patient", err)
	}
	p := Patient{
		ID:        id,
		OwnerID:   ownerID,
		Name:      info.Name,
		Age:       info.Age,
		Gender:    string(info.Gender),
		Contact:   info.Contact,
		Address:   info.Address,
		CreatedAt: s.now().UTC(),
	}
	txn := s.db.Txn(true)
	if err := txn.Insert("patient", &p); err != nil {
		txn.Abort()
		return Patient{}, failed("create patient", err)
	}
	txn.Commit()
	return p, nil
}

// DeletePatient removes a patient record. It is used to unwind a partially
// finalized prescription; deleting an absent id is not an error.
func (s *Store) DeletePatient(ownerID, id string) error {
	txn := s.db.Txn(true)
	raw, err := txn.First("patient", "id", id)
	if err != nil {
		txn.Abort()
		return failed("delete patient", err)
	}
	p, ok := raw.(*Patient)
	if !ok || p.OwnerID != ownerID {
		txn.Abort()
		return nil
	}
	if err := txn.Delete("patient", p); err != nil {
		txn.Abort()
		return failed("delete patient", err)
	}
	txn.Commit()
	return nil
}

// CreatePrescription inserts a finalized prescription linked to an existing
// patient record.
func (s *Store) CreatePrescription(ownerID, patientID string, draft prescription.Draft) (Prescription, error) {
	id, err := s.newID()
	if err != nil {
		return Prescription{}, failed("create prescription", err)
	}
	rec := Prescription{
		ID:        id,
		OwnerID:   ownerID,
		PatientID: patientID,
		Draft:     draft,
		CreatedAt: s.now().UTC(),
	}
	txn := s.db.Txn(true)
	raw, err := txn.First("patient", "id", patientID)
	if err != nil {
		txn.Abort()
		return Prescription{}, failed("create prescription", err)
	}
	if p, ok := raw.(*Patient); !ok || p.OwnerID != ownerID {
		txn.Abort()
		return Prescription{}, failed("create prescription", fmt.Errorf("patient %s not found", patientID))
	}
	if err := txn.Insert("prescription", &rec); err != nil {
		txn.Abort()
		return Prescription{}, failed("create prescription", err)
	}
	txn.Commit()
	return rec, nil
}

// GetPrescription returns one prescription by id, scoped to the owner.
func (s *Store) GetPrescription(ownerID, id string) (Prescription, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()
	raw, err := txn.First("prescription", "id", id)
	if err != nil {
		return Prescription{}, failed("get prescription", err)
	}
	rec, ok := raw.(*Prescription)
	if !ok || rec.OwnerID != ownerID {
		return Prescription{}, failed("get prescription", fmt.Errorf("prescription %s not found", id))
	}
	return *rec, nil
}

// ListPrescriptionsByOwner returns the owner's prescriptions, newest first.
func (s *Store) ListPrescriptionsByOwner(ownerID string) ([]Prescription, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()
	it, err := txn.Get("prescription", "owner", ownerID)
	if err != nil {
		return nil, failed("list prescriptions", err)
	}
	var out []Prescription
	for raw := it.Next(); raw != nil; raw = it.Next() {
		out = append(out, *raw.(*Prescription))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// PutMedicines replaces the owner's medicine catalog with the given batch
// in a single transaction. Either every row lands or none do.
func (s *Store) PutMedicines(ownerID string, meds []Medicine) error {
	txn := s.db.Txn(true)
	if _, err := txn.DeleteAll("medicine", "owner", ownerID); err != nil {
		txn.Abort()
		return failed("put medicines", err)
	}
	for i := range meds {
		m := meds[i]
		m.OwnerID = ownerID
		if m.ID == "" {
			id, err := s.newID()
			if err != nil {
				txn.Abort()
				return failed("put medicines", err)
			}
			m.ID = id
		}
		if err := txn.Insert("medicine", &m); err != nil {
			txn.Abort()
			return failed("put medicines", err)
		}
	}
	txn.Commit()
	return nil
}

// ListMedicinesByOwner returns the owner's catalog sorted by name.
func (s *Store) ListMedicinesByOwner(ownerID string) ([]Medicine, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()
	it, err := txn.Get("medicine", "owner", ownerID)
	if err != nil {
		return nil, failed("list medicines", err)
	}
	var out []Medicine
	for raw := it.Next(); raw != nil; raw = it.Next() {
		out = append(out, *raw.(*Medicine))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// PutDoctor upserts the owner's profile.
func (s *Store) PutDoctor(d Doctor) error {
	if d.OwnerID == "" {
		return failed("put doctor", fmt.Errorf("missing owner id"))
	}
	txn := s.db.Txn(true)
	if err := txn.Insert("doctor", &d); err != nil {
		txn.Abort()
		return failed("put doctor", err)
	}
	txn.Commit()
	return nil
}

// GetDoctor returns the owner's profile, or ok=false when none is stored.
func (s *Store) GetDoctor(ownerID string) (Doctor, bool, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()
	raw, err := txn.First("doctor", "id", ownerID)
	if err != nil {
		return Doctor{}, false, failed("get doctor", err)
	}
	if raw == nil {
		return Doctor{}, false, nil
	}
	return *raw.(*Doctor), true, nil
}
