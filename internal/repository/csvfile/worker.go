package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/apnaswastha/registry-api/internal/model"
	"github.com/apnaswastha/registry-api/internal/repository"
	"github.com/apnaswastha/registry-api/pkg/apperror"
)

// Column order is fixed; the extended clinical columns default to empty,
// so one header serves both service variants.
var header = []string{
	"health_id", "full_name", "age", "gender", "phone", "address", "native_state",
	"blood_group", "marital_status", "language", "financial_status",
	"allergies", "conditions", "inherited_diseases", "previous_treatments", "vaccination_count",
	"registration_date", "face_filename", "qr_filename",
}

// workerRepository keeps every record in a single delimited file. Upsert
// is a read-all, replace-or-append, rewrite-whole-file cycle; the rewrite
// goes to a temp file that is renamed into place so a crash mid-write
// never leaves a torn file behind. A mutex serializes writers, which the
// whole-file rewrite requires for correctness.
type workerRepository struct {
	path string

	mu sync.Mutex
}

func NewWorkerRepository(path string) (repository.WorkerRepository, error) {
	r := &workerRepository{path: path}
	if err := r.ensureFile(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *workerRepository) ensureFile() error {
	if _, err := os.Stat(r.path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	return r.writeAll(nil)
}

func (r *workerRepository) Upsert(ctx context.Context, worker *model.Worker) error {
	if strings.TrimSpace(worker.HealthID) == "" {
		return apperror.NewValidation("healthId is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	workers, err := r.readAll()
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range workers {
		if existing.HealthID == worker.HealthID {
			workers[i] = worker
			replaced = true
			break
		}
	}
	if !replaced {
		workers = append(workers, worker)
	}

	return r.writeAll(workers)
}

func (r *workerRepository) GetByHealthID(ctx context.Context, healthID string) (*model.Worker, error) {
	r.mu.Lock()
	workers, err := r.readAll()
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	for _, w := range workers {
		if w.HealthID == healthID {
			return w, nil
		}
	}
	return nil, apperror.NewNotFound("worker")
}

func (r *workerRepository) List(ctx context.Context, limit int) ([]*model.Worker, error) {
	r.mu.Lock()
	workers, err := r.readAll()
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(workers, func(i, j int) bool {
		return workers[i].RegistrationDate > workers[j].RegistrationDate
	})
	if limit > 0 && len(workers) > limit {
		workers = workers[:limit]
	}
	return workers, nil
}

func (r *workerRepository) readAll() ([]*model.Worker, error) {
	f, err := os.Open(r.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open worker file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read worker file: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	workers := make([]*model.Worker, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(header) {
			continue
		}
		workers = append(workers, recordToWorker(row))
	}
	return workers, nil
}

// writeAll rewrites the full data set through a temp file plus rename.
func (r *workerRepository) writeAll(workers []*model.Worker) error {
	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".workers-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp worker file: %w", err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	rows := make([][]string, 0, len(workers)+1)
	rows = append(rows, header)
	for _, worker := range workers {
		rows = append(rows, workerToRecord(worker))
	}
	err = w.WriteAll(rows)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write worker file: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace worker file: %w", err)
	}
	return nil
}

func workerToRecord(w *model.Worker) []string {
	age := ""
	if w.Age > 0 {
		age = strconv.Itoa(w.Age)
	}
	return []string{
		w.HealthID, w.FullName, age, w.Gender, w.Phone, w.Address, w.NativeState,
		w.BloodGroup, w.MaritalStatus, w.Language, w.FinancialStatus,
		w.Allergies, w.Conditions, w.InheritedDiseases, w.PreviousTreatments,
		strconv.Itoa(w.VaccinationCount),
		w.RegistrationDate, w.FaceFilename, w.QRFilename,
	}
}

func recordToWorker(row []string) *model.Worker {
	age, _ := strconv.Atoi(row[2])
	vaccinations, _ := strconv.Atoi(row[15])
	return &model.Worker{
		HealthID:           row[0],
		FullName:           row[1],
		Age:                age,
		Gender:             row[3],
		Phone:              row[4],
		Address:            row[5],
		NativeState:        row[6],
		BloodGroup:         row[7],
		MaritalStatus:      row[8],
		Language:           row[9],
		FinancialStatus:    row[10],
		Allergies:          row[11],
		Conditions:         row[12],
		InheritedDiseases:  row[13],
		PreviousTreatments: row[14],
		VaccinationCount:   vaccinations,
		RegistrationDate:   row[16],
		FaceFilename:       row[17],
		QRFilename:         row[18],
	}
}
