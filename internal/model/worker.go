package model

// Worker is one registration record, keyed by its caller-supplied health ID.
type Worker struct {
	HealthID           string `db:"health_id" json:"health_id"`
	FullName           string `db:"full_name" json:"full_name"`
	Age                int    `db:"age" json:"age"`
	Gender             string `db:"gender" json:"gender"`
	Phone              string `db:"phone" json:"phone"`
	Address            string `db:"address" json:"address"`
	NativeState        string `db:"native_state" json:"native_state"`
	BloodGroup         string `db:"blood_group" json:"blood_group"`
	MaritalStatus      string `db:"marital_status" json:"marital_status"`
	Language           string `db:"language" json:"language"`
	FinancialStatus    string `db:"financial_status" json:"financial_status"`
	Allergies          string `db:"allergies" json:"allergies"`
	Conditions         string `db:"conditions" json:"conditions"`
	InheritedDiseases  string `db:"inherited_diseases" json:"inherited_diseases"`
	PreviousTreatments string `db:"previous_treatments" json:"previous_treatments"`
	VaccinationCount   int    `db:"vaccination_count" json:"vaccination_count"`
	RegistrationDate   string `db:"registration_date" json:"registration_date"`
	FaceFilename       string `db:"face_filename" json:"face_filename"`
	QRFilename         string `db:"qr_filename" json:"qr_filename"`
}

// WorkerSummary is the projection returned by the list endpoint.
type WorkerSummary struct {
	HealthID         string `db:"health_id" json:"health_id"`
	FullName         string `db:"full_name" json:"full_name"`
	Age              int    `db:"age" json:"age"`
	Gender           string `db:"gender" json:"gender"`
	Phone            string `db:"phone" json:"phone"`
	Address          string `db:"address" json:"address"`
	NativeState      string `db:"native_state" json:"native_state"`
	BloodGroup       string `db:"blood_group" json:"blood_group"`
	MaritalStatus    string `db:"marital_status" json:"marital_status"`
	Language         string `db:"language" json:"language"`
	FinancialStatus  string `db:"financial_status" json:"financial_status"`
	RegistrationDate string `db:"registration_date" json:"registration_date"`
}

// RegisterWorkerRequest carries the external camelCase field names; the
// service translates them to the snake_case storage schema.
type RegisterWorkerRequest struct {
	HealthID           string      `json:"healthId"`
	FullName           string      `json:"fullName"`
	Age                interface{} `json:"age"`
	Gender             string      `json:"gender"`
	Phone              string      `json:"phone"`
	Address            string      `json:"address"`
	NativeState        string      `json:"nativeState"`
	BloodGroup         string      `json:"bloodGroup"`
	MaritalStatus      string      `json:"maritalStatus"`
	Language           string      `json:"language"`
	FinancialStatus    string      `json:"financialStatus"`
	Allergies          string      `json:"allergies"`
	Conditions         string      `json:"conditions"`
	InheritedDiseases  string      `json:"inheritedDiseases"`
	PreviousTreatments string      `json:"previousTreatments"`
	VaccinationCount   interface{} `json:"vaccinationCount"`
	RegistrationDate   string      `json:"registrationDate"`
	FaceImage          string      `json:"faceImage"`
}

// RegisterWorkerResponse is the 201 body for a saved registration.
type RegisterWorkerResponse struct {
	Message  string  `json:"message"`
	HealthID string  `json:"healthId"`
	QRURL    string  `json:"qrUrl"`
	FaceURL  *string `json:"faceUrl"`
}

func (w *WorkerSummary) FromWorker(worker *Worker) {
	w.HealthID = worker.HealthID
	w.FullName = worker.FullName
	w.Age = worker.Age
	w.Gender = worker.Gender
	w.Phone = worker.Phone
	w.Address = worker.Address
	w.NativeState = worker.NativeState
	w.BloodGroup = worker.BloodGroup
	w.MaritalStatus = worker.MaritalStatus
	w.Language = worker.Language
	w.FinancialStatus = worker.FinancialStatus
	w.RegistrationDate = worker.RegistrationDate
}
