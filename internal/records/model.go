package records

import (
	"time"

	"github.com/nilahealth/patient-booking/internal/scheduling"
)

// PatientProfile is the patient-maintained medical profile. Unset
// fields stay zero-valued; readers must tolerate partial shapes.
type PatientProfile struct {
	BloodType         string   `json:"bloodType"`
	Age               string   `json:"age"`
	Gender            string   `json:"gender"`
	EmergencyContact  string   `json:"emergencyContact"`
	Allergies         []string `json:"allergies"`
	MedicalConditions []string `json:"medicalConditions"`
}

// AppointmentRecord is the durable snapshot of the last confirmed
// booking. It is overwritten wholesale on every confirmation.
type AppointmentRecord struct {
	Doctor       string              `json:"doctor"`
	Specialty    string              `json:"specialty"`
	Date         string              `json:"date"` // YYYY-MM-DD
	Time         string              `json:"time"`
	Mode         scheduling.Mode     `json:"mode"`
	Location     scheduling.Location `json:"location"`
	PatientName  string              `json:"patient_name"`
	Email        string              `json:"email"`
	Phone        string              `json:"phone"`
	AmountRupees int                 `json:"amount_rupees"`
	Currency     string              `json:"currency"`
	OrderID      string              `json:"order_id"`
	PaymentID    string              `json:"payment_id"`
	Method       string              `json:"method"`
	Status       string              `json:"status"`
	BookedAt     time.Time           `json:"booked_at"`
	Patient      PatientProfile      `json:"patientInfo"`
}

// ModeDisplay renders the consultation mode as its dashboard label.
func (r *AppointmentRecord) ModeDisplay() string {
	return scheduling.FormatMode(r.Mode)
}
