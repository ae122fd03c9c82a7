package records

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/nilahealth/patient-booking/internal/scheduling"
)

// The original browser app persisted the appointment slot as a bag of
// per-screen objects (payment / otp / booking). DecodeRecord accepts
// both that shape and the current one, preferring payment fields and
// falling back to the booking draft, the way the old dashboard did.

type legacyPayment struct {
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	AppointmentDate string          `json:"appointmentDate"`
	AppointmentTime string          `json:"appointmentTime"`
	DoctorName      string          `json:"doctorName"`
	Specialization  string          `json:"specialization"`
	Mode            string          `json:"mode"`
	Amount          json.RawMessage `json:"amount"`
	PaymentID       string          `json:"paymentId"`
	Method          string          `json:"method"`
	Location        *struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"location"`
}

type legacyBooking struct {
	Therapist *struct {
		Name       string          `json:"name"`
		Role       string          `json:"role"`
		Specialty  string          `json:"specialty"`
		Price      json.RawMessage `json:"price"`
		Experience string          `json:"experience"`
	} `json:"therapist"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	ConsultationType string `json:"consultationType"`
	SelectedLocation *struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Facilities  []string `json:"facilities"`
	} `json:"selectedLocation"`
}

type legacyRecord struct {
	Payment *legacyPayment `json:"payment"`
	OTP     *struct {
		Phone string `json:"phone"`
	} `json:"otp"`
	Booking     *legacyBooking  `json:"booking"`
	PatientInfo *PatientProfile `json:"patientInfo"`
}

// DecodeRecord parses a stored appointment slot, mapping the original
// browser app's legacy shape when present.
func DecodeRecord(data []byte) (*AppointmentRecord, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("records: parse appointment slot: %w", err)
	}

	_, hasPayment := probe["payment"]
	_, hasBooking := probe["booking"]
	_, hasOTP := probe["otp"]
	if _, hasDoctor := probe["doctor"]; !hasDoctor && (hasPayment || hasBooking || hasOTP) {
		return decodeLegacyRecord(data)
	}

	var rec AppointmentRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("records: parse appointment record: %w", err)
	}
	return &rec, nil
}

func decodeLegacyRecord(data []byte) (*AppointmentRecord, error) {
	var legacy legacyRecord
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("records: parse legacy appointment slot: %w", err)
	}

	rec := AppointmentRecord{
		Method:   "razorpay",
		Status:   "completed",
		Currency: "INR",
		Location: scheduling.DefaultLocation(),
	}

	pay := legacy.Payment
	if pay == nil {
		pay = &legacyPayment{}
	}

	rec.PatientName = pay.Name
	rec.Email = pay.Email
	rec.Phone = pay.Phone
	rec.Date = pay.AppointmentDate
	rec.Time = pay.AppointmentTime
	rec.Doctor = pay.DoctorName
	rec.Specialty = pay.Specialization
	rec.Mode = scheduling.Mode(pay.Mode)
	rec.PaymentID = pay.PaymentID
	rec.AmountRupees = legacyAmount(pay.Amount)
	if pay.Method != "" {
		rec.Method = strings.ToLower(pay.Method)
	}
	if pay.Location != nil && pay.Location.Name != "" {
		rec.Location.Name = pay.Location.Name
		rec.Location.Description = pay.Location.Description
	}

	if rec.Phone == "" && legacy.OTP != nil {
		rec.Phone = legacy.OTP.Phone
	}

	if b := legacy.Booking; b != nil {
		if b.Therapist != nil {
			if rec.Doctor == "" {
				rec.Doctor = b.Therapist.Name
			}
			if rec.Specialty == "" {
				if b.Therapist.Role != "" {
					rec.Specialty = b.Therapist.Role
				} else {
					rec.Specialty = b.Therapist.Specialty
				}
			}
			if rec.AmountRupees == 0 {
				rec.AmountRupees = legacyAmount(b.Therapist.Price)
			}
		}
		if rec.Date == "" {
			rec.Date = b.Date
		}
		if rec.Time == "" {
			rec.Time = b.Time
		}
		if rec.Mode == "" {
			rec.Mode = scheduling.Mode(b.ConsultationType)
		}
		if loc := b.SelectedLocation; loc != nil && pay.Location == nil && loc.Name != "" {
			rec.Location.Name = loc.Name
			if loc.Description != "" {
				rec.Location.Description = loc.Description
			}
			if len(loc.Facilities) > 0 {
				rec.Location.Facilities = loc.Facilities
			}
		}
	}

	if rec.Mode == "" {
		rec.Mode = scheduling.ModeInPerson
	}
	if legacy.PatientInfo != nil {
		rec.Patient = *legacy.PatientInfo
	}
	return &rec, nil
}

// legacyAmount tolerates both `1200` and `"1200"` (the old app stored
// either depending on the code path).
func legacyAmount(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	text := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	text = strings.TrimPrefix(text, "₹")
	if text == "" {
		return 0
	}
	if n, err := strconv.Atoi(text); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return int(f)
	}
	return 0
}
