package records

import (
	"strconv"
	"time"
)

// Receipt is a point-in-time projection of the appointment record and
// profile, offered as a downloadable document. It is never stored.
type Receipt struct {
	ReceiptID   string             `json:"receiptId"`
	Date        string             `json:"date"`
	Patient     ReceiptPatient     `json:"patient"`
	Appointment ReceiptAppointment `json:"appointment"`
	Payment     ReceiptPayment     `json:"payment"`
}

type ReceiptPatient struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	PatientProfile
}

type ReceiptAppointment struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Doctor   string `json:"doctor"`
	Mode     string `json:"mode"`
	Location string `json:"location"`
}

type ReceiptPayment struct {
	Amount int    `json:"amount"`
	Status string `json:"status"`
	Method string `json:"method"`
}

// BuildReceipt assembles a receipt from the current record and
// profile. The receipt id carries the last eight digits of the
// generation timestamp.
func BuildReceipt(rec *AppointmentRecord, profile *PatientProfile, now time.Time) *Receipt {
	merged := rec.Patient
	if profile != nil {
		merged = *profile
	}
	return &Receipt{
		ReceiptID: receiptID(now),
		Date:      now.Format("02/01/2006"),
		Patient: ReceiptPatient{
			Name:           rec.PatientName,
			Phone:          rec.Phone,
			PatientProfile: merged,
		},
		Appointment: ReceiptAppointment{
			Date:     rec.Date,
			Time:     rec.Time,
			Doctor:   rec.Doctor,
			Mode:     rec.ModeDisplay(),
			Location: rec.Location.Name,
		},
		Payment: ReceiptPayment{
			Amount: rec.AmountRupees,
			Status: "Completed",
			Method: rec.Method,
		},
	}
}

// Filename is the download name offered to the patient.
func (r *Receipt) Filename() string {
	return "receipt-" + r.ReceiptID + ".json"
}

func receiptID(now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	return "REC-" + millis
}
