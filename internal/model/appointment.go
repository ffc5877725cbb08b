package model

// Appointment is a row of the appointments table. Age is only populated by
// the legacy booking route; Phone and Time only by the API route.
type Appointment struct {
	ID         int64       `db:"id" json:"id"`
	Name       string      `db:"name" json:"name"`
	Age        OptionalInt `db:"age" json:"age"`
	Department string      `db:"department" json:"department"`
	Doctor     string      `db:"doctor" json:"doctor"`
	Phone      NullString  `db:"phone" json:"phone"`
	Date       string      `db:"date" json:"date"`
	Time       NullString  `db:"time" json:"time"`
}

// Slot is the (date, time) pair appointments are booked against.
type Slot struct {
	Date string
	Time string
}

// BookAppointmentRequest is the body of POST /api/book.
type BookAppointmentRequest struct {
	Name       Text `json:"name" form:"name" binding:"required"`
	Phone      Text `json:"phone" form:"phone" binding:"required"`
	Doctor     Text `json:"doctor" form:"doctor" binding:"required"`
	Date       Text `json:"date" form:"date" binding:"required"`
	Time       Text `json:"time" form:"time" binding:"required"`
	Department Text `json:"department" form:"department" binding:"required"`
}

func (r *BookAppointmentRequest) Slot() Slot {
	return Slot{Date: string(r.Date), Time: string(r.Time)}
}

func (r *BookAppointmentRequest) ToAppointment() *Appointment {
	return &Appointment{
		Name:       string(r.Name),
		Department: string(r.Department),
		Doctor:     string(r.Doctor),
		Phone:      NewNullString(string(r.Phone)),
		Date:       string(r.Date),
		Time:       NewNullString(string(r.Time)),
	}
}

// CreateAppointmentRequest is the body of the legacy POST /appointments.
type CreateAppointmentRequest struct {
	Name       Text        `json:"name" form:"name" binding:"required"`
	Age        OptionalInt `json:"age" form:"age"`
	Department Text        `json:"department" form:"department" binding:"required"`
	Doctor     Text        `json:"doctor" form:"doctor" binding:"required"`
	Date       Text        `json:"date" form:"date" binding:"required"`
}

func (r *CreateAppointmentRequest) ToAppointment() *Appointment {
	return &Appointment{
		Name:       string(r.Name),
		Age:        r.Age,
		Department: string(r.Department),
		Doctor:     string(r.Doctor),
		Date:       string(r.Date),
	}
}

// CancelAppointmentRequest is the body of POST /api/cancel.
type CancelAppointmentRequest struct {
	Phone Text `json:"phone" form:"phone" binding:"required"`
}
