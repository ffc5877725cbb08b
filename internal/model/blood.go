package model

// BloodDonor is a row of the blood_donors table.
type BloodDonor struct {
	ID         int64       `db:"id" json:"id"`
	Name       string      `db:"name" json:"name"`
	BloodGroup string      `db:"blood_group" json:"blood_group"`
	Age        OptionalInt `db:"age" json:"age"`
	Contact    string      `db:"contact" json:"contact"`
	Location   NullString  `db:"location" json:"location"`
}

// DonateBloodRequest is the body of POST /api/blood/donate. Age and location
// are optional; absent or empty values are stored as NULL.
type DonateBloodRequest struct {
	Name       Text        `json:"name" form:"name" binding:"required"`
	BloodGroup Text        `json:"blood_group" form:"blood_group" binding:"required"`
	Age        OptionalInt `json:"age" form:"age"`
	Contact    Text        `json:"contact" form:"contact" binding:"required"`
	Location   string      `json:"location" form:"location"`
}

func (r *DonateBloodRequest) ToDonor() *BloodDonor {
	return &BloodDonor{
		Name:       string(r.Name),
		BloodGroup: string(r.BloodGroup),
		Age:        r.Age,
		Contact:    string(r.Contact),
		Location:   NewNullString(r.Location),
	}
}
