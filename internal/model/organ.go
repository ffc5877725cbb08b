package model

// OrganRequest is a row of the organs table.
type OrganRequest struct {
	ID          int64  `db:"id" json:"id"`
	Patient     string `db:"patient" json:"patient"`
	OrganNeeded string `db:"organ_needed" json:"organ_needed"`
	BloodGroup  string `db:"blood_group" json:"blood_group"`
	Contact     string `db:"contact" json:"contact"`
}

// CreateOrganRequest is the body of POST /api/organs/request and the legacy
// POST /organs.
type CreateOrganRequest struct {
	Patient     Text `json:"patient" form:"patient" binding:"required"`
	OrganNeeded Text `json:"organ_needed" form:"organ_needed" binding:"required"`
	BloodGroup  Text `json:"blood_group" form:"blood_group" binding:"required"`
	Contact     Text `json:"contact" form:"contact" binding:"required"`
}

func (r *CreateOrganRequest) ToOrganRequest() *OrganRequest {
	return &OrganRequest{
		Patient:     string(r.Patient),
		OrganNeeded: string(r.OrganNeeded),
		BloodGroup:  string(r.BloodGroup),
		Contact:     string(r.Contact),
	}
}
