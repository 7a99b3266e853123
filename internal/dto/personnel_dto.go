package dto

// PersonnelRequest covers agents, superviseurs, and chefs de section — the
// three reference collections share the same shape.
type PersonnelRequest struct {
	Nom       string `json:"nom"       validate:"required"`
	Matricule string `json:"matricule" validate:"required"`
}

type PersonnelResponse struct {
	ID        string `json:"id"`
	Nom       string `json:"nom"`
	Matricule string `json:"matricule"`
}
