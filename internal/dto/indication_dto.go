package dto

type CreateIndicationRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	IndicatedBy    string `json:"indicatedBy"`
	ChurchID       string `json:"churchId"`
	MunicipalityID string `json:"municipalityId"`
}

// IndicationFilter carries the optional query filters of the listing
// endpoint. Zero values mean "not filtered".
type IndicationFilter struct {
	ChurchID       string
	MunicipalityID string
	IndicatedBy    string
	Query          string
	DateFrom       string
	DateTo         string
}

type CreateChurchRequest struct {
	Name string `json:"name"`
}

type CreateMunicipalityRequest struct {
	Name      string `json:"name"`
	StateCode string `json:"stateCode"`
}
