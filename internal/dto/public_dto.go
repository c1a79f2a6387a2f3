package dto

type PublicSignupRequest struct {
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	ChurchName       string `json:"churchName"`
	MunicipalityName string `json:"municipalityName"`
	IndicatedBy      string `json:"indicatedBy"`
}

type PublicOptionsResponse struct {
	Churches       []string `json:"churches"`
	Municipalities []string `json:"municipalities"`
}
