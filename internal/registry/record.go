package registry

import "time"

// Record kinds. Plain supporters live on the server; pastors only ever
// live in the device store.
type Kind string

const (
	KindSupporter Kind = "supporter"
	KindPastor    Kind = "pastor"
)

// Status of a supporter record. Every creation path starts Active.
type Status string

const (
	StatusActive     Status = "Ativo"
	StatusValidating Status = "Em validação"
	StatusInactive   Status = "Inativo"
)

// IndicatedBy sentinels for records without a real referrer.
const (
	DirectSignup = "Cadastro direto"
	PastorIntake = "Cadastro Pastor"
)

// CreatedBySystem marks records not attributed to a logged-in operator.
const CreatedBySystem = "system"

// Record is the unified supporter entity both stores reconcile into.
// ReferredBy holds a record ID and is only ever set on pastor records;
// IndicatedBy is the free-text referrer name shown everywhere.
type Record struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Phone            string      `json:"phone"`
	ChurchName       string      `json:"churchName"`
	MunicipalityName string      `json:"municipalityName"`
	CreatedAt        time.Time   `json:"createdAt"`
	CreatedBy        string      `json:"createdBy"`
	Status           Status      `json:"status"`
	IndicatedBy      string      `json:"indicatedBy"`
	ReferredBy       string      `json:"referredBy,omitempty"`
	Kind             Kind        `json:"kind"`
	Pastor           *PastorInfo `json:"pastor,omitempty"`
}

// PastorInfo is the extension only pastor-kind records carry.
type PastorInfo struct {
	BirthDate          string `json:"birthDate,omitempty"`
	CPF                string `json:"cpf,omitempty"`
	Denomination       string `json:"denomination,omitempty"`
	MainBranch         bool   `json:"mainBranch,omitempty"`
	MinistryRole       string `json:"ministryRole,omitempty"`
	ChurchAddress      string `json:"churchAddress,omitempty"`
	ChurchCNPJ         string `json:"churchCnpj,omitempty"`
	ChurchSocialMedia  string `json:"churchSocialMedia,omitempty"`
	MembersBand        string `json:"membersBand,omitempty"`
	HasSocialProjects  bool   `json:"hasSocialProjects,omitempty"`
	SocialProjectsDesc string `json:"socialProjectsDescription,omitempty"`
}

// HasIndicator reports whether the record carries a real referrer name
// rather than one of the direct-signup sentinels.
func (r Record) HasIndicator() bool {
	name := normalizeIndicator(r.IndicatedBy)
	return name != "" && name != normalizeIndicator(DirectSignup) && name != normalizeIndicator(PastorIntake)
}
