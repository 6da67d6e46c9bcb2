package questionnaire

import "time"

type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type Questionnaire struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organizationId"`
	Name           string     `json:"name"`
	Department     string     `json:"department"`
	Questions      []Question `json:"questions"`
	CreatedAt      time.Time  `json:"createdAt"`
}
