package handler

import (
	"encoding/json"
	"net/http"

	id "devdeck/pkg/domain"
	dErrors "devdeck/pkg/domain-errors"
)

// CreateCardRequest carries the initial field values plus the attached
// payment amount in minor currency units.
type CreateCardRequest struct {
	Name              string `json:"name"`
	Title             string `json:"title"`
	ImageURL          string `json:"image_url"`
	Technologies      string `json:"technologies"`
	Portfolio         string `json:"portfolio"`
	Contact           string `json:"contact"`
	YearsOfExperience uint8  `json:"years_of_experience"`
	Payment           int64  `json:"payment"`
}

type CreateCardResponse struct {
	ID id.CardID `json:"id"`
}

type UpdateDescriptionRequest struct {
	Description string `json:"description"`
}

type UpdatePortfolioRequest struct {
	Portfolio string `json:"portfolio"`
}

// writeError centralizes domain error translation to HTTP responses so every
// handler produces the same JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(dErrors.ToHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": string(code),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
